package api

import (
	"github.com/gin-gonic/gin"
	"github.com/youruser/recapapp/pkg/metrics"
)

// RegisterRoutes mounts the API and the metrics endpoint on r.
func RegisterRoutes(r *gin.Engine, h *Handler, m *metrics.Manager) {
	r.Use(RequestID(), Observe(h.log, m))

	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.POST("/recap", LimitBody(MaxBodyBytes), h.recap)
		api.POST("/recap/match", LimitBody(MaxBodyBytes), h.recapMatch)
		api.GET("/match/:id/qr", h.qr)
	}
	r.GET("/metrics", gin.WrapH(m.Handler()))
}
