package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/youruser/recapapp/pkg/logger"
	"github.com/youruser/recapapp/pkg/metrics"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// MaxBodyBytes caps request bodies. A full match payload stays well below it.
const MaxBodyBytes = 1 << 20

// LimitBody makes reads past limit bytes of the request body fail.
func LimitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// RequestID assigns every request an id, keeping a caller supplied one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Observe logs and counts every request once it completed.
func Observe(log logger.Logger, m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)
		m.RecordHTTPRequest(endpoint, c.Request.Method, strconv.Itoa(status), elapsed.Seconds())
		log.Info(c.Request.Context(), "http request",
			logger.String("request_id", c.GetString(requestIDKey)),
			logger.String("method", c.Request.Method),
			logger.String("endpoint", endpoint),
			logger.Int("status", status),
			logger.Int("bytes", c.Writer.Size()),
			logger.String("elapsed", elapsed.String()),
		)
	}
}
