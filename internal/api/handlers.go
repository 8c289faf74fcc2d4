package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	imagepkg "github.com/youruser/recapapp/internal/image"
	"github.com/youruser/recapapp/internal/match"
	"github.com/youruser/recapapp/pkg/logger"
)

// CaptionHeader carries the percent-encoded recap caption next to the PNG body.
const CaptionHeader = "X-Recap-Caption"

// Renderer is the rendering dependency of the handlers.
type Renderer interface {
	Render(ctx context.Context, p *match.Participant, version string) ([]byte, error)
}

// Handler serves the recap endpoints.
type Handler struct {
	renderer       Renderer
	defaultVersion string
	matchURL       string
	log            logger.Logger
}

// NewHandler creates a handler. defaultVersion is used when a request names no
// asset version; matchURL is the share link template with an {id} placeholder.
func NewHandler(r Renderer, defaultVersion, matchURL string, log logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{renderer: r, defaultVersion: defaultVersion, matchURL: matchURL, log: log}
}

type recapRequest struct {
	AssetVersion string             `json:"asset_version"`
	Participant  *match.Participant `json:"participant"`
}

type matchRecapRequest struct {
	AssetVersion string       `json:"asset_version"`
	PUUID        string       `json:"puuid"`
	Match        *match.Match `json:"match"`
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) recap(c *gin.Context) {
	var req recapRequest
	if !bind(c, &req) {
		return
	}
	h.render(c, req.Participant, req.AssetVersion)
}

func (h *Handler) recapMatch(c *gin.Context) {
	var req matchRecapRequest
	if !bind(c, &req) {
		return
	}
	if req.Match == nil {
		h.fail(c, &match.ValidationError{Field: "match", Reason: "missing"})
		return
	}
	p, err := req.Match.Participant(req.PUUID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, p, req.AssetVersion)
}

// bind decodes the JSON body into req, answering 413 for oversized bodies and
// 400 for anything else it cannot decode.
func bind(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	return false
}

func (h *Handler) render(c *gin.Context, p *match.Participant, version string) {
	if version == "" {
		version = h.defaultVersion
	}
	out, err := h.renderer.Render(c.Request.Context(), p, version)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header(CaptionHeader, url.PathEscape(match.Caption(p)))
	c.Data(http.StatusOK, "image/png", out)
}

// qr returns a PNG QR code linking to the match page of :id.
func (h *Handler) qr(c *gin.Context) {
	size := imagepkg.DefaultQRSize
	if s := c.Query("size"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be an integer"})
			return
		}
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(imagepkg.MatchLink(h.matchURL, c.Param("id")), size)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// fail maps domain errors to status codes.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, match.ErrInvalidPayload):
		status = http.StatusBadRequest
	case errors.Is(err, match.ErrPlayerNotInMatch):
		status = http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		h.log.Error(c.Request.Context(), "request failed",
			logger.String("path", c.FullPath()),
			logger.String("request_id", c.GetString(requestIDKey)),
			logger.Error(err),
		)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
