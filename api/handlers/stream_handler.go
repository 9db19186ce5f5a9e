package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/audio-fetch-go/internal/app"
)

// StreamHandler serves the live download progress stream
type StreamHandler struct {
	engine *app.Engine
	logger *zap.Logger
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(engine *app.Engine, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{
		engine: engine,
		logger: logger,
	}
}

// Stream handles GET /download/stream
func (h *StreamHandler) Stream(c *gin.Context) {
	job, err := h.engine.Prepare(c.Query("url"), c.Query("dest"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	events := h.engine.Run(c.Request.Context(), job)

	c.Stream(func(w io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}
		if err := writeEvent(w, ev); err != nil {
			h.logger.Warn("Failed to write stream event", zap.Error(err))
			return false
		}
		// The connection closes right after the terminal frame.
		return !ev.IsTerminal()
	})
}
