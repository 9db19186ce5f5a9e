package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/audio-fetch-go/internal/app"
	"github.com/yourusername/audio-fetch-go/internal/domain"
)

// FetchHandler serves completed artifacts
type FetchHandler struct {
	engine *app.Engine
	logger *zap.Logger
}

// NewFetchHandler creates a new fetch handler
func NewFetchHandler(engine *app.Engine, logger *zap.Logger) *FetchHandler {
	return &FetchHandler{
		engine: engine,
		logger: logger,
	}
}

// Fetch handles GET /download/:key. The key is a bare filename under the
// direct and shared strategies, or an opaque single-use token.
func (h *FetchHandler) Fetch(c *gin.Context) {
	key := c.Param("key")
	if key == "" || filepath.Base(key) != key {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
		return
	}

	artifact, err := h.engine.Open(key, c.Query("dest"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDestination):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "download not found"})
		default:
			h.logger.Error("Failed to open artifact",
				zap.String("key", key),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Header("Content-Disposition", ContentDisposition(artifact.Filename))
	if artifact.Data != nil {
		c.Data(http.StatusOK, "audio/mpeg", artifact.Data)
		return
	}
	c.Header("Content-Type", "audio/mpeg")
	c.File(artifact.Path)
}

// ContentDisposition builds an attachment header carrying both an
// ASCII-safe fallback filename and the percent-encoded UTF-8 original.
func ContentDisposition(filename string) string {
	sanitized := strings.NewReplacer(`"`, "", "\r", " ", "\n", " ").Replace(filename)

	fallback := asciiOnly(sanitized)
	if fallback == "" {
		fallback = "audio.mp3"
	}

	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s",
		fallback, url.PathEscape(sanitized))
}

// asciiOnly drops every non-ASCII rune.
func asciiOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
