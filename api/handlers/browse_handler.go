package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/audio-fetch-go/internal/app"
)

// BrowseHandler lists directories inside the sandbox for destination
// pickers
type BrowseHandler struct {
	sandbox *app.Sandbox
}

// NewBrowseHandler creates a new browse handler
func NewBrowseHandler(sandbox *app.Sandbox) *BrowseHandler {
	return &BrowseHandler{sandbox: sandbox}
}

// Browse handles GET /browse
func (h *BrowseHandler) Browse(c *gin.Context) {
	c.JSON(http.StatusOK, h.sandbox.ListDirs(c.Query("path")))
}
