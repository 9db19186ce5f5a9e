package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	strategy string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(strategy string) *HealthHandler {
	return &HealthHandler{strategy: strategy}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Strategy string `json:"strategy"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		Version:  "1.0.0",
		Strategy: h.strategy,
	})
}
