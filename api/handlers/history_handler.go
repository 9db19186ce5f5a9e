package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/audio-fetch-go/internal/domain"
)

// HistoryHandler handles fetch-history HTTP requests
type HistoryHandler struct {
	history domain.HistoryRepository
	logger  *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(history domain.HistoryRepository, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		logger:  logger,
	}
}

// List handles GET /api/v1/history
func (h *HistoryHandler) List(c *gin.Context) {
	filters := make(map[string]interface{})

	if status := c.Query("status"); status != "" {
		if !domain.ValidateStatus(domain.FetchStatus(status)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status: " + status})
			return
		}
		filters["status"] = status
	}
	if strategy := c.Query("strategy"); strategy != "" {
		filters["strategy"] = strategy
	}

	records, err := h.history.FindAll(filters)
	if err != nil {
		h.logger.Error("Failed to list history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetStats handles GET /api/v1/history/stats
func (h *HistoryHandler) GetStats(c *gin.Context) {
	stats, err := h.history.GetStats()
	if err != nil {
		h.logger.Error("Failed to get history stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Get handles GET /api/v1/history/:id
func (h *HistoryHandler) Get(c *gin.Context) {
	id := c.Param("id")

	record, err := h.history.FindByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}
