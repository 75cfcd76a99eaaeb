package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Conceptual-Machines/comeback-api/internal/logger"
	"github.com/Conceptual-Machines/comeback-api/internal/services"
	"github.com/gin-gonic/gin"
)

type GenerationLogHandler struct {
	service *services.GenerationLogService
}

func NewGenerationLogHandler(service *services.GenerationLogService) *GenerationLogHandler {
	return &GenerationLogHandler{service: service}
}

// Recent returns the newest generation records
func (h *GenerationLogHandler) Recent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultRecentLimit)))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	if limit > maxRecentGenerations {
		limit = maxRecentGenerations
	}

	records, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to list generations", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list generations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"generations": records})
}

// Stats aggregates the generation log, optionally bounded by RFC3339 from/to query params
func (h *GenerationLogHandler) Stats(c *gin.Context) {
	from, err := parseTimeParam(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
		return
	}
	to, err := parseTimeParam(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to aggregate generations", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate generations"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func parseTimeParam(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, value)
}
