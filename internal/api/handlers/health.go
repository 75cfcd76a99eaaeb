package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db         *gorm.DB
	configured bool
}

// NewHealthHandler reports database reachability and whether completions are configured.
// db may be nil when the generation log is disabled.
func NewHealthHandler(db *gorm.DB, configured bool) *HealthHandler {
	return &HealthHandler{db: db, configured: configured}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	completionStatus := "disabled"
	if h.configured {
		completionStatus = "enabled"
	}

	dbStatus := "disabled"
	if h.db != nil {
		dbStatus = "healthy"
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			dbStatus = "unreachable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"completion": completionStatus,
		"database":   dbStatus,
	})
}
