package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/Conceptual-Machines/comeback-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	startTime time.Time
	version   string
	counters  *metrics.Counters
}

func NewMetricsHandler(version string, counters *metrics.Counters) *MetricsHandler {
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
		counters:  counters,
	}
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// formatUptime formats the uptime duration with seconds rounded to 2 decimal places
func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % secondsPerMinute
	seconds := d.Seconds() - float64(hours*secondsPerHour) - float64(minutes*secondsPerMinute)

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%.2fs", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%.2fs", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", seconds)
}

type MetricsResponse struct {
	Status      string           `json:"status"`
	Uptime      string           `json:"uptime"`
	Timestamp   string           `json:"timestamp"`
	Version     string           `json:"version"`
	StartTime   string           `json:"start_time"`
	System      RuntimeStats     `json:"system"`
	Generations map[string]int64 `json:"generations"`
}

// RuntimeStats is a snapshot of the Go runtime
type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
	MemTotalMB   uint64 `json:"mem_total_mb"`
	NumGC        uint32 `json:"num_gc"`
}

const bytesToMB = 1024 * 1024

func readRuntimeStats() RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		MemAllocMB:   mem.Alloc / bytesToMB,
		MemTotalMB:   mem.TotalAlloc / bytesToMB,
		NumGC:        mem.NumGC,
	}
}

// GetMetrics reports uptime, runtime stats and generation outcome counters
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	now := time.Now()

	c.JSON(http.StatusOK, MetricsResponse{
		Status:      "healthy",
		Uptime:      formatUptime(now.Sub(h.startTime)),
		Timestamp:   now.UTC().Format(time.RFC3339),
		Version:     h.version,
		StartTime:   h.startTime.UTC().Format(time.RFC3339),
		System:      readRuntimeStats(),
		Generations: h.counters.Snapshot(),
	})
}
