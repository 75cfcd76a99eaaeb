package middleware

import (
	"net/http"
	"time"

	"github.com/Conceptual-Machines/comeback-api/internal/logger"
	"github.com/Conceptual-Machines/comeback-api/internal/metrics"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey       = "request_id"
	requestIDHeader    = "X-Request-ID"
	sentryFlushTimeout = 2 * time.Second
)

var sentryMetrics = metrics.NewSentryMetrics()

// APIRequestRecorder receives one sample per completed request
type APIRequestRecorder interface {
	RecordAPIRequest(endpoint string, statusCode int, duration time.Duration)
}

// RequestTracking assigns a request ID, logs the outcome and records request metrics
func RequestTracking(recorders ...APIRequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		status := c.Writer.Status()
		logRequest(status, logger.Fields{
			"request_id":  requestID,
			"duration_ms": duration.Milliseconds(),
			"status_code": status,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"client_ip":   c.ClientIP(),
		})

		sentryMetrics.RecordAPIRequest(c.Request.Context(), c.Request.URL.Path, status, duration)
		for _, recorder := range recorders {
			recorder.RecordAPIRequest(c.Request.URL.Path, status, duration)
		}
	}
}

func logRequest(status int, fields logger.Fields) {
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("Request failed with server error", nil, fields)
	case status >= http.StatusBadRequest:
		logger.Warn("Request failed with client error", fields)
	default:
		logger.Info("Request completed", fields)
	}
}

// SentryMiddleware attaches a Sentry hub to every request
func SentryMiddleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         sentryFlushTimeout,
	})
}

// RecoverWithSentry turns a handler panic into a 500 and reports it
func RecoverWithSentry() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			requestID := c.GetString(requestIDKey)
			capturePanic(c, requestID, recovered)
			logger.Error("Panic recovered", nil, logger.Fields{
				"request_id": requestID,
				"error":      recovered,
				"path":       c.Request.URL.Path,
			})

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}()
		c.Next()
	}
}

func capturePanic(c *gin.Context, requestID string, recovered interface{}) {
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(c.Request)
		scope.SetContext("request", map[string]interface{}{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"client_ip":  c.ClientIP(),
		})
		hub.RecoverWithContext(c.Request.Context(), recovered)
	})
}
