package api

import (
	"github.com/Conceptual-Machines/comeback-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/comeback-api/internal/api/middleware"
	"github.com/Conceptual-Machines/comeback-api/internal/metrics"
	"github.com/Conceptual-Machines/comeback-api/internal/services"
	webhandlers "github.com/Conceptual-Machines/comeback-api/internal/web/handlers"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the router wires into handlers.
// Generator is nil when no completion credential is configured; DB is nil when the generation log is disabled.
type Dependencies struct {
	DB        *gorm.DB
	Generator handlers.Generator
	Metrics   handlers.GenerationMetrics
	Version   string

	// RequestMetrics receives a sample per request in addition to Sentry
	RequestMetrics apimiddleware.APIRequestRecorder
}

func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	var recorders []apimiddleware.APIRequestRecorder
	if deps.RequestMetrics != nil {
		recorders = append(recorders, deps.RequestMetrics)
	}
	router.Use(apimiddleware.RequestTracking(recorders...))

	router.Use(apimiddleware.CORS())

	counters := &metrics.Counters{}

	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Generator != nil)
	router.GET("/health", healthHandler.HealthCheck)

	metricsHandler := handlers.NewMetricsHandler(deps.Version, counters)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	webHandler := webhandlers.NewWebHandler()
	router.GET("/", webHandler.Home)

	opts := []handlers.GenerateOption{handlers.WithCounters(counters)}
	if deps.Metrics != nil {
		opts = append(opts, handlers.WithMetrics(deps.Metrics))
	}

	api := router.Group("/api")
	if deps.DB != nil {
		logService := services.NewGenerationLogService(deps.DB)
		opts = append(opts, handlers.WithRecorder(logService))

		logHandler := handlers.NewGenerationLogHandler(logService)
		api.GET("/generations", logHandler.Recent)
		api.GET("/generations/stats", logHandler.Stats)
	}

	generateHandler := handlers.NewGenerateHandler(deps.Generator, opts...)
	api.POST("/generate", generateHandler.Generate)

	return router
}
