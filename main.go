package main

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/comeback-api/internal/api"
	"github.com/Conceptual-Machines/comeback-api/internal/api/handlers"
	"github.com/Conceptual-Machines/comeback-api/internal/config"
	"github.com/Conceptual-Machines/comeback-api/internal/database"
	"github.com/Conceptual-Machines/comeback-api/internal/llm"
	"github.com/Conceptual-Machines/comeback-api/internal/metrics"
	"github.com/Conceptual-Machines/comeback-api/internal/observability"
	"github.com/Conceptual-Machines/comeback-api/internal/services"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const (
	sentryFlushTimeout = 2 * time.Second
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "comeback-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            !cfg.IsProduction(),
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	observability.InitializeLangfuse(ctx, cfg)

	// The generation log is optional
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Connect(cfg.DatabaseURL)
		if err != nil {
			sentry.CaptureException(err)
			log.Fatal("Failed to connect to database:", err)
		}
		if err := database.Migrate(db); err != nil {
			sentry.CaptureException(err)
			log.Fatal("Failed to run migrations:", err)
		}
	} else {
		log.Println("⚠️  Generation log disabled (DATABASE_URL not set)")
	}

	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("Failed to initialize CloudWatch metrics: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := api.Dependencies{
		DB:        db,
		Generator: buildGenerator(ctx, cfg),
		Version:   GetVersion(),
	}
	if cloudwatch != nil {
		deps.Metrics = cloudwatch
		deps.RequestMetrics = cloudwatch
	}
	router := api.SetupRouter(deps)

	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

// buildGenerator returns nil when the completion service cannot be configured,
// which makes /api/generate answer with the configuration fallback.
func buildGenerator(ctx context.Context, cfg *config.Config) handlers.Generator {
	provider, err := llm.NewProviderFactory(cfg.ProviderConfig()).GetProvider(ctx)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			log.Printf("⚠️  Completion service not configured: %v", err)
		} else {
			sentry.CaptureException(err)
			log.Printf("Failed to create completion provider: %v", err)
		}
		return nil
	}

	service, err := services.NewCompletionService(provider, cfg.Model())
	if err != nil {
		sentry.CaptureException(err)
		log.Printf("Failed to create completion service: %v", err)
		return nil
	}

	log.Printf("✅ Completion service ready (provider: %s, model: %s)", provider.Name(), cfg.Model())
	return service
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
