package handlers

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/comeback-api/internal/llm"
	"github.com/Conceptual-Machines/comeback-api/internal/logger"
	"github.com/Conceptual-Machines/comeback-api/internal/metrics"
	"github.com/Conceptual-Machines/comeback-api/internal/models"
	"github.com/Conceptual-Machines/comeback-api/internal/prompt"
	"github.com/Conceptual-Machines/comeback-api/internal/services"
	"github.com/gin-gonic/gin"
)

// Generator produces three rebuttals for a piece of opponent text
type Generator interface {
	Generate(ctx context.Context, opponentText string, intensity int) (*services.Generation, error)
}

// GenerationMetrics receives one sample per handled generation
type GenerationMetrics interface {
	RecordGeneration(duration time.Duration, outcome metrics.Outcome)
	RecordTokenUsage(model string, totalTokens, inputTokens, outputTokens int)
}

var sentryMetrics = metrics.NewSentryMetrics()

type GenerateHandler struct {
	generator Generator
	recorder  services.GenerationRecorder
	counters  *metrics.Counters
	metrics   GenerationMetrics
}

// NewGenerateHandler builds the /api/generate handler.
// A nil generator means the completion credential is missing; every request then gets the config fallback.
func NewGenerateHandler(generator Generator, opts ...GenerateOption) *GenerateHandler {
	h := &GenerateHandler{
		generator: generator,
		counters:  &metrics.Counters{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// GenerateOption configures optional collaborators of GenerateHandler
type GenerateOption func(*GenerateHandler)

// WithRecorder persists a record per request
func WithRecorder(recorder services.GenerationRecorder) GenerateOption {
	return func(h *GenerateHandler) { h.recorder = recorder }
}

// WithCounters shares counters with the metrics endpoint
func WithCounters(counters *metrics.Counters) GenerateOption {
	return func(h *GenerateHandler) { h.counters = counters }
}

// WithMetrics forwards samples to an external metrics sink
func WithMetrics(m GenerationMetrics) GenerateOption {
	return func(h *GenerateHandler) { h.metrics = m }
}

// Generate handles POST /api/generate
func (h *GenerateHandler) Generate(c *gin.Context) {
	start := time.Now()
	fields := logger.WithContext(c)

	if h.generator == nil {
		logger.Error("Completion credential not configured", llm.ErrMissingAPIKey, fields)
		h.finish(c, start, metrics.OutcomeConfigFallback, &models.GenerationRecord{
			Responses: services.ConfigFallback,
			Fallback:  true,
			Error:     llm.ErrMissingAPIKey.Error(),
		})
		c.JSON(http.StatusInternalServerError, models.GenerateResponse{
			Error:     errMsgNotConfigured,
			Responses: services.ConfigFallback,
		})
		return
	}

	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OpponentText == "" || req.Intensity == nil {
		h.counters.Record(metrics.OutcomeInvalid)
		c.JSON(http.StatusBadRequest, models.GenerateResponse{Error: errMsgInvalidParams})
		return
	}

	intensity := prompt.ClampIntensity(int(math.Round(*req.Intensity)))
	fields["intensity"] = intensity

	gen, err := h.generator.Generate(c.Request.Context(), req.OpponentText, intensity)
	if err != nil {
		logger.Error("Generation failed", err, fields)
		h.finish(c, start, metrics.OutcomeServiceFallback, &models.GenerationRecord{
			OpponentText: req.OpponentText,
			Intensity:    intensity,
			Responses:    services.ServiceFallback,
			Fallback:     true,
			Error:        err.Error(),
		})
		c.JSON(http.StatusInternalServerError, models.GenerateResponse{
			Error:     errMsgGenerateFailed,
			Responses: services.ServiceFallback,
		})
		return
	}

	sentryMetrics.RecordTokenUsage(c.Request.Context(), gen.Model, gen.Usage.TotalTokens, gen.Usage.PromptTokens, gen.Usage.CompletionTokens)
	if h.metrics != nil {
		h.metrics.RecordTokenUsage(gen.Model, gen.Usage.TotalTokens, gen.Usage.PromptTokens, gen.Usage.CompletionTokens)
	}
	h.finish(c, start, metrics.OutcomeSuccess, &models.GenerationRecord{
		OpponentText:     req.OpponentText,
		Intensity:        intensity,
		Provider:         gen.Provider,
		Model:            gen.Model,
		Responses:        gen.Responses,
		PromptTokens:     gen.Usage.PromptTokens,
		CompletionTokens: gen.Usage.CompletionTokens,
		TotalTokens:      gen.Usage.TotalTokens,
	})
	c.JSON(http.StatusOK, models.GenerateResponse{Responses: gen.Responses})
}

// finish updates counters and metrics and writes the audit record
func (h *GenerateHandler) finish(c *gin.Context, start time.Time, outcome metrics.Outcome, record *models.GenerationRecord) {
	duration := time.Since(start)

	h.counters.Record(outcome)
	sentryMetrics.RecordGeneration(c.Request.Context(), duration, outcome)
	if h.metrics != nil {
		h.metrics.RecordGeneration(duration, outcome)
	}

	if h.recorder == nil {
		return
	}
	record.RequestID = c.GetString("request_id")
	record.DurationMS = duration.Milliseconds()
	if err := h.recorder.Record(c.Request.Context(), record); err != nil {
		logger.Warn("Failed to record generation", logger.Fields{
			"request_id": record.RequestID,
			"error":      err.Error(),
		})
	}
}
