package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryMetrics records request and generation spans on the Sentry transaction in ctx
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client.
// Spans are dropped by the SDK when Sentry was never initialized.
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{enabled: true}
}

// RecordAPIRequest records one handled request
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	ok := statusCode < http.StatusBadRequest
	m.span(ctx, "api.request", "API Request: "+endpoint, ok, func(span *sentry.Span) {
		span.SetTag("endpoint", endpoint)
		span.SetTag("status_code", strconv.Itoa(statusCode))
		span.SetTag("success", strconv.FormatBool(ok))
		span.SetData("duration_ms", duration.Milliseconds())
	})
}

// RecordTokenUsage records completion token usage on the active transaction
func (m *SentryMetrics) RecordTokenUsage(ctx context.Context, model string, totalTokens, inputTokens, outputTokens int) {
	if m.enabled {
		if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
			transaction.SetTag("llm.model", model)
			transaction.SetData("llm.total_tokens", totalTokens)
		}
	}

	m.span(ctx, "llm.token_usage", "Token Usage: "+model, true, func(span *sentry.Span) {
		span.SetTag("model", model)
		span.SetData("total_tokens", totalTokens)
		span.SetData("input_tokens", inputTokens)
		span.SetData("output_tokens", outputTokens)
	})
}

// RecordGeneration records how one /api/generate request resolved
func (m *SentryMetrics) RecordGeneration(ctx context.Context, duration time.Duration, outcome Outcome) {
	description := fmt.Sprintf("Generation: %s", outcome)
	m.span(ctx, "generation.request", description, outcome == OutcomeSuccess, func(span *sentry.Span) {
		span.SetTag("outcome", string(outcome))
		span.SetData("duration_ms", duration.Milliseconds())
	})
}

func (m *SentryMetrics) span(ctx context.Context, op, description string, ok bool, annotate func(*sentry.Span)) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, op)
	defer span.Finish()

	annotate(span)
	span.Description = description
	span.Status = sentry.SpanStatusInternalError
	if ok {
		span.Status = sentry.SpanStatusOK
	}
}
