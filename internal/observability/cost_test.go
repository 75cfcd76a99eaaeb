package observability

import (
	"testing"

	"github.com/Conceptual-Machines/comeback-api/internal/llm"
	"github.com/stretchr/testify/assert"
)

func TestCalculateCost(t *testing.T) {
	usage := llm.Usage{PromptTokens: 2000, CompletionTokens: 1000, TotalTokens: 3000}

	cost := CalculateCost("openai/gpt-4o-mini", usage)
	assert.InDelta(t, 2*gpt4oMiniInputPrice+gpt4oMiniOutputPrice, cost, 1e-12)

	assert.Zero(t, CalculateCost("unknown/model", usage))
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.000900", FormatCost(0.0009))
}

func TestDisabledLangfuseIsNoop(t *testing.T) {
	client := GetClient()
	assert.False(t, client.IsEnabled())

	trace := client.StartTrace(t.Context(), "comeback_generation", nil)
	gen := trace.Generation("completion", nil)
	gen.LogCompletion(&llm.CompletionRequest{Model: "m"}, &llm.CompletionResponse{Content: "x"})
	gen.Fail(assert.AnError)
	gen.Finish()
	trace.Finish()
}
