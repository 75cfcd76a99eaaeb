package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/comeback-api/internal/extract"
	"github.com/Conceptual-Machines/comeback-api/internal/llm"
	"github.com/Conceptual-Machines/comeback-api/internal/logger"
	"github.com/Conceptual-Machines/comeback-api/internal/observability"
	"github.com/Conceptual-Machines/comeback-api/internal/prompt"
)

// CompletionTimeout bounds one upstream completion call
const CompletionTimeout = 60 * time.Second

// ConfigFallback is returned when no completion credential is configured
var ConfigFallback = []string{
	"The comeback service is not configured yet.",
	"Ask the operator to set the completion API key.",
	"Until then, take a breath and answer in your own words.",
}

// ServiceFallback is returned when the completion service fails
var ServiceFallback = []string{
	"The comeback service is unavailable right now.",
	"Please try again in a moment.",
	"Meanwhile, stay calm and stick to the facts.",
}

// Generation is the parsed outcome of one completion
type Generation struct {
	Responses []string
	Raw       string
	Model     string
	Provider  string
	Usage     llm.Usage
	Duration  time.Duration
}

// CompletionService turns opponent text and an intensity into three rebuttals
type CompletionService struct {
	provider llm.Provider
	model    string
	builder  *prompt.Builder
}

// NewCompletionService wires a provider and model to the embedded prompts
func NewCompletionService(provider llm.Provider, model string) (*CompletionService, error) {
	builder, err := prompt.NewPromptBuilder()
	if err != nil {
		return nil, err
	}
	return &CompletionService{
		provider: provider,
		model:    model,
		builder:  builder,
	}, nil
}

// Model returns the model name sent upstream
func (s *CompletionService) Model() string {
	return s.model
}

// ProviderName returns the configured provider's name
func (s *CompletionService) ProviderName() string {
	return s.provider.Name()
}

// BuildRequest renders prompts and sampling parameters for one completion
func (s *CompletionService) BuildRequest(opponentText string, intensity int) (*llm.CompletionRequest, error) {
	intensity = prompt.ClampIntensity(intensity)

	systemPrompt, err := s.builder.BuildSystemPrompt(intensity)
	if err != nil {
		return nil, err
	}
	userPrompt, err := s.builder.BuildUserPrompt(opponentText, intensity)
	if err != nil {
		return nil, err
	}

	return &llm.CompletionRequest{
		Model:        s.model,
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Temperature:  prompt.Temperature(intensity),
		MaxTokens:    prompt.MaxTokens,
	}, nil
}

// Complete sends one completion request and returns the raw model reply
func (s *CompletionService) Complete(ctx context.Context, opponentText string, intensity int) (*llm.CompletionResponse, error) {
	request, err := s.BuildRequest(opponentText, intensity)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompts: %w", err)
	}

	trace := observability.GetClient().StartTrace(ctx, "comeback_generation", map[string]interface{}{
		"provider":  s.provider.Name(),
		"intensity": prompt.ClampIntensity(intensity),
	})
	defer trace.Finish()
	gen := trace.Generation("completion", nil)
	defer gen.Finish()

	ctx, cancel := context.WithTimeout(ctx, CompletionTimeout)
	defer cancel()

	resp, err := s.provider.Complete(ctx, request)
	if err != nil {
		gen.Fail(err)
		return nil, fmt.Errorf("%s completion failed: %w", s.provider.Name(), err)
	}
	gen.LogCompletion(request, resp)

	return resp, nil
}

// Generate completes and extracts exactly three responses
func (s *CompletionService) Generate(ctx context.Context, opponentText string, intensity int) (*Generation, error) {
	start := time.Now()

	resp, err := s.Complete(ctx, opponentText, intensity)
	if err != nil {
		return nil, err
	}
	duration := time.Since(start)

	logger.LogGenerationRequest(ctx, resp.Model, duration, resp.Usage.ToMap(), logger.Fields{
		"provider":  s.provider.Name(),
		"intensity": intensity,
	})

	return &Generation{
		Responses: extract.Responses(resp.Content),
		Raw:       resp.Content,
		Model:     resp.Model,
		Provider:  s.provider.Name(),
		Usage:     resp.Usage,
		Duration:  duration,
	}, nil
}
