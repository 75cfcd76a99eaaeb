package llm

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned when the credential for the selected provider is not configured
var ErrMissingAPIKey = errors.New("completion API key not configured")

// Provider defines the interface for text completion providers
type Provider interface {
	// Complete sends one system/user prompt pair and returns the first choice's text.
	// Content is empty when the provider returned no choices.
	Complete(ctx context.Context, request *CompletionRequest) (*CompletionResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// CompletionRequest contains all parameters needed for a single completion
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// CompletionResponse contains the raw text returned by the model
type CompletionResponse struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   Usage  `json:"usage"`
}

// Usage reports token counts for a completion
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ToMap flattens usage for logging and tracing
func (u Usage) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"input_tokens":  u.PromptTokens,
		"output_tokens": u.CompletionTokens,
		"total_tokens":  u.TotalTokens,
	}
}
