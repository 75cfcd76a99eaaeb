package llm

import (
	"context"
	"fmt"
	"strings"
)

// FactoryConfig carries the credentials and endpoint settings a factory may need
type FactoryConfig struct {
	Provider     string // "openai" (OpenAI-compatible, default) or "gemini"
	OpenAI       OpenAIConfig
	GeminiAPIKey string
}

// ProviderFactory creates providers based on an explicit provider choice
type ProviderFactory struct {
	cfg FactoryConfig
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(cfg FactoryConfig) *ProviderFactory {
	return &ProviderFactory{cfg: cfg}
}

// GetProvider returns the configured provider, or ErrMissingAPIKey when its credential is absent
func (f *ProviderFactory) GetProvider(ctx context.Context) (Provider, error) {
	switch strings.ToLower(f.cfg.Provider) {
	case "", providerNameOpenAI, "openrouter":
		if f.cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("%s: %w", providerNameOpenAI, ErrMissingAPIKey)
		}
		return NewOpenAIProvider(f.cfg.OpenAI), nil

	case providerNameGemini:
		if f.cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("%s: %w", providerNameGemini, ErrMissingAPIKey)
		}
		return NewGeminiProvider(ctx, f.cfg.GeminiAPIKey)

	default:
		return nil, fmt.Errorf("unknown provider: %s (allowed: openai, gemini)", f.cfg.Provider)
	}
}
