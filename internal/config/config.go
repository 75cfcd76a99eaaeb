package config

import (
	"os"

	"github.com/Conceptual-Machines/comeback-api/internal/llm"
)

const (
	// DefaultModel is the OpenRouter model used for rebuttals
	DefaultModel = "google/gemini-flash-1.5-8b"

	// DefaultGeminiModel is used when LLM_PROVIDER=gemini and LLM_MODEL is unset
	DefaultGeminiModel = "gemini-2.5-flash"

	providerGemini = "gemini"
)

// Config holds the server configuration
type Config struct {
	// Environment
	Environment string
	Port        string

	// Completion service
	LLMProvider       string // "openai" (OpenAI-compatible, OpenRouter by default) or "gemini"
	LLMModel          string
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterReferer string // HTTP-Referer attribution header
	OpenRouterTitle   string // X-Title attribution header
	GeminiAPIKey      string

	// Persistence (optional generation log)
	DatabaseURL string

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
}

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
		LLMModel:          getEnv("LLM_MODEL", ""),
		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", llm.DefaultBaseURL),
		OpenRouterReferer: getEnv("OPENROUTER_REFERER", "https://changping-kaifa.vercel.app"),
		OpenRouterTitle:   getEnv("OPENROUTER_TITLE", "吵架包赢"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// Model returns the configured model, defaulting per provider
func (c *Config) Model() string {
	if c.LLMModel != "" {
		return c.LLMModel
	}
	if c.LLMProvider == providerGemini {
		return DefaultGeminiModel
	}
	return DefaultModel
}

// ProviderConfig returns the explicit configuration handed to the provider factory
func (c *Config) ProviderConfig() llm.FactoryConfig {
	return llm.FactoryConfig{
		Provider: c.LLMProvider,
		OpenAI: llm.OpenAIConfig{
			APIKey:  c.OpenRouterAPIKey,
			BaseURL: c.OpenRouterBaseURL,
			Referer: c.OpenRouterReferer,
			Title:   c.OpenRouterTitle,
		},
		GeminiAPIKey: c.GeminiAPIKey,
	}
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
