package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("OPENROUTER_BASE_URL", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MODEL", "")

	cfg := Load()

	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouterBaseURL)
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, DefaultModel, cfg.Model())
	assert.Empty(t, cfg.ProviderConfig().OpenAI.APIKey)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("OPENROUTER_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("OPENROUTER_TITLE", "test-title")
	t.Setenv("ENVIRONMENT", "production")

	cfg := Load()
	pc := cfg.ProviderConfig()

	assert.Equal(t, "sk-test", pc.OpenAI.APIKey)
	assert.Equal(t, "http://localhost:9999/v1", pc.OpenAI.BaseURL)
	assert.Equal(t, "test-title", pc.OpenAI.Title)
	assert.True(t, cfg.IsProduction())
}

func TestModel_PerProvider(t *testing.T) {
	cfg := &Config{LLMProvider: "gemini"}
	assert.Equal(t, DefaultGeminiModel, cfg.Model())

	cfg.LLMModel = "gemini-2.5-pro"
	assert.Equal(t, "gemini-2.5-pro", cfg.Model())
}

func TestLoadClient(t *testing.T) {
	t.Setenv("COMEBACK_SERVER_URL", "http://example.test")
	t.Setenv("COMEBACK_STORAGE_PATH", "/tmp/comeback.json")
	t.Setenv("COMEBACK_RETRIES", "4")
	t.Setenv("COMEBACK_RETRY_DELAY", "250ms")

	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "http://example.test", cfg.ServerURL)
	assert.Equal(t, "/tmp/comeback.json", cfg.StoragePath)
	assert.Equal(t, 4, cfg.Retries)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
}

func TestLoadClient_Defaults(t *testing.T) {
	for _, key := range []string{"COMEBACK_SERVER_URL", "COMEBACK_STORAGE_PATH", "COMEBACK_RETRIES", "COMEBACK_RETRY_DELAY"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, 2, cfg.Retries)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.NotEmpty(t, cfg.StoragePath)
}
