package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatCompletionBody = `{
  "id": "gen-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "google/gemini-flash-1.5-8b",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "回应1：A\n回应2：B\n回应3：C"}}
  ],
  "usage": {"prompt_tokens": 120, "completion_tokens": 40, "total_tokens": 160}
}`

func newFakeCompletionServer(t *testing.T, status int, body string, inspect func(r *http.Request, payload map[string]any)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if inspect != nil {
			inspect(r, payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewOpenAIProvider(t *testing.T) {
	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "test-api-key"})
	require.NotNil(t, provider)
	assert.Equal(t, "openai", provider.Name())
	assert.NotNil(t, provider.client)
	assert.Equal(t, DefaultBaseURL, provider.baseURL)
}

func TestOpenAIProvider_BuildRequestParams(t *testing.T) {
	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key"})

	params := provider.buildRequestParams(&CompletionRequest{
		Model:        "google/gemini-flash-1.5-8b",
		SystemPrompt: "system",
		UserPrompt:   "user",
		Temperature:  0.85,
		MaxTokens:    1000,
	})

	assert.Equal(t, "google/gemini-flash-1.5-8b", params.Model)
	assert.Len(t, params.Messages, 2)
	assert.Equal(t, 0.85, params.Temperature.Value)
	assert.Equal(t, int64(1000), params.MaxTokens.Value)
}

func TestOpenAIProvider_Complete(t *testing.T) {
	var gotHeaders http.Header
	var gotPayload map[string]any
	server := newFakeCompletionServer(t, http.StatusOK, chatCompletionBody, func(r *http.Request, payload map[string]any) {
		gotHeaders = r.Header.Clone()
		gotPayload = payload
	})

	provider := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: server.URL + "/api/v1",
		Referer: "https://example.test",
		Title:   "吵架包赢",
	})

	resp, err := provider.Complete(context.Background(), &CompletionRequest{
		Model:        "google/gemini-flash-1.5-8b",
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
		Temperature:  1.0,
		MaxTokens:    1000,
	})
	require.NoError(t, err)

	assert.Equal(t, "回应1：A\n回应2：B\n回应3：C", resp.Content)
	assert.Equal(t, 160, resp.Usage.TotalTokens)
	assert.Equal(t, 120, resp.Usage.PromptTokens)
	assert.Equal(t, 40, resp.Usage.CompletionTokens)

	assert.Equal(t, "Bearer test-key", gotHeaders.Get("Authorization"))
	assert.Equal(t, "https://example.test", gotHeaders.Get("HTTP-Referer"))
	assert.Equal(t, "吵架包赢", gotHeaders.Get("X-Title"))

	assert.Equal(t, "google/gemini-flash-1.5-8b", gotPayload["model"])
	assert.InDelta(t, 1.0, gotPayload["temperature"], 1e-9)
	assert.InDelta(t, 1000, gotPayload["max_tokens"], 1e-9)
	messages, ok := gotPayload["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
}

func TestOpenAIProvider_CompleteNoChoices(t *testing.T) {
	server := newFakeCompletionServer(t, http.StatusOK,
		`{"id":"gen-2","object":"chat.completion","created":1,"model":"m","choices":[]}`, nil)

	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})

	resp, err := provider.Complete(context.Background(), &CompletionRequest{Model: "m"})
	require.NoError(t, err)
	assert.Empty(t, resp.Content)
}

func TestOpenAIProvider_CompleteUpstreamError(t *testing.T) {
	calls := 0
	server := newFakeCompletionServer(t, http.StatusInternalServerError,
		`{"error":{"message":"upstream exploded","type":"server_error"}}`,
		func(_ *http.Request, _ map[string]any) { calls++ })

	provider := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})

	resp, err := provider.Complete(context.Background(), &CompletionRequest{Model: "m"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "openai request failed")
	assert.Equal(t, 1, calls, "SDK retries must be disabled")
}
