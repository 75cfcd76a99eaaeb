package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// Provider name
	providerNameOpenAI = "openai"

	// DefaultBaseURL points the OpenAI-compatible client at OpenRouter
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	headerReferer = "HTTP-Referer"
	headerTitle   = "X-Title"
)

// OpenAIConfig is the explicit configuration for an OpenAI-compatible endpoint
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Referer string // sent as HTTP-Referer (OpenRouter app attribution)
	Title   string // sent as X-Title
}

// OpenAIProvider implements the Provider interface using the Chat Completions API
type OpenAIProvider struct {
	client  *openai.Client
	baseURL string
}

// NewOpenAIProvider creates a new OpenAI-compatible provider.
// SDK-level retries are disabled; callers own the retry policy.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if cfg.Referer != "" {
		opts = append(opts, option.WithHeader(headerReferer, cfg.Referer))
	}
	if cfg.Title != "" {
		opts = append(opts, option.WithHeader(headerTitle, cfg.Title))
	}

	client := openai.NewClient(opts...)
	return &OpenAIProvider{
		client:  &client,
		baseURL: baseURL,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return providerNameOpenAI
}

// Complete implements a single non-streaming chat completion
func (p *OpenAIProvider) Complete(ctx context.Context, request *CompletionRequest) (*CompletionResponse, error) {
	transaction := sentry.StartTransaction(ctx, "openai.complete")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameOpenAI)

	params := p.buildRequestParams(request)

	span := transaction.StartChild("openai.api_call")
	apiStartTime := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	apiDuration := time.Since(apiStartTime)
	span.Finish()

	if err != nil {
		log.Printf("❌ OPENAI REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	log.Printf("⏱️  OPENAI API CALL COMPLETED in %v (base: %s)", apiDuration, p.baseURL)
	transaction.SetTag("success", "true")

	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	model := resp.Model
	if model == "" {
		model = request.Model
	}

	return &CompletionResponse{
		Content: content,
		Model:   model,
		Usage: Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

// buildRequestParams converts a CompletionRequest into SDK parameters
func (p *OpenAIProvider) buildRequestParams(request *CompletionRequest) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: request.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(request.SystemPrompt),
			openai.UserMessage(request.UserPrompt),
		},
		Temperature: openai.Float(request.Temperature),
	}
	if request.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(request.MaxTokens))
	}
	return params
}
