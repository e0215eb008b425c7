package summarize

import (
	"context"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	openRouterBaseURL      = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel = "google/gemini-2.5-flash-lite"
)

// OpenRouterBackend calls any OpenAI-compatible endpoint. The default base
// URL points at OpenRouter, which fronts the same Gemini models plus
// everything else, so it doubles as an escape hatch when the Gemini API
// itself is rate-limited.
type OpenRouterBackend struct {
	client *openai.Client
	model  string
}

// NewOpenRouterBackend creates an OpenRouter-backed model client. Empty
// baseURL and model select the OpenRouter defaults.
func NewOpenRouterBackend(apiKey, baseURL, model string) (*OpenRouterBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openrouter backend: API key is required")
	}
	if baseURL == "" {
		baseURL = openRouterBaseURL
	}
	if model == "" {
		model = defaultOpenRouterModel
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	log.Printf("🤖 OpenRouter backend ready (model: %s)", model)
	return &OpenRouterBackend{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Complete runs one chat-completion call with a per-call deadline.
func (o *OpenRouterBackend) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	messages := []openai.ChatCompletionMessage{}
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONOutput {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("openrouter generation failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openrouter returned an empty response")
	}

	text := resp.Choices[0].Message.Content
	log.Printf("🤖 OpenRouter call completed in %.1fs (%d chars)", time.Since(start).Seconds(), len(text))
	return text, nil
}
