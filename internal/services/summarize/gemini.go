package summarize

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"
)

// defaultGeminiModel balances quality against cost for long transcripts.
const defaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiBackend calls the Gemini API. It is the default provider.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend creates a Gemini-backed model client. An empty model
// selects defaultGeminiModel.
func NewGeminiBackend(ctx context.Context, apiKey, model string) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini backend: API key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini backend: failed to create client: %w", err)
	}

	log.Printf("🤖 Gemini backend ready (model: %s)", model)
	return &GeminiBackend{client: client, model: model}, nil
}

// Complete runs one generation call with a per-call deadline.
func (g *GeminiBackend) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.JSONOutput {
		cfg.ResponseMIMEType = "application/json"
	}

	// The system instruction rides at the top of the prompt so behavior
	// stays identical across providers.
	prompt := req.Prompt
	if req.System != "" {
		prompt = req.System + "\n\n" + prompt
	}

	start := time.Now()
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := extractGeminiText(result)
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}

	log.Printf("🤖 Gemini call completed in %.1fs (%d chars)", time.Since(start).Seconds(), len(text))
	return text, nil
}

// extractGeminiText concatenates the text parts of the first candidate.
func extractGeminiText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
