package summarize

import (
	"context"
	"time"
)

// CompletionRequest is one text-generation call to a model backend.
// Timeout is enforced by the backend so each call gets its own deadline
// independent of the caller's context.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	JSONOutput  bool
}

// Backend abstracts the LLM provider behind a single call. Implementations
// must be safe for concurrent use.
//
// Go Pattern: accept interfaces, return structs. The Service only needs
// Complete, so swapping Gemini for OpenRouter (or a scripted fake in tests)
// is a one-line config change.
type Backend interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
