// Package chat answers follow-up questions about a processed video using
// its transcript as grounding context.
package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Shimizu-Technology/video-summarizer-api/internal/models"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/summarize"
)

const (
	// MaxMessageLength caps a single user message.
	MaxMessageLength = 500
	// MaxHistoryMessages caps how many prior turns are replayed to the model.
	MaxHistoryMessages = 10

	// transcriptContextChars is how much transcript rides along as context.
	// Chat answers don't need the whole transcript, just enough to ground
	// the response.
	transcriptContextChars = 5000

	chatTemperature = 0.7
	chatMaxTokens   = 500
	chatTimeout     = 30 * time.Second
)

// apologyResponse is returned when the model call fails. Chat is a
// best-effort feature; a failed turn should read like a hiccup, not a 500.
const apologyResponse = "I'm sorry, I'm having trouble answering right now. Please try asking again in a moment."

const chatSystemInstruction = `You are a helpful assistant answering questions about a specific video.
Base your answers on the provided transcript excerpt. If the transcript does not contain the answer, say so instead of guessing.
Keep answers concise and conversational.`

// Service answers questions about video transcripts.
type Service struct {
	backend summarize.Backend
}

// NewService creates a chat service on the shared model backend.
func NewService(backend summarize.Backend) *Service {
	return &Service{backend: backend}
}

// Ask answers one question about a video. Input problems return an error;
// model failures return an apology response with a nil error.
func (s *Service) Ask(ctx context.Context, title, transcript, message string, history []models.ChatMessage) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("message is empty")
	}
	if len(message) > MaxMessageLength {
		return "", fmt.Errorf("message exceeds %d characters", MaxMessageLength)
	}

	if len(history) > MaxHistoryMessages {
		history = history[len(history)-MaxHistoryMessages:]
	}

	excerpt := transcript
	if len(excerpt) > transcriptContextChars {
		excerpt = excerpt[:transcriptContextChars]
	}

	response, err := s.backend.Complete(ctx, summarize.CompletionRequest{
		System:      chatSystemInstruction,
		Prompt:      buildPrompt(title, excerpt, message, history),
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
		Timeout:     chatTimeout,
	})
	if err != nil {
		log.Printf("⚠️  Chat completion failed for %q: %v", title, err)
		return apologyResponse, nil
	}

	return strings.TrimSpace(response), nil
}

// buildPrompt assembles the transcript excerpt, conversation history, and
// the new question into one prompt.
func buildPrompt(title, excerpt, message string, history []models.ChatMessage) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Video title: %s\n\n", title)
	fmt.Fprintf(&sb, "Transcript excerpt:\n---\n%s\n---\n\n", excerpt)

	if len(history) > 0 {
		sb.WriteString("Conversation so far:\n")
		for _, msg := range history {
			role := "User"
			if msg.Role == "assistant" {
				role = "Assistant"
			}
			fmt.Fprintf(&sb, "%s: %s\n", role, msg.Content)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "User question: %s", message)
	return sb.String()
}
