package summarize

import (
	"context"
	"log"
	"strings"
	"time"
)

// Per-chunk condensation parameters. Condensation calls are cheap,
// low-temperature, free-text summaries that feed the meta pass.
const (
	chunkTemperature    = 0.3
	chunkMaxTokens      = 1000
	chunkTimeout        = 60 * time.Second
	chunkFailureExcerpt = 500
)

// metaSeparator joins condensed chunk summaries into the meta transcript.
const metaSeparator = "\n\n---\n\n"

// splitIntoChunks breaks the transcript into word-bounded chunks of at
// most chunkWords words each. Words are never split across chunks.
func splitIntoChunks(transcript string, chunkWords int) []string {
	words := strings.Fields(transcript)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	for i := 0; i < len(words); i += chunkWords {
		end := i + chunkWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// condenseChunk asks the backend for a short free-text summary of one
// chunk. A failed call degrades to a raw excerpt of the chunk so one bad
// chunk never sinks the whole summary.
func (s *Service) condenseChunk(ctx context.Context, chunk, title string, index, total int) string {
	log.Printf("📦 Condensing chunk %d/%d (%d chars)", index+1, total, len(chunk))

	text, err := s.backend.Complete(ctx, CompletionRequest{
		System:      chunkSystemInstruction,
		Prompt:      renderPrompt(chunkPrompt, chunk, title, ToneObjective),
		Temperature: chunkTemperature,
		MaxTokens:   chunkMaxTokens,
		Timeout:     chunkTimeout,
	})
	if err != nil {
		log.Printf("⚠️  Chunk %d/%d condensation failed, using excerpt: %v", index+1, total, err)
		if len(chunk) > chunkFailureExcerpt {
			return chunk[:chunkFailureExcerpt] + "..."
		}
		return chunk
	}
	return strings.TrimSpace(text)
}

// buildMetaTranscript condenses every chunk sequentially and joins the
// results into the meta transcript for the final structured pass.
func (s *Service) buildMetaTranscript(ctx context.Context, chunks []string, title string) string {
	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		summaries = append(summaries, s.condenseChunk(ctx, chunk, title, i, len(chunks)))
	}
	return strings.Join(summaries, metaSeparator)
}

// truncateToTokenBudget caps the transcript at the model's input budget,
// estimating tokens from the word count. Truncated text carries a visible
// marker so the model knows material is missing.
func truncateToTokenBudget(transcript string) string {
	words := strings.Fields(transcript)
	estimated := float64(len(words)) * tokensPerWord
	if estimated <= maxInputTokens {
		return transcript
	}

	keep := maxInputWords()
	log.Printf("⚠️  Transcript exceeds input budget (~%.0f tokens), truncating to %d words", estimated, keep)
	return strings.Join(words[:keep], " ") + " " + truncationMarker
}

// maxInputWords is the word count that fits the input token budget.
func maxInputWords() int {
	budget := float64(maxInputTokens)
	return int(budget / tokensPerWord)
}
