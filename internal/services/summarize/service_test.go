package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Shimizu-Technology/video-summarizer-api/internal/cache"
)

// scriptedBackend replays canned responses and records every request.
type scriptedBackend struct {
	responses []string
	err       error
	calls     []CompletionRequest
}

func (b *scriptedBackend) Complete(_ context.Context, req CompletionRequest) (string, error) {
	b.calls = append(b.calls, req)
	if b.err != nil {
		return "", b.err
	}
	if len(b.responses) == 0 {
		return validQuickJSON, nil
	}
	resp := b.responses[0]
	if len(b.responses) > 1 {
		b.responses = b.responses[1:]
	}
	return resp, nil
}

func TestGenerateQuickSummary(t *testing.T) {
	backend := &scriptedBackend{}
	svc := NewService(backend, cache.NewNull(), 0)

	result, err := svc.Generate(context.Background(), Request{
		Transcript: "Hello and welcome to this video. Today we're going to talk about AI.",
		Title:      "Intro to AI",
		Mode:       ModeQuick,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.QuickTakeaway) == 0 || len(result.QuickTakeaway) > 150 {
		t.Errorf("quick_takeaway length %d out of range", len(result.QuickTakeaway))
	}
	if len(result.FullSummary) == 0 || result.FullSummary[0].ID != 1 {
		t.Errorf("full_summary should start at id 1: %+v", result.FullSummary)
	}

	if len(backend.calls) != 1 {
		t.Fatalf("expected 1 backend call, got %d", len(backend.calls))
	}
	call := backend.calls[0]
	if !call.JSONOutput {
		t.Error("structured pass should request JSON output")
	}
	if call.Temperature != 0.3 || call.MaxTokens != 8000 {
		t.Errorf("quick mode call used temp=%v maxTokens=%d", call.Temperature, call.MaxTokens)
	}
	if !strings.Contains(call.Prompt, "Intro to AI") {
		t.Error("prompt should embed the video title")
	}
	if !strings.Contains(call.Prompt, "Objective") {
		t.Error("prompt should default to the Objective tone")
	}
}

func TestGenerateIdempotent(t *testing.T) {
	backend := &scriptedBackend{}
	svc := NewService(backend, cache.NewMemory(), 0)

	req := Request{Transcript: "Some transcript about space travel.", Title: "Space"}

	first, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if len(backend.calls) != 1 {
		t.Errorf("second call should be served from cache, backend saw %d calls", len(backend.calls))
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if !bytes.Equal(a, b) {
		t.Error("cached result differs from the generated one")
	}
}

func TestGenerateDistinctCacheEntries(t *testing.T) {
	backend := &scriptedBackend{}
	svc := NewService(backend, cache.NewMemory(), 0)
	ctx := context.Background()

	base := Request{Transcript: "A transcript.", Title: "T"}

	variants := []Request{
		base,
		{Transcript: "A transcript.", Title: "T", Mode: ModeInDepth},
		{Transcript: "A transcript.", Title: "T", Tone: ToneSkeptical},
		{Transcript: "A transcript.", Title: "Other title"},
	}
	// In-depth needs a response with all eight sections.
	inDepthJSON := `{"quick_takeaway":"x","key_points":["a"],"topics":[],"timestamps":[],
		"full_summary":[{"id":1,"content":"c"}],"detailed_analysis":[],"key_quotes":[],"arguments":[]}`
	backend.responses = []string{validQuickJSON, inDepthJSON, validQuickJSON, validQuickJSON}

	for i, req := range variants {
		if _, err := svc.Generate(ctx, req); err != nil {
			t.Fatalf("variant %d: %v", i, err)
		}
	}

	if len(backend.calls) != len(variants) {
		t.Errorf("each variant should miss the cache: %d calls for %d variants", len(backend.calls), len(variants))
	}
}

func TestPromptVersionInvalidatesCache(t *testing.T) {
	backend := &scriptedBackend{}
	svc := NewService(backend, cache.NewMemory(), 0)
	ctx := context.Background()

	req := Request{Transcript: "A transcript.", Title: "T"}
	if _, err := svc.Generate(ctx, req); err != nil {
		t.Fatal(err)
	}

	svc.version = "v6.0-test"
	if _, err := svc.Generate(ctx, req); err != nil {
		t.Fatal(err)
	}

	if len(backend.calls) != 2 {
		t.Errorf("version bump should force regeneration, backend saw %d calls", len(backend.calls))
	}
}

func TestStrategy(t *testing.T) {
	svc := NewService(&scriptedBackend{}, cache.NewNull(), 0)

	short := "just a few words"
	// 420 min threshold at 150 wpm = 63,000 words.
	long := strings.TrimSpace(strings.Repeat("word ", 63_001))

	tests := []struct {
		name       string
		transcript string
		mode       Mode
		want       string
	}{
		{"short quick", short, ModeQuick, StrategySinglePass},
		{"short indepth", short, ModeInDepth, StrategySinglePass},
		{"long quick", long, ModeQuick, StrategyChunked},
		{"long indepth", long, ModeInDepth, StrategyChunked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.Strategy(tt.transcript, tt.mode); got != tt.want {
				t.Errorf("Strategy() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateChunkedPath(t *testing.T) {
	backend := &scriptedBackend{responses: []string{
		"chunk one summary",
		"chunk two summary",
		validQuickJSON,
	}}
	svc := NewService(backend, cache.NewNull(), 0)

	// 100k words: two 50k-word chunks plus the meta pass.
	long := strings.TrimSpace(strings.Repeat("word ", 100_000))
	result, err := svc.Generate(context.Background(), Request{Transcript: long, Title: "Long"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || len(result.FullSummary) == 0 {
		t.Fatal("expected a structured result from the chunked path")
	}

	if len(backend.calls) != 3 {
		t.Fatalf("expected 2 chunk calls + 1 meta call, got %d", len(backend.calls))
	}
	for i := 0; i < 2; i++ {
		if backend.calls[i].JSONOutput {
			t.Errorf("chunk call %d should be free text", i)
		}
		if backend.calls[i].MaxTokens != chunkMaxTokens {
			t.Errorf("chunk call %d maxTokens = %d, want %d", i, backend.calls[i].MaxTokens, chunkMaxTokens)
		}
	}
	meta := backend.calls[2]
	if !meta.JSONOutput {
		t.Error("meta pass should request JSON output")
	}
	if !strings.Contains(meta.Prompt, "chunk one summary") || !strings.Contains(meta.Prompt, "chunk two summary") {
		t.Error("meta prompt should embed the condensed chunk summaries")
	}
	if !strings.Contains(meta.Prompt, metaSeparator) {
		t.Error("condensed chunks should be joined with the separator")
	}
}

func TestGenerateInputErrors(t *testing.T) {
	svc := NewService(&scriptedBackend{}, cache.NewNull(), 0)
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
	}{
		{"empty transcript", Request{Transcript: "   "}},
		{"range without segments", Request{Transcript: "text", StartTime: "01:00", EndTime: "03:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(ctx, tt.req)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !IsInputError(err) {
				t.Errorf("expected InputError, got %T: %v", err, err)
			}
		})
	}
}

func TestGenerateCoercesUnknownModeAndTone(t *testing.T) {
	backend := &scriptedBackend{}
	svc := NewService(backend, cache.NewMemory(), 0)
	ctx := context.Background()

	result, err := svc.Generate(ctx, Request{
		Transcript: "A transcript about gardening techniques.",
		Title:      "Gardening",
		Mode:       Mode("banana"),
		Tone:       Tone("Sarcastic"),
	})
	if err != nil {
		t.Fatalf("unknown mode/tone should coerce, not error: %v", err)
	}
	if result == nil || len(result.FullSummary) == 0 {
		t.Fatal("expected a valid summary after coercion")
	}

	if len(backend.calls) != 1 {
		t.Fatalf("expected 1 backend call, got %d", len(backend.calls))
	}
	call := backend.calls[0]
	if call.Temperature != 0.3 || call.MaxTokens != 8000 {
		t.Errorf("coerced call should use quick mode parameters, got temp=%v maxTokens=%d", call.Temperature, call.MaxTokens)
	}
	if !strings.Contains(call.Prompt, "Objective") {
		t.Error("coerced call should use the Objective tone")
	}

	// The cache key is built from the coerced values, so an explicit
	// quick/Objective request for the same transcript is a hit.
	if _, err := svc.Generate(ctx, Request{
		Transcript: "A transcript about gardening techniques.",
		Title:      "Gardening",
		Mode:       ModeQuick,
		Tone:       ToneObjective,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(backend.calls) != 1 {
		t.Errorf("coerced and explicit requests should share a cache entry, got %d backend calls", len(backend.calls))
	}
}

func TestGenerateBackendFailureFallsBack(t *testing.T) {
	backend := &scriptedBackend{err: errors.New("upstream is down")}
	svc := NewService(backend, cache.NewNull(), 0)

	result, err := svc.Generate(context.Background(), Request{Transcript: "some words here", Title: "My Video"})
	if err != nil {
		t.Fatalf("backend failure must not surface as an error, got %v", err)
	}
	if result.QuickTakeaway != "Summary of: My Video" {
		t.Errorf("expected fallback summary, got %q", result.QuickTakeaway)
	}
}

func TestGenerateMalformedResponseFallsBack(t *testing.T) {
	backend := &scriptedBackend{responses: []string{"I refuse to emit JSON."}}
	svc := NewService(backend, cache.NewNull(), 0)

	result, err := svc.Generate(context.Background(), Request{Transcript: "some words here", Title: "T"})
	if err != nil {
		t.Fatalf("malformed response must not surface as an error, got %v", err)
	}
	if result.QuickTakeaway != "Summary of: T" {
		t.Errorf("expected fallback summary, got %q", result.QuickTakeaway)
	}
}

func TestCacheKeyStability(t *testing.T) {
	svc := NewService(&scriptedBackend{}, cache.NewNull(), 0)

	req, err := svc.normalize(Request{Transcript: "t", Title: "x"})
	if err != nil {
		t.Fatal(err)
	}
	k1 := svc.cacheKey("t", req)
	k2 := svc.cacheKey("t", req)
	if k1 != k2 {
		t.Errorf("cache key is not deterministic: %q vs %q", k1, k2)
	}
	if !strings.HasPrefix(k1, "summary:") {
		t.Errorf("cache key missing namespace prefix: %q", k1)
	}
	if len(k1) != len("summary:")+16 {
		t.Errorf("cache key hash should be 16 hex chars: %q", k1)
	}
}
