// Package summarize turns video transcripts into structured JSON summaries.
//
// The pipeline: normalize inputs, slice the transcript to the requested
// time range, check the content-addressed cache, pick a strategy from the
// estimated duration (single pass for shorter videos, chunked map-reduce
// for longer ones), call the model backend, validate the structured
// response, and cache the result. Model failures degrade to a fallback
// summary instead of erroring.
package summarize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Shimizu-Technology/video-summarizer-api/internal/cache"
)

// Strategy names returned by (*Service).Strategy.
const (
	StrategySinglePass = "single_pass"
	StrategyChunked    = "chunked"
)

// singlePassTimeout bounds the one big structured call. Chunk calls have
// their own shorter timeout in chunker.go.
const singlePassTimeout = 180 * time.Second

// DefaultCacheTTL is how long generated summaries stay cached.
const DefaultCacheTTL = 24 * time.Hour

// cacheKeyPrefix namespaces summary entries in the shared cache.
const cacheKeyPrefix = "summary:"

// Request describes one summarization job.
type Request struct {
	Transcript string
	Title      string
	Mode       Mode
	Tone       Tone
	StartTime  string // "MM:SS"/"HH:MM:SS", default "00:00"
	EndTime    string // "MM:SS"/"HH:MM:SS"/"end", default "end"
	Segments   []Segment
}

// Service generates structured summaries through a model backend with a
// content-addressed cache in front.
type Service struct {
	backend Backend
	cache   cache.Backend
	ttl     time.Duration
	version string
}

// NewService creates a summarization service. A zero ttl selects
// DefaultCacheTTL.
func NewService(backend Backend, c cache.Backend, ttl time.Duration) *Service {
	if c == nil {
		c = cache.NewNull()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		backend: backend,
		cache:   c,
		ttl:     ttl,
		version: ActivePromptVersion,
	}
}

// Generate produces a structured summary for the request. Input defects
// return an InputError; model and parse failures return a fallback summary
// and a nil error.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	req, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	transcript, err := sliceTranscript(req.Transcript, req.Segments, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, inputErrorf("no transcript content in the requested time range")
	}

	key := s.cacheKey(transcript, req)
	if result, ok := s.cachedResult(ctx, key, transcript, req.Title); ok {
		log.Printf("💾 Cache hit for %s mode (version %s, tone: %s, segment: %s-%s)",
			req.Mode, s.version, req.Tone, req.StartTime, req.EndTime)
		return result, nil
	}
	log.Printf("💾 Cache miss for %s mode (version %s, tone: %s, segment: %s-%s), generating",
		req.Mode, s.version, req.Tone, req.StartTime, req.EndTime)

	transcript = truncateToTokenBudget(transcript)

	cfg := ConfigFor(req.Mode)
	minutes := estimateMinutes(transcript)

	var result *Result
	if minutes > cfg.ChunkThresholdMinutes {
		log.Printf("🎬 Estimated duration %.1f min exceeds %s threshold (%.0f min), using chunked strategy",
			minutes, req.Mode, cfg.ChunkThresholdMinutes)
		result = s.generateChunked(ctx, transcript, req.Title, req.Mode, req.Tone, cfg)
	} else {
		log.Printf("🎬 Estimated duration %.1f min, using single-pass strategy for %s mode", minutes, req.Mode)
		result = s.generateSinglePass(ctx, transcript, req.Title, req.Mode, req.Tone, cfg)
	}

	s.store(ctx, key, result)
	return result, nil
}

// Strategy reports which generation path Generate would take for this
// transcript and mode, without calling the model.
func (s *Service) Strategy(transcript string, mode Mode) string {
	if estimateMinutes(transcript) > ConfigFor(mode).ChunkThresholdMinutes {
		return StrategyChunked
	}
	return StrategySinglePass
}

// normalize fills defaults. Unknown modes and tones coerce to the
// defaults with a logged warning rather than erroring; only an empty
// transcript is a hard input defect here.
func (s *Service) normalize(req Request) (Request, error) {
	if strings.TrimSpace(req.Transcript) == "" {
		return req, inputErrorf("transcript is empty")
	}
	if req.Mode != ModeQuick && req.Mode != ModeInDepth {
		if req.Mode != "" {
			log.Printf("⚠️  Unknown mode %q, defaulting to %q", req.Mode, ModeQuick)
		}
		req.Mode = ModeQuick
	}
	if !validTones[req.Tone] {
		if req.Tone != "" {
			log.Printf("⚠️  Unknown tone %q, defaulting to %q", req.Tone, ToneObjective)
		}
		req.Tone = ToneObjective
	}
	if strings.TrimSpace(req.StartTime) == "" {
		req.StartTime = "00:00"
	}
	if strings.TrimSpace(req.EndTime) == "" {
		req.EndTime = "end"
	}
	return req, nil
}

// generateSinglePass makes the one structured call for the whole
// transcript.
func (s *Service) generateSinglePass(ctx context.Context, transcript, title string, mode Mode, tone Tone, cfg ModeConfig) *Result {
	raw, err := s.backend.Complete(ctx, CompletionRequest{
		System:      systemInstruction,
		Prompt:      renderPrompt(promptFor(s.version, mode), transcript, title, tone),
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxOutputTokens,
		Timeout:     singlePassTimeout,
		JSONOutput:  true,
	})
	if err != nil {
		log.Printf("❌ %s summarization failed: %v", mode, err)
		return fallbackResult(transcript, title, "")
	}

	result := parseResult(raw, mode)
	if result == nil {
		return fallbackResult(transcript, title, "")
	}
	return result
}

// generateChunked condenses the transcript chunk by chunk, then runs the
// structured pass over the joined condensations.
func (s *Service) generateChunked(ctx context.Context, transcript, title string, mode Mode, tone Tone, cfg ModeConfig) *Result {
	chunks := splitIntoChunks(transcript, cfg.ChunkSizeWords)
	log.Printf("📦 Split transcript into %d chunks for %s mode (chunk size: %d words)",
		len(chunks), mode, cfg.ChunkSizeWords)

	meta := s.buildMetaTranscript(ctx, chunks, title)
	return s.generateSinglePass(ctx, meta, title, mode, tone, cfg)
}

// cacheKey derives the content-addressed key. Prompt version, mode, time
// range, tone, transcript, and title all participate, so any change to any
// of them produces a distinct entry.
func (s *Service) cacheKey(transcript string, req Request) string {
	content := fmt.Sprintf("%s_%s_%s_%s_%s_%s_%s",
		s.version, req.Mode, req.StartTime, req.EndTime, req.Tone, transcript, req.Title)
	sum := sha256.Sum256([]byte(content))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])[:16]
}

// cachedResult loads and decodes a cached summary. Legacy entries that
// stored plain text are converted into the structured shape on read.
func (s *Service) cachedResult(ctx context.Context, key, transcript, title string) (*Result, bool) {
	data, ok := s.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}

	var result Result
	if err := json.Unmarshal(data, &result); err == nil && len(result.FullSummary) > 0 {
		return &result, true
	}

	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil && legacy != "" {
		log.Printf("⚠️  Cached summary is legacy text format, converting to structured form")
		return fallbackResult(transcript, title, legacy), true
	}

	log.Printf("⚠️  Discarding undecodable cache entry %s", key)
	return nil, false
}

// store caches a generated result. Cache failures are already swallowed by
// the backend; an unmarshalable result cannot happen for our own struct.
func (s *Service) store(ctx context.Context, key string, result *Result) {
	if result == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("⚠️  Failed to marshal summary for caching: %v", err)
		return
	}
	s.cache.Set(ctx, key, data, s.ttl)
	log.Printf("💾 Cached summary under %s (ttl: %s)", key, s.ttl)
}

// estimateMinutes estimates spoken duration from the word count at an
// average speaking rate.
func estimateMinutes(transcript string) float64 {
	return float64(len(strings.Fields(transcript))) / wordsPerMinute
}
