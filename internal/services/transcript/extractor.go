// Package transcript handles YouTube transcript extraction using yt-dlp.
//
// Go Pattern: This package defines a Service with an interface, making it
// easy to test (you can mock the interface) and swap implementations.
// In Go, interfaces are satisfied implicitly — you don't need to declare
// "implements". If a struct has the right methods, it satisfies the interface.
package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Extractor defines the interface for transcript extraction.
// Go Pattern: Define interfaces where they're USED, not where they're
// implemented. Small interfaces (1-3 methods) are preferred.
type Extractor interface {
	Extract(ctx context.Context, videoID string) (*Result, error)
}

// Segment is one caption cue with its time bounds in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result holds the extracted transcript and video metadata. Segments carry
// the raw timed cues so callers can slice the transcript by time range.
type Result struct {
	VideoID     string
	Title       string
	ChannelName string
	Duration    int // seconds
	Language    string
	Transcript  string
	Segments    []Segment
	WordCount   int
}

// YtDlpExtractor uses the yt-dlp CLI tool to extract transcripts.
type YtDlpExtractor struct {
	ytDlpPath string
}

// NewExtractor creates a new yt-dlp based extractor.
func NewExtractor(ytDlpPath string) *YtDlpExtractor {
	return &YtDlpExtractor{ytDlpPath: ytDlpPath}
}

// ytDlpMetadata represents the JSON output from yt-dlp --dump-json.
type ytDlpMetadata struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Channel  string  `json:"channel"`
	Duration float64 `json:"duration"`
}

// Extract downloads the transcript for a YouTube video.
// It first tries manual subtitles, then falls back to auto-generated captions.
func (e *YtDlpExtractor) Extract(ctx context.Context, videoID string) (*Result, error) {
	url := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)

	log.Printf("🎬 Extracting metadata for video: %s", videoID)
	metadata, err := e.getMetadata(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to get video metadata: %w", err)
	}

	log.Printf("📝 Extracting transcript for: %s", metadata.Title)
	segments, lang, err := e.getSegments(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("no transcript available: %w", err)
	}

	transcript := cleanTranscript(joinSegments(segments))

	return &Result{
		VideoID:     videoID,
		Title:       metadata.Title,
		ChannelName: metadata.Channel,
		Duration:    int(metadata.Duration),
		Language:    lang,
		Transcript:  transcript,
		Segments:    segments,
		WordCount:   countWords(transcript),
	}, nil
}

// getMetadata fetches video info using yt-dlp --dump-json.
func (e *YtDlpExtractor) getMetadata(ctx context.Context, url string) (*ytDlpMetadata, error) {
	// exec.CommandContext cancels the command if the context is cancelled.
	// This prevents runaway processes — important for a web server!
	cmd := exec.CommandContext(ctx, e.ytDlpPath,
		"--dump-json",   // Output video info as JSON
		"--no-download", // Don't download the video itself
		"--no-warnings", // Suppress warning messages
		url,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp metadata failed: %w", err)
	}

	var meta ytDlpMetadata
	if err := json.Unmarshal(output, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	return &meta, nil
}

// getSegments extracts the subtitle cues using yt-dlp.
// Returns the timed segments and the language code.
func (e *YtDlpExtractor) getSegments(ctx context.Context, url string) ([]Segment, string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "vsa-subs-*")
	if err != nil {
		return nil, "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	// Try manual subtitles first (higher quality), then auto-generated
	for _, subType := range []string{"--write-subs", "--write-auto-subs"} {
		cmd := exec.CommandContext(ctx, e.ytDlpPath,
			"--skip-download",        // Don't download video
			subType,                  // Which subtitle type to get
			"--sub-langs", "en.*,en", // Prefer English
			"--sub-format", "vtt", // WebVTT format (easiest to parse)
			"--output", filepath.Join(tmpDir, "%(id)s"),
			"--no-warnings",
			url,
		)

		if output, err := cmd.CombinedOutput(); err != nil {
			log.Printf("⚠️  Subtitle extraction (%s) failed: %s", subType, string(output))
			continue
		}

		matches, err := filepath.Glob(filepath.Join(tmpDir, "*.vtt"))
		if err != nil || len(matches) == 0 {
			continue
		}
		subtitleFile := matches[0]

		content, err := os.ReadFile(subtitleFile)
		if err != nil {
			continue
		}

		// Detect language from filename (e.g., abc123.en.vtt)
		lang := "en"
		parts := strings.Split(filepath.Base(subtitleFile), ".")
		if len(parts) >= 3 {
			lang = parts[len(parts)-2]
		}

		segments := parseVTT(string(content))
		if len(segments) > 0 {
			return segments, lang, nil
		}
	}

	return nil, "", fmt.Errorf("no subtitles available for this video")
}

var (
	// Matches cue timing lines like "00:00:01.000 --> 00:00:04.000".
	cueTimingRegex = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}\.\d{3})\s+-->\s+(\d{2}:\d{2}:\d{2}\.\d{3})`)
	// Matches VTT tags like <c> and inline timestamps.
	vttTagRegex = regexp.MustCompile(`<[^>]+>`)
	// Matches bare numeric cue identifiers.
	cueIDRegex = regexp.MustCompile(`^\d+$`)
)

// parseVTT extracts timed cues from a WebVTT subtitle file.
// WebVTT format:
//
//	WEBVTT
//	00:00:01.000 --> 00:00:04.000
//	Hello, welcome to the video.
//
//	00:00:04.500 --> 00:00:08.000
//	Today we're going to talk about...
func parseVTT(vtt string) []Segment {
	var segments []Segment
	seen := make(map[string]bool) // Deduplicate repeated lines (auto-captions repeat a lot)

	var current *Segment
	flush := func() {
		if current != nil && strings.TrimSpace(current.Text) != "" {
			current.Text = strings.TrimSpace(current.Text)
			segments = append(segments, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(vtt, "\n") {
		line = strings.TrimSpace(line)

		if m := cueTimingRegex.FindStringSubmatch(line); m != nil {
			flush()
			current = &Segment{Start: parseVTTTime(m[1]), End: parseVTTTime(m[2])}
			continue
		}

		// Skip headers, blank lines, and cue identifiers
		if line == "" || line == "WEBVTT" || strings.HasPrefix(line, "Kind:") ||
			strings.HasPrefix(line, "Language:") || strings.HasPrefix(line, "NOTE") ||
			cueIDRegex.MatchString(line) {
			if line == "" {
				flush()
			}
			continue
		}

		if current == nil {
			continue
		}

		// Remove VTT formatting tags
		line = strings.TrimSpace(vttTagRegex.ReplaceAllString(line, ""))
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true

		if current.Text != "" {
			current.Text += " "
		}
		current.Text += line
	}
	flush()

	return segments
}

// parseVTTTime converts "HH:MM:SS.mmm" to seconds.
func parseVTTTime(ts string) float64 {
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	s, _ := strconv.ParseFloat(parts[2], 64)
	return float64(h*3600+m*60) + s
}

// joinSegments concatenates cue text into one transcript string.
func joinSegments(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.Text != "" {
			parts = append(parts, seg.Text)
		}
	}
	return strings.Join(parts, " ")
}

// cleanTranscript normalizes whitespace and cleans up common transcript artifacts.
func cleanTranscript(text string) string {
	text = strings.ReplaceAll(text, "[Music]", "")
	text = strings.ReplaceAll(text, "[Applause]", "")
	text = strings.ReplaceAll(text, "[Laughter]", "")

	spaceRegex := regexp.MustCompile(`\s+`)
	return strings.TrimSpace(spaceRegex.ReplaceAllString(text, " "))
}

// countWords counts the number of words in a text string.
func countWords(text string) int {
	if text == "" {
		return 0
	}
	return len(strings.Fields(text))
}

// ParseYouTubeURL extracts the video ID from various YouTube URL formats.
// Supports:
//   - https://www.youtube.com/watch?v=VIDEO_ID
//   - https://youtu.be/VIDEO_ID
//   - https://youtube.com/watch?v=VIDEO_ID&list=...
//   - Just the video ID itself (11 characters)
func ParseYouTubeURL(input string) (string, string, error) {
	input = strings.TrimSpace(input)

	// If it looks like a plain video ID (11 alphanumeric chars + - and _)
	videoIDRegex := regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	if videoIDRegex.MatchString(input) {
		return fmt.Sprintf("https://www.youtube.com/watch?v=%s", input), input, nil
	}

	// Try to extract video ID from URL
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/)([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:youtube\.com/shorts/)([a-zA-Z0-9_-]{11})`),
	}

	for _, pattern := range patterns {
		matches := pattern.FindStringSubmatch(input)
		if len(matches) >= 2 {
			videoID := matches[1]
			return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID), videoID, nil
		}
	}

	return "", "", fmt.Errorf("invalid YouTube URL or video ID: %s", input)
}
