package summarize

import (
	"strings"
	"testing"
)

const validQuickJSON = `{
	"quick_takeaway": "AI is changing everything.",
	"key_points": ["Point one.", "Point two."],
	"topics": [{"topic_name": "AI", "summary_section_id": 1}],
	"timestamps": [{"time": "00:30", "description": "Intro"}],
	"full_summary": [{"id": 1, "content": "The video covers AI."}]
}`

func TestParseResultValidQuick(t *testing.T) {
	result := parseResult(validQuickJSON, ModeQuick)
	if result == nil {
		t.Fatal("expected a parsed result, got nil")
	}
	if result.QuickTakeaway != "AI is changing everything." {
		t.Errorf("unexpected quick_takeaway: %q", result.QuickTakeaway)
	}
	if len(result.KeyPoints) != 2 {
		t.Errorf("got %d key points, want 2", len(result.KeyPoints))
	}
	if len(result.FullSummary) != 1 || result.FullSummary[0].ID != 1 {
		t.Errorf("unexpected full_summary: %+v", result.FullSummary)
	}
}

func TestParseResultMarkdownFenced(t *testing.T) {
	fenced := "```json\n" + validQuickJSON + "\n```"
	if parseResult(fenced, ModeQuick) == nil {
		t.Error("expected fenced JSON to be recovered")
	}

	chatty := "Here is your summary:\n" + validQuickJSON + "\nHope that helps!"
	if parseResult(chatty, ModeQuick) == nil {
		t.Error("expected JSON surrounded by chatter to be recovered")
	}
}

func TestParseResultRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		mode Mode
	}{
		{"not json at all", "I could not summarize this video.", ModeQuick},
		{"missing field", `{"quick_takeaway": "x", "key_points": [], "topics": [], "timestamps": []}`, ModeQuick},
		{"key_points is a string", `{"quick_takeaway": "x", "key_points": "not a list", "topics": [], "timestamps": [], "full_summary": []}`, ModeQuick},
		{"full_summary is an object", `{"quick_takeaway": "x", "key_points": [], "topics": [], "timestamps": [], "full_summary": {"id": 1}}`, ModeQuick},
		{"quick shape in indepth mode", validQuickJSON, ModeInDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseResult(tt.raw, tt.mode); got != nil {
				t.Errorf("expected rejection, got %+v", got)
			}
		})
	}
}

func TestParseResultInDepth(t *testing.T) {
	raw := `{
		"quick_takeaway": "x",
		"key_points": ["a"],
		"topics": [{"topic_name": "T", "summary_section_id": 1}],
		"timestamps": [],
		"full_summary": [{"id": 1, "content": "c"}],
		"detailed_analysis": [{"topic": "T", "analysis": "deep"}],
		"key_quotes": [{"quote": "q", "context": "c", "speaker": "s"}],
		"arguments": [{"claim": "c", "evidence": "e"}]
	}`

	result := parseResult(raw, ModeInDepth)
	if result == nil {
		t.Fatal("expected a parsed in-depth result, got nil")
	}
	if len(result.DetailedAnalysis) != 1 || len(result.KeyQuotes) != 1 || len(result.Arguments) != 1 {
		t.Errorf("in-depth sections not decoded: %+v", result)
	}
}

func TestFallbackResult(t *testing.T) {
	words := make([]string, 400)
	for i := range words {
		words[i] = "w"
	}
	transcript := strings.Join(words, " ")

	result := fallbackResult(transcript, "My Video", "")
	if result.QuickTakeaway != "Summary of: My Video" {
		t.Errorf("unexpected quick_takeaway: %q", result.QuickTakeaway)
	}
	if len(result.KeyPoints) != 3 {
		t.Errorf("got %d key points, want 3", len(result.KeyPoints))
	}
	if len(result.Topics) != 1 || result.Topics[0].TopicName != "Video Content" {
		t.Errorf("unexpected topics: %+v", result.Topics)
	}
	if result.Timestamps == nil || len(result.Timestamps) != 0 {
		t.Errorf("timestamps should be an empty list, got %+v", result.Timestamps)
	}
	if len(result.FullSummary) != 1 || result.FullSummary[0].ID != 1 {
		t.Fatalf("unexpected full_summary: %+v", result.FullSummary)
	}

	content := result.FullSummary[0].Content
	if !strings.HasSuffix(content, "... (summary truncated due to processing error)") {
		t.Errorf("long transcript excerpt should carry the truncation note: %q", content)
	}
	excerpt := strings.TrimSuffix(content, "... (summary truncated due to processing error)")
	if got := len(strings.Fields(excerpt)); got != fallbackExcerptWords {
		t.Errorf("excerpt holds %d words, want %d", got, fallbackExcerptWords)
	}
}

func TestFallbackResultShortTranscript(t *testing.T) {
	result := fallbackResult("just a few words", "T", "")
	if result.FullSummary[0].Content != "just a few words" {
		t.Errorf("short transcript should be used whole: %q", result.FullSummary[0].Content)
	}
}

func TestFallbackResultExistingSummary(t *testing.T) {
	result := fallbackResult("ignored transcript", "T", "a legacy plain-text summary")
	if result.FullSummary[0].Content != "a legacy plain-text summary" {
		t.Errorf("existing summary should be carried verbatim: %q", result.FullSummary[0].Content)
	}
}
