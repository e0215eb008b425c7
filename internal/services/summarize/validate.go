package summarize

import (
	"encoding/json"
	"log"
	"strings"
)

// fallbackExcerptWords caps how much raw transcript a fallback summary
// carries.
const fallbackExcerptWords = 300

// baseFields must be present in every structured response. In-depth mode
// additionally requires inDepthFields.
var (
	baseFields    = []string{"quick_takeaway", "key_points", "topics", "timestamps", "full_summary"}
	inDepthFields = []string{"detailed_analysis", "key_quotes", "arguments"}
)

// parseResult validates a raw model response and decodes it into a Result.
// Any defect — invalid JSON, missing fields, wrong types — returns nil and
// the caller substitutes a fallback. A model hiccup must never surface as
// an error to the user.
func parseResult(raw string, mode Mode) *Result {
	payload := recoverJSON(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		log.Printf("❌ Model did not return valid JSON: %v (first 200 chars: %.200s)", err, raw)
		return nil
	}

	required := baseFields
	if mode == ModeInDepth {
		required = append(append([]string{}, baseFields...), inDepthFields...)
	}
	for _, field := range required {
		if _, ok := fields[field]; !ok {
			log.Printf("❌ Model response missing required field %q for %s mode", field, mode)
			return nil
		}
	}

	// key_points and full_summary must be JSON arrays. A scalar here means
	// the model ignored the schema and the rest is not trustworthy.
	for _, field := range []string{"key_points", "full_summary"} {
		if !isJSONArray(fields[field]) {
			log.Printf("❌ Model response field %q is not an array", field)
			return nil
		}
	}

	var result Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		log.Printf("❌ Model response failed structural decode: %v", err)
		return nil
	}

	log.Printf("✅ Parsed %s summary with %d paragraphs", mode, len(result.FullSummary))
	return &result
}

// recoverJSON strips markdown code fences and leading/trailing chatter
// around a JSON object. Models occasionally wrap their output in
// ```json fences despite instructions; the object between the first and
// last brace is usually intact.
func recoverJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	if strings.HasPrefix(trimmed, "{") {
		return trimmed
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		return trimmed[start : end+1]
	}
	return trimmed
}

// isJSONArray reports whether a raw message is an array without decoding
// its elements.
func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

// fallbackResult builds a minimal valid summary when generation or parsing
// fails, or when a legacy plain-text summary needs converting to the
// structured shape. The pipeline never returns an empty result for a model
// failure.
func fallbackResult(transcript, title, existingSummary string) *Result {
	log.Printf("⚠️  Using fallback summary for video: %s", title)

	content := existingSummary
	if content == "" {
		words := strings.Fields(transcript)
		if len(words) > fallbackExcerptWords {
			content = strings.Join(words[:fallbackExcerptWords], " ") + "... (summary truncated due to processing error)"
		} else {
			content = strings.Join(words, " ")
		}
	}

	return &Result{
		QuickTakeaway: "Summary of: " + title,
		KeyPoints: []string{
			"This is a fallback summary generated due to an unexpected error.",
			"The full transcript is available below.",
			"Please try regenerating the summary for better results.",
		},
		Topics:      []Topic{{TopicName: "Video Content", SummarySectionID: 1}},
		Timestamps:  []Timestamp{},
		FullSummary: []Section{{ID: 1, Content: content}},
	}
}
