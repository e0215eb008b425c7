// Package dataextract pulls structured data out of generated summary text
// using regex heuristics. No model calls: this is a cheap, deterministic
// second read of a summary that already exists.
package dataextract

import (
	"log"
	"regexp"
	"strings"
)

// Metric is one numeric fact found in a summary.
type Metric struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type"` // "percentage", "currency", "date", "measurement", "numeric"
}

// Moment is one time-stamped point of interest.
type Moment struct {
	Time       string `json:"time"`
	KeyPoint   string `json:"key_point"`
	Importance string `json:"importance"` // "high" or "medium"
}

// Extracted is the structured view of a summary.
type Extracted struct {
	ExecutiveSummary string   `json:"executive_summary"`
	KeyMetrics       []Metric `json:"key_metrics"`
	KeyPoints        []string `json:"key_points"`
	ActionItems      []string `json:"action_items"`
	Timestamps       []Moment `json:"timestamps"`
}

const (
	maxMetrics    = 5
	maxKeyPoints  = 5
	maxTimestamps = 10
)

// Compiled once: these run on every structured-data request.
var (
	percentagePattern  = regexp.MustCompile(`(\d+\.?\d*)\s*%`)
	currencyPattern    = regexp.MustCompile(`\$\s*(\d+\.?\d*)`)
	numericPattern     = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(million|billion|thousand|k|m|b)\b`)
	datePattern        = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
	measurementPattern = regexp.MustCompile(`(\d+\.?\d*)\s*(km|miles|kg|lbs|hours|minutes|seconds|degrees|meters|feet|cm|inches)\b`)
	timestampPattern   = regexp.MustCompile(`\d{1,2}:\d{2}(?::\d{2})?`)
	bulletPattern      = regexp.MustCompile(`(?m)^\s*[-*]\s+(.+)$`)
	actionSectionRe    = regexp.MustCompile(`(?is)(?:action items|takeaways|recommendations)[\s\n]+(.*?)(?:\n#|\z)`)
	sentenceSplitRe    = regexp.MustCompile(`[.!?]+`)
)

// importanceKeywords promote a timestamp to "high" importance.
var importanceKeywords = []string{"important", "key", "critical", "main", "essential"}

// imperativeVerbs mark a sentence as actionable when no explicit action
// items section exists.
var imperativeVerbs = []string{
	"review", "consider", "monitor", "check", "verify",
	"update", "adjust", "evaluate", "assess", "analyze",
}

// Extract mines a summary for structured data. Works on any summary text;
// empty input returns empty (not nil) collections.
func Extract(summary string) Extracted {
	if strings.TrimSpace(summary) == "" {
		log.Printf("⚠️  Structured extraction called with empty summary")
		return defaults()
	}

	result := Extracted{
		ExecutiveSummary: extractExecutiveSummary(summary),
		KeyMetrics:       extractKeyMetrics(summary),
		KeyPoints:        extractKeyPoints(summary),
		ActionItems:      extractActionItems(summary),
		Timestamps:       extractTimestamps(summary),
	}
	log.Printf("📊 Extracted structured data: %d metrics, %d points, %d timestamps",
		len(result.KeyMetrics), len(result.KeyPoints), len(result.Timestamps))
	return result
}

func defaults() Extracted {
	return Extracted{
		ExecutiveSummary: "Summary not available",
		KeyMetrics:       []Metric{},
		KeyPoints:        []string{},
		ActionItems:      []string{},
		Timestamps:       []Moment{},
	}
}

// extractExecutiveSummary pulls 1-2 sentences from an Overview/Summary
// section, falling back to the first 150 characters.
func extractExecutiveSummary(summary string) string {
	var overview []string
	inOverview := false

	for _, line := range strings.Split(summary, "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "overview") || strings.Contains(lower, "summary") {
			inOverview = true
			continue
		}
		if inOverview {
			if strings.HasPrefix(line, "#") {
				break
			}
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				overview = append(overview, trimmed)
				if len(overview) >= 2 {
					break
				}
			}
		}
	}

	if len(overview) > 0 {
		text := strings.Join(overview, " ")
		sentences := sentenceSplitRe.Split(text, -1)
		var kept []string
		for _, s := range sentences {
			if s = strings.TrimSpace(s); s != "" {
				kept = append(kept, s)
				if len(kept) == 2 {
					break
				}
			}
		}
		if result := strings.Join(kept, ". "); result != "" {
			return truncate(result, 200)
		}
	}

	fallback := strings.TrimSpace(strings.ReplaceAll(summary, "#", ""))
	if fallback != "" {
		return strings.TrimSpace(truncate(fallback, 150))
	}
	return "Summary not available"
}

// extractKeyMetrics finds percentages, currency amounts, dates,
// measurements, and large numbers, deduplicated and capped at maxMetrics.
func extractKeyMetrics(summary string) []Metric {
	metrics := []Metric{}
	seen := make(map[string]bool)

	add := func(name, value, typ string) {
		if !seen[value] {
			seen[value] = true
			metrics = append(metrics, Metric{Name: name, Value: value, Type: typ})
		}
	}

	for _, loc := range percentagePattern.FindAllStringSubmatchIndex(summary, -1) {
		value := summary[loc[2]:loc[3]]
		add(contextName(summary, loc[0], loc[1]), value+"%", "percentage")
	}
	for _, loc := range currencyPattern.FindAllStringSubmatchIndex(summary, -1) {
		value := summary[loc[2]:loc[3]]
		add(contextName(summary, loc[0], loc[1]), "$"+value, "currency")
	}
	for _, value := range datePattern.FindAllString(summary, -1) {
		add("Date", value, "date")
	}
	for _, loc := range measurementPattern.FindAllStringIndex(summary, -1) {
		value := summary[loc[0]:loc[1]]
		add(contextName(summary, loc[0], loc[1]), value, "measurement")
	}
	for _, loc := range numericPattern.FindAllStringIndex(summary, -1) {
		value := summary[loc[0]:loc[1]]
		add(contextName(summary, loc[0], loc[1]), value, "numeric")
	}

	if len(metrics) > maxMetrics {
		metrics = metrics[:maxMetrics]
	}
	return metrics
}

// contextName names a metric from the word immediately preceding it.
func contextName(summary string, start, end int) string {
	from := start - 50
	if from < 0 {
		from = 0
	}
	words := strings.Fields(summary[from:end])
	if len(words) > 1 {
		return strings.Trim(words[len(words)-2], "*-")
	}
	return "Value"
}

// extractKeyPoints collects markdown bullets, falling back to the first
// few sentences of reasonable length.
func extractKeyPoints(summary string) []string {
	points := []string{}

	for _, m := range bulletPattern.FindAllStringSubmatch(summary, -1) {
		cleaned := strings.TrimSpace(strings.Trim(m[1], "*- "))
		if len(cleaned) > 10 && len(cleaned) < 200 {
			points = append(points, cleaned)
			if len(points) == maxKeyPoints {
				break
			}
		}
	}
	if len(points) > 0 {
		return points
	}

	for _, sentence := range sentenceSplitRe.Split(summary, -1) {
		cleaned := strings.TrimSpace(sentence)
		if len(cleaned) > 10 && len(cleaned) < 200 {
			points = append(points, cleaned)
			if len(points) == 3 {
				break
			}
		}
	}
	return points
}

// extractActionItems finds an action-items style section, falling back to
// sentences built around imperative verbs.
func extractActionItems(summary string) []string {
	items := []string{}

	if m := actionSectionRe.FindStringSubmatch(summary); m != nil {
		for _, b := range bulletPattern.FindAllStringSubmatch(m[1], -1) {
			items = append(items, strings.TrimSpace(strings.Trim(b[1], "*- ")))
			if len(items) == maxKeyPoints {
				break
			}
		}
		if len(items) > 0 {
			return items
		}
	}

	for _, sentence := range sentenceSplitRe.Split(summary, -1) {
		cleaned := strings.TrimSpace(sentence)
		if len(cleaned) <= 10 || len(cleaned) >= 200 {
			continue
		}
		lower := strings.ToLower(cleaned)
		for _, verb := range imperativeVerbs {
			if strings.Contains(lower, verb) {
				items = append(items, cleaned)
				break
			}
		}
		if len(items) == 3 {
			break
		}
	}
	return items
}

// extractTimestamps finds MM:SS / HH:MM:SS references with their
// surrounding sentence as the key point.
func extractTimestamps(summary string) []Moment {
	moments := []Moment{}
	seen := make(map[string]bool)

	for _, loc := range timestampPattern.FindAllStringIndex(summary, -1) {
		timeStr := summary[loc[0]:loc[1]]
		if seen[timeStr] {
			continue
		}
		seen[timeStr] = true

		from := loc[0] - 100
		if from < 0 {
			from = 0
		}
		to := loc[1] + 100
		if to > len(summary) {
			to = len(summary)
		}
		context := summary[from:to]

		keyPoint := strings.TrimSpace(strings.SplitN(context, ".", 2)[0])

		importance := "medium"
		lower := strings.ToLower(context)
		for _, kw := range importanceKeywords {
			if strings.Contains(lower, kw) {
				importance = "high"
				break
			}
		}

		moments = append(moments, Moment{Time: timeStr, KeyPoint: keyPoint, Importance: importance})
		if len(moments) == maxTimestamps {
			break
		}
	}
	return moments
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
