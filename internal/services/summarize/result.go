// result.go defines the structured summary schema.
//
// The JSON field names are the wire contract shared with the model
// prompts, the database (summary jsonb column), and the frontend. Quick
// mode fills the first five fields; in-depth mode additionally fills
// DetailedAnalysis, KeyQuotes, and Arguments (omitted from JSON for
// quick-mode results via omitempty).
package summarize

// Result is a structured video summary.
type Result struct {
	QuickTakeaway string      `json:"quick_takeaway"`
	KeyPoints     []string    `json:"key_points"`
	Topics        []Topic     `json:"topics"`
	Timestamps    []Timestamp `json:"timestamps"`
	FullSummary   []Section   `json:"full_summary"`

	// In-depth mode only.
	DetailedAnalysis []Analysis `json:"detailed_analysis,omitempty"`
	KeyQuotes        []Quote    `json:"key_quotes,omitempty"`
	Arguments        []Argument `json:"arguments,omitempty"`
}

// Topic names a major theme and points at the full_summary section where
// it is covered. SummarySectionID references Section.ID; the join is
// advisory — the model is asked to keep it consistent but we tolerate
// mismatches rather than reject an otherwise good summary.
type Topic struct {
	TopicName        string `json:"topic_name"`
	SummarySectionID int    `json:"summary_section_id"`
}

// Timestamp marks a key moment ("MM:SS" or "HH:MM:SS").
type Timestamp struct {
	Time        string `json:"time"`
	Description string `json:"description"`
}

// Section is one paragraph of the narrative summary. IDs are positive
// integers and form the join key for Topic.SummarySectionID.
type Section struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
}

// Analysis is a deep dive into a single topic (in-depth mode).
type Analysis struct {
	Topic    string `json:"topic"`
	Analysis string `json:"analysis"`
}

// Quote is a verbatim quote with attribution (in-depth mode).
type Quote struct {
	Quote   string `json:"quote"`
	Context string `json:"context"`
	Speaker string `json:"speaker"`
}

// Argument captures one claim/evidence/counterpoint triple (in-depth mode).
type Argument struct {
	Claim        string `json:"claim"`
	Evidence     string `json:"evidence"`
	Counterpoint string `json:"counterpoint,omitempty"`
}
