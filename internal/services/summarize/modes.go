// modes.go defines the summarization depth profiles and output tones.
//
// Each mode is pure configuration — prompt selection, chunking thresholds,
// and output budgets are data, not code branches. Changing a mode's
// behavior means editing this table, nothing else.
package summarize

// Mode selects the summarization depth profile.
type Mode string

const (
	// ModeQuick produces the 5-component summary, optimized for speed.
	ModeQuick Mode = "quick"
	// ModeInDepth produces the 8-component summary with analysis,
	// quotes, and argument mapping.
	ModeInDepth Mode = "indepth"
)

// Tone controls the stylistic register of the generated text.
type Tone string

const (
	ToneObjective   Tone = "Objective"
	ToneAcademic    Tone = "Academic"
	ToneCasual      Tone = "Casual"
	ToneSkeptical   Tone = "Skeptical"
	ToneProvocative Tone = "Provocative"
)

// validTones is the enumerated set; anything else coerces to Objective
// with a logged warning.
var validTones = map[Tone]bool{
	ToneObjective:   true,
	ToneAcademic:    true,
	ToneCasual:      true,
	ToneSkeptical:   true,
	ToneProvocative: true,
}

// ValidTone reports whether t is one of the supported tones.
func ValidTone(t Tone) bool {
	return validTones[t]
}

// ModeConfig holds the per-mode processing parameters. Instances are
// immutable configuration, never computed state.
type ModeConfig struct {
	// ChunkThresholdMinutes is the estimated video duration above which
	// the chunked (map-reduce) path is used instead of a single pass.
	ChunkThresholdMinutes float64

	// ChunkSizeWords is the word count of each transcript chunk on the
	// chunked path.
	ChunkSizeWords int

	// MaxOutputTokens caps the model's response size.
	MaxOutputTokens int

	// Temperature for the structured-output call. Quick runs cooler for
	// consistency; in-depth runs warmer for richer analysis.
	Temperature float32
}

// Model sizing constants. The duration estimate is a heuristic used only
// for strategy selection — it needs to be monotonic in transcript length,
// not accurate.
const (
	// wordsPerMinute is the assumed average speaking rate.
	wordsPerMinute = 150.0

	// tokensPerWord is a conservative token estimate for English text.
	tokensPerWord = 1.3

	// maxInputTokens is the input budget for a single structured call,
	// leaving headroom under the model's context window for output.
	maxInputTokens = 900_000

	// truncationMarker is appended whenever input is cut to fit the
	// token budget — content is never dropped silently.
	truncationMarker = "... [TRUNCATED DUE TO LENGTH]"
)

// modeConfigs maps each mode to its configuration. With a 1M-token
// context window the 420-minute threshold means almost every video takes
// the single-pass path; chunking remains for multi-hour outliers.
var modeConfigs = map[Mode]ModeConfig{
	ModeQuick: {
		ChunkThresholdMinutes: 420,
		ChunkSizeWords:        50_000,
		MaxOutputTokens:       8_000,
		Temperature:           0.3,
	},
	ModeInDepth: {
		ChunkThresholdMinutes: 420,
		ChunkSizeWords:        50_000,
		MaxOutputTokens:       16_000,
		Temperature:           0.5,
	},
}

// ConfigFor returns the configuration for mode, defaulting to quick for
// unknown modes (callers are expected to have coerced already).
func ConfigFor(mode Mode) ModeConfig {
	if cfg, ok := modeConfigs[mode]; ok {
		return cfg
	}
	return modeConfigs[ModeQuick]
}
