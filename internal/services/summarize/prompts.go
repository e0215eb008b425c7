// prompts.go is the versioned prompt library.
//
// Every prompt revision is data: template text plus a version tag. The
// active version participates in the cache fingerprint, so bumping
// ActivePromptVersion automatically invalidates every previously cached
// summary — that is the cache-invalidation strategy of record. Old
// versions stay in the table for reference; they are never selected at
// runtime.
//
// Templates use {{TONE}}, {{TRANSCRIPT}}, and {{TITLE}} placeholders,
// substituted by renderPrompt.
package summarize

import "strings"

// ActivePromptVersion selects the prompt set used for new summaries.
// Increment whenever a template changes.
//
// v4.0: added tone and time-range support.
// v5.0: removed numerical constraints, added comprehensiveness principle,
//       retuned for a 1M-token context window.
const ActivePromptVersion = "v5.0"

// systemInstruction is prepended to every structured-output call.
const systemInstruction = `You are a helpful assistant that analyzes video transcripts and returns structured JSON summaries.
Always return valid JSON with no additional text before or after the JSON object.
Ensure all JSON is properly formatted and escaped.`

// chunkSystemInstruction is used for the lightweight per-chunk
// condensation calls on the chunked path.
const chunkSystemInstruction = `You are a concise summarization assistant.`

// promptSet pairs the two mode templates for one prompt version.
type promptSet struct {
	quick   string
	inDepth string
}

// promptLibrary holds every prompt revision, keyed by version tag.
var promptLibrary = map[string]promptSet{
	"v4.0": {quick: quickPromptV4, inDepth: inDepthPromptV4},
	"v5.0": {quick: quickPromptV5, inDepth: inDepthPromptV5},
}

// promptFor returns the template for (version, mode), falling back to the
// active version's quick template if the version is unknown.
func promptFor(version string, mode Mode) string {
	set, ok := promptLibrary[version]
	if !ok {
		set = promptLibrary[ActivePromptVersion]
	}
	if mode == ModeInDepth {
		return set.inDepth
	}
	return set.quick
}

// renderPrompt substitutes the transcript, title, and tone into a template.
func renderPrompt(template, transcript, title string, tone Tone) string {
	return strings.NewReplacer(
		"{{TONE}}", string(tone),
		"{{TRANSCRIPT}}", transcript,
		"{{TITLE}}", title,
	).Replace(template)
}

// toneGuide describes each tone inside the prompts. Shared by both modes.
const toneGuide = `# TONE AND STYLE CONSTRAINT
The final summary MUST be written in a **{{TONE}}** tone. Adjust your writing style accordingly:

- **Objective (Faithful Representation)**: Strictly adhere to the speaker's original tone and intent without adding external bias. This is the default and safest approach.
- **Academic**: Use formal language, complex sentence structures, precise terminology, and cite concepts as you would in an academic paper.
- **Casual**: Use conversational language, contractions, simple vocabulary, and a friendly tone as if explaining to a friend.
- **Skeptical**: Critically evaluate the speaker's claims, highlight assumptions, question evidence, and use cautious language to point out potential weaknesses.
- **Provocative**: Use strong, challenging language, emphasize controversial points, and present the content in a way that stimulates debate and critical thinking.

Apply the {{TONE}} tone consistently across ALL components.`

// corePrinciples is the shared preamble for the v5 templates.
const corePrinciples = `# CORE PRINCIPLES

1. **BE DIRECT & CONCISE**
   - No filler words, no academic fluff, no unnecessary qualifiers.
   - Instead of "The speaker seems to suggest that perhaps one could consider...", write "The speaker argues that..."

2. **PRESERVE CONTEXT & ATTRIBUTION**
   - When the speaker quotes someone, you MUST attribute it clearly.
   - When referencing external sources (studies, books, people), maintain the connection to the main argument.

3. **FAITHFUL REPRESENTATION (NO SANITIZATION)**
   - Capture the speaker's actual message, tone, and intent.
   - Do NOT soften, sanitize, or filter the content, even if it is controversial or uses strong language.

4. **TONE MATCHING**
   - Match the speaker's energy: direct, provocative, academic, humorous, passionate.

5. **COMPREHENSIVENESS PRINCIPLE**
   - Cover ALL major topics and arguments presented in the video.
   - Let the content dictate the depth and breadth of your summary.
   - A 3-hour video should have more key points than a 10-minute video.`

const quickPromptV5 = `# ROLE & GOAL
You are a world-class summarization engine. Your goal is to create a concise, accurate, and insightful summary. Adhere to these principles:

` + corePrinciples + `

# JSON OUTPUT STRUCTURE (5 Components)

You MUST return a valid JSON object with the following structure:

{
  "quick_takeaway": "A single, powerful sentence (max 150 characters) that captures the absolute core message.",
  "key_points": [
    "Concise, scannable insights. Each should be a complete thought in 1-2 sentences. Include as many points as needed to cover all major insights."
  ],
  "topics": [
    {"topic_name": "The first major theme or chapter", "summary_section_id": 1},
    {"topic_name": "The second major theme", "summary_section_id": 2}
  ],
  "timestamps": [
    {"time": "HH:MM:SS or MM:SS", "description": "Brief description of the key moment (max 100 chars)"}
  ],
  "full_summary": [
    {"id": 1, "content": "First paragraph of the detailed narrative summary..."},
    {"id": 2, "content": "Second paragraph..."}
  ]
}

# SPECIFIC INSTRUCTIONS

## quick_takeaway
- One sentence, maximum 150 characters, capturing the speaker's MAIN point.

## key_points
- ALL significant insights, 1-2 sentences each, direct and specific, with attribution preserved.

## topics
- ALL main sections/themes. The summary_section_id must correspond to a paragraph id in full_summary.

## timestamps
- Key moments with exact timestamps (HH:MM:SS or MM:SS), description max 100 characters.

## full_summary
- Well-developed paragraphs covering the entire video. Each paragraph is an object with a unique integer id and markdown content.

` + toneGuide + `

# TRANSCRIPT
---
{{TRANSCRIPT}}
---

Video Title: {{TITLE}}

# FINAL REMINDER
Return ONLY valid JSON. Do not include any explanatory text before or after the JSON object. Remember to apply the {{TONE}} tone throughout. Cover ALL significant content - do not artificially limit your summary.`

const inDepthPromptV5 = `# ROLE & GOAL
You are a world-class summarization engine. Your goal is to create a comprehensive, in-depth analysis of the provided video transcript. You must adhere to the following principles with absolute precision.

` + corePrinciples + `

# JSON OUTPUT STRUCTURE (8 Components - IN-DEPTH MODE)

You MUST return a valid JSON object with the following structure:

{
  "quick_takeaway": "A single, powerful sentence (max 150 characters) that captures the absolute core message.",
  "key_points": [
    "Detailed, comprehensive insights. Each should be a complete thought in 1-2 sentences. Include ALL major points."
  ],
  "topics": [
    {"topic_name": "The first major theme or chapter", "summary_section_id": 1}
  ],
  "timestamps": [
    {"time": "HH:MM:SS or MM:SS", "description": "Brief description of the key moment (max 100 chars)"}
  ],
  "full_summary": [
    {"id": 1, "content": "First paragraph of the detailed narrative summary..."}
  ],
  "detailed_analysis": [
    {"topic": "Topic name", "analysis": "Deep dive into this specific topic with nuanced insights, context, and implications."}
  ],
  "key_quotes": [
    {"quote": "Exact verbatim quote", "context": "Brief context about when/why this was said", "speaker": "Who said it"}
  ],
  "arguments": [
    {"claim": "Main argument or claim made", "evidence": "Supporting evidence or reasoning provided", "counterpoint": "Any counterarguments or limitations mentioned (if applicable)"}
  ]
}

# SPECIFIC INSTRUCTIONS FOR EACH SECTION

## quick_takeaway
- One sentence, maximum 150 characters. Be provocative if the speaker is provocative.

## key_points
- Comprehensive coverage with nuance, context, and attribution.

## topics
- All themes, more granular than quick mode; summary_section_id points at the full_summary paragraph where the topic begins.

## timestamps
- ALL major topic transitions, important arguments, and key quotes.

## full_summary
- Thorough paragraphs covering the entire video, preserving the speaker's message, tone, and attribution.

## detailed_analysis (IN-DEPTH ONLY)
- Go beyond surface-level summary to analyze WHY and HOW, one entry per major theme.

## key_quotes (IN-DEPTH ONLY)
- ALL important verbatim quotes, from the speaker AND anyone they reference, each with context and attribution.

## arguments (IN-DEPTH ONLY)
- Every claim with its evidence and any counterpoints, capturing the logical structure of the argumentation.

` + toneGuide + `

# TRANSCRIPT
---
{{TRANSCRIPT}}
---

Video Title: {{TITLE}}

# FINAL REMINDER
Return ONLY valid JSON. Do not include any explanatory text before or after the JSON object. Adhere to the principles above with absolute precision. Remember to apply the {{TONE}} tone throughout.`

// v4.0 templates, retained for reference only. These carried fixed count
// constraints ("5-7 key points") that v5.0 dropped in favor of the
// comprehensiveness principle.
const quickPromptV4 = `You are an expert summarization engine. Summarize the video transcript below into valid JSON with exactly these keys: quick_takeaway (one sentence, max 150 chars), key_points (5-7 items), topics, timestamps, full_summary (numbered paragraphs with integer ids).

` + toneGuide + `

# TRANSCRIPT
---
{{TRANSCRIPT}}
---

Video Title: {{TITLE}}

Return ONLY valid JSON.`

const inDepthPromptV4 = `You are an expert summarization engine. Produce a comprehensive JSON analysis of the video transcript below with exactly these keys: quick_takeaway, key_points (10-15 items), topics, timestamps, full_summary, detailed_analysis, key_quotes, arguments.

` + toneGuide + `

# TRANSCRIPT
---
{{TRANSCRIPT}}
---

Video Title: {{TITLE}}

Return ONLY valid JSON.`

// chunkPrompt is the free-text condensation prompt for a single chunk on
// the chunked path. The response is plain prose, not JSON.
const chunkPrompt = `Summarize the following transcript segment. Be concise and capture the main points.

Transcript:
---
{{TRANSCRIPT}}
---

Title: {{TITLE}}

Provide a 2-3 paragraph summary that captures the key information from this segment.`
