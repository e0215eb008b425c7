package summarize

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// endOfVideo is the sentinel for an end time of "end".
const endOfVideo = -1.0

// minimumRangeSeconds is the smallest time range worth summarizing.
const minimumRangeSeconds = 60.0

// Segment is one timed caption line from the transcript extractor.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// parseTimestamp converts "MM:SS" or "HH:MM:SS" to seconds. The literal
// "end" (any case) maps to the endOfVideo sentinel.
func parseTimestamp(ts string) (float64, error) {
	ts = strings.TrimSpace(ts)
	if strings.EqualFold(ts, "end") {
		return endOfVideo, nil
	}

	parts := strings.Split(ts, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, inputErrorf("invalid timestamp format: %q (expected MM:SS or HH:MM:SS)", ts)
	}

	var secs float64
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0, inputErrorf("invalid timestamp format: %q (expected MM:SS or HH:MM:SS)", ts)
		}
		secs = secs*60 + float64(n)
	}
	return secs, nil
}

// isDefaultRange reports whether (startTime, endTime) asks for the whole
// video, in which case no segment data is needed.
func isDefaultRange(startTime, endTime string) bool {
	start := strings.TrimSpace(startTime)
	end := strings.TrimSpace(endTime)
	return (start == "" || start == "00:00" || start == "0:00") &&
		(end == "" || strings.EqualFold(end, "end"))
}

// sliceTranscript reduces the transcript to the requested time range using
// the timed segments. The default range ("00:00" to "end") returns the
// transcript untouched; any explicit range requires segment data.
//
// A segment is included when it overlaps the window at all, so text
// straddling a boundary is kept rather than cut mid-sentence.
func sliceTranscript(transcript string, segments []Segment, startTime, endTime string) (string, error) {
	if isDefaultRange(startTime, endTime) {
		return transcript, nil
	}
	if len(segments) == 0 {
		return "", inputErrorf("time range %s-%s requested but no timed segments are available for this video", startTime, endTime)
	}

	start, err := parseTimestamp(startTime)
	if err != nil {
		return "", err
	}
	end, err := parseTimestamp(endTime)
	if err != nil {
		return "", err
	}

	duration := segments[len(segments)-1].End
	if end == endOfVideo {
		end = duration
	}

	// Validation order matters: each check assumes the previous ones held.
	if start < 0 {
		return "", inputErrorf("start time cannot be negative")
	}
	if end > duration {
		return "", inputErrorf("end time %s exceeds video duration (%s)", formatSeconds(end), formatSeconds(duration))
	}
	if start >= end {
		return "", inputErrorf("start time must be before end time")
	}
	if end-start < minimumRangeSeconds {
		return "", inputErrorf("time range must be at least 1 minute")
	}

	var parts []string
	for _, seg := range segments {
		if seg.End >= start && seg.Start <= end {
			if text := strings.TrimSpace(seg.Text); text != "" {
				parts = append(parts, text)
			}
		}
	}

	sliced := strings.Join(parts, " ")
	log.Printf("✂️  Sliced transcript to %s-%s: %d of %d segments (%d chars)",
		formatSeconds(start), formatSeconds(end), len(parts), len(segments), len(sliced))
	return sliced, nil
}

// formatSeconds renders seconds as MM:SS or HH:MM:SS for error messages
// and logs.
func formatSeconds(secs float64) string {
	total := int(secs)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
