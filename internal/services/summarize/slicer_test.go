package summarize

import (
	"strings"
	"testing"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"minutes and seconds", "01:30", 90, false},
		{"hours minutes seconds", "1:05:30", 3930, false},
		{"zero", "00:00", 0, false},
		{"end sentinel", "end", endOfVideo, false},
		{"end sentinel uppercase", "END", endOfVideo, false},
		{"bare number", "90", 0, true},
		{"too many parts", "1:2:3:4", 0, true},
		{"non-numeric", "ab:cd", 0, true},
		{"negative component", "-1:30", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimestamp(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseTimestamp(%q) expected error, got %v", tt.input, got)
				}
				if !IsInputError(err) {
					t.Errorf("parseTimestamp(%q) error is not an InputError: %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTimestamp(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func testSegments() []Segment {
	// 10 segments of 30s each, 300s video.
	segs := make([]Segment, 10)
	for i := range segs {
		segs[i] = Segment{
			Start: float64(i * 30),
			End:   float64((i + 1) * 30),
			Text:  "segment" + strings.Repeat("x", i), // distinct text per segment
		}
	}
	return segs
}

func TestSliceTranscriptDefaultRange(t *testing.T) {
	transcript := "the full transcript text"

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"explicit defaults", "00:00", "end"},
		{"empty strings", "", ""},
		{"short zero", "0:00", "end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Default range must not require segments.
			got, err := sliceTranscript(transcript, nil, tt.start, tt.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != transcript {
				t.Errorf("default range should return transcript unchanged, got %q", got)
			}
		})
	}
}

func TestSliceTranscriptValidation(t *testing.T) {
	segs := testSegments()

	tests := []struct {
		name    string
		start   string
		end     string
		errPart string
	}{
		{"end beyond duration", "00:00", "10:00", "exceeds video duration"},
		{"start after end", "03:00", "02:00", "before end time"},
		{"start equals end", "02:00", "02:00", "before end time"},
		{"window under a minute", "01:00", "01:30", "at least 1 minute"},
		{"bad start format", "oops", "02:00", "invalid timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sliceTranscript("full text", segs, tt.start, tt.end)
			if err == nil {
				t.Fatal("expected error, got none")
			}
			if !IsInputError(err) {
				t.Errorf("expected InputError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.errPart)
			}
		})
	}
}

func TestSliceTranscriptRequiresSegments(t *testing.T) {
	_, err := sliceTranscript("full text", nil, "01:00", "03:00")
	if err == nil {
		t.Fatal("expected error for explicit range without segments")
	}
	if !IsInputError(err) {
		t.Errorf("expected InputError, got %T", err)
	}
}

func TestSliceTranscriptOverlap(t *testing.T) {
	segs := []Segment{
		{Start: 0, End: 50, Text: "before"},
		{Start: 50, End: 70, Text: "straddles start"},
		{Start: 70, End: 170, Text: "inside"},
		{Start: 170, End: 200, Text: "straddles end"},
		{Start: 200, End: 300, Text: "after"},
	}

	got, err := sliceTranscript("full", segs, "01:00", "03:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"straddles start", "inside", "straddles end"} {
		if !strings.Contains(got, want) {
			t.Errorf("sliced transcript missing %q: %q", want, got)
		}
	}
	if strings.Contains(got, "before") {
		t.Errorf("segment ending before the window should be excluded: %q", got)
	}
	if strings.Contains(got, "after") {
		t.Errorf("segment starting after the window should be excluded: %q", got)
	}
}

func TestSliceTranscriptEndSentinel(t *testing.T) {
	segs := testSegments() // 300s video

	got, err := sliceTranscript("full", segs, "02:00", "end")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == "" {
		t.Fatal("expected non-empty slice for 02:00-end")
	}
	if strings.Contains(got, segs[0].Text+" ") {
		t.Errorf("first segment should be excluded from 02:00-end slice")
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		secs float64
		want string
	}{
		{90, "01:30"},
		{3930, "1:05:30"},
		{0, "00:00"},
	}
	for _, tt := range tests {
		if got := formatSeconds(tt.secs); got != tt.want {
			t.Errorf("formatSeconds(%v) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
