package progress

import "testing"

func TestTrackerStagePercentages(t *testing.T) {
	tracker := NewTracker(nil)

	tests := []struct {
		stage Stage
		want  int
	}{
		{StageQueued, 10},
		{StageExtracting, 40},
		{StageSummarizing, 80},
		{StageCompleted, 100},
		{StageFailed, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			update := tracker.Update("vid-1", tt.stage, "msg")
			if update.Progress != tt.want {
				t.Errorf("stage %s progress = %d, want %d", tt.stage, update.Progress, tt.want)
			}
			if update.VideoID != "vid-1" {
				t.Errorf("unexpected video id %q", update.VideoID)
			}
		})
	}
}

func TestTrackerGetAndClear(t *testing.T) {
	tracker := NewTracker(nil)

	if _, ok := tracker.Get("unknown"); ok {
		t.Error("expected no progress for an untracked video")
	}

	tracker.Update("vid-2", StageExtracting, "downloading captions")
	update, ok := tracker.Get("vid-2")
	if !ok {
		t.Fatal("expected tracked progress")
	}
	if update.Stage != string(StageExtracting) || update.Message != "downloading captions" {
		t.Errorf("unexpected update: %+v", update)
	}

	tracker.Clear("vid-2")
	if _, ok := tracker.Get("vid-2"); ok {
		t.Error("expected progress to be cleared")
	}
}

func TestTrackerEstimate(t *testing.T) {
	tracker := NewTracker(nil)

	// Terminal stages report no estimate.
	if update := tracker.Update("vid-3", StageCompleted, "done"); update.EstimatedSeconds != 0 {
		t.Errorf("completed stage should have no ETA, got %v", update.EstimatedSeconds)
	}
	if update := tracker.Update("vid-4", StageFailed, "boom"); update.EstimatedSeconds != 0 {
		t.Errorf("failed stage should have no ETA, got %v", update.EstimatedSeconds)
	}
}
