// Package progress tracks per-video processing progress and pushes live
// updates to WebSocket subscribers.
//
// Progress lives in memory: it describes in-flight work, so losing it on
// restart is fine — the database still has the authoritative status.
package progress

import (
	"sync"
	"time"

	"github.com/Shimizu-Technology/video-summarizer-api/internal/models"
)

// Stage identifies where a video is in the processing pipeline.
type Stage string

const (
	StageQueued      Stage = "queued"
	StageExtracting  Stage = "extracting_transcript"
	StageSummarizing Stage = "generating_summary"
	StageCompleted   Stage = "completed"
	StageFailed      Stage = "failed"
)

// stagePercent maps each stage to its overall completion percentage.
var stagePercent = map[Stage]int{
	StageQueued:      10,
	StageExtracting:  40,
	StageSummarizing: 80,
	StageCompleted:   100,
	StageFailed:      0,
}

// jobState holds the live progress of one video.
type jobState struct {
	stage     Stage
	message   string
	startedAt time.Time
	updatedAt time.Time
}

// Tracker records processing progress per video ID and broadcasts every
// update through the hub. Safe for concurrent use.
type Tracker struct {
	mu   sync.RWMutex
	jobs map[string]*jobState
	hub  *Hub
}

// NewTracker creates a progress tracker that publishes to hub. A nil hub
// disables broadcasting (handy in tests).
func NewTracker(hub *Hub) *Tracker {
	return &Tracker{
		jobs: make(map[string]*jobState),
		hub:  hub,
	}
}

// Update records a stage transition for a video and notifies subscribers.
func (t *Tracker) Update(videoID string, stage Stage, message string) models.ProgressUpdate {
	now := time.Now()

	t.mu.Lock()
	state, ok := t.jobs[videoID]
	if !ok {
		state = &jobState{startedAt: now}
		t.jobs[videoID] = state
	}
	state.stage = stage
	state.message = message
	state.updatedAt = now
	update := t.snapshotLocked(videoID, state)
	t.mu.Unlock()

	if t.hub != nil {
		t.hub.Broadcast(videoID, update)
	}
	return update
}

// Get returns the latest progress for a video, if any is being tracked.
func (t *Tracker) Get(videoID string) (models.ProgressUpdate, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	state, ok := t.jobs[videoID]
	if !ok {
		return models.ProgressUpdate{}, false
	}
	return t.snapshotLocked(videoID, state), true
}

// Clear forgets a video's progress. Called after terminal stages once
// subscribers have had a chance to see them.
func (t *Tracker) Clear(videoID string) {
	t.mu.Lock()
	delete(t.jobs, videoID)
	t.mu.Unlock()
}

// snapshotLocked builds the public update. Caller must hold at least a
// read lock.
func (t *Tracker) snapshotLocked(videoID string, state *jobState) models.ProgressUpdate {
	percent := stagePercent[state.stage]

	// Estimate remaining time by extrapolating the elapsed time linearly:
	// if 40% took 20s, the full run takes ~50s, so ~30s remain.
	var eta float64
	if percent > 0 && percent < 100 {
		elapsed := state.updatedAt.Sub(state.startedAt).Seconds()
		eta = elapsed/float64(percent)*100 - elapsed
	}

	return models.ProgressUpdate{
		VideoID:          videoID,
		Stage:            string(state.stage),
		Progress:         percent,
		Message:          state.message,
		EstimatedSeconds: eta,
		UpdatedAt:        state.updatedAt.UTC().Format(time.RFC3339),
	}
}
