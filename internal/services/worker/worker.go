// Package worker provides a background job processing system using goroutines.
//
// Go Pattern: Goroutines and channels are Go's concurrency primitives.
// A goroutine is like a lightweight thread (thousands are fine), and
// channels are typed pipes for communication between goroutines.
//
// This worker pool pattern is very common in Go:
// 1. Create a buffered channel as a job queue
// 2. Spawn N worker goroutines that read from the channel
// 3. Send jobs to the channel from your HTTP handlers
// 4. Workers process jobs concurrently
//
// Think of it like a restaurant: the channel is the order window,
// workers are the cooks, and handlers are the waiters taking orders.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Shimizu-Technology/video-summarizer-api/internal/database"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/models"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/progress"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/summarize"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/transcript"
)

// Job is one video processing request: extract the transcript, then
// generate the summary.
type Job struct {
	ID        string // Job ID (for logs)
	RecordID  string // The videos table row ID
	VideoID   string // YouTube video ID
	Mode      summarize.Mode
	Tone      summarize.Tone
	StartTime string
	EndTime   string
	CreatedAt time.Time
}

// NewJob builds a processing job for a queued video record.
func NewJob(recordID, videoID string, mode summarize.Mode, tone summarize.Tone, startTime, endTime string) Job {
	return Job{
		ID:        uuid.NewString(),
		RecordID:  recordID,
		VideoID:   videoID,
		Mode:      mode,
		Tone:      tone,
		StartTime: startTime,
		EndTime:   endTime,
		CreatedAt: time.Now(),
	}
}

// Pool manages a pool of worker goroutines.
type Pool struct {
	// Go Pattern: Channels are the backbone of Go concurrency.
	// This buffered channel acts as our job queue.
	// Buffered means it can hold `queueSize` jobs before blocking.
	jobs       chan Job
	workers    int
	db         *database.DB
	extractor  transcript.Extractor
	summarizer *summarize.Service
	tracker    *progress.Tracker

	// Go Pattern: sync.WaitGroup tracks running goroutines.
	// We call wg.Add(1) when starting a worker, wg.Done() when it finishes,
	// and wg.Wait() blocks until all workers are done (used for graceful shutdown).
	wg sync.WaitGroup

	// Go Pattern: context.Context with cancel for graceful shutdown.
	// When we call cancel(), all workers' contexts are cancelled.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPool creates a new worker pool.
func NewPool(workers, queueSize int, db *database.DB, ext transcript.Extractor, sum *summarize.Service, tracker *progress.Tracker) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		jobs:       make(chan Job, queueSize), // Buffered channel
		workers:    workers,
		db:         db,
		extractor:  ext,
		summarizer: sum,
		tracker:    tracker,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start launches the worker goroutines.
// Go Pattern: The `go` keyword starts a new goroutine (lightweight thread).
// Each worker runs in its own goroutine, reading from the shared jobs channel.
func (p *Pool) Start() {
	log.Printf("🚀 Starting %d background workers", p.workers)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i) // Launch worker goroutine
	}
}

// Stop gracefully shuts down all workers.
// Go Pattern: Close the channel + cancel the context + wait for completion.
func (p *Pool) Stop() {
	log.Println("⏹️  Stopping workers...")
	p.cancel()    // Signal all workers to stop
	close(p.jobs) // Close the channel (workers will drain remaining jobs)
	p.wg.Wait()   // Wait for all workers to finish
	log.Println("✅ All workers stopped")
}

// Submit adds a job to the queue.
// Returns an error if the queue is full (non-blocking).
func (p *Pool) Submit(job Job) error {
	// Go Pattern: `select` with `default` makes channel operations non-blocking.
	// Without default, sending to a full channel would block the HTTP handler.
	select {
	case p.jobs <- job:
		p.tracker.Update(job.VideoID, progress.StageQueued, "Waiting for a worker")
		log.Printf("📥 Job queued: %s (video: %s, mode: %s)", job.ID, job.VideoID, job.Mode)
		return nil
	default:
		return fmt.Errorf("job queue is full; try again later")
	}
}

// QueueSize returns the current number of jobs in the queue.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}

// WorkerCount returns the number of workers.
func (p *Pool) WorkerCount() int {
	return p.workers
}

// worker is the main loop for each worker goroutine.
// It reads jobs from the channel and processes them.
func (p *Pool) worker(id int) {
	defer p.wg.Done() // Signal completion when this worker exits

	log.Printf("👷 Worker %d started", id)

	// Go Pattern: `range` over a channel reads values until the channel is closed.
	// This is the idiomatic way to consume from a channel.
	for job := range p.jobs {
		// Check if we should stop
		select {
		case <-p.ctx.Done():
			log.Printf("👷 Worker %d shutting down", id)
			return
		default:
			// Continue processing
		}

		log.Printf("👷 Worker %d processing job: %s (video: %s)", id, job.ID, job.VideoID)

		if err := p.processVideo(job); err != nil {
			log.Printf("❌ Worker %d: job %s failed: %v", id, job.ID, err)
		} else {
			log.Printf("✅ Worker %d: job %s completed", id, job.ID)
		}
	}

	log.Printf("👷 Worker %d stopped", id)
}

// processVideo runs the full pipeline for one video: transcript
// extraction, then summarization, with progress updates at each stage.
func (p *Pool) processVideo(job Job) error {
	ctx := p.ctx

	v, err := p.db.GetVideo(ctx, job.RecordID)
	if err != nil {
		return fmt.Errorf("failed to get video record: %w", err)
	}

	if err := p.db.UpdateVideoStatus(ctx, v.ID, models.StatusProcessing, ""); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	// Stage 1: transcript extraction
	p.tracker.Update(job.VideoID, progress.StageExtracting, "Downloading transcript")
	result, err := p.extractor.Extract(ctx, job.VideoID)
	if err != nil {
		return p.fail(ctx, v, job, fmt.Errorf("transcript extraction failed: %w", err))
	}

	v.Title = result.Title
	v.ChannelName = result.ChannelName
	v.Duration = result.Duration
	v.Language = result.Language
	v.TranscriptText = result.Transcript
	v.WordCount = result.WordCount
	if segments, err := json.Marshal(result.Segments); err == nil {
		v.RawSegments = segments
	}

	// Stage 2: summary generation
	p.tracker.Update(job.VideoID, progress.StageSummarizing, "Generating summary")
	summary, err := p.summarizer.Generate(ctx, summarize.Request{
		Transcript: result.Transcript,
		Title:      result.Title,
		Mode:       job.Mode,
		Tone:       job.Tone,
		StartTime:  job.StartTime,
		EndTime:    job.EndTime,
		Segments:   toSummarizeSegments(result.Segments),
	})
	if err != nil {
		return p.fail(ctx, v, job, fmt.Errorf("summary generation failed: %w", err))
	}

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return p.fail(ctx, v, job, fmt.Errorf("failed to encode summary: %w", err))
	}
	v.Summary = summaryJSON
	v.Status = models.StatusCompleted
	v.ErrorMessage = ""

	if err := p.db.UpdateVideo(ctx, v); err != nil {
		return p.fail(ctx, v, job, fmt.Errorf("failed to save video: %w", err))
	}

	p.tracker.Update(job.VideoID, progress.StageCompleted, "Summary ready")
	return nil
}

// fail marks the video as failed in both the database and the progress
// stream, and returns the original error for the worker log.
func (p *Pool) fail(ctx context.Context, v *models.Video, job Job, err error) error {
	p.tracker.Update(job.VideoID, progress.StageFailed, err.Error())
	if dbErr := p.db.UpdateVideoStatus(ctx, v.ID, models.StatusFailed, err.Error()); dbErr != nil {
		log.Printf("⚠️  Failed to record failure for video %s: %v", v.ID, dbErr)
	}
	return err
}

// toSummarizeSegments converts extractor cues to the summarizer's segment
// type. The packages keep separate types so neither imports the other.
func toSummarizeSegments(segs []transcript.Segment) []summarize.Segment {
	out := make([]summarize.Segment, len(segs))
	for i, s := range segs {
		out[i] = summarize.Segment{Start: s.Start, End: s.End, Text: s.Text}
	}
	return out
}
