// videos.go handles all video-related HTTP endpoints.
package handlers

import (
	"errors"
	"log"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/video-summarizer-api/internal/database"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/models"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/summarize"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/transcript"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/worker"
)

// CreateVideo starts processing a YouTube video: transcript extraction
// followed by summary generation.
// POST /api/v1/videos
//
// Request body:
//
//	{
//	  "video_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
//	  "mode": "quick",          // optional: quick (default) or indepth
//	  "tone": "Objective",      // optional
//	  "start_time": "01:00",    // optional: summarize a time range
//	  "end_time": "10:00"       // optional
//	}
//
// Response: 202 Accepted with the queued record. The actual work happens
// in the background via the worker pool; poll GET /videos/:id or subscribe
// to the progress WebSocket.
func (h *Handler) CreateVideo(c *gin.Context) {
	var req models.ProcessVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Provide 'video_url' in the request body",
			Code:    http.StatusBadRequest,
		})
		return
	}

	url, videoID, err := transcript.ParseYouTubeURL(req.VideoURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_url",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	// Unknown modes and tones coerce to the defaults with a warning, same
	// as the summarization service. The coerced values are what get stored
	// and what key the (video_id, mode) dedupe.
	mode := summarize.Mode(req.Mode)
	if mode != summarize.ModeQuick && mode != summarize.ModeInDepth {
		if mode != "" {
			log.Printf("⚠️  Unknown mode %q, defaulting to %q", mode, summarize.ModeQuick)
		}
		mode = summarize.ModeQuick
	}

	tone := summarize.Tone(req.Tone)
	if !summarize.ValidTone(tone) {
		if tone != "" {
			log.Printf("⚠️  Unknown tone %q, defaulting to %q", tone, summarize.ToneObjective)
		}
		tone = summarize.ToneObjective
	}

	startTime := req.StartTime
	if startTime == "" {
		startTime = "00:00"
	}
	endTime := req.EndTime
	if endTime == "" {
		endTime = "end"
	}

	// Reuse a completed record for the same video and mode instead of
	// reprocessing.
	existing, err := h.DB.GetVideoByVideoID(c.Request.Context(), videoID, string(mode))
	if err == nil && existing.Status == models.StatusCompleted {
		c.JSON(http.StatusOK, existing)
		return
	}

	v := existing
	if v == nil {
		v = &models.Video{
			VideoID:   videoID,
			URL:       url,
			Mode:      string(mode),
			Tone:      string(tone),
			StartTime: startTime,
			EndTime:   endTime,
			Status:    models.StatusQueued,
		}
		if err := h.DB.CreateVideo(c.Request.Context(), v); err != nil {
			log.Printf("❌ Failed to create video record: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "database_error",
				Message: "Failed to create video record",
				Code:    http.StatusInternalServerError,
			})
			return
		}
	}

	// Go Pattern: We respond immediately with the queued record and process
	// in the background. This is the async job pattern — the client can poll
	// GET /videos/:id to check status.
	job := worker.NewJob(v.ID, videoID, mode, tone, startTime, endTime)
	if err := h.Worker.Submit(job); err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "queue_full",
			Message: "Job queue is full, try again later",
			Code:    http.StatusServiceUnavailable,
		})
		return
	}

	c.JSON(http.StatusAccepted, models.ProcessVideoResponse{
		ID:      v.ID,
		VideoID: videoID,
		Status:  string(models.StatusQueued),
		Message: "Video processing started",
	})
}

// GetVideo retrieves a single video record by ID.
// GET /api/v1/videos/:id
func (h *Handler) GetVideo(c *gin.Context) {
	id := c.Param("id")

	v, err := h.DB.GetVideo(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		code := "database_error"
		message := "Failed to fetch video"
		if errors.Is(err, database.ErrNotFound) {
			status = http.StatusNotFound
			code = "not_found"
			message = "Video not found"
		}
		c.JSON(status, models.ErrorResponse{
			Error:   code,
			Message: message,
			Code:    status,
		})
		return
	}

	c.JSON(http.StatusOK, v)
}

// ListVideos returns a paginated list of processed videos.
// GET /api/v1/videos?page=1&per_page=20&status=completed&mode=quick&search=golang
func (h *Handler) ListVideos(c *gin.Context) {
	// Go Pattern: ShouldBindQuery reads query parameters into a struct
	// using the `form` tags. Similar to Express's req.query but type-safe.
	var params models.VideoListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_params",
			Message: "Invalid query parameters: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	videos, total, err := h.DB.ListVideos(c.Request.Context(), params)
	if err != nil {
		log.Printf("❌ Failed to list videos: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to list videos",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	// Ensure we return an empty array, not null
	if videos == nil {
		videos = []models.Video{}
	}

	perPage := params.PerPage
	if perPage < 1 {
		perPage = 20
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	c.JSON(http.StatusOK, models.PaginatedResponse[models.Video]{
		Data:       videos,
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(perPage))),
	})
}

// DeleteVideo removes a video record by ID.
// DELETE /api/v1/videos/:id
func (h *Handler) DeleteVideo(c *gin.Context) {
	id := c.Param("id")

	if err := h.DB.DeleteVideo(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Video not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted"})
}
