// Package models defines the data structures used throughout the application.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// Unlike Ruby's ActiveRecord or JavaScript's Mongoose, Go models are just
// data containers — no ORM magic. The database package handles persistence.
//
// JSON tags (e.g., `json:"id"`) control how struct fields are serialized
// to/from JSON. The `db` tags work with sqlx for database column mapping.
package models

import (
	"encoding/json"
	"time"
)

// VideoStatus represents the processing state of a video.
// Go Pattern: We use string constants instead of enums (Go doesn't have enums).
// This is a common pattern — define a type alias and named constants.
type VideoStatus string

const (
	StatusQueued     VideoStatus = "queued"
	StatusProcessing VideoStatus = "processing"
	StatusCompleted  VideoStatus = "completed"
	StatusFailed     VideoStatus = "failed"
)

// Video represents a processed YouTube video with its transcript and summary.
// Summary and RawSegments are stored as JSONB; they stay raw JSON here so the
// API can return them without a decode/encode round trip.
type Video struct {
	ID             string          `json:"id" db:"id"`
	VideoID        string          `json:"video_id" db:"video_id"`
	URL            string          `json:"url" db:"url"`
	Title          string          `json:"title" db:"title"`
	ChannelName    string          `json:"channel_name" db:"channel_name"`
	Duration       int             `json:"duration" db:"duration"` // seconds
	Language       string          `json:"language" db:"language"`
	TranscriptText string          `json:"transcript_text,omitempty" db:"transcript_text"`
	WordCount      int             `json:"word_count" db:"word_count"`
	Mode           string          `json:"mode" db:"mode"` // "quick" or "indepth"
	Tone           string          `json:"tone" db:"tone"`
	StartTime      string          `json:"start_time" db:"start_time"`
	EndTime        string          `json:"end_time" db:"end_time"`
	Summary        json.RawMessage `json:"summary,omitempty" db:"summary"`           // JSONB — structured summary
	RawSegments    json.RawMessage `json:"raw_segments,omitempty" db:"raw_segments"` // JSONB — timed caption cues
	Status         VideoStatus     `json:"status" db:"status"`
	ErrorMessage   string          `json:"error_message,omitempty" db:"error_message"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// ProgressUpdate is one progress event for a video being processed.
// Broadcast over WebSocket and returned by the progress endpoint.
type ProgressUpdate struct {
	VideoID          string  `json:"video_id"`
	Stage            string  `json:"stage"`
	Progress         int     `json:"progress"` // 0-100
	Message          string  `json:"message"`
	EstimatedSeconds float64 `json:"estimated_seconds_remaining,omitempty"`
	UpdatedAt        string  `json:"updated_at"`
}

// --- Request/Response DTOs (Data Transfer Objects) ---
// Go Pattern: Separate structs for API input/output vs database models.
// This keeps your API contract clean and independent of your database schema.

// ProcessVideoRequest is the JSON body for POST /api/v1/videos.
type ProcessVideoRequest struct {
	// Accept either a full YouTube URL or just the video ID
	VideoURL  string `json:"video_url" binding:"required"`
	Mode      string `json:"mode,omitempty"`       // "quick" (default) or "indepth"
	Tone      string `json:"tone,omitempty"`       // "Objective" (default), "Academic", ...
	StartTime string `json:"start_time,omitempty"` // "MM:SS" or "HH:MM:SS"
	EndTime   string `json:"end_time,omitempty"`   // "MM:SS", "HH:MM:SS", or "end"
}

// ProcessVideoResponse is returned when a processing job is accepted.
type ProcessVideoResponse struct {
	ID      string `json:"id"`
	VideoID string `json:"video_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// VideoListParams holds query parameters for listing videos.
type VideoListParams struct {
	Page    int         `form:"page"`     // Page number (1-indexed)
	PerPage int         `form:"per_page"` // Items per page
	Status  VideoStatus `form:"status"`   // Filter by status
	Mode    string      `form:"mode"`     // Filter by summarization mode
	Search  string      `form:"search"`   // Search in title/channel
	SortBy  string      `form:"sort_by"`  // "created_at", "title", "word_count"
	SortDir string      `form:"sort_dir"` // "asc" or "desc"
}

// PaginatedResponse wraps a list response with pagination metadata.
// Go Pattern: Generics (added in Go 1.18) let us create type-safe
// containers. `any` is an alias for `interface{}` — it means "any type".
type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// --- Chat DTOs ---

// ChatMessage is one turn of a video Q&A conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the JSON body for POST /api/v1/videos/:id/chat.
type ChatRequest struct {
	Message string        `json:"message" binding:"required"`
	History []ChatMessage `json:"history,omitempty"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is a standard error format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
	Workers  int    `json:"workers"`
}
