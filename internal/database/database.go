// Package database handles PostgreSQL connections and queries.
//
// Go Pattern: We use the `sqlx` package which extends Go's standard `database/sql`
// with convenient features like scanning rows into structs. Unlike an ORM
// (ActiveRecord, Sequelize), you write raw SQL — which gives you full control
// and helps you learn SQL properly.
//
// Go's database/sql has built-in connection pooling — you create one *sql.DB
// (or *sqlx.DB) at startup and share it across your entire application.
// It's safe for concurrent use by multiple goroutines.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver — the underscore import runs its init()

	"github.com/Shimizu-Technology/video-summarizer-api/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// DB wraps the sqlx database connection with our application-specific methods.
// Go Pattern: Embedding (*sqlx.DB) gives us all of sqlx's methods automatically,
// plus we can add our own. This is Go's version of inheritance — composition.
type DB struct {
	*sqlx.DB
}

// New creates a new database connection with connection pooling configured.
func New(databaseURL string) (*DB, error) {
	// sqlx.Connect both opens the connection and pings the database
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool for serverless PostgreSQL (Neon)
	// Go Pattern: The connection pool is managed by database/sql internally.
	// These settings prevent resource exhaustion and handle Neon's aggressive
	// connection timeouts (serverless PG closes idle connections quickly).
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(2 * time.Minute)
	db.SetConnMaxIdleTime(30 * time.Second)

	return &DB{db}, nil
}

// HealthCheck verifies the database connection is alive.
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// --- Video Operations ---

// CreateVideo inserts a new video record in the queued state.
// The (video_id, mode) pair is unique: requesting the same video in the
// same mode again reuses the existing row.
func (db *DB) CreateVideo(ctx context.Context, v *models.Video) error {
	query := `
		INSERT INTO videos (video_id, url, title, channel_name, duration, language,
			transcript_text, word_count, mode, tone, start_time, end_time,
			summary, raw_segments, status, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at`

	return db.QueryRowContext(ctx, query,
		v.VideoID, v.URL, v.Title, v.ChannelName, v.Duration, v.Language,
		v.TranscriptText, v.WordCount, v.Mode, v.Tone, v.StartTime, v.EndTime,
		normalizeJSONB(v.Summary), normalizeJSONB(v.RawSegments), v.Status, v.ErrorMessage,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

// GetVideo retrieves a single video by its row ID.
func (db *DB) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	var v models.Video
	// GetContext is sqlx's convenience method — it scans directly into a struct
	// using the `db:"column_name"` tags we defined on the model.
	err := db.GetContext(ctx, &v, `SELECT * FROM videos WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video: %w", err)
	}
	return &v, nil
}

// GetVideoByVideoID returns the record for a YouTube video in a given mode,
// if we have already processed it.
func (db *DB) GetVideoByVideoID(ctx context.Context, videoID, mode string) (*models.Video, error) {
	var v models.Video
	err := db.GetContext(ctx, &v,
		`SELECT * FROM videos WHERE video_id = $1 AND mode = $2`, videoID, mode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video: %w", err)
	}
	return &v, nil
}

// UpdateVideo updates a video's fields after processing.
func (db *DB) UpdateVideo(ctx context.Context, v *models.Video) error {
	query := `
		UPDATE videos
		SET title = $2, channel_name = $3, duration = $4, language = $5,
			transcript_text = $6, word_count = $7, summary = $8, raw_segments = $9,
			status = $10, error_message = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return db.QueryRowContext(ctx, query,
		v.ID, v.Title, v.ChannelName, v.Duration, v.Language,
		v.TranscriptText, v.WordCount, normalizeJSONB(v.Summary), normalizeJSONB(v.RawSegments),
		v.Status, v.ErrorMessage,
	).Scan(&v.UpdatedAt)
}

// UpdateVideoStatus transitions a video's processing status.
func (db *DB) UpdateVideoStatus(ctx context.Context, id string, status models.VideoStatus, errorMessage string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE videos SET status = $2, error_message = $3, updated_at = NOW() WHERE id = $1`,
		id, status, errorMessage)
	if err != nil {
		return fmt.Errorf("failed to update video status: %w", err)
	}
	return nil
}

// ListVideos returns a paginated list of videos with optional filters.
func (db *DB) ListVideos(ctx context.Context, params models.VideoListParams) ([]models.Video, int, error) {
	// Set defaults
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 || params.PerPage > 100 {
		params.PerPage = 20
	}
	if params.SortBy == "" {
		params.SortBy = "created_at"
	}
	if params.SortDir == "" {
		params.SortDir = "desc"
	}

	// Build WHERE clause dynamically
	var conditions []string
	var args []interface{}
	argNum := 1

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argNum))
		args = append(args, params.Status)
		argNum++
	}

	if params.Mode != "" {
		conditions = append(conditions, fmt.Sprintf("mode = $%d", argNum))
		args = append(args, params.Mode)
		argNum++
	}

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR channel_name ILIKE $%d)", argNum, argNum))
		args = append(args, "%"+params.Search+"%")
		argNum++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Validate sort column to prevent SQL injection
	validSortColumns := map[string]bool{
		"created_at": true, "title": true, "word_count": true, "duration": true,
	}
	if !validSortColumns[params.SortBy] {
		params.SortBy = "created_at"
	}
	if params.SortDir != "asc" && params.SortDir != "desc" {
		params.SortDir = "desc"
	}

	// Count total matching records
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM videos %s", whereClause)
	var total int
	if err := db.GetContext(ctx, &total, countQuery, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			total = 0
		} else {
			return nil, 0, fmt.Errorf("count query failed: %w", err)
		}
	}

	// Fetch page of results
	offset := (params.Page - 1) * params.PerPage
	selectQuery := fmt.Sprintf(
		"SELECT * FROM videos %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		whereClause, params.SortBy, params.SortDir, argNum, argNum+1,
	)
	args = append(args, params.PerPage, offset)

	var videos []models.Video
	if err := db.SelectContext(ctx, &videos, selectQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list query failed: %w", err)
	}

	return videos, total, nil
}

// DeleteVideo removes a video by ID.
func (db *DB) DeleteVideo(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// normalizeJSONB substitutes SQL NULL for empty raw JSON so the JSONB
// columns never receive a zero-length value (invalid JSON input).
func normalizeJSONB(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
