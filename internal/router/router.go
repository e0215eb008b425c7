// Package router sets up all HTTP routes for the API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/video-summarizer-api/internal/database"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/handlers"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/middleware"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/chat"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/progress"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/worker"
)

// Setup creates and configures the Gin router with all routes.
func Setup(db *database.DB, wp *worker.Pool, tracker *progress.Tracker, hub *progress.Hub, chatSvc *chat.Service, cacheName string, allowedOrigins []string, rateLimitPerMinute int) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(allowedOrigins))

	h := handlers.NewHandler(db, wp, tracker, hub, chatSvc, cacheName)
	rateLimiter := middleware.NewRateLimiter(rateLimitPerMinute)

	// --- Monitoring ---
	r.GET("/api/v1/health", h.HealthCheck)

	// --- Video processing ---
	api := r.Group("/api/v1")
	api.Use(rateLimiter.RateLimit())
	{
		api.POST("/videos", h.CreateVideo)
		api.GET("/videos", h.ListVideos)
		api.GET("/videos/:id", h.GetVideo)
		api.DELETE("/videos/:id", h.DeleteVideo)

		// Follow-up Q&A and structured-data mining over a finished summary
		api.POST("/videos/:id/chat", h.ChatWithVideo)
		api.GET("/videos/:id/structured", h.GetStructuredData)
	}

	// WebSocket progress stream. Kept outside the rate limiter — a single
	// long-lived connection, not a request burst.
	r.GET("/api/v1/videos/:id/progress", h.VideoProgress)

	return r
}
