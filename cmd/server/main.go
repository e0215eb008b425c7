// Package main is the entry point for the Video Summarizer API server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shimizu-Technology/video-summarizer-api/internal/cache"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/config"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/database"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/router"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/chat"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/progress"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/summarize"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/transcript"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/worker"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("🚀 Video Summarizer API %s starting...", Version)

	// Step 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	log.Printf("📋 Config loaded: port=%s, workers=%d, gin_mode=%s", cfg.Port, cfg.WorkerCount, cfg.GinMode)
	log.Printf("🔧 yt-dlp path: %s", cfg.YtDlpPath)

	os.Setenv("GIN_MODE", cfg.GinMode)

	// Step 2: Connect to Database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("✅ Database connected")

	// Run migrations
	if err := db.RunMigrations("migrations"); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	// Step 3: Create Services
	extractor := transcript.NewExtractor(cfg.YtDlpPath)

	// Summary cache backend
	summaryCache, cacheName := newCacheBackend(cfg)
	log.Printf("✅ Summary cache: %s (TTL: %s)", cacheName, cfg.CacheTTL)

	// AI provider — one backend serves both summarization and chat
	backend, err := newAIBackend(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize AI provider: %v", err)
	}
	summarizer := summarize.NewService(backend, summaryCache, cfg.CacheTTL)
	chatService := chat.NewService(backend)

	// Progress tracking — WebSocket hub plus the per-video stage tracker
	hub := progress.NewHub()
	tracker := progress.NewTracker(hub)

	// Step 4: Create and Start Worker Pool
	wp := worker.NewPool(cfg.WorkerCount, cfg.JobQueueSize, db, extractor, summarizer, tracker)
	wp.Start()
	defer wp.Stop()

	// Step 5: Setup HTTP Router
	r := router.Setup(db, wp, tracker, hub, chatService, cacheName, cfg.AllowedOrigins, cfg.RateLimitPerMinute)

	// Step 6: Start the HTTP Server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server listening on http://localhost:%s", cfg.Port)
		log.Printf("📖 Health check: http://localhost:%s/api/v1/health", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	// Step 7: Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("🛑 Received signal %v, shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	}

	log.Println("👋 Server stopped. Goodbye!")
}

// newCacheBackend picks the summary cache from config. Falls back to the
// in-memory cache if Redis is unreachable — summaries regenerate, they are
// never lost data.
func newCacheBackend(cfg *config.Config) (cache.Backend, string) {
	switch cfg.CacheBackend {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		r, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), falling back to in-memory cache", err)
			return cache.NewMemory(), "memory (redis fallback)"
		}
		return r, "redis"
	case "none":
		return cache.NewNull(), "disabled"
	default:
		return cache.NewMemory(), "memory"
	}
}

// newAIBackend picks the model provider from config.
func newAIBackend(cfg *config.Config) (summarize.Backend, error) {
	switch cfg.AIProvider {
	case "openrouter":
		return summarize.NewOpenRouterBackend(cfg.OpenRouterAPIKey, cfg.OpenRouterURL, cfg.OpenRouterModel)
	default:
		return summarize.NewGeminiBackend(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	}
}
