// ws.go handles the live progress WebSocket endpoint.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/video-summarizer-api/internal/models"
)

// VideoProgress upgrades to a WebSocket and streams progress updates for a
// YouTube video being processed.
// GET /api/v1/videos/:id/progress
//
// Unlike the record endpoints, the path parameter here is the YouTube video
// ID — progress is tracked before a database row is readable, so clients
// subscribe with the ID they submitted.
//
// The subscriber immediately receives the latest known state, then every
// stage transition until the connection closes. Untracked videos still get
// a connection — updates arrive once processing starts.
func (h *Handler) VideoProgress(c *gin.Context) {
	videoID := c.Param("id")

	var latest *models.ProgressUpdate
	if update, ok := h.Tracker.Get(videoID); ok {
		latest = &update
	}

	h.Hub.ServeWS(c.Writer, c.Request, videoID, latest)
}
