// chat.go handles video Q&A endpoints.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/video-summarizer-api/internal/database"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/models"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/chat"
)

// ChatWithVideo answers a question about a processed video.
// POST /api/v1/videos/:id/chat
//
// Request body:
//
//	{
//	  "message": "What did the speaker say about testing?",
//	  "history": [{"role": "user", "content": "..."}, ...]   // optional
//	}
func (h *Handler) ChatWithVideo(c *gin.Context) {
	v, errResp := h.loadCompletedVideo(c)
	if errResp != nil {
		c.JSON(errResp.Code, errResp)
		return
	}

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Provide 'message' in the request body",
			Code:    http.StatusBadRequest,
		})
		return
	}
	if len(req.Message) > chat.MaxMessageLength {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "message_too_long",
			Message: "Message must be at most 500 characters",
			Code:    http.StatusBadRequest,
		})
		return
	}

	answer, err := h.Chat.Ask(c.Request.Context(), v.Title, v.TranscriptText, req.Message, req.History)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_message",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{Response: answer})
}

// loadCompletedVideo fetches a video and verifies it is ready for
// follow-up operations (chat, structured extraction).
func (h *Handler) loadCompletedVideo(c *gin.Context) (*models.Video, *models.ErrorResponse) {
	id := c.Param("id")

	v, err := h.DB.GetVideo(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, &models.ErrorResponse{
				Error:   "not_found",
				Message: "Video not found",
				Code:    http.StatusNotFound,
			}
		}
		log.Printf("❌ Failed to load video %s: %v", id, err)
		return nil, &models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to load video",
			Code:    http.StatusInternalServerError,
		}
	}

	if v.Status != models.StatusCompleted || v.TranscriptText == "" {
		return nil, &models.ErrorResponse{
			Error:   "video_not_ready",
			Message: "Video is not ready (status: " + string(v.Status) + ")",
			Code:    http.StatusConflict,
		}
	}

	return v, nil
}
