// structured.go handles structured-data extraction endpoints.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/dataextract"
	"github.com/Shimizu-Technology/video-summarizer-api/internal/services/summarize"
)

// GetStructuredData mines a video's generated summary for metrics, key
// points, action items, and timestamps.
// GET /api/v1/videos/:id/structured
func (h *Handler) GetStructuredData(c *gin.Context) {
	v, errResp := h.loadCompletedVideo(c)
	if errResp != nil {
		c.JSON(errResp.Code, errResp)
		return
	}

	extracted := dataextract.Extract(summaryText(v.Summary))

	c.JSON(http.StatusOK, gin.H{
		"video_id": v.VideoID,
		"data":     extracted,
	})
}

// summaryText flattens a stored structured summary into plain text for
// the regex extractor. Paragraphs and key points carry the substance.
func summaryText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var result summarize.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return string(raw)
	}

	var sb strings.Builder
	sb.WriteString("# Summary\n\n")
	sb.WriteString(result.QuickTakeaway)
	sb.WriteString("\n\n")
	for _, p := range result.KeyPoints {
		sb.WriteString("- " + p + "\n")
	}
	sb.WriteString("\n")
	for _, section := range result.FullSummary {
		sb.WriteString(section.Content)
		sb.WriteString("\n\n")
	}
	for _, ts := range result.Timestamps {
		sb.WriteString(ts.Time + " " + ts.Description + "\n")
	}
	return sb.String()
}
