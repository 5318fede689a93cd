package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guiyumin/tubenotes/internal/core/transcript"
)

// transcriptResponse is the success body. Segment times are seconds; the
// extractor reports milliseconds and the conversion happens here.
type transcriptResponse struct {
	Success    bool                 `json:"success"`
	Transcript string               `json:"transcript"`
	Segments   []transcript.Segment `json:"segments"`
	Title      string               `json:"title"`
	VideoID    string               `json:"videoId"`
	Source     string               `json:"source"`
}

type errorResponse struct {
	Error   string `json:"error"`
	VideoID string `json:"videoId"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleTranscript(c *gin.Context) {
	videoID := strings.TrimSpace(c.Param("videoId"))
	if videoID == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Video ID is required"})
		return
	}

	s.logger.Info().Str("video_id", videoID).Msg("fetching transcript")

	tr, err := s.fetcher.Fetch(c.Request.Context(), videoID)
	if err != nil {
		status, message := classifyExtractorError(err)
		s.logger.Warn().Str("video_id", videoID).Err(err).Msg("transcript fetch failed")
		c.JSON(status, errorResponse{Error: message, VideoID: videoID, Details: err.Error()})
		return
	}

	if len(tr.Captions) == 0 {
		c.JSON(http.StatusNotFound, errorResponse{
			Error:   "No transcript found for this video",
			VideoID: videoID,
		})
		return
	}

	segments := make([]transcript.Segment, 0, len(tr.Captions))
	for _, line := range tr.Captions {
		segments = append(segments, transcript.Segment{
			Text:     line.Text,
			Start:    line.OffsetMs / 1000,
			Duration: line.DurationMs / 1000,
		})
	}

	title := tr.Title
	if title == "" {
		title = "YouTube Video " + videoID
	}

	c.JSON(http.StatusOK, transcriptResponse{
		Success:    true,
		Transcript: transcript.JoinSegments(segments),
		Segments:   segments,
		Title:      title,
		VideoID:    videoID,
		Source:     "Backend Proxy",
	})
}

// classifyExtractorError maps known extractor failure substrings to status
// codes and user-facing messages. Substring matching is a stopgap: the
// extractor gives no structured error codes today.
func classifyExtractorError(err error) (int, string) {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "disabled"):
		return http.StatusNotFound, "Transcript is disabled for this video"
	case strings.Contains(msg, "no transcript found"):
		return http.StatusNotFound, "No transcript available for this video"
	case strings.Contains(msg, "unavailable"):
		return http.StatusNotFound, "Video is unavailable or private"
	default:
		return http.StatusInternalServerError, "Failed to fetch transcript"
	}
}
