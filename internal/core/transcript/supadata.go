package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const defaultSupadataURL = "https://api.supadata.ai/v1/transcript"

// supadataResponse is the hosted transcript API's wire format. Times arrive
// in milliseconds.
type supadataResponse struct {
	Content []struct {
		Text       string  `json:"text"`
		OffsetMs   float64 `json:"offset_ms"`
		DurationMs float64 `json:"duration_ms"`
	} `json:"content"`
}

// fetchViaSupadata queries the hosted transcript API with the full video URL.
func (c *Chain) fetchViaSupadata(ctx context.Context, rawURL, videoID string) (*Result, error) {
	endpoint := c.supadataURL
	if endpoint == "" {
		endpoint = defaultSupadataURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		endpoint+"?url="+url.QueryEscape(rawURL), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.supadataKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("API error: %d %s - %s", resp.StatusCode, resp.Status, string(body))
	}

	var data supadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if len(data.Content) == 0 {
		return nil, fmt.Errorf("no transcript content received")
	}

	segments := make([]Segment, 0, len(data.Content))
	for _, item := range data.Content {
		segments = append(segments, Segment{
			Text:     item.Text,
			Start:    item.OffsetMs / 1000,
			Duration: item.DurationMs / 1000,
		})
	}

	return &Result{
		Transcript: JoinSegments(segments),
		Segments:   segments,
		VideoTitle: fmt.Sprintf("YouTube Video %s", videoID),
		VideoID:    videoID,
		Source:     sourceSupadata,
	}, nil
}
