package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// alternativeResponse is the backup public API's format. The service is
// pluggable; this is the contract the chain expects from whatever is
// configured at ALTERNATIVE_API_URL.
type alternativeResponse struct {
	Transcript string    `json:"transcript"`
	Segments   []Segment `json:"segments"`
	Title      string    `json:"title"`
}

// fetchViaAlternative queries the configured backup transcript API with the
// bare video ID.
func (c *Chain) fetchViaAlternative(ctx context.Context, videoID string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.alternativeURL+"/v1/transcript?video_id="+url.QueryEscape(videoID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode)
	}

	var data alternativeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if data.Transcript == "" {
		return nil, fmt.Errorf("no transcript data received")
	}

	return &Result{
		Transcript: data.Transcript,
		Segments:   data.Segments,
		VideoTitle: data.Title,
		VideoID:    videoID,
		Source:     sourceAlternative,
	}, nil
}
