package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// proxyResponse matches the tubenotes serve endpoint. Segment times are
// already seconds.
type proxyResponse struct {
	Success    bool      `json:"success"`
	Transcript string    `json:"transcript"`
	Segments   []Segment `json:"segments"`
	Title      string    `json:"title"`
	Error      string    `json:"error"`
}

// fetchViaProxy calls a running transcript proxy with the bare video ID.
func (c *Chain) fetchViaProxy(ctx context.Context, videoID string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.proxyBaseURL+"/api/youtube-transcript/"+videoID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var data proxyResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if json.Unmarshal(body, &data) == nil && data.Error != "" {
			return nil, fmt.Errorf("proxy error: %d - %s", resp.StatusCode, data.Error)
		}
		return nil, fmt.Errorf("proxy error: %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}

	return &Result{
		Transcript: data.Transcript,
		Segments:   data.Segments,
		VideoTitle: data.Title,
		VideoID:    videoID,
		Source:     sourceProxy,
	}, nil
}
