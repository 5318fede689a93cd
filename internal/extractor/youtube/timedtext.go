package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// timedTextResponse is the json3 timedtext format. Window-position events
// carry no segs and are skipped.
type timedTextResponse struct {
	Events []struct {
		StartMs    float64 `json:"tStartMs"`
		DurationMs float64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func (e *Extractor) fetchTimedText(ctx context.Context, baseURL string) ([]Caption, error) {
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+sep+"fmt=json3", nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timedtext request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext returned %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, err
	}

	var data timedTextResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse timedtext: %w", err)
	}

	captions := make([]Caption, 0, len(data.Events))
	for _, ev := range data.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var text strings.Builder
		for _, seg := range ev.Segs {
			text.WriteString(seg.UTF8)
		}
		line := strings.TrimSpace(strings.ReplaceAll(text.String(), "\n", " "))
		if line == "" {
			continue
		}
		captions = append(captions, Caption{
			Text:       line,
			OffsetMs:   ev.StartMs,
			DurationMs: ev.DurationMs,
		})
	}

	if len(captions) == 0 {
		return nil, fmt.Errorf("no transcript found for this video")
	}

	return captions, nil
}
