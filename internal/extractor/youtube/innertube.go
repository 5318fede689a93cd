package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultPlayerURL     = "https://www.youtube.com/youtubei/v1/player"
	androidClientVersion = "19.09.37"
	androidUserAgent     = "com.google.android.youtube/19.09.37 (Linux; U; Android 11) gzip"
)

// playerResponse is the subset of the Innertube /player response we need:
// playability, caption tracks, and the video title.
type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	VideoDetails struct {
		VideoID string `json:"videoId"`
		Title   string `json:"title"`
	} `json:"videoDetails"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated
}

func (e *Extractor) callPlayerAPI(ctx context.Context, videoID string) (*playerResponse, error) {
	payload := map[string]any{
		"context": map[string]any{
			"client": map[string]any{
				"clientName":    "ANDROID",
				"clientVersion": androidClientVersion,
				"userAgent":     androidUserAgent,
				"hl":            "en",
				"gl":            "US",
			},
		},
		"videoId": videoID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.playerURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUserAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("player API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player API returned %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, err
	}

	var data playerResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse player response: %w", err)
	}

	return &data, nil
}

// selectCaptionTrack checks playability and picks a track: a manually
// authored English track first, then any manual track, then auto-generated.
func selectCaptionTrack(resp *playerResponse) (*captionTrack, string, error) {
	status := resp.PlayabilityStatus.Status
	if status != "" && status != "OK" {
		reason := resp.PlayabilityStatus.Reason
		if reason == "" {
			reason = status
		}
		return nil, "", fmt.Errorf("video unavailable: %s", strings.ToLower(reason))
	}

	tracks := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, "", fmt.Errorf("transcript is disabled for this video")
	}

	title := resp.VideoDetails.Title

	for _, t := range tracks {
		if t.Kind != "asr" && t.LanguageCode == "en" {
			return &t, title, nil
		}
	}
	for _, t := range tracks {
		if t.Kind != "asr" {
			return &t, title, nil
		}
	}
	return &tracks[0], title, nil
}
