package image

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultFalFlashURL  = "https://fal.run/fal-ai/gemini-25-flash-image"
	defaultFalBananaURL = "https://fal.run/fal-ai/nano-banana"
)

type falRequest struct {
	Prompt       string `json:"prompt"`
	NumImages    int    `json:"num_images"`
	OutputFormat string `json:"output_format"`
	SyncMode     bool   `json:"sync_mode"`
}

type falResponse struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

// generateViaFal posts a prompt to a fal.run sync endpoint and returns the
// image URL. Failures are classified by HTTP status: 401/403 auth, 429 rate
// limit, 402 credits, anything else generic.
func (c *Chain) generateViaFal(ctx context.Context, endpoint, prompt string) (string, error) {
	body, err := json.Marshal(falRequest{
		Prompt:       prompt,
		NumImages:    1,
		OutputFormat: "png",
		SyncMode:     true,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Key "+c.falKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newError(KindGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		cause := fmt.Errorf("fal.ai API error: %d - %s", resp.StatusCode, string(raw))
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "", newError(KindAuthFailed, cause)
		case http.StatusTooManyRequests:
			return "", newError(KindRateLimited, cause)
		case http.StatusPaymentRequired:
			return "", newError(KindInsufficientCredits, cause)
		default:
			return "", newError(KindGenerationFailed, cause)
		}
	}

	var data falResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", newError(KindGenerationFailed, fmt.Errorf("malformed response: %w", err))
	}
	if len(data.Images) == 0 {
		return "", newError(KindGenerationFailed, fmt.Errorf("no images returned"))
	}

	return data.Images[0].URL, nil
}
