package image

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
	defaultImagenURL   = "https://generativelanguage.googleapis.com/v1beta"
	defaultImagenModel = "imagen-4.0-generate-001"
)

type imagenRequest struct {
	Instances  []imagenInstance `json:"instances"`
	Parameters imagenParameters `json:"parameters"`
}

type imagenInstance struct {
	Prompt string `json:"prompt"`
}

type imagenParameters struct {
	SampleCount int    `json:"sampleCount"`
	AspectRatio string `json:"aspectRatio"`
}

type imagenResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

// generateViaImagen calls the Gemini Imagen API and returns a data URI with
// the embedded PNG bytes. A RESOURCE_EXHAUSTED signature in the failure body
// is surfaced as quota exhaustion; everything else is generic.
func (c *Chain) generateViaImagen(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(imagenRequest{
		Instances:  []imagenInstance{{Prompt: prompt}},
		Parameters: imagenParameters{SampleCount: 1, AspectRatio: "1:1"},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:predict", c.imagenURL, defaultImagenModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.geminiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newError(KindGenerationFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return "", newError(KindGenerationFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		cause := fmt.Errorf("Imagen API error: %d - %s", resp.StatusCode, string(raw))
		if strings.Contains(string(raw), "RESOURCE_EXHAUSTED") {
			return "", newError(KindQuotaExceeded, cause)
		}
		return "", newError(KindGenerationFailed, cause)
	}

	var data imagenResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", newError(KindGenerationFailed, fmt.Errorf("malformed response: %w", err))
	}
	if len(data.Predictions) == 0 || data.Predictions[0].BytesBase64Encoded == "" {
		return "", newError(KindGenerationFailed, fmt.Errorf("no images returned"))
	}

	return "data:image/png;base64," + data.Predictions[0].BytesBase64Encoded, nil
}
