package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultGeminiURL   = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel = "gemini-2.5-flash"
)

// gemini generates notes via the Google Generative Language REST API with a
// response schema, so the model output is constrained server-side.
type gemini struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newGemini(cfg Config) (*gemini, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("Gemini API key not provided")
	}
	baseURL := cfg.GeminiURL
	if baseURL == "" {
		baseURL = defaultGeminiURL
	}
	return &gemini{
		apiKey:  cfg.GeminiAPIKey,
		baseURL: baseURL,
		client:  http.DefaultClient,
	}, nil
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
	Config   geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
	ResponseSchema   any    `json:"responseSchema"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (g *gemini) Generate(ctx context.Context, transcript string) ([]Section, error) {
	prompt := notesPrompt + truncateTranscript(transcript) + "\n---\n"

	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		Config: geminiGenConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   visualNotesSchema,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, defaultGeminiModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("notes API error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, err
	}

	var data geminiResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("notes API error: malformed response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if data.Error != nil {
			return nil, fmt.Errorf("notes API error: %d %s: %s", resp.StatusCode, data.Error.Status, data.Error.Message)
		}
		return nil, fmt.Errorf("notes API error: %d", resp.StatusCode)
	}
	if len(data.Candidates) == 0 || len(data.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	return parseSections(data.Candidates[0].Content.Parts[0].Text)
}
