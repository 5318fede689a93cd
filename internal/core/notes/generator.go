package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchemaViolation indicates the model's output failed structural
// validation. The raw parse error is wrapped for logging; callers show a
// generic message instead.
var ErrSchemaViolation = errors.New("model output failed schema validation")

// Generator produces visual note sections from transcript text.
type Generator interface {
	// Generate returns the full ordered section list or fails. It never
	// returns partial results.
	Generate(ctx context.Context, transcript string) ([]Section, error)
}

// New creates a Generator for the given provider.
func New(provider string, cfg Config) (Generator, error) {
	switch provider {
	case "gemini":
		return newGemini(cfg)
	case "openai":
		return newOpenAI(cfg)
	default:
		return nil, fmt.Errorf("unsupported notes provider: %s", provider)
	}
}

// Config carries provider credentials and overrides.
type Config struct {
	GeminiAPIKey string
	GeminiURL    string // endpoint override for tests
	OpenAIAPIKey string
	OpenAIModel  string
	OpenAIURL    string // base URL override for tests
}

// parseSections trims, schema-validates, and decodes raw model output.
// All-or-nothing: any structural problem fails the whole call.
func parseSections(raw string) ([]Section, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = stripCodeFence(trimmed)

	result, err := gojsonschema.Validate(sectionsSchemaLoader, gojsonschema.NewStringLoader(trimmed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrSchemaViolation, describeViolations(result))
	}

	var sections []Section
	if err := json.Unmarshal([]byte(trimmed), &sections); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	return sections, nil
}

func describeViolations(result *gojsonschema.Result) string {
	parts := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return strings.Join(parts, "; ")
}

// stripCodeFence removes a surrounding markdown code fence, which some models
// emit even when asked for bare JSON.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncateTranscript(text string) string {
	if len(text) > maxTranscriptChars {
		return text[:maxTranscriptChars] + "\n\n[Text truncated due to length...]"
	}
	return text
}
