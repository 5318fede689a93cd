package image

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/guiyumin/tubenotes/internal/core/fallback"
)

// Provider labels for diagnostics.
const (
	providerFal    = "fal.ai"
	providerImagen = "Gemini Imagen"
)

// Options configures a Chain. FalAPIKey may be empty, which removes the fast
// provider from the standard path and makes the colorful path unavailable.
type Options struct {
	FalAPIKey    string
	GeminiAPIKey string
	FalFlashURL  string // endpoint overrides for tests
	FalBananaURL string
	ImagenURL    string
	HTTPClient   *http.Client
	Logger       zerolog.Logger
}

// Chain generates images: fal.ai first when configured, Imagen as fallback.
// Every call is a fresh attempt from the first provider; nothing is cached.
type Chain struct {
	falKey       string
	geminiKey    string
	falFlashURL  string
	falBananaURL string
	imagenURL    string
	httpClient   *http.Client
	logger       zerolog.Logger
}

// NewChain creates an image generation chain.
func NewChain(opts Options) *Chain {
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	c := &Chain{
		falKey:       opts.FalAPIKey,
		geminiKey:    opts.GeminiAPIKey,
		falFlashURL:  opts.FalFlashURL,
		falBananaURL: opts.FalBananaURL,
		imagenURL:    opts.ImagenURL,
		httpClient:   client,
		logger:       opts.Logger,
	}
	if c.falFlashURL == "" {
		c.falFlashURL = defaultFalFlashURL
	}
	if c.falBananaURL == "" {
		c.falBananaURL = defaultFalBananaURL
	}
	if c.imagenURL == "" {
		c.imagenURL = defaultImagenURL
	}
	return c
}

// Generate produces a standard-style image for description: a clean
// vector/sketch framing. It tries fal.ai when a key is configured and falls
// back to Imagen on any fal failure. The returned reference is either a
// remote URL (fal) or a data URI (Imagen); callers treat it opaquely.
func (c *Chain) Generate(ctx context.Context, description string) (string, error) {
	prompt := fmt.Sprintf(`A clear, simple, vector-style diagram or icon on a clean white background, representing the concept: %q. The style should be suitable for visual note-taking, like a sketch or a whiteboard drawing.`, description)

	strategies := []fallback.Strategy[string]{
		{
			Label: providerFal,
			Skip:  func() bool { return c.falKey == "" },
			Run: func(ctx context.Context) (string, error) {
				return c.generateViaFal(ctx, c.falFlashURL, prompt)
			},
		},
		{
			Label: providerImagen,
			Run: func(ctx context.Context) (string, error) {
				return c.generateViaImagen(ctx, prompt)
			},
		},
	}

	ref, label, err := fallback.First(ctx, strategies, func(a fallback.Attempt) {
		c.logger.Warn().Str("provider", a.Label).Err(a.Err).Msg("image provider failed")
	})
	if err != nil {
		agg, _ := fallback.AsErrors(err)
		return "", classify(agg)
	}

	c.logger.Debug().Str("provider", label).Msg("image generated")
	return ref, nil
}

// GenerateColorful produces a vibrant-style image via the fal.ai Nano Banana
// endpoint. Single provider, single attempt, no fallback.
func (c *Chain) GenerateColorful(ctx context.Context, description string) (string, error) {
	if c.falKey == "" {
		return "", newError(KindAuthFailed, fmt.Errorf("fal.ai API key not configured"))
	}
	prompt := fmt.Sprintf(`Create a colorful, engaging, and vibrant visual representation of: %q. Style: modern, colorful, artistic diagram with bright colors, engaging design, suitable for visual learning and note-taking. Make it visually appealing and easy to understand.`, description)
	return c.generateViaFal(ctx, c.falBananaURL, prompt)
}

// classify reduces an aggregated chain failure to a single classified error.
// The last attempted provider's classification wins, since that is the one
// the user can act on.
func classify(agg *fallback.Errors) error {
	if len(agg.Attempts) == 0 {
		return newError(KindGenerationFailed, fmt.Errorf("no image provider configured"))
	}
	last := agg.Attempts[len(agg.Attempts)-1].Err
	var classified *Error
	if errors.As(last, &classified) {
		return classified
	}
	return newError(KindGenerationFailed, last)
}
