package transcript

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/guiyumin/tubenotes/internal/core/fallback"
)

// Source labels, surfaced in Result.Source and in diagnostics.
const (
	sourceSupadata    = "Supadata API"
	sourceProxy       = "Backend Proxy"
	sourceAlternative = "Alternative API"
)

// ErrInvalidInput indicates the input could not be parsed into a video ID.
// No source is attempted in that case.
var ErrInvalidInput = errors.New("invalid YouTube URL")

// ExhaustedError is returned when every configured source has failed. It is
// the only transcript-fetch error a caller ever sees; individual source
// failures are folded into Attempts.
type ExhaustedError struct {
	VideoID  string
	Attempts *fallback.Errors
}

func (e *ExhaustedError) Error() string {
	var b strings.Builder
	b.WriteString("Unable to fetch transcript automatically. This could be because:\n\n")
	b.WriteString("• The video doesn't have captions/transcripts available\n")
	b.WriteString("• The video is private or restricted\n")
	b.WriteString("• The video is age-restricted or has limited access\n")
	b.WriteString("• All transcript services are temporarily unavailable\n\n")
	b.WriteString("Please try manually copying the transcript from YouTube:\n")
	fmt.Fprintf(&b, "1. Go to the video: https://youtube.com/watch?v=%s\n", e.VideoID)
	b.WriteString("2. Click the \"...\" menu below the video\n")
	b.WriteString("3. Select \"Show transcript\"\n")
	b.WriteString("4. Copy the text and re-run with --file\n\n")
	fmt.Fprintf(&b, "Technical details: %s", e.Attempts.Error())
	return b.String()
}

// Options configures a Chain. Zero values disable the optional sources.
type Options struct {
	SupadataAPIKey    string
	SupadataURL       string // endpoint override, defaults to the hosted API
	ProxyBaseURL      string
	AlternativeAPIURL string
	HTTPClient        *http.Client
	Logger            zerolog.Logger
}

// Chain fetches transcripts by trying sources in fixed priority order:
// hosted API, then local proxy, then the alternative public API. Sources are
// tried at most once each, strictly in sequence.
type Chain struct {
	httpClient     *http.Client
	logger         zerolog.Logger
	supadataKey    string
	supadataURL    string
	proxyBaseURL   string
	alternativeURL string
}

// NewChain creates a transcript source chain.
func NewChain(opts Options) *Chain {
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &Chain{
		httpClient:     client,
		logger:         opts.Logger,
		supadataKey:    opts.SupadataAPIKey,
		supadataURL:    opts.SupadataURL,
		proxyBaseURL:   opts.ProxyBaseURL,
		alternativeURL: opts.AlternativeAPIURL,
	}
}

// Fetch resolves rawURL to a video ID and tries each configured source until
// one returns a non-empty transcript. It fails with ErrInvalidInput before
// touching the network when the input cannot be parsed, and with
// *ExhaustedError once every source has failed.
func (c *Chain) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	videoID := ExtractVideoID(rawURL)
	if videoID == "" {
		return nil, fmt.Errorf("%w: please provide a valid YouTube video link", ErrInvalidInput)
	}

	strategies := []fallback.Strategy[*Result]{
		{
			Label: sourceSupadata,
			Skip:  func() bool { return c.supadataKey == "" },
			Run: c.checked(func(ctx context.Context) (*Result, error) {
				return c.fetchViaSupadata(ctx, rawURL, videoID)
			}),
		},
		{
			Label: sourceProxy,
			Skip:  func() bool { return c.proxyBaseURL == "" },
			Run: c.checked(func(ctx context.Context) (*Result, error) {
				return c.fetchViaProxy(ctx, videoID)
			}),
		},
		{
			Label: sourceAlternative,
			Skip:  func() bool { return c.alternativeURL == "" },
			Run: c.checked(func(ctx context.Context) (*Result, error) {
				return c.fetchViaAlternative(ctx, videoID)
			}),
		},
	}

	result, label, err := fallback.First(ctx, strategies, func(a fallback.Attempt) {
		c.logger.Warn().Str("source", a.Label).Err(a.Err).Msg("transcript source failed")
	})
	if err != nil {
		agg, _ := fallback.AsErrors(err)
		return nil, &ExhaustedError{VideoID: videoID, Attempts: agg}
	}

	c.logger.Info().Str("source", label).Str("video_id", videoID).Msg("transcript fetched")
	return result, nil
}

// checked wraps a source so that a structurally valid but empty transcript
// counts as a failure of that source, letting the chain fall through.
func (c *Chain) checked(run func(ctx context.Context) (*Result, error)) func(ctx context.Context) (*Result, error) {
	return func(ctx context.Context) (*Result, error) {
		result, err := run(ctx)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(result.Transcript) == "" {
			return nil, fmt.Errorf("empty transcript received")
		}
		return result, nil
	}
}
