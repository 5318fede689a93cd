// Package youtube extracts caption tracks from YouTube videos via the
// Innertube API. It backs the transcript proxy endpoint.
package youtube

import (
	"context"
	"net/http"
)

// Caption is one timed caption line. Times are milliseconds, matching the
// timedtext wire format; callers convert to seconds.
type Caption struct {
	Text       string
	OffsetMs   float64
	DurationMs float64
}

// Transcript is the full caption track of a video.
type Transcript struct {
	Title    string
	Captions []Caption
}

// Fetcher fetches a video's transcript. The proxy server depends on this
// interface so tests can substitute the extractor.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) (*Transcript, error)
}

// Extractor fetches captions using the Innertube /player API followed by the
// timedtext endpoint of the selected caption track.
type Extractor struct {
	httpClient *http.Client
	playerURL  string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Extractor) { e.httpClient = c }
}

// WithPlayerURL overrides the Innertube player endpoint, for tests.
func WithPlayerURL(u string) Option {
	return func(e *Extractor) { e.playerURL = u }
}

// NewExtractor creates a caption extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		httpClient: http.DefaultClient,
		playerURL:  defaultPlayerURL,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fetch retrieves the transcript for videoID.
func (e *Extractor) Fetch(ctx context.Context, videoID string) (*Transcript, error) {
	resp, err := e.callPlayerAPI(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, title, err := selectCaptionTrack(resp)
	if err != nil {
		return nil, err
	}

	captions, err := e.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}

	return &Transcript{Title: title, Captions: captions}, nil
}
