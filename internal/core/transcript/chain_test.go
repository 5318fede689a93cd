package transcript

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVideoID = "dQw4w9WgXcQ"
const testURL = "https://www.youtube.com/watch?v=" + testVideoID

func TestFetchInvalidInputSkipsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no source should be attempted for invalid input")
	}))
	defer srv.Close()

	chain := NewChain(Options{
		SupadataAPIKey: "key",
		SupadataURL:    srv.URL,
		Logger:         zerolog.Nop(),
	})

	_, err := chain.Fetch(context.Background(), "not a youtube url")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestFetchFirstSourceWins(t *testing.T) {
	supadataCalls := 0
	supadata := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		supadataCalls++
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, testURL, r.URL.Query().Get("url"))
		w.Write([]byte(`{"content":[{"text":"hello","offset_ms":2500,"duration_ms":1500},{"text":"world","offset_ms":4000}]}`))
	}))
	defer supadata.Close()

	proxyCalls := 0
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxyCalls++
	}))
	defer proxy.Close()

	chain := NewChain(Options{
		SupadataAPIKey: "key",
		SupadataURL:    supadata.URL,
		ProxyBaseURL:   proxy.URL,
		Logger:         zerolog.Nop(),
	})

	result, err := chain.Fetch(context.Background(), testURL)
	require.NoError(t, err)

	assert.Equal(t, 1, supadataCalls)
	assert.Zero(t, proxyCalls, "later sources must not be consulted after a success")

	assert.Equal(t, "Supadata API", result.Source)
	assert.Equal(t, testVideoID, result.VideoID)
	assert.Equal(t, "hello world", result.Transcript)
	require.Len(t, result.Segments, 2)
	assert.Equal(t, 2.5, result.Segments[0].Start)
	assert.Equal(t, 1.5, result.Segments[0].Duration)
	assert.Equal(t, 4.0, result.Segments[1].Start)
}

func TestFetchFallsThroughToLaterSource(t *testing.T) {
	supadata := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service down", http.StatusBadGateway)
	}))
	defer supadata.Close()

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/youtube-transcript/"+testVideoID, r.URL.Path)
		http.Error(w, `{"error":"no transcript"}`, http.StatusNotFound)
	}))
	defer proxy.Close()

	alt := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testVideoID, r.URL.Query().Get("video_id"))
		w.Write([]byte(`{"transcript":"from the backup service","title":"A Video"}`))
	}))
	defer alt.Close()

	chain := NewChain(Options{
		SupadataAPIKey:    "key",
		SupadataURL:       supadata.URL,
		ProxyBaseURL:      proxy.URL,
		AlternativeAPIURL: alt.URL,
		Logger:            zerolog.Nop(),
	})

	result, err := chain.Fetch(context.Background(), testURL)
	require.NoError(t, err)
	assert.Equal(t, "Alternative API", result.Source)
	assert.Equal(t, "from the backup service", result.Transcript)
	assert.Equal(t, "A Video", result.VideoTitle)
}

func TestFetchWarnsOnIntermediateFailure(t *testing.T) {
	supadata := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service down", http.StatusBadGateway)
	}))
	defer supadata.Close()

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"transcript":"real text","segments":[{"text":"real text","start":0}]}`))
	}))
	defer proxy.Close()

	var logBuf bytes.Buffer
	chain := NewChain(Options{
		SupadataAPIKey: "key",
		SupadataURL:    supadata.URL,
		ProxyBaseURL:   proxy.URL,
		Logger:         zerolog.New(&logBuf),
	})

	result, err := chain.Fetch(context.Background(), testURL)
	require.NoError(t, err)
	assert.Equal(t, "Backend Proxy", result.Source)

	logs := logBuf.String()
	assert.Contains(t, logs, `"level":"warn"`, "the failed source must be logged even though a later source succeeded")
	assert.Contains(t, logs, "Supadata API")
	assert.Contains(t, logs, "transcript source failed")
}

func TestFetchEmptyTranscriptTreatedAsFailure(t *testing.T) {
	supadata := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Structurally valid response whose text joins to nothing.
		w.Write([]byte(`{"content":[{"text":"","offset_ms":0}]}`))
	}))
	defer supadata.Close()

	proxyCalls := 0
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxyCalls++
		w.Write([]byte(`{"success":true,"transcript":"real text","segments":[{"text":"real text","start":0}]}`))
	}))
	defer proxy.Close()

	chain := NewChain(Options{
		SupadataAPIKey: "key",
		SupadataURL:    supadata.URL,
		ProxyBaseURL:   proxy.URL,
		Logger:         zerolog.Nop(),
	})

	result, err := chain.Fetch(context.Background(), testURL)
	require.NoError(t, err)
	assert.Equal(t, 1, proxyCalls)
	assert.Equal(t, "Backend Proxy", result.Source)
	assert.Equal(t, "real text", result.Transcript)
}

func TestFetchAllSourcesFail(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer down.Close()

	chain := NewChain(Options{
		SupadataAPIKey:    "key",
		SupadataURL:       down.URL,
		ProxyBaseURL:      down.URL,
		AlternativeAPIURL: down.URL,
		Logger:            zerolog.Nop(),
	})

	_, err := chain.Fetch(context.Background(), testURL)
	require.Error(t, err)

	var exhausted *ExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, testVideoID, exhausted.VideoID)
	assert.Equal(t, []string{"Supadata API", "Backend Proxy", "Alternative API"}, exhausted.Attempts.Labels())

	msg := err.Error()
	assert.Contains(t, msg, "https://youtube.com/watch?v="+testVideoID)
	assert.Contains(t, msg, "Show transcript")
	assert.Contains(t, msg, "Supadata API:")
	assert.Contains(t, msg, "Backend Proxy:")
	assert.Contains(t, msg, "Alternative API:")
}

func TestFetchSkipsUnconfiguredSources(t *testing.T) {
	alt := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transcript":"only source"}`))
	}))
	defer alt.Close()

	// no Supadata key, no proxy URL: only the alternative API is in play
	chain := NewChain(Options{
		AlternativeAPIURL: alt.URL,
		Logger:            zerolog.Nop(),
	})

	result, err := chain.Fetch(context.Background(), testVideoID)
	require.NoError(t, err)
	assert.Equal(t, "Alternative API", result.Source)
}
