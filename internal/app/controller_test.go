package app

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guiyumin/tubenotes/internal/core/notes"
	"github.com/guiyumin/tubenotes/internal/core/transcript"
)

type fakeFetcher struct {
	result *transcript.Result
	err    error
	calls  int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*transcript.Result, error) {
	f.calls++
	return f.result, f.err
}

type fakeGenerator struct {
	sections []notes.Section
	err      error
}

func (f *fakeGenerator) Generate(ctx context.Context, text string) ([]notes.Section, error) {
	return f.sections, f.err
}

type fakeImages struct {
	ref      string
	err      error
	calls    int
	colorful int
}

func (f *fakeImages) Generate(ctx context.Context, d string) (string, error) {
	f.calls++
	return f.ref, f.err
}

func (f *fakeImages) GenerateColorful(ctx context.Context, d string) (string, error) {
	f.colorful++
	return f.ref, f.err
}

type hintedError struct{ hint string }

func (e *hintedError) Error() string { return "provider blew up" }
func (e *hintedError) Hint() string  { return e.hint }

func sampleSections() []notes.Section {
	return []notes.Section{
		{Title: "One", Summary: "s1", KeyPoints: []string{"a"}, Visual: notes.VisualElement{Type: "icon", Description: "a sun"}},
		{Title: "Two", Summary: "s2", KeyPoints: []string{"b"}, Visual: notes.VisualElement{Type: "diagram", Description: "two circles"}},
	}
}

func newController(f *fakeFetcher, g *fakeGenerator, img *fakeImages) *Controller {
	return New(f, g, img, zerolog.Nop())
}

func TestProcessURLHappyPath(t *testing.T) {
	f := &fakeFetcher{result: &transcript.Result{Transcript: "text", VideoTitle: "Title", VideoID: "x", Source: "Supadata API"}}
	c := newController(f, &fakeGenerator{sections: sampleSections()}, &fakeImages{})

	err := c.ProcessURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, StepResults, c.Step())
	assert.Equal(t, "Title", c.VideoTitle())
	assert.Len(t, c.Sections(), 2)
	assert.Equal(t, ImageUnrequested, c.ImageState(0).Status)
	assert.Empty(t, c.InputError())
}

func TestProcessURLRejectsInvalidGate(t *testing.T) {
	f := &fakeFetcher{}
	c := newController(f, &fakeGenerator{}, &fakeImages{})

	err := c.ProcessURL(context.Background(), "https://vimeo.com/123")
	require.Error(t, err)
	assert.Equal(t, StepInput, c.Step())
	assert.Zero(t, f.calls, "gate failure must not reach the chain")
	assert.Contains(t, c.InputError(), "valid YouTube URL")
}

func TestProcessURLTranscriptFailureReturnsToInput(t *testing.T) {
	f := &fakeFetcher{err: errors.New("Unable to fetch transcript automatically")}
	c := newController(f, &fakeGenerator{}, &fakeImages{})

	err := c.ProcessURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Equal(t, StepInput, c.Step())
	assert.Contains(t, c.InputError(), "Unable to fetch transcript")
}

func TestProcessURLNotesFailureShowsGenericMessage(t *testing.T) {
	f := &fakeFetcher{result: &transcript.Result{Transcript: "text", VideoID: "x"}}
	g := &fakeGenerator{err: notes.ErrSchemaViolation}
	c := newController(f, g, &fakeImages{})

	err := c.ProcessURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Equal(t, StepInput, c.Step())
	assert.Equal(t, "Failed to generate visual notes. Please try again.", c.InputError())
}

func TestProcessTranscriptManualMode(t *testing.T) {
	f := &fakeFetcher{}
	c := newController(f, &fakeGenerator{sections: sampleSections()}, &fakeImages{})

	err := c.ProcessTranscript(context.Background(), "pasted text")
	require.NoError(t, err)
	assert.Equal(t, StepResults, c.Step())
	assert.Equal(t, "Manual Transcript", c.VideoTitle())
	assert.Zero(t, f.calls)
}

func TestProcessTranscriptEmpty(t *testing.T) {
	c := newController(&fakeFetcher{}, &fakeGenerator{}, &fakeImages{})
	err := c.ProcessTranscript(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, StepInput, c.Step())
}

func TestGenerateImageSuccessAndFailure(t *testing.T) {
	img := &fakeImages{ref: "data:image/png;base64,xyz"}
	c := newController(&fakeFetcher{}, &fakeGenerator{sections: sampleSections()}, img)
	require.NoError(t, c.ProcessTranscript(context.Background(), "text"))

	c.GenerateImage(context.Background(), 0, false)
	state := c.ImageState(0)
	assert.Equal(t, ImageSucceeded, state.Status)
	assert.Equal(t, "data:image/png;base64,xyz", state.Ref)

	// Other sections are untouched.
	assert.Equal(t, ImageUnrequested, c.ImageState(1).Status)

	img.err = &hintedError{hint: "Rate limit exceeded. Please try again in a moment."}
	c.GenerateImage(context.Background(), 1, false)
	state = c.ImageState(1)
	assert.Equal(t, ImageFailed, state.Status)
	assert.Equal(t, "Rate limit exceeded. Please try again in a moment.", state.Hint)
}

func TestGenerateImageColorfulUsesColorfulPath(t *testing.T) {
	img := &fakeImages{ref: "https://cdn/x.png"}
	c := newController(&fakeFetcher{}, &fakeGenerator{sections: sampleSections()}, img)
	require.NoError(t, c.ProcessTranscript(context.Background(), "text"))

	c.GenerateImage(context.Background(), 0, true)
	assert.Equal(t, 1, img.colorful)
	assert.Zero(t, img.calls)
}

func TestAutoGenerateImageRunsExactlyOnce(t *testing.T) {
	img := &fakeImages{ref: "r"}
	c := newController(&fakeFetcher{}, &fakeGenerator{sections: sampleSections()}, img)
	require.NoError(t, c.ProcessTranscript(context.Background(), "text"))

	c.AutoGenerateImage(context.Background(), 0)
	c.AutoGenerateImage(context.Background(), 0)
	c.AutoGenerateImage(context.Background(), 0)
	assert.Equal(t, 1, img.calls, "auto-generation must not re-trigger once the section left unrequested")
}

func TestRegenerateAfterFailureStartsFresh(t *testing.T) {
	img := &fakeImages{err: errors.New("down")}
	c := newController(&fakeFetcher{}, &fakeGenerator{sections: sampleSections()}, img)
	require.NoError(t, c.ProcessTranscript(context.Background(), "text"))

	c.GenerateImage(context.Background(), 0, false)
	assert.Equal(t, ImageFailed, c.ImageState(0).Status)

	img.err = nil
	img.ref = "second try"
	c.GenerateImage(context.Background(), 0, false)
	assert.Equal(t, ImageSucceeded, c.ImageState(0).Status)
	assert.Equal(t, "second try", c.ImageState(0).Ref)
	assert.Equal(t, 2, img.calls)
}

func TestStartOverResetsEverything(t *testing.T) {
	c := newController(&fakeFetcher{}, &fakeGenerator{sections: sampleSections()}, &fakeImages{ref: "r"})
	require.NoError(t, c.ProcessTranscript(context.Background(), "text"))
	c.GenerateImage(context.Background(), 0, false)
	firstRun := c.RunID()

	c.StartOver()

	assert.Equal(t, StepInput, c.Step())
	assert.Empty(t, c.Sections())
	assert.Empty(t, c.VideoTitle())
	assert.Equal(t, ImageUnrequested, c.ImageState(0).Status)
	assert.NotEqual(t, firstRun, c.RunID())
}
