// Package app sequences the input → processing → results flow: transcript
// acquisition, note generation, and per-section image generation. It owns all
// user-visible error text.
package app

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guiyumin/tubenotes/internal/core/notes"
	"github.com/guiyumin/tubenotes/internal/core/transcript"
)

// Step is the controller's coarse state.
type Step string

const (
	StepInput      Step = "input"
	StepProcessing Step = "processing"
	StepResults    Step = "results"
)

// ImageStatus tracks one section's image lifecycle.
type ImageStatus string

const (
	ImageUnrequested ImageStatus = "unrequested"
	ImagePending     ImageStatus = "pending"
	ImageSucceeded   ImageStatus = "succeeded"
	ImageFailed      ImageStatus = "failed"
)

// SectionImage is the per-section image state. Ref is opaque: a data URI or
// a remote URL depending on which provider answered.
type SectionImage struct {
	Status ImageStatus
	Ref    string
	Hint   string // user-facing failure hint when Status is ImageFailed
}

// TranscriptFetcher is the transcript source chain's contract.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, url string) (*transcript.Result, error)
}

// ImageGenerator is the image chain's contract.
type ImageGenerator interface {
	Generate(ctx context.Context, description string) (string, error)
	GenerateColorful(ctx context.Context, description string) (string, error)
}

// Hinter exposes a user-facing hint for a classified failure.
type Hinter interface {
	Hint() string
}

// Controller drives one processing run at a time. All per-run state is
// discarded on StartOver.
type Controller struct {
	fetcher   TranscriptFetcher
	generator notes.Generator
	images    ImageGenerator
	logger    zerolog.Logger

	mu         sync.RWMutex
	runID      string
	step       Step
	stage      string
	inputErr   string
	transcript string
	videoTitle string
	sections   []notes.Section
	imageState []SectionImage
	imageBusy  []bool
}

// New creates a Controller at the input step.
func New(fetcher TranscriptFetcher, generator notes.Generator, images ImageGenerator, logger zerolog.Logger) *Controller {
	return &Controller{
		fetcher:   fetcher,
		generator: generator,
		images:    images,
		logger:    logger,
		runID:     uuid.NewString(),
		step:      StepInput,
	}
}

// ProcessURL runs the full URL flow: gate, fetch, generate. On any failure
// the controller returns to the input step with an inline error message.
func (c *Controller) ProcessURL(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		return c.failInput("Please enter a YouTube URL.")
	}
	if !transcript.IsYouTubeURL(url) {
		return c.failInput("Please enter a valid YouTube URL (e.g., https://youtube.com/watch?v=...)")
	}

	c.setStep(StepProcessing)
	c.setStage("Fetching transcript from YouTube...")

	result, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		// The chain's aggregated message is the one error shown to the user.
		return c.failInput(err.Error())
	}

	title := result.VideoTitle
	if title == "" {
		title = "YouTube Video"
	}
	return c.generateNotes(ctx, result.Transcript, title)
}

// ProcessTranscript runs the manual-paste flow, bypassing the source chain.
func (c *Controller) ProcessTranscript(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return c.failInput("Please paste a transcript before generating notes.")
	}

	c.setStep(StepProcessing)
	return c.generateNotes(ctx, text, "Manual Transcript")
}

func (c *Controller) generateNotes(ctx context.Context, text, title string) error {
	c.setStage("Analyzing content and generating visual notes...")

	sections, err := c.generator.Generate(ctx, text)
	if err != nil {
		// Raw parse errors are logged, never shown.
		c.logger.Error().Str("run_id", c.RunID()).Err(err).Msg("note generation failed")
		return c.failInput("Failed to generate visual notes. Please try again.")
	}

	c.setStage("Finalizing your visual notes...")

	c.mu.Lock()
	c.transcript = text
	c.videoTitle = title
	c.sections = sections
	c.imageState = make([]SectionImage, len(sections))
	c.imageBusy = make([]bool, len(sections))
	for i := range c.imageState {
		c.imageState[i].Status = ImageUnrequested
	}
	c.step = StepResults
	c.stage = ""
	c.mu.Unlock()

	return nil
}

// GenerateImage runs a fresh image attempt for section i; colorful selects
// the vibrant single-provider style. At most one generation is in flight per
// section; a call while one is running is a no-op. Regeneration always starts
// over from the first provider regardless of prior failures.
func (c *Controller) GenerateImage(ctx context.Context, i int, colorful bool) {
	c.mu.Lock()
	if i < 0 || i >= len(c.sections) || c.imageBusy[i] {
		c.mu.Unlock()
		return
	}
	c.imageBusy[i] = true
	c.imageState[i] = SectionImage{Status: ImagePending}
	description := c.sections[i].Visual.Description
	c.mu.Unlock()

	var ref string
	var err error
	if colorful {
		ref, err = c.images.GenerateColorful(ctx, description)
	} else {
		ref, err = c.images.Generate(ctx, description)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.imageBusy[i] = false
	if err != nil {
		hint := "Failed to generate image. Please try again."
		var h Hinter
		if errors.As(err, &h) {
			hint = h.Hint()
		}
		c.logger.Warn().Int("section", i).Err(err).Msg("image generation failed")
		c.imageState[i] = SectionImage{Status: ImageFailed, Hint: hint}
		return
	}
	c.imageState[i] = SectionImage{Status: ImageSucceeded, Ref: ref}
}

// AutoGenerateImage triggers the one-shot auto-generation for section i:
// it runs only when the section is still unrequested, so repeated renders of
// the same run never re-trigger it.
func (c *Controller) AutoGenerateImage(ctx context.Context, i int) {
	c.mu.RLock()
	eligible := i >= 0 && i < len(c.imageState) && c.imageState[i].Status == ImageUnrequested
	c.mu.RUnlock()
	if !eligible {
		return
	}
	c.GenerateImage(ctx, i, false)
}

// StartOver discards all per-run state and returns to the input step.
func (c *Controller) StartOver() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runID = uuid.NewString()
	c.step = StepInput
	c.stage = ""
	c.inputErr = ""
	c.transcript = ""
	c.videoTitle = ""
	c.sections = nil
	c.imageState = nil
	c.imageBusy = nil
}

func (c *Controller) failInput(msg string) error {
	c.mu.Lock()
	c.step = StepInput
	c.stage = ""
	c.inputErr = msg
	c.mu.Unlock()
	return errors.New(msg)
}

func (c *Controller) setStep(s Step) {
	c.mu.Lock()
	c.step = s
	c.inputErr = ""
	c.mu.Unlock()
}

func (c *Controller) setStage(stage string) {
	c.mu.Lock()
	c.stage = stage
	c.mu.Unlock()
}

// RunID identifies the current processing run.
func (c *Controller) RunID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.runID
}

// Step returns the current step.
func (c *Controller) Step() Step {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.step
}

// Stage returns the current processing stage message.
func (c *Controller) Stage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stage
}

// InputError returns the inline error shown at the input step.
func (c *Controller) InputError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inputErr
}

// VideoTitle returns the current run's title.
func (c *Controller) VideoTitle() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.videoTitle
}

// Sections returns the generated note sections in model order.
func (c *Controller) Sections() []notes.Section {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sections
}

// ImageState returns section i's image state.
func (c *Controller) ImageState(i int) SectionImage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.imageState) {
		return SectionImage{Status: ImageUnrequested}
	}
	return c.imageState[i]
}
