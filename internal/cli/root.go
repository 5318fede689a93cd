package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guiyumin/tubenotes/internal/app"
	"github.com/guiyumin/tubenotes/internal/config"
	"github.com/guiyumin/tubenotes/internal/core/image"
	"github.com/guiyumin/tubenotes/internal/core/notes"
	"github.com/guiyumin/tubenotes/internal/core/transcript"
	"github.com/guiyumin/tubenotes/internal/version"
)

var (
	fromFile   string
	withImages bool
	colorful   bool
)

var rootCmd = &cobra.Command{
	Use:     "tubenotes [url]",
	Short:   "Turn YouTube videos and transcripts into visual notes",
	Version: version.Version,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && fromFile == "" {
			cmd.Help()
			return
		}
		url := ""
		if len(args) > 0 {
			url = args[0]
		}
		if err := runNotes(url); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVarP(&fromFile, "file", "f", "", "read a transcript from a file instead of fetching")
	rootCmd.Flags().BoolVar(&withImages, "images", false, "generate an illustrative image per section")
	rootCmd.Flags().BoolVar(&colorful, "colorful", false, "use the vibrant image style (implies --images, requires FAL_API_KEY)")
}

func Execute() error {
	return rootCmd.Execute()
}

func runNotes(url string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	generator, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	chain := transcript.NewChain(transcript.Options{
		SupadataAPIKey:    cfg.SupadataAPIKey,
		ProxyBaseURL:      cfg.ProxyBaseURL,
		AlternativeAPIURL: cfg.AlternativeAPIURL,
		Logger:            logger,
	})

	images := image.NewChain(image.Options{
		FalAPIKey:    cfg.FalAPIKey,
		GeminiAPIKey: cfg.GeminiAPIKey,
		Logger:       logger,
	})

	controller := app.New(chain, generator, images, logger)
	ctx := context.Background()

	run := func() error {
		if fromFile != "" {
			data, err := os.ReadFile(fromFile)
			if err != nil {
				return fmt.Errorf("failed to read transcript file: %w", err)
			}
			return controller.ProcessTranscript(ctx, string(data))
		}
		return controller.ProcessURL(ctx, url)
	}

	if err := runWithSpinner(controller, run); err != nil {
		return err
	}

	renderSections(controller)

	if wantImages(withImages, colorful) {
		generateSectionImages(ctx, controller)
	}

	return nil
}

// wantImages reports whether section images should be generated. A style
// choice without --images still means the user wants images.
func wantImages(images, colorfulStyle bool) bool {
	return images || colorfulStyle
}

// newGenerator builds the notes provider from config. The Gemini key check
// happens up front so a missing credential fails before any network work.
func newGenerator(cfg *config.Config) (notes.Generator, error) {
	if cfg.NotesProvider == "gemini" {
		if err := cfg.RequireGemini(); err != nil {
			return nil, err
		}
	}
	return notes.New(cfg.NotesProvider, notes.Config{
		GeminiAPIKey: cfg.GeminiAPIKey,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		OpenAIModel:  cfg.OpenAIModel,
	})
}
