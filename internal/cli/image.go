package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guiyumin/tubenotes/internal/config"
	"github.com/guiyumin/tubenotes/internal/core/image"
)

var imageColorful bool

var imageCmd = &cobra.Command{
	Use:   "image <description>",
	Short: "Generate a single image from a description",
	Long: `Generate one image from a free-text description.

The standard style tries fal.ai first (when FAL_API_KEY is set) and falls
back to Gemini Imagen. The --colorful style uses fal.ai's Nano Banana
endpoint only, with no fallback.

Examples:
  tubenotes image "a flowchart with three boxes: input, process, output"
  tubenotes image --colorful "a mind map of the solar system"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runImage(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	imageCmd.Flags().BoolVar(&imageColorful, "colorful", false, "use the vibrant image style (requires FAL_API_KEY)")
	rootCmd.AddCommand(imageCmd)
}

func runImage(description string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	chain := image.NewChain(image.Options{
		FalAPIKey:    cfg.FalAPIKey,
		GeminiAPIKey: cfg.GeminiAPIKey,
		Logger:       logger,
	})

	ctx := context.Background()
	var ref string
	if imageColorful {
		ref, err = chain.GenerateColorful(ctx, description)
	} else {
		ref, err = chain.Generate(ctx, description)
	}
	if err != nil {
		return err
	}

	fmt.Println(ref)
	return nil
}
