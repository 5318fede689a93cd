package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/guiyumin/tubenotes/internal/app"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	summaryColor = color.New(color.FgWhite)
	pointColor   = color.New(color.FgGreen)
	visualColor  = color.New(color.FgMagenta)
	dimColor     = color.New(color.Faint)
	errColor     = color.New(color.FgRed)
)

// renderSections prints the generated notes to the terminal.
func renderSections(controller *app.Controller) {
	fmt.Println()
	titleColor.Printf("Visual Notes: %s\n\n", controller.VideoTitle())

	for i, section := range controller.Sections() {
		titleColor.Printf("%d. %s\n", i+1, section.Title)
		summaryColor.Printf("   %s\n", section.Summary)
		for _, point := range section.KeyPoints {
			pointColor.Printf("   • %s\n", point)
		}
		visualColor.Printf("   ✎ [%s] %s\n\n", section.Visual.Type, section.Visual.Description)
	}
}

// generateSectionImages triggers one image per section, sequentially, and
// prints the resulting reference or failure hint.
func generateSectionImages(ctx context.Context, controller *app.Controller) {
	sections := controller.Sections()
	dimColor.Printf("Generating %d section images...\n\n", len(sections))

	for i := range sections {
		if colorful {
			controller.GenerateImage(ctx, i, true)
		} else {
			controller.AutoGenerateImage(ctx, i)
		}

		state := controller.ImageState(i)
		switch state.Status {
		case app.ImageSucceeded:
			ref := state.Ref
			if len(ref) > 80 {
				ref = ref[:77] + "..."
			}
			pointColor.Printf("  [%d] %s\n", i+1, ref)
		case app.ImageFailed:
			errColor.Printf("  [%d] %s\n", i+1, state.Hint)
		}
	}
	fmt.Println()
}
