package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guiyumin/tubenotes/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if path, err := config.ConfigFilePath(); err == nil {
		fmt.Printf("Config file: %s\n\n", path)
	}

	fmt.Printf("  notes provider:    %s\n", cfg.NotesProvider)
	fmt.Printf("  gemini key:        %s\n", maskKey(cfg.GeminiAPIKey))
	fmt.Printf("  fal.ai key:        %s\n", maskKey(cfg.FalAPIKey))
	fmt.Printf("  supadata key:      %s\n", maskKey(cfg.SupadataAPIKey))
	fmt.Printf("  openai key:        %s\n", maskKey(cfg.OpenAIAPIKey))
	fmt.Printf("  proxy base url:    %s\n", orUnset(cfg.ProxyBaseURL))
	fmt.Printf("  alternative api:   %s\n", orUnset(cfg.AlternativeAPIURL))
	fmt.Printf("  proxy port:        %s\n", cfg.Port)

	return nil
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
