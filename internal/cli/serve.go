package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guiyumin/tubenotes/internal/config"
	"github.com/guiyumin/tubenotes/internal/extractor/youtube"
	"github.com/guiyumin/tubenotes/internal/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the transcript proxy server",
	Long: `Run the CORS-enabled transcript proxy.

The proxy wraps the YouTube caption extractor and exposes it as JSON:

  GET /api/youtube-transcript/:videoId
  GET /health

Point PROXY_BASE_URL at it so the transcript source chain can use it as a
fallback when the hosted API is unavailable.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (defaults to PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	port := servePort
	if port == "" {
		port = cfg.Port
	}

	srv := server.New(youtube.NewExtractor(), logger)
	return srv.Run(":" + port)
}
