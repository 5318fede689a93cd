// Package server exposes the transcript proxy: a CORS-enabled JSON API that
// wraps the caption extractor so browser or CLI clients can fetch transcripts
// without hitting YouTube directly.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guiyumin/tubenotes/internal/extractor/youtube"
)

// Server is the transcript proxy HTTP server.
type Server struct {
	fetcher youtube.Fetcher
	logger  zerolog.Logger
	engine  *gin.Engine
}

// New creates the proxy server around a caption fetcher.
func New(fetcher youtube.Fetcher, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		fetcher: fetcher,
		logger:  logger,
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery(), corsMiddleware())

	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/api/youtube-transcript", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
	})
	s.registerTranscriptRoute("/api/youtube-transcript/:videoId")

	return s
}

// registerTranscriptRoute wires the transcript handler for GET and answers
// everything else on the same path with 405.
func (s *Server) registerTranscriptRoute(path string) {
	s.engine.GET(path, s.handleTranscript)
	for _, method := range []string{
		http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodHead,
	} {
		s.engine.Handle(method, path, func(c *gin.Context) {
			c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		})
	}
}

// Handler returns the http.Handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server on addr and blocks.
func (s *Server) Run(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("transcript proxy listening")
	return s.engine.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// corsMiddleware sets permissive CORS headers and short-circuits preflight
// requests with an empty 200.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
