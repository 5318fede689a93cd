package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/guiyumin/tubenotes/internal/config"
)

// newLogger builds the process logger from config: console writer when
// LOG_PRETTY is set, plain JSON otherwise (e.g. under systemd).
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.LogPretty {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}
