package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the service logger. level falls back to debug when it does not
// parse; the development environment gets human-readable console output.
func New(level, environment string) zerolog.Logger {
	return newLogger(os.Stderr, level, environment)
}

func newLogger(w io.Writer, level, environment string) zerolog.Logger {
	// For Google Cloud Logging, the level field name should be "severity".
	zerolog.LevelFieldName = "severity"
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(w).With().Timestamp().Logger()

	// Use ConsoleWriter for local development for more readable logs.
	if environment == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w, NoColor: true})
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.DebugLevel
	}
	return logger.Level(lvl)
}
