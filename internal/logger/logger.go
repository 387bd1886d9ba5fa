package logger

import (
	"io"
	"os"
	"time"

	"github.com/humanbelnik/popchoice/internal/config"
	"github.com/rs/zerolog"
)

// New builds the root logger. Pretty output goes through zerolog's console
// writer, otherwise one JSON object per line.
func New(cfg config.Log) zerolog.Logger {
	return newWithWriter(cfg, os.Stdout)
}

func newWithWriter(cfg config.Log, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
