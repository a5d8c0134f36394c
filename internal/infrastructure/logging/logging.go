// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// Setup replaces log.Logger with a logger writing to stderr.
func Setup(level, format string) error {
	return SetupWriter(os.Stderr, level, format)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(out io.Writer, level, format string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	var w io.Writer
	switch strings.ToLower(format) {
	case FormatJSON:
		w = out
	case FormatText, "":
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: out != os.Stderr}
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	ctx := zerolog.New(w).Level(lvl).With().Timestamp()
	if lvl == zerolog.DebugLevel {
		ctx = ctx.Caller().Int("pid", os.Getpid())
	}
	log.Logger = ctx.Logger()
	return nil
}

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case zerolog.LevelDebugValue:
		return zerolog.DebugLevel, nil
	case zerolog.LevelInfoValue, "":
		return zerolog.InfoLevel, nil
	case zerolog.LevelWarnValue:
		return zerolog.WarnLevel, nil
	case zerolog.LevelErrorValue:
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
	}
}
