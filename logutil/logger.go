package logutil

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds a timestamped logger writing JSON, or human-readable lines when format is console.
func New(w io.Writer, format, level string) zerolog.Logger {
	if format == FormatConsole {
		w = zerolog.ConsoleWriter{ //nolint:exhaustruct
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	return zerolog.New(w).
		Level(ParseZerologLevel(level)).
		With().
		Timestamp().
		Logger()
}
