// Package logging sets up the zerolog loggers used by the command line
// tools
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// ParseLevel converts a level name into a zerolog.Level. Names are
// case insensitive, and empty or unknown names result in
// zerolog.InfoLevel.
func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

// IsTerminal returns whether out is a file attached to a terminal
func IsTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// New returns a logger writing to out at the argument level. If
// console is true, entries are written in human readable console
// format, colored only when out is a terminal. Otherwise they are
// written as JSON lines.
func New(out io.Writer, level string, console bool) zerolog.Logger {
	w := out
	if console {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    !IsTerminal(out),
		}
	}

	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}
