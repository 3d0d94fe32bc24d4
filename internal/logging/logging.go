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
	FormatConsole = "console"
	FormatJSON    = "json"
)

type Options struct {
	Level   string
	Format  string
	NoColor bool
}

// New builds a logger writing to w (stderr when nil).
func New(opts Options, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if strings.TrimSpace(opts.Level) != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatConsole:
		w = zerolog.ConsoleWriter{Out: w, NoColor: opts.NoColor, TimeFormat: time.Kitchen}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q (want console or json)", opts.Format)
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// Init installs the logger as the global zerolog logger.
func Init(opts Options, w io.Writer) error {
	l, err := New(opts, w)
	if err != nil {
		return err
	}
	log.Logger = l
	return nil
}

// InitDefault sets up a pre-flag console logger.
func InitDefault() {
	l, _ := New(Options{Level: "info"}, os.Stderr)
	log.Logger = l
}
