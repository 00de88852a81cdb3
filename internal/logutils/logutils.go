package logutils

import (
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrUnknownLevel = errors.New("unknown log level, expected (debug, info, warn, error, disabled)")

// Level resolves the configured level name; verbose always wins.
func Level(name string, verbose bool) (zerolog.Level, error) {
	if verbose {
		return zerolog.DebugLevel, nil
	}
	if strings.TrimSpace(name) == "" {
		return zerolog.WarnLevel, nil
	}

	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return zerolog.NoLevel, errors.Wrapf(ErrUnknownLevel, "got %q", name)
	}

	return l, nil
}

// Setup points the global logger at a human readable writer on w.
func Setup(w io.Writer, level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger()
}
