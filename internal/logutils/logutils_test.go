package logutils

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		verbose bool
		want    zerolog.Level
		err     bool
	}{
		{name: "default", in: "", want: zerolog.WarnLevel},
		{name: "verbose wins", in: "error", verbose: true, want: zerolog.DebugLevel},
		{name: "case insensitive", in: "INFO", want: zerolog.InfoLevel},
		{name: "disabled", in: "disabled", want: zerolog.Disabled},
		{name: "unknown", in: "loud", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Level(tt.in, tt.verbose)
			if tt.err {
				assert.ErrorIs(t, err, ErrUnknownLevel)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, l)
		})
	}
}

func TestSetup(t *testing.T) {
	old := log.Logger
	oldLevel := zerolog.GlobalLevel()
	defer func() {
		log.Logger = old
		zerolog.SetGlobalLevel(oldLevel)
	}()

	buf := &bytes.Buffer{}
	Setup(buf, zerolog.WarnLevel)

	log.Debug().Msg("hidden")
	log.Warn().Str("target", "bob").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "bob")
}
