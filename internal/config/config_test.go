package config

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mnafees/chopper/pkg/clock"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, err := ParseFlags([]string{"pong.ch8"})

		assert.NoError(t, err)
		assert.Equal(t, "pong.ch8", opts.ROM)
		assert.Equal(t, FrontendSDL, opts.Frontend)
		assert.Equal(t, clock.DefaultInstructionHz, opts.InstructionHz)
		assert.Equal(t, defaultScale, opts.Scale)
		assert.False(t, opts.Clip)
		assert.False(t, opts.SkipIllegal)
	})

	t.Run("all flags", func(t *testing.T) {
		opts, err := ParseFlags([]string{
			"-frontend", "term", "-hz", "1000", "-scale", "8",
			"-clip", "-skip-illegal", "-debug", "-q", "tetris.ch8",
		})

		assert.NoError(t, err)
		assert.Equal(t, "tetris.ch8", opts.ROM)
		assert.Equal(t, FrontendTerm, opts.Frontend)
		assert.Equal(t, 1000, opts.InstructionHz)
		assert.Equal(t, 8, opts.Scale)
		assert.True(t, opts.Clip)
		assert.True(t, opts.SkipIllegal)
		assert.True(t, opts.Debug)
		assert.True(t, opts.Quiet)
	})
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		errContain string
	}{
		{name: "no program", args: nil, errContain: "exactly one"},
		{name: "two programs", args: []string{"a.ch8", "b.ch8"}, errContain: "exactly one"},
		{name: "unknown frontend", args: []string{"-frontend", "vga", "a.ch8"}, errContain: "unsupported frontend"},
		{name: "zero rate", args: []string{"-hz", "0", "a.ch8"}, errContain: "instruction rate"},
		{name: "negative scale", args: []string{"-scale", "-1", "a.ch8"}, errContain: "scale"},
		{name: "unknown flag", args: []string{"-turbo", "a.ch8"}, errContain: "turbo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)

			assert.Error(t, err)
			assert.ErrorContains(t, err, tt.errContain)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))

			var buf bytes.Buffer
			usageErr.ShowUsage(&buf)
			assert.Contains(t, buf.String(), "usage: chopper")
			assert.Contains(t, buf.String(), "-frontend")
		})
	}
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}
