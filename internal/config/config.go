// Package config handles command line options and logger setup
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/mnafees/chopper/pkg/clock"
	"github.com/retroenv/retrogolib/log"
)

// Supported frontends
const (
	FrontendSDL    = "sdl"
	FrontendEbiten = "ebiten"
	FrontendTerm   = "term"
)

const defaultScale = 20

// Options holds the parsed command line
type Options struct {
	ROM      string
	Frontend string

	InstructionHz int
	Scale         int

	Clip        bool
	SkipIllegal bool

	Debug bool
	Quiet bool
}

// UsageError is returned when the command line can not be used. ShowUsage
// prints the flag help.
type UsageError struct {
	err   error
	usage string
}

func (e *UsageError) Error() string {
	return e.err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.err
}

// ShowUsage writes the usage text to w
func (e *UsageError) ShowUsage(w io.Writer) {
	_, _ = io.WriteString(w, e.usage)
}

// ParseFlags parses the arguments following the program name
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet("chopper", flag.ContinueOnError)
	var output bytes.Buffer
	flags.SetOutput(&output)

	opts := Options{}
	flags.StringVar(&opts.Frontend, "frontend", FrontendSDL, "frontend to run the VM in: sdl, ebiten or term")
	flags.IntVar(&opts.InstructionHz, "hz", clock.DefaultInstructionHz, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", defaultScale, "size of a CHIP-8 pixel in window pixels")
	flags.BoolVar(&opts.Clip, "clip", false, "clip sprites at the screen edges instead of wrapping them")
	flags.BoolVar(&opts.SkipIllegal, "skip-illegal", false, "step over illegal opcodes instead of stopping")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")

	usage := func() string {
		output.Reset()
		fmt.Fprintf(&output, "usage: chopper [options] <CHIP-8 program>\n\n")
		flags.PrintDefaults()
		return output.String()
	}

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{err: err, usage: usage()}
	}
	if flags.NArg() != 1 {
		return opts, &UsageError{err: errors.New("expected exactly one CHIP-8 program"), usage: usage()}
	}
	opts.ROM = flags.Arg(0)

	if err := opts.validate(); err != nil {
		return opts, &UsageError{err: err, usage: usage()}
	}
	return opts, nil
}

func (o Options) validate() error {
	switch o.Frontend {
	case FrontendSDL, FrontendEbiten, FrontendTerm:
	default:
		return fmt.Errorf("unsupported frontend '%s'", o.Frontend)
	}
	if o.InstructionHz <= 0 {
		return fmt.Errorf("instruction rate must be positive, got %d", o.InstructionHz)
	}
	if o.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %d", o.Scale)
	}
	return nil
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
