package main

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/internal/config"
	"github.com/mnafees/chopper/pkg/ebiten"
	"github.com/mnafees/chopper/pkg/sdl"
	"github.com/mnafees/chopper/pkg/term"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

const windowTitle = "Chopper | CHIP-8 Emulator"

func init() {
	// SDL and Ebitengine expect window handling on the main OS thread
	runtime.LockOSThread()
}

func main() {
	ctx := app.Context()

	opts, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stderr)
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err := run(ctx, logger, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return
		}
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts config.Options) error {
	data, err := os.ReadFile(opts.ROM)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	vm := internal.NewC8VM(vmOptions(opts)...)
	if err := vm.Load(data); err != nil {
		return fmt.Errorf("loading program '%s': %w", opts.ROM, err)
	}
	logger.Info("Program loaded",
		log.String("file", opts.ROM),
		log.Int("size", len(data)),
		log.String("frontend", opts.Frontend),
		log.Int("hz", opts.InstructionHz))

	switch opts.Frontend {
	case config.FrontendEbiten:
		return ebiten.NewGame(vm, logger, opts.InstructionHz, opts.Scale).Run(ctx, windowTitle)

	case config.FrontendTerm:
		t := term.New(vm, logger, opts.InstructionHz)
		if err := t.Start(); err != nil {
			return err
		}
		defer t.Stop()
		return t.Loop(ctx)

	default:
		io := sdl.NewIO(vm, logger, opts.InstructionHz, opts.Scale)
		defer io.Destroy()
		if err := io.SetupWindow(windowTitle); err != nil {
			return err
		}
		return io.Loop(ctx)
	}
}

func vmOptions(opts config.Options) []internal.Option {
	var vmOpts []internal.Option
	if opts.Clip {
		vmOpts = append(vmOpts, internal.WithClipping())
	}
	if opts.SkipIllegal {
		vmOpts = append(vmOpts, internal.WithSkipIllegal())
	}
	return vmOpts
}
