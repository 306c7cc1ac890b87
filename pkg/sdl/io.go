package sdl

import (
	"context"
	"fmt"
	"time"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/pkg/clock"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA
)

// IO is the input/output abstraction layer for the VM
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface

	vm        *internal.C8VM
	logger    *log.Logger
	clock     *clock.Clock
	pixelSize int32
}

// NewIO returns a new I/O instance for the SDL frontend
func NewIO(vm *internal.C8VM, logger *log.Logger, instructionHz, pixelSize int) *IO {
	return &IO{
		vm:        vm,
		logger:    logger,
		clock:     clock.New(instructionHz, clock.DefaultFrameHz),
		pixelSize: int32(pixelSize),
	}
}

// SetupWindow initialises and sets up the main SDL window
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		internal.ScreenWidth*io.pixelSize, internal.ScreenHeight*io.pixelSize, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}
	_ = io.surface.FillRect(nil, screenColor)
	return io.window.UpdateSurface()
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.window != nil {
		_ = io.window.Destroy()
	}
	sdl.Quit()
}

// Loop is the main application loop. It returns when the window is closed,
// the context is cancelled or the VM faults.
func (io *IO) Loop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(io.clock.FrameHz()))
	defer ticker.Stop()

	for {
		if !io.pollEvents() {
			io.logger.Debug("Window closed")
			return nil
		}

		for i, n := 0, io.clock.Budget(); i < n; i++ {
			if err := io.vm.Step(); err != nil {
				return err
			}
		}

		if frame, ok := io.vm.TakeFrame(); ok {
			if err := io.draw(&frame); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// pollEvents forwards pending keyboard events to the VM and returns false
// once the window was asked to close.
func (io *IO) pollEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			code := keymap(t.Keysym.Scancode)
			if code == -1 {
				continue
			}
			key := uint8(code)
			switch t.GetType() {
			case sdl.KEYDOWN:
				_ = io.vm.Handle(internal.KeyDown{Key: key})
			case sdl.KEYUP:
				_ = io.vm.Handle(internal.KeyUp{Key: key})
			}
		case *sdl.QuitEvent:
			return false
		}
	}
	return true
}

// Draws the given frame on screen
func (io *IO) draw(frame *internal.Frame) error {
	_ = io.surface.FillRect(nil, screenColor)
	for w := int32(0); w < internal.ScreenWidth; w++ {
		for h := int32(0); h < internal.ScreenHeight; h++ {
			if frame.At(int(w), int(h)) {
				rect := &sdl.Rect{X: w * io.pixelSize, Y: h * io.pixelSize, W: io.pixelSize, H: io.pixelSize}
				_ = io.surface.FillRect(rect, spriteColor)
			}
		}
	}
	return io.window.UpdateSurface()
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// Below we have a mapping QWERTY keyboard to the CHIP-8 keypad
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
func keymap(code sdl.Scancode) int8 {
	switch code {
	case sdl.SCANCODE_1:
		return 0x1
	case sdl.SCANCODE_2:
		return 0x2
	case sdl.SCANCODE_3:
		return 0x3
	case sdl.SCANCODE_4:
		return 0xC
	case sdl.SCANCODE_Q:
		return 0x4
	case sdl.SCANCODE_W:
		return 0x5
	case sdl.SCANCODE_E:
		return 0x6
	case sdl.SCANCODE_R:
		return 0xD
	case sdl.SCANCODE_A:
		return 0x7
	case sdl.SCANCODE_S:
		return 0x8
	case sdl.SCANCODE_D:
		return 0x9
	case sdl.SCANCODE_F:
		return 0xE
	case sdl.SCANCODE_Z:
		return 0xA
	case sdl.SCANCODE_X:
		return 0x0
	case sdl.SCANCODE_C:
		return 0xB
	case sdl.SCANCODE_V:
		return 0xF
	default:
		return -1
	}
}
