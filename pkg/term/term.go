// Package term runs the VM inside a text terminal. The display is drawn with
// half block characters, two CHIP-8 rows per text line.
package term

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/pkg/clock"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	keyEscape = 0x1B
	keyCtrlC  = 0x03

	// Terminals report no key releases, a key counts as held for this many
	// frames after its last byte arrived.
	holdFrames = 6

	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

var keymap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Terminal is a frontend reading raw stdin and writing ANSI frames to stdout
type Terminal struct {
	vm     *internal.C8VM
	logger *log.Logger
	clock  *clock.Clock
	keys   keyTracker

	fd       int
	out      io.Writer
	oldState *term.State

	input   chan byte
	stopCh  chan struct{}
	stopped sync.Once
	done    chan struct{}
}

// New returns a terminal frontend executing instructionHz instructions per second
func New(vm *internal.C8VM, logger *log.Logger, instructionHz int) *Terminal {
	return &Terminal{
		vm:     vm,
		logger: logger,
		clock:  clock.New(instructionHz, clock.DefaultFrameHz),
		keys:   keyTracker{vm: vm},
		fd:     int(os.Stdin.Fd()),
		out:    os.Stdout,
		input:  make(chan byte, 64),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start puts stdin into raw non blocking mode and starts reading it
func (t *Terminal) Start() error {
	if !term.IsTerminal(t.fd) {
		return errors.New("stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	t.oldState = oldState

	if err := unix.SetNonblock(t.fd, true); err != nil {
		_ = term.Restore(t.fd, t.oldState)
		t.oldState = nil
		return fmt.Errorf("setting nonblocking stdin: %w", err)
	}

	_, _ = io.WriteString(t.out, clearScreen+hideCursor)
	go t.read()
	return nil
}

// read sends stdin bytes to the loop until stopped
func (t *Terminal) read() {
	defer close(t.done)
	buf := make([]byte, 16)

	for {
		select {
		case <-t.stopCh:
			return
		default:
		}

		n, err := unix.Read(t.fd, buf)
		for i := 0; i < n; i++ {
			select {
			case t.input <- buf[i]:
			case <-t.stopCh:
				return
			}
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK || (err == nil && n == 0) {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			t.logger.Error("Reading stdin failed", log.Err(err))
			return
		}
	}
}

// Stop ends reading and restores the terminal state
func (t *Terminal) Stop() {
	t.stopped.Do(func() {
		close(t.stopCh)
	})
	if t.oldState == nil {
		return
	}
	<-t.done
	_ = unix.SetNonblock(t.fd, false)
	_ = term.Restore(t.fd, t.oldState)
	t.oldState = nil
	_, _ = io.WriteString(t.out, showCursor+"\r\n")
}

// Loop runs the VM until Esc or Ctrl-C is pressed, the context is cancelled
// or the VM faults.
func (t *Terminal) Loop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(t.clock.FrameHz()))
	defer ticker.Stop()

	for {
		t.keys.tick()
		if quit := t.drainInput(); quit {
			t.logger.Debug("Quit key pressed")
			return nil
		}

		for i, n := 0, t.clock.Budget(); i < n; i++ {
			if err := t.vm.Step(); err != nil {
				return err
			}
		}

		if frame, ok := t.vm.TakeFrame(); ok {
			if _, err := io.WriteString(t.out, cursorHome+renderFrame(&frame)); err != nil {
				return fmt.Errorf("writing frame: %w", err)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// drainInput handles all bytes read since the last frame and reports
// whether a quit key was among them.
func (t *Terminal) drainInput() bool {
	for {
		select {
		case b := <-t.input:
			if b == keyEscape || b == keyCtrlC {
				return true
			}
			if code, ok := keymap[lower(b)]; ok {
				t.keys.press(code)
			}
		default:
			return false
		}
	}
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}

// keyTracker turns repeated key bytes into press and release events
type keyTracker struct {
	vm   *internal.C8VM
	held [internal.KeyCount]int // frames left until release
}

func (k *keyTracker) press(code uint8) {
	if k.held[code] == 0 {
		_ = k.vm.Handle(internal.KeyDown{Key: code})
	}
	k.held[code] = holdFrames
}

func (k *keyTracker) tick() {
	for code := range k.held {
		if k.held[code] == 0 {
			continue
		}
		k.held[code]--
		if k.held[code] == 0 {
			_ = k.vm.Handle(internal.KeyUp{Key: uint8(code)})
		}
	}
}

// renderFrame draws frame as ScreenHeight/2 lines of half block characters
func renderFrame(frame *internal.Frame) string {
	var sb strings.Builder
	for y := 0; y < internal.ScreenHeight; y += 2 {
		for x := 0; x < internal.ScreenWidth; x++ {
			top, bottom := frame.At(x, y), frame.At(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
