package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// CHIP-8 VM constants
const (
	pcStartAddr    = 0x200
	maxProgramSize = totalMemory - pcStartAddr
	stackDepth     = 16
)

// C8VM is an emulated CHIP-8 VM. It is not safe for concurrent use; the
// frontend owning it serialises every call.
type C8VM struct {
	opcode     uint16             // 16-bit opcode of the current instruction
	regV       [16]uint8          // 16 general purpose 8-bit registers
	regI       uint16             // 16-bit register that is generally used to store memory addresses
	delayTimer uint8              // Delay timer
	soundTimer uint8              // Sound timer
	pc         uint16             // Program counter
	sp         uint8              // Stack pointer
	stack      [stackDepth]uint16 // A stack of 16 16-bit values
	memory     *Memory            // 4 KB global memory

	display display
	keypad  keypad

	random      func() uint8 // source of CXNN random bytes
	skipIllegal bool         // treat illegal opcodes as 2 byte no-ops
}

// Option configures a C8VM
type Option func(vm *C8VM)

// WithRandom sets the byte source used by the RND instruction
func WithRandom(random func() uint8) Option {
	return func(vm *C8VM) {
		vm.random = random
	}
}

// WithClipping makes sprites that cross the right or bottom screen edge get
// cut off instead of wrapping around to the opposite side.
func WithClipping() Option {
	return func(vm *C8VM) {
		vm.display.clip = true
	}
}

// WithSkipIllegal makes Step step over illegal opcodes instead of failing
func WithSkipIllegal() Option {
	return func(vm *C8VM) {
		vm.skipIllegal = true
	}
}

// NewC8VM creates a new instance of an emulated CHIP-8 VM
func NewC8VM(opts ...Option) *C8VM {
	vm := &C8VM{
		pc:     pcStartAddr,
		memory: NewMemory(),
	}
	for _, opt := range opts {
		opt(vm)
	}
	if vm.random == nil {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		vm.random = func() uint8 {
			return uint8(rng.Intn(256))
		}
	}
	return vm
}

// Load copies a CHIP-8 program into the VM's memory at the program start address
func (vm *C8VM) Load(data []byte) error {
	if len(data) > maxProgramSize {
		return fmt.Errorf("%w: %d bytes", ErrProgramTooLarge, len(data))
	}
	return vm.memory.WriteBlock(pcStartAddr, data)
}

// LoadWords loads a program given as 16-bit instruction words
func (vm *C8VM) LoadWords(words []uint16) error {
	data := make([]byte, 0, len(words)*2)
	for _, w := range words {
		data = append(data, uint8(w>>8), uint8(w))
	}
	return vm.Load(data)
}

// Step executes a single fetch-decode-execute cycle and decays the timers.
// An all zero opcode is treated as the end of the program and leaves the VM
// untouched. While an FX0A instruction waits for a key Step does nothing.
func (vm *C8VM) Step() error {
	if vm.keypad.waiting {
		if !vm.keypad.notified {
			return nil
		}
		vm.regV[vm.keypad.waitReg] = vm.keypad.key
		vm.keypad.resume()
		vm.pc += 2
		vm.decrementTimers()
		return nil
	}

	pc := vm.pc
	opcode, err := vm.fetch()
	if err != nil {
		return &CycleError{PC: pc, Err: err}
	}
	if opcode == 0x0000 {
		return nil
	}
	vm.opcode = opcode

	if err := vm.execute(); err != nil {
		if !vm.skipIllegal || !errors.Is(err, ErrIllegalOpcode) {
			return &CycleError{PC: pc, Opcode: opcode, Err: err}
		}
		vm.pc = pc + 2
	}
	if vm.keypad.waiting {
		return nil
	}
	vm.decrementTimers()
	return nil
}

func (vm *C8VM) fetch() (uint16, error) {
	hi, err := vm.memory.Read(vm.pc)
	if err != nil {
		return 0, err
	}
	lo, err := vm.memory.Read(vm.pc + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (vm *C8VM) decrementTimers() {
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		vm.soundTimer--
	}
}

// TakeFrame returns the display contents if they changed since the last
// call and marks them as presented.
func (vm *C8VM) TakeFrame() (Frame, bool) {
	if !vm.display.dirty {
		return Frame{}, false
	}
	vm.display.dirty = false
	return vm.display.pixels, true
}

// Display returns a copy of the current display contents
func (vm *C8VM) Display() Frame {
	return vm.display.pixels
}

// PC returns the program counter
func (vm *C8VM) PC() uint16 {
	return vm.pc
}

// I returns the index register
func (vm *C8VM) I() uint16 {
	return vm.regI
}

// V returns the value of register Vx
func (vm *C8VM) V(x uint8) uint8 {
	return vm.regV[x&0xF]
}

// SP returns the stack pointer
func (vm *C8VM) SP() uint8 {
	return vm.sp
}

// DelayTimer returns the value of DT
func (vm *C8VM) DelayTimer() uint8 {
	return vm.delayTimer
}

// SoundTimer returns the value of ST. A non zero value means a tone should play.
func (vm *C8VM) SoundTimer() uint8 {
	return vm.soundTimer
}
