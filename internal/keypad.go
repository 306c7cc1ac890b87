package internal

// KeyCount is the number of keys on the hexadecimal keypad
const KeyCount = 16

// Event is a discrete input message handed to the VM with Handle
type Event interface {
	apply(vm *C8VM) error
}

// KeyDown reports that a keypad key was pressed
type KeyDown struct {
	Key uint8
}

func (e KeyDown) apply(vm *C8VM) error {
	return vm.SetKey(e.Key)
}

// KeyUp reports that a keypad key was released
type KeyUp struct {
	Key uint8
}

func (e KeyUp) apply(vm *C8VM) error {
	return vm.ClearKey(e.Key)
}

type keypad struct {
	pressed [KeyCount]bool

	// Set while an FX0A instruction is blocked. notified is raised by the
	// first press delivered while blocked and key holds its code.
	waiting  bool
	waitReg  uint8
	key      uint8
	notified bool
}

func (k *keypad) press(code uint8) {
	wasPressed := k.pressed[code]
	k.pressed[code] = true
	if k.waiting && !k.notified && !wasPressed {
		k.key = code
		k.notified = true
	}
}

func (k *keypad) release(code uint8) {
	k.pressed[code] = false
}

func (k *keypad) await(reg uint8) {
	k.waiting = true
	k.waitReg = reg
	k.notified = false
}

func (k *keypad) resume() {
	k.waiting = false
	k.notified = false
}

// SetKey marks key code as pressed. Codes above 0xF are rejected.
func (vm *C8VM) SetKey(code uint8) error {
	if code >= KeyCount {
		return ErrInvalidKey
	}
	vm.keypad.press(code)
	return nil
}

// ClearKey marks key code as released. Codes above 0xF are rejected.
func (vm *C8VM) ClearKey(code uint8) error {
	if code >= KeyCount {
		return ErrInvalidKey
	}
	vm.keypad.release(code)
	return nil
}

// KeyPressed returns whether key code is currently held
func (vm *C8VM) KeyPressed(code uint8) bool {
	return vm.keypad.pressed[code&0xF]
}

// Waiting returns whether the VM is blocked on an FX0A instruction
func (vm *C8VM) Waiting() bool {
	return vm.keypad.waiting
}

// Handle applies an input event to the VM
func (vm *C8VM) Handle(ev Event) error {
	return ev.apply(vm)
}
