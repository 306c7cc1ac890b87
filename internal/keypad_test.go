package internal

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeys(t *testing.T) {
	vm := NewC8VM()

	assert.NoError(t, vm.Handle(KeyDown{Key: 0xA}))
	assert.True(t, vm.KeyPressed(0xA))

	assert.NoError(t, vm.Handle(KeyUp{Key: 0xA}))
	assert.False(t, vm.KeyPressed(0xA))

	assert.True(t, errors.Is(vm.SetKey(KeyCount), ErrInvalidKey))
	assert.True(t, errors.Is(vm.Handle(KeyUp{Key: 0x10}), ErrInvalidKey))
}

func TestWaitForKey(t *testing.T) {
	vm := newTestVM(t,
		0xF30A, // 0x200: LD V3, K
		0x6401, // 0x202: LD V4, 1
	)
	vm.delayTimer = 5

	steps(t, vm, 1)
	assert.True(t, vm.Waiting())
	assert.Equal(t, uint16(0x200), vm.PC())
	assert.Equal(t, uint8(5), vm.DelayTimer())

	steps(t, vm, 3)
	assert.True(t, vm.Waiting())
	assert.Equal(t, uint16(0x200), vm.PC())
	assert.Equal(t, uint8(5), vm.DelayTimer())
	assert.Equal(t, uint8(0), vm.V(4))

	assert.NoError(t, vm.Handle(KeyDown{Key: 7}))
	assert.NoError(t, vm.Handle(KeyDown{Key: 9}))
	assert.True(t, vm.Waiting())

	steps(t, vm, 1)
	assert.False(t, vm.Waiting())
	assert.Equal(t, uint8(7), vm.V(3))
	assert.Equal(t, uint16(0x202), vm.PC())
	assert.Equal(t, uint8(4), vm.DelayTimer())

	steps(t, vm, 1)
	assert.Equal(t, uint8(1), vm.V(4))
}

func TestWaitForKey_HeldKey(t *testing.T) {
	vm := newTestVM(t, 0xF30A)
	assert.NoError(t, vm.SetKey(2))

	steps(t, vm, 2)
	assert.True(t, vm.Waiting())

	// repeated press events of a held key are not a new press
	assert.NoError(t, vm.SetKey(2))
	steps(t, vm, 1)
	assert.True(t, vm.Waiting())

	assert.NoError(t, vm.ClearKey(2))
	assert.NoError(t, vm.SetKey(2))
	steps(t, vm, 1)
	assert.False(t, vm.Waiting())
	assert.Equal(t, uint8(2), vm.V(3))
}
