package internal

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func mustRead(t *testing.T, m *Memory, addr uint16) uint8 {
	t.Helper()
	value, err := m.Read(addr)
	assert.NoError(t, err)
	return value
}

func TestNewMemory(t *testing.T) {
	m := NewMemory()

	for i, want := range fontset {
		assert.Equal(t, want, mustRead(t, m, uint16(i)))
	}
	assert.Equal(t, 80, len(fontset))
	assert.Equal(t, uint8(0), mustRead(t, m, 0x050))
	assert.Equal(t, uint8(0), mustRead(t, m, 0xFFF))
}

func TestMemory_ReadWrite(t *testing.T) {
	m := NewMemory()

	assert.NoError(t, m.Write(0xFFF, 0x12))
	assert.Equal(t, uint8(0x12), mustRead(t, m, 0xFFF))

	_, err := m.Read(0x1000)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))

	err = m.Write(0x1000, 0x12)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))

	var addrErr *AddressError
	assert.True(t, errors.As(err, &addrErr))
	assert.Equal(t, 0x1000, addrErr.Addr)
}

func TestMemory_Blocks(t *testing.T) {
	m := NewMemory()

	t.Run("fits", func(t *testing.T) {
		assert.NoError(t, m.WriteBlock(0xFFD, []byte{1, 2, 3}))
		block, err := m.ReadBlock(0xFFD, 3)
		assert.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, block)
	})

	t.Run("past end writes nothing", func(t *testing.T) {
		err := m.WriteBlock(0x100, make([]byte, 0xF01))
		assert.True(t, errors.Is(err, ErrAddressOutOfRange))
		assert.NoError(t, m.Write(0x100, 0xAA))

		err = m.WriteBlock(0xFFE, []byte{9, 9, 9})
		assert.Error(t, err)
		assert.Equal(t, uint8(2), mustRead(t, m, 0xFFE))
		assert.Equal(t, uint8(0xAA), mustRead(t, m, 0x100))
	})

	t.Run("read past end", func(t *testing.T) {
		_, err := m.ReadBlock(0xFFF, 2)
		assert.True(t, errors.Is(err, ErrAddressOutOfRange))
	})
}
