package sdl

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestKeymap(t *testing.T) {
	layout := []struct {
		code sdl.Scancode
		key  int8
	}{
		{sdl.SCANCODE_1, 0x1}, {sdl.SCANCODE_2, 0x2}, {sdl.SCANCODE_3, 0x3}, {sdl.SCANCODE_4, 0xC},
		{sdl.SCANCODE_Q, 0x4}, {sdl.SCANCODE_W, 0x5}, {sdl.SCANCODE_E, 0x6}, {sdl.SCANCODE_R, 0xD},
		{sdl.SCANCODE_A, 0x7}, {sdl.SCANCODE_S, 0x8}, {sdl.SCANCODE_D, 0x9}, {sdl.SCANCODE_F, 0xE},
		{sdl.SCANCODE_Z, 0xA}, {sdl.SCANCODE_X, 0x0}, {sdl.SCANCODE_C, 0xB}, {sdl.SCANCODE_V, 0xF},
	}

	seen := map[int8]bool{}
	for _, l := range layout {
		assert.Equal(t, l.key, keymap(l.code))
		seen[l.key] = true
	}
	assert.Equal(t, 16, len(seen))
	assert.Equal(t, int8(-1), keymap(sdl.SCANCODE_P))
}
