package term

import (
	"strings"
	"testing"

	"github.com/mnafees/chopper/internal"
	"github.com/retroenv/retrogolib/assert"
)

func TestRenderFrame(t *testing.T) {
	var frame internal.Frame
	frame[0] = 1                          // (0, 0)
	frame[0+1*internal.ScreenWidth] = 1   // (0, 1)
	frame[1] = 1                          // (1, 0)
	frame[2+1*internal.ScreenWidth] = 1   // (2, 1)
	frame[63+31*internal.ScreenWidth] = 1 // (63, 31)

	out := renderFrame(&frame)
	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")

	assert.Equal(t, internal.ScreenHeight/2, len(lines))
	first := []rune(lines[0])
	assert.Equal(t, internal.ScreenWidth, len(first))
	assert.Equal(t, '█', first[0])
	assert.Equal(t, '▀', first[1])
	assert.Equal(t, '▄', first[2])
	assert.Equal(t, ' ', first[3])

	last := []rune(lines[len(lines)-1])
	assert.Equal(t, '▄', last[63])
}

func TestKeyTracker(t *testing.T) {
	vm := internal.NewC8VM()
	keys := keyTracker{vm: vm}

	keys.press(0x5)
	assert.True(t, vm.KeyPressed(0x5))

	for i := 0; i < holdFrames-1; i++ {
		keys.tick()
	}
	assert.True(t, vm.KeyPressed(0x5))

	// a repeated byte keeps the key held
	keys.press(0x5)
	for i := 0; i < holdFrames-1; i++ {
		keys.tick()
	}
	assert.True(t, vm.KeyPressed(0x5))

	keys.tick()
	assert.False(t, vm.KeyPressed(0x5))
}

func TestDrainInput(t *testing.T) {
	vm := internal.NewC8VM()
	frontend := New(vm, nil, 700)

	frontend.input <- 'W'
	frontend.input <- 'p'
	assert.False(t, frontend.drainInput())
	assert.True(t, vm.KeyPressed(0x5))

	frontend.input <- keyEscape
	assert.True(t, frontend.drainInput())
}
