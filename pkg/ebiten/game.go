// Package ebiten runs the VM in a window driven by the Ebitengine game loop.
package ebiten

import (
	"context"
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/mnafees/chopper/internal"
	"github.com/mnafees/chopper/pkg/clock"
	"github.com/retroenv/retrogolib/log"
)

var (
	screenColor = color.RGBA{R: 0x1A, G: 0x23, B: 0x7E, A: 0xFF}
	spriteColor = color.RGBA{R: 0x9F, G: 0xA8, B: 0xDA, A: 0xFF}
)

// keymap uses the same QWERTY layout as the SDL frontend
var keymap = []struct {
	key  ebiten.Key
	code uint8
}{
	{ebiten.Key1, 0x1}, {ebiten.Key2, 0x2}, {ebiten.Key3, 0x3}, {ebiten.Key4, 0xC},
	{ebiten.KeyQ, 0x4}, {ebiten.KeyW, 0x5}, {ebiten.KeyE, 0x6}, {ebiten.KeyR, 0xD},
	{ebiten.KeyA, 0x7}, {ebiten.KeyS, 0x8}, {ebiten.KeyD, 0x9}, {ebiten.KeyF, 0xE},
	{ebiten.KeyZ, 0xA}, {ebiten.KeyX, 0x0}, {ebiten.KeyC, 0xB}, {ebiten.KeyV, 0xF},
}

// Game implements ebiten.Game on top of a VM
type Game struct {
	ctx    context.Context
	vm     *internal.C8VM
	logger *log.Logger
	clock  *clock.Clock
	scale  int

	image  *ebiten.Image
	pixels []byte // RGBA backing store of image
}

// NewGame returns a game executing instructionHz instructions per second,
// drawing every CHIP-8 pixel as a scale x scale square.
func NewGame(vm *internal.C8VM, logger *log.Logger, instructionHz, scale int) *Game {
	return &Game{
		ctx:    context.Background(),
		vm:     vm,
		logger: logger,
		clock:  clock.New(instructionHz, clock.DefaultFrameHz),
		scale:  scale,
		pixels: make([]byte, internal.ScreenWidth*internal.ScreenHeight*4),
	}
}

// Run opens the window and blocks until it is closed, the context is
// cancelled or the VM faults.
func (g *Game) Run(ctx context.Context, title string) error {
	g.ctx = ctx
	ebiten.SetWindowSize(internal.ScreenWidth*g.scale, internal.ScreenHeight*g.scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(g.clock.FrameHz())

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		g.logger.Debug("Window closed")
		return nil
	}
	return err
}

// Update forwards key edges and runs one frame worth of instructions
func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return g.ctx.Err()
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for _, k := range keymap {
		if inpututil.IsKeyJustPressed(k.key) {
			_ = g.vm.Handle(internal.KeyDown{Key: k.code})
		}
		if inpututil.IsKeyJustReleased(k.key) {
			_ = g.vm.Handle(internal.KeyUp{Key: k.code})
		}
	}

	for i, n := 0, g.clock.Budget(); i < n; i++ {
		if err := g.vm.Step(); err != nil {
			return err
		}
	}

	if frame, ok := g.vm.TakeFrame(); ok {
		renderRGBA(g.pixels, &frame)
		if g.image == nil {
			g.image = ebiten.NewImage(internal.ScreenWidth, internal.ScreenHeight)
		}
		g.image.WritePixels(g.pixels)
	}
	return nil
}

// Draw scales the last presented frame onto the window
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(screenColor)
	if g.image == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.image, op)
}

// Layout keeps the logical screen at the scaled CHIP-8 resolution
func (g *Game) Layout(_, _ int) (int, int) {
	return internal.ScreenWidth * g.scale, internal.ScreenHeight * g.scale
}

// renderRGBA converts frame into RGBA pixels in dst
func renderRGBA(dst []byte, frame *internal.Frame) {
	for i, p := range frame {
		c := screenColor
		if p == 1 {
			c = spriteColor
		}
		dst[4*i] = c.R
		dst[4*i+1] = c.G
		dst[4*i+2] = c.B
		dst[4*i+3] = c.A
	}
}
