package internal

// Display dimensions in pixels
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Frame is a 64 px x 32 px monochrome image, one byte per pixel holding 0 or
// 1, indexed x + y*ScreenWidth.
type Frame [ScreenWidth * ScreenHeight]uint8

// At reports whether the pixel at (x, y) is lit. Coordinates outside the
// frame read as unlit.
func (f *Frame) At(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	return f[x+y*ScreenWidth] == 1
}

type display struct {
	pixels Frame
	dirty  bool
	clip   bool // drop sprite pixels past the right and bottom edges instead of wrapping
}

func (d *display) clear() {
	d.pixels = Frame{}
	d.dirty = true
}

// drawSprite XORs the rows of sprite onto the display with its top left
// corner at (x, y), most significant bit first. It returns whether any lit
// pixel was turned off.
func (d *display) drawSprite(x, y uint8, sprite []byte) bool {
	collision := false
	originX := int(x) % ScreenWidth
	originY := int(y) % ScreenHeight

	for row, bits := range sprite {
		py := originY + row
		if py >= ScreenHeight {
			if d.clip {
				break
			}
			py %= ScreenHeight
		}
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := originX + col
			if px >= ScreenWidth {
				if d.clip {
					break
				}
				px %= ScreenWidth
			}
			idx := px + py*ScreenWidth
			if d.pixels[idx] == 1 {
				collision = true
			}
			d.pixels[idx] ^= 1
		}
	}
	d.dirty = true
	return collision
}
