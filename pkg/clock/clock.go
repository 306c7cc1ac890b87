// Package clock paces CHIP-8 instruction execution against a frontend's
// frame rate.
package clock

// Default rates
const (
	DefaultInstructionHz = 700
	DefaultFrameHz       = 60
)

// Clock hands out per frame instruction budgets so that the long term
// execution rate matches the configured instruction frequency.
type Clock struct {
	instructionHz int
	frameHz       int
	remainder     int // instructions owed to the next frame, scaled by frameHz
}

// New returns a clock running instructionHz instructions per second spread
// over frameHz frames. Non positive rates fall back to the defaults.
func New(instructionHz, frameHz int) *Clock {
	if instructionHz <= 0 {
		instructionHz = DefaultInstructionHz
	}
	if frameHz <= 0 {
		frameHz = DefaultFrameHz
	}
	return &Clock{
		instructionHz: instructionHz,
		frameHz:       frameHz,
	}
}

// Budget returns the number of instructions to execute for the next frame
func (c *Clock) Budget() int {
	c.remainder += c.instructionHz
	n := c.remainder / c.frameHz
	c.remainder %= c.frameHz
	return n
}

// FrameHz returns the frame rate the budgets are computed for
func (c *Clock) FrameHz() int {
	return c.frameHz
}
