package internal

import "fmt"

func (vm *C8VM) illegalOpcode() error {
	return fmt.Errorf("%w: %04X", ErrIllegalOpcode, vm.opcode)
}

// skipIf advances past the next instruction when cond holds
func (vm *C8VM) skipIf(cond bool) {
	if cond {
		vm.pc += 4
	} else {
		vm.pc += 2
	}
}

// execute runs the instruction held in vm.opcode. An instruction that fails
// leaves registers and memory untouched.
func (vm *C8VM) execute() error {
	x := uint8((vm.opcode >> 8) & 0x000F) // the lower 4 bits of the high byte of the instruction
	y := uint8((vm.opcode >> 4) & 0x000F) // the upper 4 bits of the low byte of the instruction
	n := uint8(vm.opcode & 0x000F)        // the lowest 4 bits of the instruction
	kk := uint8(vm.opcode & 0x00FF)       // the lowest 8 bits of the instruction
	nnn := vm.opcode & 0x0FFF             // the lowest 12 bits of the instruction

	switch vm.opcode & 0xF000 { // Compare against the first 4 bits of the instruction only
	case 0x0000:
		switch vm.opcode {
		case 0x00E0: // CLS
			vm.display.clear()
			vm.pc += 2
		case 0x00EE: // RET
			if vm.sp == 0 {
				return ErrStackUnderflow
			}
			vm.sp--
			vm.pc = vm.stack[vm.sp]
		default:
			return vm.illegalOpcode()
		}
	case 0x1000: // JP nnn
		vm.pc = nnn
	case 0x2000: // CALL nnn
		if vm.sp >= stackDepth {
			return ErrStackOverflow
		}
		vm.stack[vm.sp] = vm.pc + 2
		vm.sp++
		vm.pc = nnn
	case 0x3000: // SE Vx, kk
		vm.skipIf(vm.regV[x] == kk)
	case 0x4000: // SNE Vx, kk
		vm.skipIf(vm.regV[x] != kk)
	case 0x5000: // SE Vx, Vy
		if n != 0 {
			return vm.illegalOpcode()
		}
		vm.skipIf(vm.regV[x] == vm.regV[y])
	case 0x6000: // LD Vx, kk
		vm.regV[x] = kk
		vm.pc += 2
	case 0x7000: // ADD Vx, kk
		vm.regV[x] += kk
		vm.pc += 2
	case 0x8000:
		if err := vm.executeALU(x, y, n); err != nil {
			return err
		}
		vm.pc += 2
	case 0x9000: // SNE Vx, Vy
		if n != 0 {
			return vm.illegalOpcode()
		}
		vm.skipIf(vm.regV[x] != vm.regV[y])
	case 0xA000: // LD I, nnn
		vm.regI = nnn
		vm.pc += 2
	case 0xB000: // JP V0, nnn
		vm.pc = nnn + uint16(vm.regV[0])
	case 0xC000: // RND Vx, kk
		vm.regV[x] = vm.random() & kk
		vm.pc += 2
	case 0xD000: // DRW Vx, Vy, n
		if err := vm.drawSprite(vm.regV[x], vm.regV[y], n); err != nil {
			return err
		}
		vm.pc += 2
	case 0xE000:
		switch kk {
		case 0x9E: // SKP Vx
			vm.skipIf(vm.keypad.pressed[vm.regV[x]&0xF])
		case 0xA1: // SKNP Vx
			vm.skipIf(!vm.keypad.pressed[vm.regV[x]&0xF])
		default:
			return vm.illegalOpcode()
		}
	case 0xF000:
		if err := vm.executeMisc(x, kk); err != nil {
			return err
		}
	default:
		return vm.illegalOpcode()
	}
	return nil
}

// executeALU runs the 8XYN register to register instructions. VF is always
// written last so it holds the flag even when x is 0xF.
func (vm *C8VM) executeALU(x, y, n uint8) error {
	switch n {
	case 0x0: // LD Vx, Vy
		vm.regV[x] = vm.regV[y]
	case 0x1: // OR Vx, Vy
		vm.regV[x] |= vm.regV[y]
	case 0x2: // AND Vx, Vy
		vm.regV[x] &= vm.regV[y]
	case 0x3: // XOR Vx, Vy
		vm.regV[x] ^= vm.regV[y]
	case 0x4: // ADD Vx, Vy
		sum := uint16(vm.regV[x]) + uint16(vm.regV[y])
		vm.regV[x] = uint8(sum)
		vm.regV[0xF] = boolToFlag(sum > 0xFF)
	case 0x5: // SUB Vx, Vy
		noBorrow := vm.regV[x] >= vm.regV[y]
		vm.regV[x] -= vm.regV[y]
		vm.regV[0xF] = boolToFlag(noBorrow)
	case 0x6: // SHR Vx, Vy
		lsb := vm.regV[y] & 0x01
		vm.regV[x] = vm.regV[y] >> 1
		vm.regV[0xF] = lsb
	case 0x7: // SUBN Vx, Vy
		noBorrow := vm.regV[y] >= vm.regV[x]
		vm.regV[x] = vm.regV[y] - vm.regV[x]
		vm.regV[0xF] = boolToFlag(noBorrow)
	case 0xE: // SHL Vx, Vy
		msb := vm.regV[y] >> 7
		vm.regV[x] = vm.regV[y] << 1
		vm.regV[0xF] = msb
	default:
		return vm.illegalOpcode()
	}
	return nil
}

// executeMisc runs the FXkk timer, keypad and memory instructions
func (vm *C8VM) executeMisc(x, kk uint8) error {
	switch kk {
	case 0x07: // LD Vx, DT
		vm.regV[x] = vm.delayTimer
	case 0x0A: // LD Vx, K
		// The cycle finishes once a key press is delivered, see Step
		vm.keypad.await(x)
		return nil
	case 0x15: // LD DT, Vx
		vm.delayTimer = vm.regV[x]
	case 0x18: // LD ST, Vx
		vm.soundTimer = vm.regV[x]
	case 0x1E: // ADD I, Vx
		vm.regI += uint16(vm.regV[x])
	case 0x29: // LD F, Vx
		vm.regI = fontAddr + glyphSize*uint16(vm.regV[x])
	case 0x33: // LD B, Vx
		v := vm.regV[x]
		if err := vm.memory.WriteBlock(vm.regI, []byte{v / 100, (v / 10) % 10, v % 10}); err != nil {
			return err
		}
	case 0x55: // LD [I], Vx
		if err := vm.memory.WriteBlock(vm.regI, vm.regV[:x+1]); err != nil {
			return err
		}
	case 0x65: // LD Vx, [I]
		block, err := vm.memory.ReadBlock(vm.regI, int(x)+1)
		if err != nil {
			return err
		}
		copy(vm.regV[:], block)
	default:
		return vm.illegalOpcode()
	}
	vm.pc += 2
	return nil
}

// drawSprite draws the n byte sprite at I to (vx, vy) and sets VF on collision
func (vm *C8VM) drawSprite(vx, vy, n uint8) error {
	var sprite []byte
	if n > 0 {
		var err error
		if sprite, err = vm.memory.ReadBlock(vm.regI, int(n)); err != nil {
			return err
		}
	}
	vm.regV[0xF] = boolToFlag(vm.display.drawSprite(vx, vy, sprite))
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
