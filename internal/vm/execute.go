package vm

import "fmt"

const instructionSize = 2

// execute applies the semantics of a decoded instruction. Every fallible
// access is checked before the first state mutation so that a failing
// instruction leaves the machine unchanged.
func (e *Engine) execute(ins Instruction) error {
	r := &e.registers
	vx := r.V[ins.X]
	vy := r.V[ins.Y]
	next := r.PC + instructionSize

	e.state = StateRunning

	switch ins.Op {
	case OpClearScreen:
		e.display.Clear()

	case OpReturn:
		address, err := e.stack.Pop()
		if err != nil {
			return err
		}
		next = address

	case OpJump:
		next = ins.NNN

	case OpCall:
		// a call to itself never advances, fail before the return address is pushed
		if ins.NNN == r.PC {
			return ErrStalledProgramCounter
		}
		if err := e.stack.Push(next); err != nil {
			return err
		}
		next = ins.NNN

	case OpSkipEqImm:
		next = skipIf(next, vx == ins.NN)

	case OpSkipNeImm:
		next = skipIf(next, vx != ins.NN)

	case OpSkipEqReg:
		next = skipIf(next, vx == vy)

	case OpSkipNeReg:
		next = skipIf(next, vx != vy)

	case OpSetImm:
		r.V[ins.X] = ins.NN

	case OpAddImm:
		r.V[ins.X] = vx + ins.NN

	case OpMove:
		r.V[ins.X] = vy

	case OpOr:
		r.V[ins.X] = vx | vy

	case OpAnd:
		r.V[ins.X] = vx & vy

	case OpXor:
		r.V[ins.X] = vx ^ vy

	case OpAddReg:
		sum := uint16(vx) + uint16(vy)
		r.V[ins.X] = byte(sum)
		r.V[FlagRegister] = boolToFlag(sum > 0xFF)

	case OpSubReg:
		r.V[ins.X] = vx - vy
		r.V[FlagRegister] = boolToFlag(vx >= vy)

	case OpSubNeg:
		r.V[ins.X] = vy - vx
		r.V[FlagRegister] = boolToFlag(vy >= vx)

	case OpShiftRight:
		source := e.shiftSource(vx, vy)
		r.V[ins.X] = source >> 1
		r.V[FlagRegister] = source & 0x01

	case OpShiftLeft:
		source := e.shiftSource(vx, vy)
		r.V[ins.X] = source << 1
		r.V[FlagRegister] = source >> 7

	case OpSetIndex:
		r.I = ins.NNN

	case OpJumpOffset:
		next = ins.NNN + uint16(r.V[0])

	case OpRandom:
		r.V[ins.X] = byte(e.random.Uint32()) & ins.NN

	case OpDraw:
		rows, err := e.readBlock(r.I, int(ins.N))
		if err != nil {
			return err
		}
		collided := e.display.DrawSprite(rows, vx, vy)
		r.V[FlagRegister] = boolToFlag(collided)

	case OpSkipKey:
		next = skipIf(next, e.input.IsPressed(vx))

	case OpSkipNotKey:
		next = skipIf(next, !e.input.IsPressed(vx))

	case OpReadDelay:
		r.V[ins.X] = e.timers.Delay()

	case OpAwaitKey:
		key, ok := e.input.Pressed()
		if !ok {
			e.state = StateAwaitingKey
			return nil
		}
		r.V[ins.X] = byte(key)

	case OpSetDelay:
		e.timers.SetDelay(vx)

	case OpSetSound:
		e.timers.SetSound(vx)

	case OpAddIndex:
		r.I += uint16(vx)

	case OpFontChar:
		r.I = uint16(vx) * GlyphSize

	case OpStoreBCD:
		if err := e.checkBlock(r.I, 3); err != nil {
			return err
		}
		e.memory.data[r.I] = vx / 100
		e.memory.data[r.I+1] = (vx / 10) % 10
		e.memory.data[r.I+2] = vx % 10

	case OpBlockStore:
		count := int(ins.X) + 1
		if err := e.checkBlock(r.I, count); err != nil {
			return err
		}
		copy(e.memory.data[r.I:], r.V[:count])
		e.advanceIndex(count)

	case OpBlockLoad:
		count := int(ins.X) + 1
		rows, err := e.readBlock(r.I, count)
		if err != nil {
			return err
		}
		copy(r.V[:count], rows)
		e.advanceIndex(count)

	default:
		return ErrUnknownOpcode
	}

	if e.state != StateAwaitingKey {
		r.PC = next
	}
	return nil
}

// shiftSource returns the register value that a shift instruction operates on.
func (e *Engine) shiftSource(vx, vy byte) byte {
	if e.quirks.ShiftUsesVY {
		return vy
	}
	return vx
}

func (e *Engine) advanceIndex(count int) {
	if e.quirks.LoadStoreIncrementsIndex {
		e.registers.I += uint16(count)
	}
}

// checkBlock validates that count bytes starting at address are addressable.
func (e *Engine) checkBlock(address uint16, count int) error {
	last := int(address) + count - 1
	if last > MaxAddress {
		return fmt.Errorf("accessing %d bytes at address %04X: %w", count, address, ErrOutOfRange)
	}
	return nil
}

// readBlock returns a view of count bytes of memory starting at address.
func (e *Engine) readBlock(address uint16, count int) ([]byte, error) {
	if count == 0 {
		return nil, nil
	}
	if err := e.checkBlock(address, count); err != nil {
		return nil, err
	}
	return e.memory.data[address : int(address)+count], nil
}

func skipIf(next uint16, condition bool) uint16 {
	if condition {
		return next + instructionSize
	}
	return next
}

func boolToFlag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
