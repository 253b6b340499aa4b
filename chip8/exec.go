package chip8

/// Execute a decoded instruction. The program counter has already been
/// advanced past it.
///
func (vm *VM) execute(inst Instruction) error {
	x, y := inst.X, inst.Y

	switch inst.Op {
	case OpCls:
		vm.cls()
	case OpRet:
		return vm.ret()
	case OpJump:
		vm.jump(inst.NNN)
	case OpCall:
		return vm.call(inst.NNN)
	case OpSkipEqByte:
		vm.skipIf(vm.V[x] == inst.NN)
	case OpSkipNeByte:
		vm.skipIf(vm.V[x] != inst.NN)
	case OpSkipEqReg:
		vm.skipIf(vm.V[x] == vm.V[y])
	case OpSkipNeReg:
		vm.skipIf(vm.V[x] != vm.V[y])
	case OpLoadByte:
		vm.V[x] = inst.NN
	case OpAddByte:
		vm.V[x] += inst.NN
	case OpLoadReg:
		vm.V[x] = vm.V[y]
	case OpOr:
		vm.logic(x, vm.V[x]|vm.V[y])
	case OpAnd:
		vm.logic(x, vm.V[x]&vm.V[y])
	case OpXor:
		vm.logic(x, vm.V[x]^vm.V[y])
	case OpAddReg:
		vm.addXY(x, y)
	case OpSub:
		vm.subXY(x, y)
	case OpSubn:
		vm.subYX(x, y)
	case OpShr:
		vm.shr(x, y)
	case OpShl:
		vm.shl(x, y)
	case OpLoadI:
		vm.I = inst.NNN
	case OpJumpV0:
		vm.jumpV0(x, inst.NNN)
	case OpRnd:
		vm.V[x] = byte(vm.rng.Uint32()) & inst.NN
	case OpDraw:
		return vm.drw(x, y, inst.N)
	case OpSkipKey:
		vm.skipIf(vm.Keys.Pressed(vm.V[x]))
	case OpSkipNotKey:
		vm.skipIf(!vm.Keys.Pressed(vm.V[x]))
	case OpLoadDelay:
		vm.V[x] = vm.DT
	case OpWaitKey:
		vm.loadXK(x)
	case OpSetDelay:
		vm.DT = vm.V[x]
	case OpSetSound:
		vm.ST = vm.V[x]
	case OpAddI:
		vm.addIX(x)
	case OpLoadFont:
		vm.I = FontAddress + uint16(vm.V[x])*GlyphSize
	case OpBCD:
		return vm.loadB(x)
	case OpStore:
		return vm.saveRegs(x)
	case OpLoad:
		return vm.loadRegs(x)
	default:
		return &UnknownInstructionError{Word: inst.Word, PC: vm.PC - 2}
	}

	return nil
}

/// Clear the video display memory.
///
func (vm *VM) cls() {
	vm.Video.Clear()
}

/// call a subroutine at address.
///
func (vm *VM) call(address uint16) error {
	if int(vm.SP) == len(vm.Stack) {
		return ErrStackOverflow
	}

	// push program counter onto stack
	vm.Stack[vm.SP] = vm.PC
	vm.SP++

	// jump to address
	vm.PC = address

	return nil
}

/// return from subroutine.
///
func (vm *VM) ret() error {
	if vm.SP == 0 {
		return ErrStackUnderflow
	}

	// restore program counter
	vm.SP--
	vm.PC = vm.Stack[vm.SP]

	return nil
}

/// jump to address.
///
func (vm *VM) jump(address uint16) {
	vm.PC = address
}

/// jump to address + v0 (or vx with the quirk), wrapping at 4K.
///
func (vm *VM) jumpV0(x uint8, address uint16) {
	r := uint8(0)
	if vm.Quirks.JumpUsesVx {
		r = x
	}

	vm.PC = (address + uint16(vm.V[r])) & (MemorySize - 1)
}

/// skip the next instruction if cond holds.
///
func (vm *VM) skipIf(cond bool) {
	if cond {
		vm.PC += 2
	}
}

/// store the result of a bitwise op in vx.
///
func (vm *VM) logic(x uint8, b byte) {
	vm.V[x] = b

	if vm.Quirks.LogicResetsVF {
		vm.V[0xF] = 0
	}
}

/// add vy to vx and set carry.
///
func (vm *VM) addXY(x, y uint8) {
	sum := uint16(vm.V[x]) + uint16(vm.V[y])

	vm.V[x] = byte(sum)
	vm.V[0xF] = byte(sum >> 8)
}

/// subtract vy from vx, set carry if no borrow.
///
func (vm *VM) subXY(x, y uint8) {
	a, b := vm.V[x], vm.V[y]

	vm.V[x] = a - b
	vm.V[0xF] = flag(a >= b)
}

/// subtract vx from vy and store in vx, set carry if no borrow.
///
func (vm *VM) subYX(x, y uint8) {
	a, b := vm.V[x], vm.V[y]

	vm.V[x] = b - a
	vm.V[0xF] = flag(b >= a)
}

/// shr vx 1 bit, set carry to LSB before shift.
///
func (vm *VM) shr(x, y uint8) {
	v := vm.V[x]
	if vm.Quirks.ShiftUsesVy {
		v = vm.V[y]
	}

	vm.V[x] = v >> 1
	vm.V[0xF] = v & 1
}

/// shl vx 1 bit, set carry to MSB before shift.
///
func (vm *VM) shl(x, y uint8) {
	v := vm.V[x]
	if vm.Quirks.ShiftUsesVy {
		v = vm.V[y]
	}

	vm.V[x] = v << 1
	vm.V[0xF] = v >> 7
}

/// add vx to i. I holds 16 bits; addresses past 0xFFF fault when used.
///
func (vm *VM) addIX(x uint8) {
	sum := uint32(vm.I) + uint32(vm.V[x])

	vm.I = uint16(sum)

	if vm.Quirks.IndexOverflow {
		vm.V[0xF] = flag(sum > MemorySize-1)
	}
}

/// load vx with next key hit. PC is left on this instruction until a key
/// is pressed.
///
func (vm *VM) loadXK(x uint8) {
	vm.PC -= 2

	vm.Mode = AwaitingKey
	vm.wait = x

	// only keys pressed from now on count
	vm.lastKeys = vm.Keys
}

/// load address with BCD of vx.
///
func (vm *VM) loadB(x uint8) error {
	mem, err := vm.Memory.Slice(vm.I, 3)
	if err != nil {
		return err
	}

	n := uint16(vm.V[x])
	b := uint16(0)

	// perform 8 shifts
	for i := uint(0); i < 8; i++ {
		if b&0xF >= 5 {
			b += 3
		}
		if b>>4&0xF >= 5 {
			b += 3 << 4
		}
		if b>>8&0xF >= 5 {
			b += 3 << 8
		}

		// apply shift, pull next bit
		b = b<<1 | n>>(7-i)&1
	}

	// write to memory
	mem[0] = byte(b>>8) & 0xF
	mem[1] = byte(b>>4) & 0xF
	mem[2] = byte(b) & 0xF

	return nil
}

/// save registers v0..vx to I.
///
func (vm *VM) saveRegs(x uint8) error {
	mem, err := vm.Memory.Slice(vm.I, int(x)+1)
	if err != nil {
		return err
	}

	copy(mem, vm.V[:x+1])

	if vm.Quirks.LoadStoreIncrementsI {
		vm.I += uint16(x) + 1
	}

	return nil
}

/// load registers v0..vx from I.
///
func (vm *VM) loadRegs(x uint8) error {
	mem, err := vm.Memory.Slice(vm.I, int(x)+1)
	if err != nil {
		return err
	}

	copy(vm.V[:x+1], mem)

	if vm.Quirks.LoadStoreIncrementsI {
		vm.I += uint16(x) + 1
	}

	return nil
}

/// draw a sprite at I to video memory at vx, vy.
///
func (vm *VM) drw(x, y, n uint8) error {
	sprite, err := vm.Memory.Slice(vm.I, int(n))
	if err != nil {
		return err
	}

	// the origin always wraps
	ox := int(vm.V[x]) % ScreenWidth
	oy := int(vm.V[y]) % ScreenHeight

	vm.V[0xF] = 0

	// draw each row of the sprite
	for row, s := range sprite {
		py := oy + row

		if py >= ScreenHeight {
			if vm.Quirks.ClipSprites {
				break
			}

			py %= ScreenHeight
		}

		// columns are stored MSB first
		for col := 0; col < 8; col++ {
			if s&(0x80>>col) == 0 {
				continue
			}

			px := ox + col

			if px >= ScreenWidth {
				if vm.Quirks.ClipSprites {
					break
				}

				px %= ScreenWidth
			}

			// set the collision flag if a pixel was turned off
			if vm.Video.toggle(px, py) {
				vm.V[0xF] = 1
			}
		}
	}

	return nil
}

/// flag converts a condition to a VF value.
///
func flag(b bool) byte {
	if b {
		return 1
	}

	return 0
}
