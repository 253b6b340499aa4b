package chip8

import "fmt"

/// Opcode identifies the operation an instruction word encodes.
///
type Opcode uint8

const (
	OpUnknown Opcode = iota
	OpCls
	OpRet
	OpJump
	OpCall
	OpSkipEqByte
	OpSkipNeByte
	OpSkipEqReg
	OpLoadByte
	OpAddByte
	OpLoadReg
	OpOr
	OpAnd
	OpXor
	OpAddReg
	OpSub
	OpShr
	OpSubn
	OpShl
	OpSkipNeReg
	OpLoadI
	OpJumpV0
	OpRnd
	OpDraw
	OpSkipKey
	OpSkipNotKey
	OpLoadDelay
	OpWaitKey
	OpSetDelay
	OpSetSound
	OpAddI
	OpLoadFont
	OpBCD
	OpStore
	OpLoad
)

var mnemonics = [...]string{
	OpUnknown:    "??",
	OpCls:        "CLS",
	OpRet:        "RET",
	OpJump:       "JP",
	OpCall:       "CALL",
	OpSkipEqByte: "SE",
	OpSkipNeByte: "SNE",
	OpSkipEqReg:  "SE",
	OpLoadByte:   "LD",
	OpAddByte:    "ADD",
	OpLoadReg:    "LD",
	OpOr:         "OR",
	OpAnd:        "AND",
	OpXor:        "XOR",
	OpAddReg:     "ADD",
	OpSub:        "SUB",
	OpShr:        "SHR",
	OpSubn:       "SUBN",
	OpShl:        "SHL",
	OpSkipNeReg:  "SNE",
	OpLoadI:      "LD",
	OpJumpV0:     "JP",
	OpRnd:        "RND",
	OpDraw:       "DRW",
	OpSkipKey:    "SKP",
	OpSkipNotKey: "SKNP",
	OpLoadDelay:  "LD",
	OpWaitKey:    "LD",
	OpSetDelay:   "LD",
	OpSetSound:   "LD",
	OpAddI:       "ADD",
	OpLoadFont:   "LD",
	OpBCD:        "LD",
	OpStore:      "LD",
	OpLoad:       "LD",
}

/// String returns the assembler mnemonic of the opcode.
///
func (op Opcode) String() string {
	if int(op) < len(mnemonics) {
		return mnemonics[op]
	}

	return mnemonics[OpUnknown]
}

/// Instruction is a decoded instruction word. Only the operand fields the
/// opcode uses are meaningful.
///
type Instruction struct {
	Op   Opcode
	Word uint16

	/// X and Y are register indices.
	///
	X, Y uint8

	/// N is the low nibble, NN the low byte and NNN the low 12 bits.
	///
	N   uint8
	NN  uint8
	NNN uint16
}

/// Patterns are tested in order, the first match wins.
///
var patterns = []struct {
	mask  uint16
	match uint16
	op    Opcode
}{
	{0xFFFF, 0x00E0, OpCls},
	{0xFFFF, 0x00EE, OpRet},
	{0xF000, 0x1000, OpJump},
	{0xF000, 0x2000, OpCall},
	{0xF000, 0x3000, OpSkipEqByte},
	{0xF000, 0x4000, OpSkipNeByte},
	{0xF00F, 0x5000, OpSkipEqReg},
	{0xF000, 0x6000, OpLoadByte},
	{0xF000, 0x7000, OpAddByte},
	{0xF00F, 0x8000, OpLoadReg},
	{0xF00F, 0x8001, OpOr},
	{0xF00F, 0x8002, OpAnd},
	{0xF00F, 0x8003, OpXor},
	{0xF00F, 0x8004, OpAddReg},
	{0xF00F, 0x8005, OpSub},
	{0xF00F, 0x8006, OpShr},
	{0xF00F, 0x8007, OpSubn},
	{0xF00F, 0x800E, OpShl},
	{0xF00F, 0x9000, OpSkipNeReg},
	{0xF000, 0xA000, OpLoadI},
	{0xF000, 0xB000, OpJumpV0},
	{0xF000, 0xC000, OpRnd},
	{0xF000, 0xD000, OpDraw},
	{0xF0FF, 0xE09E, OpSkipKey},
	{0xF0FF, 0xE0A1, OpSkipNotKey},
	{0xF0FF, 0xF007, OpLoadDelay},
	{0xF0FF, 0xF00A, OpWaitKey},
	{0xF0FF, 0xF015, OpSetDelay},
	{0xF0FF, 0xF018, OpSetSound},
	{0xF0FF, 0xF01E, OpAddI},
	{0xF0FF, 0xF029, OpLoadFont},
	{0xF0FF, 0xF033, OpBCD},
	{0xF0FF, 0xF055, OpStore},
	{0xF0FF, 0xF065, OpLoad},
}

/// Decode an instruction word. Decoding never fails: a word without any
/// matching semantics decodes to OpUnknown.
///
func Decode(word uint16) Instruction {
	inst := Instruction{
		Op:   OpUnknown,
		Word: word,
		X:    uint8(word & 0x0F00 >> 8),
		Y:    uint8(word & 0x00F0 >> 4),
		N:    uint8(word & 0x000F),
		NN:   uint8(word & 0x00FF),
		NNN:  word & 0x0FFF,
	}

	for _, p := range patterns {
		if word&p.mask == p.match {
			inst.Op = p.op
			break
		}
	}

	return inst
}

/// String renders the instruction in assembler syntax.
///
func (inst Instruction) String() string {
	op := fmt.Sprintf("%-6s", inst.Op)

	switch inst.Op {
	case OpCls, OpRet:
		return inst.Op.String()
	case OpJump, OpCall:
		return fmt.Sprintf("%s #%03X", op, inst.NNN)
	case OpSkipEqByte, OpSkipNeByte, OpLoadByte, OpAddByte, OpRnd:
		return fmt.Sprintf("%s V%X, #%02X", op, inst.X, inst.NN)
	case OpSkipEqReg, OpSkipNeReg, OpLoadReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpSubn, OpShr, OpShl:
		return fmt.Sprintf("%s V%X, V%X", op, inst.X, inst.Y)
	case OpLoadI:
		return fmt.Sprintf("%s I, #%03X", op, inst.NNN)
	case OpJumpV0:
		return fmt.Sprintf("%s V0, #%03X", op, inst.NNN)
	case OpDraw:
		return fmt.Sprintf("%s V%X, V%X, %d", op, inst.X, inst.Y, inst.N)
	case OpSkipKey, OpSkipNotKey:
		return fmt.Sprintf("%s V%X", op, inst.X)
	case OpLoadDelay:
		return fmt.Sprintf("%s V%X, DT", op, inst.X)
	case OpWaitKey:
		return fmt.Sprintf("%s V%X, K", op, inst.X)
	case OpSetDelay:
		return fmt.Sprintf("%s DT, V%X", op, inst.X)
	case OpSetSound:
		return fmt.Sprintf("%s ST, V%X", op, inst.X)
	case OpAddI:
		return fmt.Sprintf("%s I, V%X", op, inst.X)
	case OpLoadFont:
		return fmt.Sprintf("%s F, V%X", op, inst.X)
	case OpBCD:
		return fmt.Sprintf("%s B, V%X", op, inst.X)
	case OpStore:
		return fmt.Sprintf("%s [I], V%X", op, inst.X)
	case OpLoad:
		return fmt.Sprintf("%s V%X, [I]", op, inst.X)
	}

	return fmt.Sprintf("%s #%04X", op, inst.Word)
}
