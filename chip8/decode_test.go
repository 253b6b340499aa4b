package chip8

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode_Fields(t *testing.T) {
	assert := assert.New(t)

	inst := Decode(0xD12F)
	assert.Equal(OpDraw, inst.Op)
	assert.Equal(uint16(0xD12F), inst.Word)
	assert.Equal(uint8(0x1), inst.X)
	assert.Equal(uint8(0x2), inst.Y)
	assert.Equal(uint8(0xF), inst.N)
	assert.Equal(uint8(0x2F), inst.NN)
	assert.Equal(uint16(0x12F), inst.NNN)
}

func TestDecode_Opcodes(t *testing.T) {
	tests := []struct {
		word uint16
		op   Opcode
	}{
		{0x00E0, OpCls},
		{0x00EE, OpRet},
		{0x1234, OpJump},
		{0x2345, OpCall},
		{0x3A12, OpSkipEqByte},
		{0x4A12, OpSkipNeByte},
		{0x5AB0, OpSkipEqReg},
		{0x6A12, OpLoadByte},
		{0x7A12, OpAddByte},
		{0x8AB0, OpLoadReg},
		{0x8AB1, OpOr},
		{0x8AB2, OpAnd},
		{0x8AB3, OpXor},
		{0x8AB4, OpAddReg},
		{0x8AB5, OpSub},
		{0x8AB6, OpShr},
		{0x8AB7, OpSubn},
		{0x8ABE, OpShl},
		{0x9AB0, OpSkipNeReg},
		{0xA123, OpLoadI},
		{0xB123, OpJumpV0},
		{0xCA12, OpRnd},
		{0xDAB5, OpDraw},
		{0xEA9E, OpSkipKey},
		{0xEAA1, OpSkipNotKey},
		{0xFA07, OpLoadDelay},
		{0xFA0A, OpWaitKey},
		{0xFA15, OpSetDelay},
		{0xFA18, OpSetSound},
		{0xFA1E, OpAddI},
		{0xFA29, OpLoadFont},
		{0xFA33, OpBCD},
		{0xFA55, OpStore},
		{0xFA65, OpLoad},
	}

	for _, test := range tests {
		assert.Equal(t, test.op, Decode(test.word).Op, "%04X", test.word)
	}
}

func TestDecode_Unknown(t *testing.T) {
	words := []uint16{
		0x0000, 0x0123, 0x00E1, 0x00FF,
		0x5001, 0x500F,
		0x8008, 0x800D, 0x800F,
		0x9001,
		0xE000, 0xE09F,
		0xF000, 0xF0FF, 0xFFF0,
	}

	for _, word := range words {
		inst := Decode(word)

		assert.Equal(t, OpUnknown, inst.Op, "%04X", word)
		assert.Equal(t, word, inst.Word)
	}
}

func TestDecode_Total(t *testing.T) {
	// every word decodes, and decoding is a pure function of the word
	for w := 0; w <= 0xFFFF; w++ {
		a := Decode(uint16(w))
		b := Decode(uint16(w))

		if a != b || a.Word != uint16(w) {
			t.Fatalf("%04X decoded inconsistently", w)
		}
	}
}

func TestInstruction_String(t *testing.T) {
	tests := []struct {
		word uint16
		text string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x12A0, "JP     #2A0"},
		{0x2300, "CALL   #300"},
		{0x3312, "SE     V3, #12"},
		{0x4312, "SNE    V3, #12"},
		{0x6312, "LD     V3, #12"},
		{0x7312, "ADD    V3, #12"},
		{0xC3FF, "RND    V3, #FF"},
		{0x5120, "SE     V1, V2"},
		{0x8124, "ADD    V1, V2"},
		{0x8126, "SHR    V1, V2"},
		{0x812E, "SHL    V1, V2"},
		{0xA300, "LD     I, #300"},
		{0xB300, "JP     V0, #300"},
		{0xD125, "DRW    V1, V2, 5"},
		{0xE09E, "SKP    V0"},
		{0xE0A1, "SKNP   V0"},
		{0xF007, "LD     V0, DT"},
		{0xF00A, "LD     V0, K"},
		{0xF015, "LD     DT, V0"},
		{0xF018, "LD     ST, V0"},
		{0xF01E, "ADD    I, V0"},
		{0xF029, "LD     F, V0"},
		{0xF033, "LD     B, V0"},
		{0xF055, "LD     [I], V0"},
		{0xF065, "LD     V0, [I]"},
		{0xFFF0, "??     #FFF0"},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%04X", test.word), func(t *testing.T) {
			assert.Equal(t, test.text, Decode(test.word).String())
		})
	}
}

func TestOpcode_String(t *testing.T) {
	assert.Equal(t, "DRW", OpDraw.String())
	assert.Equal(t, "??", OpUnknown.String())
}
