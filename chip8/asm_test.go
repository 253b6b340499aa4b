package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T, source string) *Assembly {
	t.Helper()

	asm, err := Assemble([]byte(source))
	require.NoError(t, err)

	return asm
}

func TestAssemble_Instructions(t *testing.T) {
	tests := []struct {
		source string
		word   uint16
	}{
		{"CLS", 0x00E0},
		{"RET", 0x00EE},
		{"JP #2A0", 0x12A0},
		{"JP V0, #300", 0xB300},
		{"CALL #300", 0x2300},
		{"SE V3, #12", 0x3312},
		{"SE V3, V4", 0x5340},
		{"SNE V3, 18", 0x4312},
		{"SNE V3, V4", 0x9340},
		{"SKP VA", 0xEA9E},
		{"SKNP VA", 0xEAA1},
		{"OR V1, V2", 0x8121},
		{"AND V1, V2", 0x8122},
		{"XOR V1, V2", 0x8123},
		{"SUB V1, V2", 0x8125},
		{"SUBN V1, V2", 0x8127},
		{"SHR V1", 0x8106},
		{"SHR V1, V2", 0x8126},
		{"SHL V1, V2", 0x812E},
		{"ADD V1, 1", 0x7101},
		{"ADD V1, -1", 0x71FF},
		{"ADD V1, V2", 0x8124},
		{"ADD I, V2", 0xF21E},
		{"RND V5, $1111....", 0xC5F0},
		{"DRW V1, V2, 15", 0xD12F},
		{"LD V1, #FF", 0x61FF},
		{"LD V1, V2", 0x8120},
		{"LD I, #123", 0xA123},
		{"LD V1, DT", 0xF107},
		{"LD V1, K", 0xF10A},
		{"LD DT, V1", 0xF115},
		{"LD ST, V1", 0xF118},
		{"LD F, V1", 0xF129},
		{"LD B, V1", 0xF133},
		{"LD [I], V1", 0xF155},
		{"LD V1, [I]", 0xF165},
		{"ld v1, #ff", 0x61FF},
	}

	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			asm := assemble(t, test.source)

			assert.Equal(t, []byte{byte(test.word >> 8), byte(test.word)}, asm.ROM)
		})
	}
}

func TestAssemble_Labels(t *testing.T) {
	assert := assert.New(t)

	asm := assemble(t, `
		.START
			LD   V0, 0
		.LOOP
			ADD  V0, 1
			CALL DONE     ; forward reference
			JP   LOOP
		.DONE
			RET
	`)

	assert.Equal([]byte{
		0x60, 0x00,
		0x70, 0x01,
		0x22, 0x08,
		0x12, 0x02,
		0x00, 0xEE,
	}, asm.ROM)

	assert.Equal(token{typ: TOKEN_LIT, val: 0x200}, asm.Labels["START"])
	assert.Equal(token{typ: TOKEN_LIT, val: 0x208}, asm.Labels["DONE"])
	assert.Empty(asm.Unresolved)
}

func TestAssemble_EquVar(t *testing.T) {
	asm := assemble(t, `
		.COUNT EQU 10
		.X VAR V7
		.SPRITE EQU #300

			LD X, COUNT
			LD I, SPRITE
			BYTE COUNT, 1, "AB"
	`)

	assert.Equal(t, []byte{0x67, 0x0A, 0xA3, 0x00, 0x0A, 0x01, 'A', 'B'}, asm.ROM)
}

func TestAssemble_Data(t *testing.T) {
	assert := assert.New(t)

	asm := assemble(t, `
			BYTE 1
			ALIGN 4
			WORD #1234, TABLE
			PAD 2
		.TABLE
			BYTE $1.1.
	`)

	assert.Equal([]byte{
		0x01, 0x00, 0x00, 0x00,
		0x12, 0x34, 0x02, 0x0A,
		0x00, 0x00,
		0x0A,
	}, asm.ROM)
}

func TestAssemble_Breakpoints(t *testing.T) {
	asm := assemble(t, `
			LD V0, 1
			BREAK check v0
			LD V1, 2
			BREAK
	`)

	assert.Equal(t, []Breakpoint{
		{Address: 0x202, Reason: "CHECK V0"},
		{Address: 0x204, Reason: ""},
	}, asm.Breakpoints)
}

func TestAssemble_Errors(t *testing.T) {
	tests := []struct {
		source string
		err    string
	}{
		{"LD V0, 1\nFOO V1", "line 2 - unexpected token"},
		{"LD V0, #100", "line 1 - illegal instruction"},
		{"DRW V0, V1, 16", "line 1 - illegal instruction"},
		{"CLS V0", "line 1 - illegal instruction"},
		{"LD V0, [V1]", "line 1 - only [I] is addressable"},
		{"BYTE \"ABC", "line 1 - unterminated string"},
		{"BYTE 256", "line 1 - invalid byte"},
		{".A\n.A", "line 2 - duplicate label: A"},
		{".A EQU V0", "line 1 - illegal label assignment"},
		{"LD V0,", "line 1 - expected operand"},
		{"JP NOWHERE", "unresolved label: NOWHERE"},
		{"PAD 3000\nPAD 1000", "line 2 - program too large"},
	}

	for _, test := range tests {
		t.Run(test.err, func(t *testing.T) {
			asm, err := Assemble([]byte(test.source))

			assert.Nil(t, asm)
			assert.EqualError(t, err, test.err)
		})
	}
}

func TestAssemble_Empty(t *testing.T) {
	asm := assemble(t, "; nothing here\n\n")

	assert.Empty(t, asm.ROM)
}
