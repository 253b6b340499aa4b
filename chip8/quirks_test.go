package chip8

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuirksProfile(t *testing.T) {
	assert := assert.New(t)

	q, err := QuirksProfile("modern")
	assert.NoError(err)
	assert.Equal(Quirks{}, q)

	q, err = QuirksProfile("COSMAC")
	assert.NoError(err)
	assert.True(q.ShiftUsesVy)
	assert.True(q.LoadStoreIncrementsI)
	assert.True(q.LogicResetsVF)
	assert.False(q.JumpUsesVx)

	q, err = QuirksProfile("chip48")
	assert.NoError(err)
	assert.True(q.JumpUsesVx)
	assert.False(q.ShiftUsesVy)

	_, err = QuirksProfile("schip")
	assert.True(errors.Is(err, ErrUnknownQuirks))
	assert.Contains(err.Error(), "chip48, cosmac, modern")
}

func TestQuirksProfiles(t *testing.T) {
	assert.Equal(t, []string{"chip48", "cosmac", "modern"}, QuirksProfiles())
}

func TestQuirks_ShiftUsesVy(t *testing.T) {
	assert := assert.New(t)

	vm := New(WithQuirks(Quirks{ShiftUsesVy: true}))

	vm.V[1], vm.V[2] = 0xFF, 0x03
	assert.NoError(exec(t, vm, 0x8126))
	assert.Equal(byte(0x01), vm.V[1])
	assert.Equal(byte(1), vm.V[0xF])
	assert.Equal(byte(0x03), vm.V[2])

	vm.V[1], vm.V[2] = 0x00, 0x81
	assert.NoError(exec(t, vm, 0x812E))
	assert.Equal(byte(0x02), vm.V[1])
	assert.Equal(byte(1), vm.V[0xF])
}

func TestQuirks_JumpUsesVx(t *testing.T) {
	vm := New(WithQuirks(Quirks{JumpUsesVx: true}))
	vm.V[0] = 0x01
	vm.V[3] = 0x10

	require.NoError(t, exec(t, vm, 0xB345))
	assert.Equal(t, uint16(0x355), vm.PC)
}

func TestQuirks_LoadStoreIncrementsI(t *testing.T) {
	assert := assert.New(t)

	vm := New(WithQuirks(Quirks{LoadStoreIncrementsI: true}))
	vm.I = 0x300

	assert.NoError(exec(t, vm, 0xF355))
	assert.Equal(uint16(0x304), vm.I)

	assert.NoError(exec(t, vm, 0xF065))
	assert.Equal(uint16(0x305), vm.I)
}

func TestQuirks_LogicResetsVF(t *testing.T) {
	for _, word := range []uint16{0x8121, 0x8122, 0x8123} {
		vm := New(WithQuirks(Quirks{LogicResetsVF: true}))
		vm.V[0xF] = 1

		require.NoError(t, exec(t, vm, word))
		assert.Equal(t, byte(0), vm.V[0xF], "%04X", word)
	}
}

func TestQuirks_ClipSprites(t *testing.T) {
	assert := assert.New(t)

	vm := New(WithQuirks(Quirks{ClipSprites: true}))
	vm.I = 0x300
	vm.Memory[0x300] = 0xFF
	vm.Memory[0x301] = 0xFF

	vm.V[1], vm.V[2] = 60, 31
	assert.NoError(exec(t, vm, 0xD122))

	for x := 60; x < 64; x++ {
		assert.True(vm.Video.Lit(x, 31))
		assert.False(vm.Video.Lit(x, 0))
	}
	for x := 0; x < 4; x++ {
		assert.False(vm.Video.Lit(x, 31))
	}

	// the origin still wraps
	vm.Video.Clear()
	vm.V[1], vm.V[2] = 64, 32
	assert.NoError(exec(t, vm, 0xD121))
	assert.True(vm.Video.Lit(0, 0))
}

func TestQuirks_IndexOverflow(t *testing.T) {
	assert := assert.New(t)

	vm := New(WithQuirks(Quirks{IndexOverflow: true}))

	vm.I, vm.V[1] = 0xFFE, 1
	assert.NoError(exec(t, vm, 0xF11E))
	assert.Equal(byte(0), vm.V[0xF])

	assert.NoError(exec(t, vm, 0xF11E))
	assert.Equal(uint16(0x1000), vm.I)
	assert.Equal(byte(1), vm.V[0xF])
}

func TestQuirks_Set(t *testing.T) {
	assert := assert.New(t)

	q, err := QuirksProfile("cosmac")
	require.NoError(t, err)

	assert.NoError(q.Set("clip_sprites", false))
	assert.NoError(q.Set("jump_uses_vx", true))
	assert.False(q.ClipSprites)
	assert.True(q.JumpUsesVx)
	assert.True(q.ShiftUsesVy)

	err = q.Set("vblank", true)
	assert.True(errors.Is(err, ErrUnknownQuirks))
}
