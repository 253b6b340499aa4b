package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/massung/chip8vm/chip8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chip8.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, chip8.DefaultRate, cfg.Rate)
	assert.Equal(t, "modern", cfg.Quirks)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	path := writeConfig(t, `
rate = 700
quirks = "cosmac"
seed = 42

[quirk]
clip_sprites = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(700, cfg.Rate)
	assert.Equal("cosmac", cfg.Quirks)
	assert.Equal(uint64(42), cfg.Seed)

	// unset keys keep their defaults
	assert.Equal(5, cfg.Scale)

	q, err := cfg.MachineQuirks()
	require.NoError(t, err)
	assert.True(q.ShiftUsesVy)
	assert.False(q.ClipSprites)
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, `
rate = 700
speed = 2
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown keys: speed")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"rate", "rate = 0"},
		{"scale", "scale = -1"},
		{"profile", `quirks = "schip"`},
		{"quirk", "[quirk]\nvblank = true"},
		{"syntax", "rate = "},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, test.text))
			assert.Error(t, err)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestConfig_MachineOptions(t *testing.T) {
	cfg := Default()
	cfg.Quirks = "chip48"
	cfg.Seed = 7

	opts, err := cfg.MachineOptions()
	require.NoError(t, err)

	vm := chip8.New(opts...)
	assert.True(t, vm.Quirks.JumpUsesVx)

	// same seed, same numbers
	other := chip8.New(opts...)
	for _, m := range []*chip8.VM{vm, other} {
		require.NoError(t, m.Load([]byte{0xC0, 0xFF}))
		require.NoError(t, m.Step())
	}
	assert.Equal(t, vm.V[0], other.V[0])
}

func TestParseFlags(t *testing.T) {
	assert := assert.New(t)

	cfg, rom, err := ParseFlags("chip8", []string{"-rate", "1000", "-quirks", "cosmac", "pong.ch8"}, true)
	require.NoError(t, err)

	assert.Equal("pong.ch8", rom)
	assert.Equal(1000, cfg.Rate)
	assert.Equal("cosmac", cfg.Quirks)
	assert.Equal(5, cfg.Scale)
}

func TestParseFlags_Precedence(t *testing.T) {
	assert := assert.New(t)

	path := writeConfig(t, `
rate = 700
quirks = "cosmac"
scale = 8
`)

	cfg, _, err := ParseFlags("chip8", []string{"-c", path, "-rate", "900", "pong.ch8"}, true)
	require.NoError(t, err)

	// flags win over the file, the file wins over defaults
	assert.Equal(900, cfg.Rate)
	assert.Equal("cosmac", cfg.Quirks)
	assert.Equal(8, cfg.Scale)
}

func TestParseFlags_Usage(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		romRequired bool
	}{
		{"missing rom", []string{"-rate", "100"}, true},
		{"unknown flag", []string{"-speed", "2", "pong.ch8"}, true},
		{"extra args", []string{"pong.ch8", "-q"}, false},
		{"help", []string{"-h"}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := ParseFlags("chip8", test.args, test.romRequired)

			var usage *UsageError
			assert.True(t, errors.As(err, &usage))
		})
	}
}

func TestParseFlags_OptionalROM(t *testing.T) {
	cfg, rom, err := ParseFlags("chip8", []string{"-debug"}, false)
	require.NoError(t, err)

	assert.Empty(t, rom)
	assert.True(t, cfg.Debug)
}

func TestParseFlags_InvalidQuirks(t *testing.T) {
	_, _, err := ParseFlags("chip8", []string{"-quirks", "schip", "pong.ch8"}, true)
	assert.True(t, errors.Is(err, chip8.ErrUnknownQuirks))
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}
