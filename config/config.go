// Package config handles application configuration and setup
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/massung/chip8vm/chip8"
)

// Config holds the machine and front end settings shared by the commands.
type Config struct {
	// Rate is the number of instructions executed per second.
	Rate int `toml:"rate"`

	// Quirks names the base quirks profile, Quirk overrides single quirks
	// of it by their toml key.
	Quirks string          `toml:"quirks"`
	Quirk  map[string]bool `toml:"quirk"`

	// Seed for the random number generator, 0 seeds from the clock.
	Seed uint64 `toml:"seed"`

	// Scale is the size of a CHIP-8 pixel in the SDL window.
	Scale int `toml:"scale"`

	Debug bool `toml:"debug"`
	Quiet bool `toml:"quiet"`
}

// Default returns the configuration used when no file or flags are given.
func Default() Config {
	return Config{
		Rate:   chip8.DefaultRate,
		Quirks: "modern",
		Scale:  5,
	}
}

// Load reads a TOML configuration file on top of the defaults. Keys that
// don't map to a setting are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}

		return Config{}, fmt.Errorf("loading config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if c.Rate < chip8.MinRate || c.Rate > chip8.MaxRate {
		return fmt.Errorf("rate %d out of range %d-%d", c.Rate, chip8.MinRate, chip8.MaxRate)
	}

	if c.Scale < 1 {
		return fmt.Errorf("invalid scale: %d", c.Scale)
	}

	_, err := c.MachineQuirks()
	return err
}

// MachineQuirks resolves the quirks profile and applies the overrides.
func (c Config) MachineQuirks() (chip8.Quirks, error) {
	q, err := chip8.QuirksProfile(c.Quirks)
	if err != nil {
		return q, err
	}

	// apply in a stable order so errors are reproducible
	keys := make([]string, 0, len(c.Quirk))
	for key := range c.Quirk {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := q.Set(key, c.Quirk[key]); err != nil {
			return q, err
		}
	}

	return q, nil
}

// MachineOptions converts the configuration to VM construction options.
func (c Config) MachineOptions() ([]chip8.Option, error) {
	q, err := c.MachineQuirks()
	if err != nil {
		return nil, err
	}

	return []chip8.Option{
		chip8.WithQuirks(q),
		chip8.WithSeed(c.Seed),
	}, nil
}
