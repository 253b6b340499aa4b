package main

import (
	"time"

	"github.com/massung/chip8vm/chip8"
)

// keyHold is how long a typed key stays pressed. Terminals only report
// presses, so every press is held for a while and then released.
const keyHold = 150 * time.Millisecond

const (
	keyCtrlC     = 0x03
	keyEscape    = 0x1B
	keyBackspace = 0x7F
)

// keyMap maps the keyboard to CHIP-8 keys.
var keyMap = map[byte]uint{}

func init() {
	layout := []struct {
		key  byte
		chip uint
	}{
		{'x', 0x0}, {'1', 0x1}, {'2', 0x2}, {'3', 0x3},
		{'q', 0x4}, {'w', 0x5}, {'e', 0x6}, {'a', 0x7},
		{'s', 0x8}, {'d', 0x9}, {'z', 0xA}, {'c', 0xB},
		{'4', 0xC}, {'r', 0xD}, {'f', 0xE}, {'v', 0xF},
	}

	for _, k := range layout {
		keyMap[k.key] = k.chip

		// upper case too, for caps lock
		if k.key >= 'a' && k.key <= 'z' {
			keyMap[k.key-'a'+'A'] = k.chip
		}
	}
}

// keypad releases typed keys after a fixed hold time.
type keypad struct {
	vm    *chip8.VM
	hold  time.Duration
	until [16]time.Time
}

func newKeypad(vm *chip8.VM, hold time.Duration) *keypad {
	return &keypad{vm: vm, hold: hold}
}

// press presses key now. A repeated press extends the hold.
func (p *keypad) press(key uint, now time.Time) {
	if key >= uint(len(p.until)) {
		return
	}

	p.until[key] = now.Add(p.hold)
	p.vm.Press(key)
}

// update releases every key whose hold has passed.
func (p *keypad) update(now time.Time) {
	for key, until := range p.until {
		if !until.IsZero() && !now.Before(until) {
			p.until[key] = time.Time{}
			p.vm.Release(uint(key))
		}
	}
}
