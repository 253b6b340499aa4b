// Package rom reads CHIP-8 programs from disk. Assembler source files are
// assembled, anything else is taken as a raw ROM image.
package rom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/massung/chip8vm/chip8"
)

// Image is a program ready to load at 0x200.
type Image struct {
	// Name is the file name without directories.
	Name string

	// Program is the raw bytes to load.
	Program []byte

	// Breakpoints set by BREAK directives in assembler source.
	Breakpoints []chip8.Breakpoint
}

// IsSource returns true if path names a file of assembler source.
func IsSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".c8s", ".asm":
		return true
	}
	return false
}

// Read loads the file at path.
func Read(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	return Decode(path, data)
}

// Decode converts the contents of the file at path to a program image.
func Decode(path string, data []byte) (*Image, error) {
	img := &Image{Name: filepath.Base(path)}

	if IsSource(path) {
		asm, err := chip8.Assemble(data)
		if err != nil {
			return nil, fmt.Errorf("assembling %s: %w", img.Name, err)
		}

		img.Program = asm.ROM
		img.Breakpoints = asm.Breakpoints
	} else {
		img.Program = data
	}

	if len(img.Program) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%s: %w", img.Name, chip8.ErrProgramTooLarge)
	}

	return img, nil
}
