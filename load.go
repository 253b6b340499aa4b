package main

import (
	"errors"
	"fmt"

	"github.com/massung/chip8vm/internal/rom"
	"github.com/sqweek/dialog"
)

var (
	/// File is the path of the loaded ROM or source file.
	///
	File string
)

/// Load the current file into a freshly reset machine. Assembler source is
/// assembled and its breakpoints installed.
///
func Load() error {
	if File == "" {
		return nil
	}

	img, err := rom.Read(File)
	if err != nil {
		return err
	}

	VM.Reset()
	if err := VM.Load(img.Program); err != nil {
		return err
	}

	Clock.ClearBreakpoints()
	for _, b := range img.Breakpoints {
		Clock.SetBreakpoint(b)
	}

	Clock.Resume()

	Window.SetTitle("CHIP-8 - " + img.Name)
	Info(fmt.Sprintf("Loaded %s (%d bytes)", img.Name, len(img.Program)))

	return nil
}

/// LoadDialog opens a ROM picked from a native file dialog.
///
func LoadDialog() {
	path, err := dialog.File().Filter("CHIP-8 ROM", "ch8", "c8", "c8s", "asm").Load()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			Error("Open failed", err)
		}
		return
	}

	File = path

	if err := Load(); err != nil {
		Error("Loading failed", err)
	}
}

/// Unload the ROM, leaving a cleared machine.
///
func Unload() {
	File = ""

	VM.Reset()

	Clock.ClearBreakpoints()
	Clock.Pause()

	Window.SetTitle("CHIP-8")
	Output.Logln("Unloading ROM")
}
