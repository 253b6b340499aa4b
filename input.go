package main

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Mapping of modern keyboard to CHIP-8 keys.
	///
	KeyMap = map[sdl.Scancode]uint{
		sdl.SCANCODE_X: 0x0,
		sdl.SCANCODE_1: 0x1,
		sdl.SCANCODE_2: 0x2,
		sdl.SCANCODE_3: 0x3,
		sdl.SCANCODE_Q: 0x4,
		sdl.SCANCODE_W: 0x5,
		sdl.SCANCODE_E: 0x6,
		sdl.SCANCODE_A: 0x7,
		sdl.SCANCODE_S: 0x8,
		sdl.SCANCODE_D: 0x9,
		sdl.SCANCODE_Z: 0xA,
		sdl.SCANCODE_C: 0xB,
		sdl.SCANCODE_4: 0xC,
		sdl.SCANCODE_R: 0xD,
		sdl.SCANCODE_F: 0xE,
		sdl.SCANCODE_V: 0xF,
	}
)

/// ProcessEvents from SDL and map keys to the CHIP-8 VM. Returns false
/// once the window is closed.
///
func ProcessEvents() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			key, ok := KeyMap[ev.Keysym.Scancode]

			switch {
			case ev.Type == sdl.KEYUP && ok:
				VM.Release(key)
			case ev.Type != sdl.KEYDOWN:
			case ok:
				VM.Press(key)
			default:
				ProcessKey(ev.Keysym.Scancode, ev.Keysym.Mod&uint16(sdl.KMOD_CTRL) != 0)
			}
		}
	}

	return true
}

/// ProcessKey handles an emulator key that isn't on the CHIP-8 keypad.
///
func ProcessKey(code sdl.Scancode, ctrl bool) {
	switch code {
	case sdl.SCANCODE_ESCAPE:
		Unload()
	case sdl.SCANCODE_BACKSPACE:
		if err := VM.Restart(); err != nil {
			Error("Restart failed", err)
			return
		}

		Clock.Resume()
		Output.Logln("Restarted")

		// holding control during reset will reboot paused
		if ctrl {
			Clock.Pause()
		}
	case sdl.SCANCODE_UP, sdl.SCANCODE_PAGEUP:
		Output.ScrollUp()
	case sdl.SCANCODE_DOWN, sdl.SCANCODE_PAGEDOWN:
		Output.ScrollDown(Lines(LogPanel))
	case sdl.SCANCODE_HOME:
		Output.Home()
	case sdl.SCANCODE_END:
		Output.End()
	case sdl.SCANCODE_F2:
		if err := Load(); err != nil {
			Error("Loading failed", err)
		}
	case sdl.SCANCODE_F3:
		LoadDialog()
	case sdl.SCANCODE_H:
		DebugHelp()
	case sdl.SCANCODE_LEFTBRACKET:
		Clock.Slower()
		Output.Log(fmt.Sprintf("Speed %d Hz", Clock.Rate()))
	case sdl.SCANCODE_RIGHTBRACKET:
		Clock.Faster()
		Output.Log(fmt.Sprintf("Speed %d Hz", Clock.Rate()))
	case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
		if Clock.Paused() {
			Clock.Resume()
		} else {
			Clock.Pause()
		}
	case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
		if Clock.Paused() {
			if err := Clock.Step(); err != nil {
				Error("Step failed", err)
			}
		}
	case sdl.SCANCODE_F7, sdl.SCANCODE_F11:
		if Clock.Paused() {
			Clock.StepOver()
		}
	case sdl.SCANCODE_F8:
		if Clock.Paused() {
			DebugMemory()
		}
	case sdl.SCANCODE_F9:
		if Clock.Paused() {
			Clock.ToggleBreakpoint()
		}
	}
}
