package main

import (
	"github.com/massung/chip8vm/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	margin = 8

	assemblyWidth = 204
	registerWidth = 170
	bottomHeight  = 164
	topMinHeight  = 162
)

var (
	/// Window panels, placed by Layout.
	///
	ScreenPanel   sdl.Rect
	AssemblyPanel sdl.Rect
	RegisterPanel sdl.Rect
	LogPanel      sdl.Rect
)

/// Layout places the panels around a screen of the current scale and
/// returns the window size.
///
func Layout() (int32, int32) {
	ScreenPanel = sdl.Rect{
		X: margin,
		Y: margin,
		W: chip8.ScreenWidth*Scale + 2,
		H: chip8.ScreenHeight*Scale + 2,
	}

	top := max(ScreenPanel.H, topMinHeight)

	AssemblyPanel = sdl.Rect{
		X: ScreenPanel.X + ScreenPanel.W + margin,
		Y: margin,
		W: assemblyWidth,
		H: top,
	}

	w := AssemblyPanel.X + AssemblyPanel.W + margin
	y := margin + top + 6

	RegisterPanel = sdl.Rect{X: margin, Y: y, W: registerWidth, H: bottomHeight}

	LogPanel = sdl.Rect{
		X: RegisterPanel.X + RegisterPanel.W + margin,
		Y: y,
		W: w - margin - (RegisterPanel.X + RegisterPanel.W + margin),
		H: bottomHeight,
	}

	return w, y + bottomHeight + margin
}

/// Lines returns how many lines of text fit in a panel.
///
func Lines(r sdl.Rect) int {
	return int(r.H-8) / LineHeight
}
