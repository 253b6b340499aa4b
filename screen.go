package main

import (
	"github.com/massung/chip8vm/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	Screen *sdl.Texture

	// lit pixels of the last refresh
	points = make([]sdl.Point, 0, chip8.ScreenWidth*chip8.ScreenHeight)
)

/// InitScreen creates the render target for the CHIP-8 video memory.
///
func InitScreen() (err error) {
	Screen, err = Renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.ScreenWidth, chip8.ScreenHeight)
	return err
}

/// RefreshScreen with the CHIP-8 video memory.
///
func RefreshScreen() {
	if err := Renderer.SetRenderTarget(Screen); err != nil {
		return
	}

	// the background color for the screen
	Renderer.SetDrawColor(143, 145, 133, 255)
	Renderer.Clear()

	// set the pixel color
	Renderer.SetDrawColor(17, 29, 43, 255)

	points = points[:0]

	// collect all the lit pixels
	for y := 0; y < chip8.ScreenHeight; y++ {
		for x := 0; x < chip8.ScreenWidth; x++ {
			if VM.Video.Lit(x, y) {
				points = append(points, sdl.Point{X: int32(x), Y: int32(y)})
			}
		}
	}

	if len(points) > 0 {
		Renderer.DrawPoints(points)
	}

	// restore the render target
	Renderer.SetRenderTarget(nil)
}

/// CopyScreen to the render target.
///
func CopyScreen(x, y, w, h int32) {
	Renderer.Copy(Screen, nil, &sdl.Rect{X: x, Y: y, W: w, H: h})
}
