package main

import (
	"image"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	/// CharWidth and LineHeight are the cell size of the debug font.
	///
	CharWidth  = 7
	LineHeight = 13

	// strings rasterized before the cache is dropped
	maxCachedText = 2048
)

var (
	// rasterized strings, as the points to draw relative to the origin
	textCache = make(map[string][]sdl.Point)

	// scratch space to translate cached points
	textPoints []sdl.Point
)

/// rasterize renders s with the debug font and returns its lit pixels.
///
func rasterize(s string) []sdl.Point {
	if pts, ok := textCache[s]; ok {
		return pts
	}

	face := basicfont.Face7x13
	img := image.NewAlpha(image.Rect(0, 0, len(s)*CharWidth, LineHeight))

	d := font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)

	var pts []sdl.Point

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.AlphaAt(x, y).A >= 0x80 {
				pts = append(pts, sdl.Point{X: int32(x), Y: int32(y)})
			}
		}
	}

	if len(textCache) >= maxCachedText {
		textCache = make(map[string][]sdl.Point)
	}
	textCache[s] = pts

	return pts
}

/// DrawText in the current draw color with its top left corner at x, y.
///
func DrawText(s string, x, y int32) {
	pts := rasterize(s)
	if len(pts) == 0 {
		return
	}

	textPoints = textPoints[:0]
	for _, p := range pts {
		textPoints = append(textPoints, sdl.Point{X: p.X + x, Y: p.Y + y})
	}

	Renderer.DrawPoints(textPoints)
}
