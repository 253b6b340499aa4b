package chip8

const (
	/// ScreenWidth and ScreenHeight are the framebuffer dimensions in pixels.
	///
	ScreenWidth  = 64
	ScreenHeight = 32
)

/// Framebuffer is the 64x32 monochrome display, one byte per pixel, stored
/// row-major. Any nonzero byte is a lit pixel.
///
type Framebuffer [ScreenWidth * ScreenHeight]byte

/// Clear unlights every pixel.
///
func (fb *Framebuffer) Clear() {
	for i := range fb {
		fb[i] = 0
	}
}

/// Lit returns true if the pixel at x, y is lit. Coordinates wrap.
///
func (fb *Framebuffer) Lit(x, y int) bool {
	x &= ScreenWidth - 1
	y &= ScreenHeight - 1

	return fb[y*ScreenWidth+x] != 0
}

/// toggle XORs the pixel at x, y and returns true if it was lit before.
///
func (fb *Framebuffer) toggle(x, y int) bool {
	i := y*ScreenWidth + x

	// was the pixel already on?
	lit := fb[i] != 0

	if lit {
		fb[i] = 0
	} else {
		fb[i] = 1
	}

	return lit
}

/// Keypad is the state of the 16 hex keys.
///
type Keypad [16]bool

/// Pressed returns true if key k is down. Keys past 0xF are never pressed.
///
func (k *Keypad) Pressed(key byte) bool {
	return int(key) < len(k) && k[key]
}
