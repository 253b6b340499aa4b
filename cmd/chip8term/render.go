package main

import (
	"strings"

	"github.com/massung/chip8vm/chip8"
)

const (
	// ScreenColumns and ScreenRows are the terminal cells used: two pixel
	// rows per text row plus the status line.
	ScreenColumns = chip8.ScreenWidth
	ScreenRows    = chip8.ScreenHeight/2 + 1
)

// half blocks indexed by top pixel | bottom pixel<<1
var blocks = [4]string{" ", "▀", "▄", "█"}

// Render draws the framebuffer with half blocks followed by a status line.
// Lines end in CR LF as the terminal is in raw mode.
func Render(vm *chip8.VM, status string) string {
	var sb strings.Builder

	for y := 0; y < chip8.ScreenHeight; y += 2 {
		for x := 0; x < chip8.ScreenWidth; x++ {
			i := 0
			if vm.Video.Lit(x, y) {
				i |= 1
			}
			if vm.Video.Lit(x, y+1) {
				i |= 2
			}

			sb.WriteString(blocks[i])
		}

		sb.WriteString("\r\n")
	}

	// pad the status so it overwrites the previous one
	if len(status) > ScreenColumns {
		status = status[:ScreenColumns]
	}
	sb.WriteString(status)
	sb.WriteString(strings.Repeat(" ", ScreenColumns-len(status)))

	return sb.String()
}
