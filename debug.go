package main

import (
	"fmt"
	"strings"

	"github.com/massung/chip8vm/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Current debug window address.
	///
	Address uint16
)

/// Show the HELP text in the log.
///
func DebugHelp() {
	Output.Logln("Virtual keys:")
	Output.Log("  1-2-3-4")
	Output.Log("  Q-W-E-R")
	Output.Log("  A-S-D-F")
	Output.Log("  Z-X-C-V")
	Output.Logln("Emulation keys:")
	Output.Log("  ESC      - Unload ROM")
	Output.Log("  BS       - Restart, CTRL to pause")
	Output.Log("  F2       - Reload ROM")
	Output.Log("  F3       - Open ROM")
	Output.Log("  [ / ]    - Slower / faster")
	Output.Log("  Pg Up/Dn - Scroll log")
	Output.Log("  H        - Help")
	Output.Logln("Debugger keys:")
	Output.Log("  SPACE/F5 - Pause / resume")
	Output.Log("  F6/F10   - Step")
	Output.Log("  F7/F11   - Step over breakpoint")
	Output.Log("  F8       - Dump memory at I")
	Output.Log("  F9       - Toggle breakpoint")
}

/// DebugAssembly renders the disassembled instructions around
/// the CHIP-8 program counter.
///
func DebugAssembly(x, y int32, lines int) {
	pc := VM.PC

	// scroll so the program counter stays in the window
	if pc < Address || pc >= Address+uint16(lines-1)*2 || (Address^pc)&1 == 1 {
		Address = pc - min(pc, 2)
	}

	breakpoints := make(map[uint16]bool)
	for _, b := range Clock.Breakpoints() {
		breakpoints[b.Address] = true
	}

	// show the disassembled instructions
	for i := 0; i < lines; i++ {
		address := Address + uint16(i*2)
		line := y + int32(i*LineHeight)

		if address == pc {
			if Clock.Paused() {
				Renderer.SetDrawColor(176, 32, 57, 255)
			} else {
				Renderer.SetDrawColor(57, 102, 176, 255)
			}

			// highlight the current instruction
			Renderer.FillRect(&sdl.Rect{
				X: x - 2,
				Y: line,
				W: AssemblyPanel.W - 4,
				H: LineHeight,
			})
		}

		marker := " "
		if breakpoints[address] {
			marker = "*"
		}

		Renderer.SetDrawColor(220, 220, 210, 255)
		DrawText(marker+VM.Disassemble(address), x, line)
	}
}

/// Show the current value of all the CHIP-8 registers.
///
func DebugRegisters(x, y int32) {
	Renderer.SetDrawColor(220, 220, 210, 255)

	for i := 0; i < 8; i++ {
		line := y + int32(i*LineHeight)

		DrawText(fmt.Sprintf("V%X #%02X", i, VM.V[i]), x, line)
		DrawText(fmt.Sprintf("V%X #%02X", i+8, VM.V[i+8]), x+50, line)
	}

	// shift over for the other registers
	x += 100

	DrawText(fmt.Sprintf("PC #%04X", VM.PC), x, y)
	DrawText(fmt.Sprintf("SP #%02X", VM.SP), x, y+LineHeight)
	DrawText(fmt.Sprintf("I  #%04X", VM.I), x, y+2*LineHeight)
	DrawText(fmt.Sprintf("DT #%02X", VM.DelayTimer()), x, y+4*LineHeight)
	DrawText(fmt.Sprintf("ST #%02X", VM.SoundTimer()), x, y+5*LineHeight)

	if VM.Mode == chip8.AwaitingKey {
		DrawText("KEY?", x, y+7*LineHeight)
	}
}

/// Show the current log text.
///
func DebugLog(x, y int32, lines int) {
	Renderer.SetDrawColor(220, 220, 210, 255)

	for _, s := range Output.Window(lines) {
		DrawText(s, x, y)

		// advance to the next line
		y += LineHeight
	}
}

/// DebugMemory logs the memory at I.
///
func DebugMemory() {
	Output.Logln(fmt.Sprintf("Memory at I (#%04X):", VM.I))

	for _, line := range DumpMemory(&VM.Memory, VM.I, 4) {
		Output.Log(line)
	}
}

/// DumpMemory formats lines of 8 bytes starting at address, stopping at
/// the end of memory.
///
func DumpMemory(mem *chip8.Memory, address uint16, lines int) []string {
	dump := make([]string, 0, lines)

	for i := 0; i < lines; i++ {
		a := int(address) + i*8
		if a >= chip8.MemorySize {
			break
		}

		row, err := mem.Slice(uint16(a), min(8, chip8.MemorySize-a))
		if err != nil {
			break
		}

		hex := make([]string, len(row))
		for j, b := range row {
			hex[j] = fmt.Sprintf("%02X", b)
		}

		dump = append(dump, fmt.Sprintf("%04X - %s", a, strings.Join(hex, " ")))
	}

	return dump
}
