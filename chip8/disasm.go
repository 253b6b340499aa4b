package chip8

import "fmt"

/// Disassemble the CHIP-8 instruction at address.
///
func (vm *VM) Disassemble(address uint16) string {
	word, err := vm.Memory.Word(address)
	if err != nil {
		return ""
	}

	// end of program memory?
	if word == 0 {
		return fmt.Sprintf("%04X -", address)
	}

	return fmt.Sprintf("%04X - %s", address, Decode(word))
}

/// DisassembleProgram returns one line per instruction word of a program
/// loaded at 0x200.
///
func DisassembleProgram(program []byte) []string {
	lines := make([]string, 0, len(program)/2)

	for i := 0; i+1 < len(program); i += 2 {
		word := uint16(program[i])<<8 | uint16(program[i+1])

		lines = append(lines, fmt.Sprintf("%04X - %s", ProgramAddress+i, Decode(word)))
	}

	return lines
}
