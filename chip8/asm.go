/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package chip8

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
)

/// Assembly is a completely assembled source file.
///
type Assembly struct {
	/// ROM is the final, assembled bytes to load at 0x200.
	///
	ROM []byte

	/// Breakpoints set with the BREAK directive.
	///
	Breakpoints []Breakpoint

	/// Label mapping.
	///
	Labels map[string]token

	/// Addresses with unresolved labels.
	///
	Unresolved map[int]string
}

/// Assemble CHIP-8 source code.
///
func Assemble(program []byte) (out *Assembly, err error) {
	var line int

	// create an empty, return assembly
	out = &Assembly{
		ROM:         make([]byte, ProgramAddress, MemorySize),
		Breakpoints: make([]Breakpoint, 0, 10),
		Labels:      make(map[string]token),
		Unresolved:  make(map[int]string),
	}

	// handle panics during assembly
	defer func() {
		if r := recover(); r != nil {
			if line > 0 {
				err = fmt.Errorf("line %d - %v", line, r)
			} else {
				err = fmt.Errorf("%v", r)
			}

			out = nil
		}
	}()

	// create simple line scanner over the file
	scanner := bufio.NewScanner(bytes.NewReader(bytes.ToUpper(program)))

	// parse and assemble
	for line = 1; scanner.Scan(); line++ {
		out.assemble(&tokenScanner{bytes: scanner.Bytes()})

		if len(out.ROM) > MemorySize {
			panic("program too large")
		}
	}

	if err := scanner.Err(); err != nil {
		panic(err)
	}

	// clear the line number as we're done assembling
	line = 0

	out.resolve()

	// drop the reserved bytes before the program
	out.ROM = out.ROM[ProgramAddress:]

	return out, nil
}

/// Patch every unresolved label reference now that all labels are known.
///
func (a *Assembly) resolve() {
	addresses := make([]int, 0, len(a.Unresolved))
	for address := range a.Unresolved {
		addresses = append(addresses, address)
	}

	// report the first unresolved label in source order
	sort.Ints(addresses)

	for _, address := range addresses {
		label := a.Unresolved[address]

		t, ok := a.Labels[label]
		if !ok {
			panic(fmt.Errorf("unresolved label: %s", label))
		}

		if t.typ != TOKEN_LIT {
			panic(fmt.Errorf("label does not resolve to address: %s", label))
		}

		// NOTE: All address operands are the low 12 bits of the word, and
		//       a WORD directive defaults an unresolved label to 0x0200,
		//       so patching the low 12 bits works for both.
		//
		a.ROM[address] = byte(t.val.(int)>>8&0xF) | a.ROM[address]&0xF0
		a.ROM[address+1] = byte(t.val.(int))

		delete(a.Unresolved, address)
	}
}

/// Compile a single line into the assembly.
///
func (a *Assembly) assemble(s *tokenScanner) {
	t := s.scanToken()

	// assign labels
	if t.typ == TOKEN_LABEL {
		t = a.assembleLabel(t.val.(string), s)
	}

	switch t.typ {
	case TOKEN_INSTRUCTION:
		a.assembleInstruction(t.val.(string), s)
	case TOKEN_BREAK:
		a.assembleBreakpoint(s)
	case TOKEN_END:
	default:
		panic("unexpected token")
	}
}

/// Scan for a label and add it to the assembly.
///
func (a *Assembly) assembleLabel(label string, s *tokenScanner) token {
	if _, exists := a.Labels[label]; exists {
		panic(fmt.Errorf("duplicate label: %s", label))
	}

	// by default, the label is assigned the current address
	a.Labels[label] = token{typ: TOKEN_LIT, val: len(a.ROM)}

	t := s.scanToken()

	// if EQU or VAR, reassign the label
	if t.typ == TOKEN_EQU || t.typ == TOKEN_VAR {
		v := s.scanToken()

		// equ requires a literal, and var requires a v-register
		if (t.typ == TOKEN_EQU && v.typ == TOKEN_LIT) || (t.typ == TOKEN_VAR && v.typ == TOKEN_V) {
			a.Labels[label] = v

			// should be the final token
			if t = s.scanToken(); t.typ == TOKEN_END {
				return t
			}
		}

		panic("illegal label assignment")
	}

	return t
}

/// Create a new breakpoint at the current address.
///
func (a *Assembly) assembleBreakpoint(s *tokenScanner) {
	reason := s.scanToEnd().val.(string)

	a.Breakpoints = append(a.Breakpoints, Breakpoint{
		Address: uint16(len(a.ROM)),
		Reason:  reason,
	})
}

/// Compile a single instruction into the assembly.
///
func (a *Assembly) assembleInstruction(i string, s *tokenScanner) {
	tokens := s.scanOperands()

	var b []byte

	switch i {
	case "CLS":
		b = a.assembleNoOperands(tokens, 0x00E0)
	case "RET":
		b = a.assembleNoOperands(tokens, 0x00EE)
	case "JP":
		b = a.assembleJP(tokens)
	case "CALL":
		b = a.assembleAddress(tokens, 0x2000)
	case "SE":
		b = a.assembleSkip(tokens, 0x3000, 0x5000)
	case "SNE":
		b = a.assembleSkip(tokens, 0x4000, 0x9000)
	case "SKP":
		b = a.assembleX(tokens, 0xE09E)
	case "SKNP":
		b = a.assembleX(tokens, 0xE0A1)
	case "OR":
		b = a.assembleXY(tokens, 0x8001)
	case "AND":
		b = a.assembleXY(tokens, 0x8002)
	case "XOR":
		b = a.assembleXY(tokens, 0x8003)
	case "SUB":
		b = a.assembleXY(tokens, 0x8005)
	case "SUBN":
		b = a.assembleXY(tokens, 0x8007)
	case "SHR":
		b = a.assembleShift(tokens, 0x8006)
	case "SHL":
		b = a.assembleShift(tokens, 0x800E)
	case "ADD":
		b = a.assembleADD(tokens)
	case "RND":
		b = a.assembleRND(tokens)
	case "DRW":
		b = a.assembleDRW(tokens)
	case "LD":
		b = a.assembleLD(tokens)
	case "BYTE":
		b = a.assembleBYTE(tokens)
	case "WORD":
		b = a.assembleWORD(tokens)
	case "ALIGN":
		b = a.assembleALIGN(tokens)
	case "PAD":
		b = a.assemblePAD(tokens)
	}

	a.ROM = append(a.ROM, b...)
}

/// Assemble a single operand at address, expanding label references.
///
func (a *Assembly) assembleOperand(t token, address int) token {
	if t.typ == TOKEN_REF {
		label := t.val.(string)

		if v, exists := a.Labels[label]; exists {
			return v
		}

		// add an unresolved address, patched once the label is defined
		a.Unresolved[address] = label

		return token{typ: TOKEN_LIT, val: ProgramAddress}
	}

	return t
}

/// Match the desired tokens with a list of tokens. Expand labels.
///
func (a *Assembly) assembleOperands(tokens []token, m ...tokenType) ([]token, bool) {
	if len(tokens) != len(m) {
		return nil, false
	}

	ops := make([]token, 0, len(m))

	for i, typ := range m {
		t := tokens[i]

		// peek before expanding so a failed match records nothing
		if t.typ == TOKEN_REF {
			if v, exists := a.Labels[t.val.(string)]; exists {
				t = v
			} else if typ == TOKEN_LIT {
				t = a.assembleOperand(t, len(a.ROM))
			}
		}

		if t.typ != typ {
			return nil, false
		}

		ops = append(ops, t)
	}

	return ops, true
}

/// word converts an opcode to big-endian bytes.
///
func word(w int) []byte {
	return []byte{byte(w >> 8), byte(w)}
}

/// lit returns the integer value of a literal operand.
///
func lit(t token) int {
	return t.val.(int)
}

/// isByte returns true if n fits in a byte, signed or unsigned.
///
func isByte(n int) bool {
	return n >= -0x80 && n < 0x100
}

/// isAddress returns true if n is a 12-bit address.
///
func isAddress(n int) bool {
	return n >= 0 && n < MemorySize
}

/// Assemble an instruction without operands.
///
func (a *Assembly) assembleNoOperands(tokens []token, op int) []byte {
	if len(tokens) == 0 {
		return word(op)
	}

	panic("illegal instruction")
}

/// Assemble an instruction with a single address operand.
///
func (a *Assembly) assembleAddress(tokens []token, op int) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_LIT); ok && isAddress(lit(ops[0])) {
		return word(op | lit(ops[0]))
	}

	panic("illegal instruction")
}

/// Assemble a JP instruction.
///
func (a *Assembly) assembleJP(tokens []token) []byte {
	if len(tokens) == 1 {
		return a.assembleAddress(tokens, 0x1000)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok {
		if lit(ops[0]) == 0 && isAddress(lit(ops[1])) {
			return word(0xB000 | lit(ops[1]))
		}
	}

	panic("illegal instruction")
}

/// Assemble a SE or SNE instruction.
///
func (a *Assembly) assembleSkip(tokens []token, opByte, opReg int) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok && isByte(lit(ops[1])) {
		return word(opByte | lit(ops[0])<<8 | lit(ops[1])&0xFF)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		return word(opReg | lit(ops[0])<<8 | lit(ops[1])<<4)
	}

	panic("illegal instruction")
}

/// Assemble an instruction with a single v-register operand.
///
func (a *Assembly) assembleX(tokens []token, op int) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V); ok {
		return word(op | lit(ops[0])<<8)
	}

	panic("illegal instruction")
}

/// Assemble an instruction with two v-register operands.
///
func (a *Assembly) assembleXY(tokens []token, op int) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		return word(op | lit(ops[0])<<8 | lit(ops[1])<<4)
	}

	panic("illegal instruction")
}

/// Assemble a SHR or SHL instruction, vy is optional.
///
func (a *Assembly) assembleShift(tokens []token, op int) []byte {
	if len(tokens) == 1 {
		return a.assembleX(tokens, op)
	}

	return a.assembleXY(tokens, op)
}

/// Assemble an ADD instruction.
///
func (a *Assembly) assembleADD(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok && isByte(lit(ops[1])) {
		return word(0x7000 | lit(ops[0])<<8 | lit(ops[1])&0xFF)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		return word(0x8004 | lit(ops[0])<<8 | lit(ops[1])<<4)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_I, TOKEN_V); ok {
		return word(0xF01E | lit(ops[1])<<8)
	}

	panic("illegal instruction")
}

/// Assemble a RND instruction.
///
func (a *Assembly) assembleRND(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok && isByte(lit(ops[1])) {
		return word(0xC000 | lit(ops[0])<<8 | lit(ops[1])&0xFF)
	}

	panic("illegal instruction")
}

/// Assemble a DRW instruction.
///
func (a *Assembly) assembleDRW(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V, TOKEN_LIT); ok {
		if n := lit(ops[2]); n >= 0 && n < 0x10 {
			return word(0xD000 | lit(ops[0])<<8 | lit(ops[1])<<4 | n)
		}
	}

	panic("illegal instruction")
}

/// Assemble a LD instruction.
///
func (a *Assembly) assembleLD(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_LIT); ok && isByte(lit(ops[1])) {
		return word(0x6000 | lit(ops[0])<<8 | lit(ops[1])&0xFF)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_V); ok {
		return word(0x8000 | lit(ops[0])<<8 | lit(ops[1])<<4)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_I, TOKEN_LIT); ok && isAddress(lit(ops[1])) {
		return word(0xA000 | lit(ops[1]))
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_DT); ok {
		return word(0xF007 | lit(ops[0])<<8)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_K); ok {
		return word(0xF00A | lit(ops[0])<<8)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_DT, TOKEN_V); ok {
		return word(0xF015 | lit(ops[1])<<8)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_ST, TOKEN_V); ok {
		return word(0xF018 | lit(ops[1])<<8)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_F, TOKEN_V); ok {
		return word(0xF029 | lit(ops[1])<<8)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_B, TOKEN_V); ok {
		return word(0xF033 | lit(ops[1])<<8)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_ADDRESS, TOKEN_V); ok {
		return word(0xF055 | lit(ops[1])<<8)
	}

	if ops, ok := a.assembleOperands(tokens, TOKEN_V, TOKEN_ADDRESS); ok {
		return word(0xF065 | lit(ops[0])<<8)
	}

	panic("illegal instruction")
}

/// Assemble a BYTE directive: byte literals and strings.
///
func (a *Assembly) assembleBYTE(tokens []token) []byte {
	b := make([]byte, 0, len(tokens))

	for _, t := range tokens {
		switch t.typ {
		case TOKEN_LIT:
			if !isByte(lit(t)) {
				panic("invalid byte")
			}

			b = append(b, byte(lit(t)))
		case TOKEN_TEXT:
			b = append(b, t.val.(string)...)
		case TOKEN_REF:
			if v, ok := a.Labels[t.val.(string)]; ok && v.typ == TOKEN_LIT && isByte(lit(v)) {
				b = append(b, byte(lit(v)))
				continue
			}

			panic("invalid byte")
		default:
			panic("invalid byte")
		}
	}

	return b
}

/// Assemble a WORD directive: 16-bit literals and label addresses.
///
func (a *Assembly) assembleWORD(tokens []token) []byte {
	b := make([]byte, 0, len(tokens)*2)

	for i, t := range tokens {
		t = a.assembleOperand(t, len(a.ROM)+i*2)

		if t.typ != TOKEN_LIT || lit(t) < -0x8000 || lit(t) >= 0x10000 {
			panic("invalid word")
		}

		b = append(b, word(lit(t))...)
	}

	return b
}

/// Assemble an ALIGN directive, padding with zeros to a multiple of n.
///
func (a *Assembly) assembleALIGN(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_LIT); ok {
		if n := lit(ops[0]); n > 0 {
			return make([]byte, (n-len(a.ROM)%n)%n)
		}
	}

	panic("illegal alignment")
}

/// Assemble a PAD directive, n zero bytes.
///
func (a *Assembly) assemblePAD(tokens []token) []byte {
	if ops, ok := a.assembleOperands(tokens, TOKEN_LIT); ok {
		if n := lit(ops[0]); n >= 0 && n < MemorySize {
			return make([]byte, n)
		}
	}

	panic("illegal size")
}
