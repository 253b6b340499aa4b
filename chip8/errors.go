package chip8

import (
	"errors"
	"fmt"
)

var (
	// Machine faults
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrAddressOutOfRange = errors.New("address out of range")

	// Load errors
	ErrProgramTooLarge = errors.New("program too large")

	// Configuration errors
	ErrUnknownQuirks = errors.New("unknown quirks profile")
)

/// UnknownInstructionError is returned by Step when the fetched word has no
/// matching semantics. It is not fatal: the program counter has already
/// been advanced past it and nothing else was changed.
///
type UnknownInstructionError struct {
	Word uint16
	PC   uint16
}

func (err *UnknownInstructionError) Error() string {
	return fmt.Sprintf("unknown instruction %04X at %04X", err.Word, err.PC)
}

/// FaultError is a fatal condition raised while executing an instruction.
/// PC is the address of the faulting instruction. Fetch is set when the
/// instruction itself could not be read, leaving Instruction empty.
///
type FaultError struct {
	PC          uint16
	Instruction Instruction
	Fetch       bool
	Err         error
}

func (err *FaultError) Error() string {
	if err.Fetch {
		return fmt.Sprintf("%04X: %v", err.PC, err.Err)
	}

	return fmt.Sprintf("%04X %s: %v", err.PC, err.Instruction, err.Err)
}

func (err *FaultError) Unwrap() error {
	return err.Err
}

/// BreakpointError is returned by the clock when execution reaches a
/// breakpoint. The clock is paused when it is returned.
///
type BreakpointError struct {
	Breakpoint Breakpoint
}

func (err *BreakpointError) Error() string {
	if err.Breakpoint.Reason == "" {
		return fmt.Sprintf("breakpoint at %04X", err.Breakpoint.Address)
	}

	return fmt.Sprintf("breakpoint at %04X: %s", err.Breakpoint.Address, err.Breakpoint.Reason)
}

/// IsFatal returns false for errors that leave the machine able to keep
/// running (unknown instructions and breakpoints) and true otherwise.
///
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var unknown *UnknownInstructionError
	var brk *BreakpointError

	return !errors.As(err, &unknown) && !errors.As(err, &brk)
}
