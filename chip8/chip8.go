package chip8

import (
	"fmt"
	"math/rand/v2"
	"time"
)

/// Mode is the externally visible execution state of the VM.
///
type Mode uint8

const (
	/// Running fetches and executes an instruction on each step.
	///
	Running Mode = iota

	/// AwaitingKey is entered by FX0A. Each step polls the keypad until a
	/// key goes from released to pressed.
	///
	AwaitingKey
)

func (m Mode) String() string {
	if m == AwaitingKey {
		return "awaiting key"
	}

	return "running"
}

/// VM is a CHIP-8 virtual machine. It is not safe for concurrent use; a
/// single owner drives it and reads its framebuffer.
///
type VM struct {
	/// Memory addressable by CHIP-8. The font lives at 0x050 and programs
	/// are loaded at 0x200.
	///
	Memory Memory

	/// ROM is a copy of the last program loaded, used by Restart.
	///
	ROM []byte

	/// Video memory, 64x32 pixels.
	///
	Video Framebuffer

	/// Keys hold the current state of the 16-key pad. The input layer
	/// writes them, instructions only read them.
	///
	Keys Keypad

	/// PC is the program counter. All programs begin at 0x200.
	///
	PC uint16

	/// I is the address register.
	///
	I uint16

	/// V are the 16 virtual registers. VF doubles as the flag register.
	///
	V [16]byte

	/// Stack holds return addresses, SP is the number of entries in use.
	///
	Stack [16]uint16
	SP    uint8

	/// DT and ST are the delay and sound timers, decremented at 60 Hz.
	///
	DT byte
	ST byte

	/// Mode is Running, or AwaitingKey while FX0A is pending.
	///
	Mode Mode

	/// Cycles is how many instructions have executed since reset.
	///
	Cycles uint64

	/// Quirks in effect for instruction semantics.
	///
	Quirks Quirks

	// register FX0A will write the key to
	wait uint8

	// key state at the previous poll while awaiting a key
	lastKeys Keypad

	rng  *rand.Rand
	seed uint64
}

/// Option configures a VM at construction.
///
type Option func(vm *VM)

/// WithQuirks sets the quirks the VM executes with.
///
func WithQuirks(q Quirks) Option {
	return func(vm *VM) {
		vm.Quirks = q
	}
}

/// WithSeed seeds the random number generator used by CXNN. A zero seed
/// is replaced with one taken from the clock.
///
func WithSeed(seed uint64) Option {
	return func(vm *VM) {
		vm.seed = seed
	}
}

/// New creates a CHIP-8 virtual machine with the font loaded and no program.
///
func New(opts ...Option) *VM {
	vm := &VM{}

	for _, opt := range opts {
		opt(vm)
	}

	if vm.seed == 0 {
		vm.seed = uint64(time.Now().UnixNano())
	}

	vm.Reset()

	return vm
}

/// Load copies a program into memory at 0x200 and resets the program
/// counter. Nothing else is changed. Programs that don't fit are rejected
/// without modifying memory.
///
func (vm *VM) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, at most %d fit", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	// keep a pristine copy to restart from
	vm.ROM = append(vm.ROM[:0], program...)

	copy(vm.Memory[ProgramAddress:], program)

	// begin execution at the program
	vm.PC = ProgramAddress
	vm.Mode = Running

	return nil
}

/// Reset the CHIP-8 virtual machine to its construction state. Memory is
/// cleared, the font re-seeded and the ROM forgotten; the program must be
/// loaded again.
///
func (vm *VM) Reset() {
	vm.Memory = Memory{}
	vm.Memory.seedFont()
	vm.ROM = nil

	// reset video memory and keys
	vm.Video.Clear()
	vm.Keys = Keypad{}

	// reset program counter and stack pointer
	vm.PC = ProgramAddress
	vm.SP = 0
	vm.Stack = [16]uint16{}

	// reset address and virtual registers
	vm.I = 0
	vm.V = [16]byte{}

	// reset timer registers
	vm.DT = 0
	vm.ST = 0

	// not waiting for a key
	vm.Mode = Running
	vm.wait = 0
	vm.lastKeys = Keypad{}

	vm.Cycles = 0
	vm.rng = rand.New(rand.NewPCG(vm.seed, vm.seed^0x9E3779B97F4A7C15))
}

/// Restart resets the machine and loads the last program again.
///
func (vm *VM) Restart() error {
	rom := append([]byte(nil), vm.ROM...)

	vm.Reset()

	return vm.Load(rom)
}

/// Press emulates a CHIP-8 key being pressed.
///
func (vm *VM) Press(key uint) {
	if key < 16 {
		vm.Keys[key] = true
	}
}

/// Release emulates a CHIP-8 key being released.
///
func (vm *VM) Release(key uint) {
	if key < 16 {
		vm.Keys[key] = false
	}
}

/// TickTimers decrements the delay and sound timers if they are running.
/// It must be called 60 times per second, independent of the CPU rate.
///
func (vm *VM) TickTimers() {
	if vm.DT > 0 {
		vm.DT--
	}

	if vm.ST > 0 {
		vm.ST--
	}
}

/// DelayTimer returns the current value of the delay timer.
///
func (vm *VM) DelayTimer() byte {
	return vm.DT
}

/// SoundTimer returns the current value of the sound timer.
///
func (vm *VM) SoundTimer() byte {
	return vm.ST
}

/// Sound returns true while the buzzer should be sounding.
///
func (vm *VM) Sound() bool {
	return vm.ST > 0
}

/// Step the CHIP-8 virtual machine a single instruction. While awaiting a
/// key the step polls the keypad instead.
///
/// An *UnknownInstructionError is not fatal. Any other error is a
/// *FaultError and leaves PC at the faulting instruction.
///
func (vm *VM) Step() error {
	if vm.Mode == AwaitingKey {
		vm.pollKeys()
		return nil
	}

	pc := vm.PC

	// fetch the next instruction
	word, err := vm.Memory.Word(pc)
	if err != nil {
		return &FaultError{PC: pc, Fetch: true, Err: err}
	}

	// advance the program counter before execution
	vm.PC += 2

	inst := Decode(word)

	if err := vm.execute(inst); err != nil {
		if _, unknown := err.(*UnknownInstructionError); unknown {
			vm.Cycles++
			return err
		}

		// leave the program counter on the faulting instruction
		vm.PC = pc

		return &FaultError{PC: pc, Instruction: inst, Err: err}
	}

	vm.Cycles++

	return nil
}

/// pollKeys completes a pending FX0A once a key transitions to pressed.
///
func (vm *VM) pollKeys() {
	for k, down := range vm.Keys {
		if down && !vm.lastKeys[k] {
			vm.V[vm.wait] = byte(k)
			vm.Mode = Running

			// move past the FX0A instruction
			vm.PC += 2
			vm.Cycles++

			return
		}
	}

	vm.lastKeys = vm.Keys
}
