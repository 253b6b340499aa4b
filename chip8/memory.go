package chip8

const (
	/// MemorySize is the number of addressable bytes.
	///
	MemorySize = 0x1000

	/// FontAddress is where the 16 hex digit glyphs are stored.
	///
	FontAddress = 0x050

	/// ProgramAddress is where programs are loaded and execution begins.
	///
	ProgramAddress = 0x200

	/// MaxProgramSize is the largest program that fits in memory.
	///
	MaxProgramSize = MemorySize - ProgramAddress

	/// GlyphSize is the number of bytes (rows) in a single font glyph.
	///
	GlyphSize = 5
)

/// Font holds the 4x5 sprites for the hex digits 0-F.
///
var Font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

/// Memory is the flat, byte addressable CHIP-8 address space.
///
type Memory [MemorySize]byte

/// seedFont copies the font glyphs into the font region.
///
func (m *Memory) seedFont() {
	copy(m[FontAddress:], Font[:])
}

/// inRange returns true if n bytes starting at address are addressable.
///
func inRange(address uint16, n int) bool {
	return int(address)+n <= MemorySize
}

/// Slice returns n bytes starting at address, or ErrAddressOutOfRange if
/// any of them lie past the end of memory.
///
func (m *Memory) Slice(address uint16, n int) ([]byte, error) {
	if !inRange(address, n) {
		return nil, ErrAddressOutOfRange
	}

	return m[address : int(address)+n], nil
}

/// Word reads the big-endian 16-bit value at address.
///
func (m *Memory) Word(address uint16) (uint16, error) {
	b, err := m.Slice(address, 2)
	if err != nil {
		return 0, err
	}

	return uint16(b[0])<<8 | uint16(b[1]), nil
}
