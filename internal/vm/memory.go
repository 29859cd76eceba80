package vm

import "fmt"

// CHIP-8 memory layout constants.
//
//	0x000-0x1FF: interpreter area, holds the font glyphs
//	0x200-0xFFF: program space
const (
	MemorySize   = 0x1000
	ProgramStart = 0x200
	MaxAddress   = MemorySize - 1

	// MaxProgramSize is the number of bytes available for a program image.
	MaxProgramSize = MemorySize - ProgramStart
)

// Memory is the flat byte addressable store of the machine.
type Memory struct {
	data [MemorySize]byte
}

// ReadByte returns the byte at the given address.
func (m *Memory) ReadByte(address uint16) (byte, error) {
	if address > MaxAddress {
		return 0, fmt.Errorf("reading address %04X: %w", address, ErrOutOfRange)
	}
	return m.data[address], nil
}

// WriteByte sets the byte at the given address.
func (m *Memory) WriteByte(address uint16, value byte) error {
	if address > MaxAddress {
		return fmt.Errorf("writing address %04X: %w", address, ErrOutOfRange)
	}
	m.data[address] = value
	return nil
}

// Load copies data verbatim into memory starting at address.
func (m *Memory) Load(address uint16, data []byte) error {
	end := int(address) + len(data)
	if end > MemorySize {
		return fmt.Errorf("loading %d bytes at address %04X: %w", len(data), address, ErrOutOfRange)
	}
	copy(m.data[address:end], data)
	return nil
}

// readWord reads a big-endian 16 bit word.
func (m *Memory) readWord(address uint16) (uint16, error) {
	high, err := m.ReadByte(address)
	if err != nil {
		return 0, err
	}
	low, err := m.ReadByte(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(high)<<8 | uint16(low), nil
}
