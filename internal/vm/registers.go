package vm

// RegisterCount is the number of general purpose registers V0-VF.
const RegisterCount = 16

// FlagRegister is the index of VF, used as carry, borrow, shifted out bit
// and collision flag by specific instructions.
const FlagRegister = 0xF

// Registers holds the general purpose registers, the index register and the
// program counter.
type Registers struct {
	V  [RegisterCount]byte
	I  uint16
	PC uint16
}

// Read returns the value of register Vx. The index is masked to 4 bits.
func (r *Registers) Read(index byte) byte {
	return r.V[index&0xF]
}

// Write sets register Vx. The index is masked to 4 bits.
func (r *Registers) Write(index, value byte) {
	r.V[index&0xF] = value
}
