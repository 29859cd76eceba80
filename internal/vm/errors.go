package vm

import (
	"errors"
	"fmt"
)

// Fatal conditions of the virtual machine. CHIP-8 has no trap mechanism,
// every one of these ends the execution of the loaded program.
var (
	ErrUnknownOpcode         = errors.New("unknown opcode")
	ErrStackOverflow         = errors.New("call stack overflow")
	ErrStackUnderflow        = errors.New("call stack underflow")
	ErrOutOfRange            = errors.New("memory access out of range")
	ErrStalledProgramCounter = errors.New("program counter stalled")
)

// Fault describes a fatal condition that occurred while executing the
// instruction at PC.
type Fault struct {
	PC     uint16 // address of the faulting instruction
	Opcode uint16 // raw instruction word, 0 if it could not be fetched
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("executing opcode %04X at address %03X: %s", f.Opcode, f.PC, f.Err)
}

// Unwrap returns the underlying sentinel error.
func (f *Fault) Unwrap() error {
	return f.Err
}
