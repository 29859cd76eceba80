// Package vm implements the CHIP-8 virtual machine core: memory, registers,
// call stack, timers, display and input latch, driven by a fetch, decode and
// execute engine.
package vm

import (
	"math/rand/v2"
	"time"
)

// State describes what the engine did in its last step.
type State uint8

const (
	// StateRunning is the state after a step that advanced the program.
	StateRunning State = iota
	// StateAwaitingKey means an await-key instruction found no pressed key
	// and will execute again on the next step.
	StateAwaitingKey
	// StateFaulted means a fatal condition stopped the program.
	StateFaulted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateAwaitingKey:
		return "awaiting key"
	case StateFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// GlyphSize is the number of bytes per glyph of the font table at 0x000.
const GlyphSize = 5

// RandomSource provides the random bytes for the random instruction.
type RandomSource interface {
	Uint32() uint32
}

// Option configures an Engine.
type Option func(*Engine)

// WithQuirks sets the instruction set interpretation.
func WithQuirks(quirks Quirks) Option {
	return func(e *Engine) {
		e.quirks = quirks
	}
}

// WithRandom sets the random source used by the random instruction.
func WithRandom(source RandomSource) Option {
	return func(e *Engine) {
		e.random = source
	}
}

// WithSeed seeds the random source for reproducible runs.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.random = rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	}
}

// Engine owns all machine state and executes one instruction per Step.
type Engine struct {
	registers Registers
	memory    Memory
	stack     Stack
	timers    Timers
	display   Display
	input     Input

	quirks Quirks
	random RandomSource
	state  State
	fault  *Fault
	steps  uint64
}

// New returns an engine with cleared state and the program counter at the
// program start address.
func New(options ...Option) *Engine {
	e := &Engine{}
	e.registers.PC = ProgramStart

	for _, option := range options {
		option(e)
	}
	if e.random == nil {
		seed := uint64(time.Now().UnixNano())
		WithSeed(seed)(e)
	}
	return e
}

// LoadProgram copies a program image verbatim to the program start address.
func (e *Engine) LoadProgram(program []byte) error {
	return e.memory.Load(ProgramStart, program)
}

// LoadFont copies a glyph table to address 0, where the font-char
// instruction expects it.
func (e *Engine) LoadFont(font []byte) error {
	return e.memory.Load(0, font)
}

// SetKey updates the input latch, called by the host once per poll.
func (e *Engine) SetKey(key Key, pressed bool) {
	e.input.Set(key, pressed)
}

// Registers returns the register file.
func (e *Engine) Registers() *Registers { return &e.registers }

// Memory returns the memory bus.
func (e *Engine) Memory() *Memory { return &e.memory }

// Stack returns the call stack.
func (e *Engine) Stack() *Stack { return &e.stack }

// Timers returns the delay and sound timers.
func (e *Engine) Timers() *Timers { return &e.timers }

// Display returns the framebuffer.
func (e *Engine) Display() *Display { return &e.display }

// Input returns the input latch.
func (e *Engine) Input() *Input { return &e.input }

// Quirks returns the active quirks.
func (e *Engine) Quirks() Quirks { return e.quirks }

// State returns the state after the last step.
func (e *Engine) State() State { return e.state }

// Fault returns the fault that stopped the engine, or nil.
func (e *Engine) Fault() *Fault { return e.fault }

// PC returns the address of the next instruction.
func (e *Engine) PC() uint16 { return e.registers.PC }

// Steps returns the number of successfully executed steps.
func (e *Engine) Steps() uint64 { return e.steps }

// Fetch reads and decodes the instruction at the program counter without
// executing it.
func (e *Engine) Fetch() (Instruction, error) {
	word, err := e.memory.readWord(e.registers.PC)
	if err != nil {
		return Instruction{}, err
	}
	return Decode(word)
}

// Step executes exactly one instruction. Any returned error is a *Fault and
// leaves the engine in StateFaulted; further steps fail with the same fault.
func (e *Engine) Step() (Instruction, error) {
	if e.fault != nil {
		return Instruction{}, e.fault
	}
	pc := e.registers.PC

	ins, err := e.Fetch()
	if err == nil {
		err = e.execute(ins)
	}
	if err == nil && e.state != StateAwaitingKey && e.registers.PC == pc {
		err = ErrStalledProgramCounter
	}

	if err != nil {
		e.state = StateFaulted
		e.registers.PC = pc
		e.fault = &Fault{PC: pc, Opcode: ins.Word, Err: err}
		return ins, e.fault
	}

	e.steps++
	return ins, nil
}
