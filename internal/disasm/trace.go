package disasm

import (
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/set"
)

const instructionSize = 2

// Analysis contains the result of following the control flow of a program.
type Analysis struct {
	Code   set.Set[uint16] // addresses of reachable instructions
	Labels set.Set[uint16] // jump and call destinations
	Data   set.Set[uint16] // addresses loaded into the index register
}

// tracer walks all reachable instructions, starting at the program start.
type tracer struct {
	program []byte
	base    uint16

	analysis       Analysis
	offsetsQueued  set.Set[uint16]
	offsetsToParse []uint16
}

// Trace follows jumps, calls and skips of the program loaded at base and
// returns which addresses contain code. Indirect jumps are not followed and
// unknown instruction words end a code path.
func Trace(program []byte, base uint16) Analysis {
	t := &tracer{
		program: program,
		base:    base,
		analysis: Analysis{
			Code:   set.New[uint16](),
			Labels: set.New[uint16](),
			Data:   set.New[uint16](),
		},
		offsetsQueued: set.New[uint16](),
	}

	t.addAddressToParse(base)
	for len(t.offsetsToParse) > 0 {
		address := t.offsetsToParse[0]
		t.offsetsToParse = t.offsetsToParse[1:]
		t.processAddress(address)
	}
	return t.analysis
}

// wordAt returns the instruction word at the address if both bytes are
// part of the program.
func (t *tracer) wordAt(address uint16) (uint16, bool) {
	if address < t.base {
		return 0, false
	}
	offset := int(address - t.base)
	if offset+1 >= len(t.program) {
		return 0, false
	}
	return uint16(t.program[offset])<<8 | uint16(t.program[offset+1]), true
}

func (t *tracer) addAddressToParse(address uint16) {
	if t.offsetsQueued.Contains(address) {
		return
	}
	t.offsetsQueued.Add(address)
	t.offsetsToParse = append(t.offsetsToParse, address)
}

func (t *tracer) addBranchDestination(address uint16) {
	if address < t.base || address > vm.MaxAddress {
		return // interpreter area
	}
	t.analysis.Labels.Add(address)
	t.addAddressToParse(address)
}

func (t *tracer) processAddress(address uint16) {
	word, ok := t.wordAt(address)
	if !ok {
		return
	}
	if _, err := vm.Decode(word); err != nil {
		return
	}
	ins, ok := Lookup(word)
	if !ok {
		return
	}

	t.analysis.Code.Add(address)
	next := address + instructionSize
	target := word & 0x0FFF

	switch {
	case ins == chip8.RetInst:

	case ins == chip8.JpInst:
		if word&0xF000 == 0x1000 {
			t.addBranchDestination(target)
		}

	case ins == chip8.CallInst:
		t.addBranchDestination(target)
		t.addAddressToParse(next)

	case chip8.SkipInstructions.Contains(ins.Name):
		t.addAddressToParse(next)
		t.addAddressToParse(next + instructionSize)

	case word&0xF000 == 0xA000:
		if target >= t.base {
			t.analysis.Data.Add(target)
		}
		t.addAddressToParse(next)

	default:
		t.addAddressToParse(next)
	}
}
