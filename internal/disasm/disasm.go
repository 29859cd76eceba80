// Package disasm formats CHIP-8 instruction words as assembly text.
// Mnemonics come from the retrogolib CHIP-8 instruction definitions.
package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Lookup returns the instruction definition matching the word.
func Lookup(word uint16) (*chip8.Instruction, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return op.Instruction, true
		}
	}
	return nil, false
}

// Format returns the assembly text of a single instruction word. Words that
// the virtual machine would reject are formatted as data.
func Format(word uint16) string {
	decoded, err := vm.Decode(word)
	if err != nil {
		return fmt.Sprintf(".word $%04X", word)
	}

	ins, ok := Lookup(word)
	if !ok {
		return fmt.Sprintf(".word $%04X", word)
	}

	if params := operands(decoded); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// Listing writes the program addressed from base as assembly text. Only
// instructions reachable from base are disassembled, all other bytes are
// written as data. Branch destinations and index register targets get a
// label line.
func Listing(w io.Writer, program []byte, base uint16) error {
	analysis := Trace(program, base)

	for offset := 0; offset < len(program); {
		address := base + uint16(offset)

		var sb strings.Builder
		switch {
		case analysis.Labels.Contains(address):
			fmt.Fprintf(&sb, "_label_%03X:\n", address)
		case analysis.Data.Contains(address):
			fmt.Fprintf(&sb, "_data_%03X:\n", address)
		}

		if analysis.Code.Contains(address) {
			word := uint16(program[offset])<<8 | uint16(program[offset+1])
			fmt.Fprintf(&sb, "$%03X  %04X  %s\n", address, word, Format(word))
			offset += instructionSize
		} else {
			fmt.Fprintf(&sb, "$%03X  %02X    .byte $%02X\n", address, program[offset], program[offset])
			offset++
		}

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return fmt.Errorf("writing listing line: %w", err)
		}
	}
	return nil
}

// operandForms contains the operand templates of all instructions that
// have operands. Placeholders are replaced by the decoded instruction fields.
var operandForms = map[vm.Op]string{
	vm.OpJump:       "${nnn}",
	vm.OpCall:       "${nnn}",
	vm.OpSkipEqImm:  "V{x}, ${nn}",
	vm.OpSkipNeImm:  "V{x}, ${nn}",
	vm.OpSkipEqReg:  "V{x}, V{y}",
	vm.OpSetImm:     "V{x}, ${nn}",
	vm.OpAddImm:     "V{x}, ${nn}",
	vm.OpMove:       "V{x}, V{y}",
	vm.OpOr:         "V{x}, V{y}",
	vm.OpAnd:        "V{x}, V{y}",
	vm.OpXor:        "V{x}, V{y}",
	vm.OpAddReg:     "V{x}, V{y}",
	vm.OpSubReg:     "V{x}, V{y}",
	vm.OpShiftRight: "V{x}",
	vm.OpSubNeg:     "V{x}, V{y}",
	vm.OpShiftLeft:  "V{x}",
	vm.OpSkipNeReg:  "V{x}, V{y}",
	vm.OpSetIndex:   "I, ${nnn}",
	vm.OpJumpOffset: "V0, ${nnn}",
	vm.OpRandom:     "V{x}, ${nn}",
	vm.OpDraw:       "V{x}, V{y}, ${n}",
	vm.OpSkipKey:    "V{x}",
	vm.OpSkipNotKey: "V{x}",
	vm.OpReadDelay:  "V{x}, DT",
	vm.OpAwaitKey:   "V{x}, K",
	vm.OpSetDelay:   "DT, V{x}",
	vm.OpSetSound:   "ST, V{x}",
	vm.OpAddIndex:   "I, V{x}",
	vm.OpFontChar:   "F, V{x}",
	vm.OpStoreBCD:   "B, V{x}",
	vm.OpBlockStore: "[I], V{x}",
	vm.OpBlockLoad:  "V{x}, [I]",
}

// operands returns the operand text of a decoded instruction.
func operands(ins vm.Instruction) string {
	form, ok := operandForms[ins.Op]
	if !ok {
		return ""
	}

	replacer := strings.NewReplacer(
		"{x}", fmt.Sprintf("%X", ins.X),
		"{y}", fmt.Sprintf("%X", ins.Y),
		"{nnn}", fmt.Sprintf("%03X", ins.NNN),
		"{nn}", fmt.Sprintf("%02X", ins.NN),
		"{n}", fmt.Sprintf("%X", ins.N),
	)
	return replacer.Replace(form)
}
