package vm

import "fmt"

// Op identifies the semantics of a decoded instruction.
type Op uint8

// Instruction set. OpInvalid is never produced by a successful Decode.
const (
	OpInvalid        Op = iota
	OpClearScreen       // 00E0
	OpReturn            // 00EE
	OpJump              // 1nnn
	OpCall              // 2nnn
	OpSkipEqImm         // 3xnn
	OpSkipNeImm         // 4xnn
	OpSkipEqReg         // 5xy0
	OpSetImm            // 6xnn
	OpAddImm            // 7xnn
	OpMove              // 8xy0
	OpOr                // 8xy1
	OpAnd               // 8xy2
	OpXor               // 8xy3
	OpAddReg            // 8xy4
	OpSubReg            // 8xy5
	OpShiftRight        // 8xy6
	OpSubNeg            // 8xy7
	OpShiftLeft         // 8xyE
	OpSkipNeReg         // 9xy0
	OpSetIndex          // Annn
	OpJumpOffset        // Bnnn
	OpRandom            // Cxnn
	OpDraw              // Dxyn
	OpSkipKey           // Ex9E
	OpSkipNotKey        // ExA1
	OpReadDelay         // Fx07
	OpAwaitKey          // Fx0A
	OpSetDelay          // Fx15
	OpSetSound          // Fx18
	OpAddIndex          // Fx1E
	OpFontChar          // Fx29
	OpStoreBCD          // Fx33
	OpBlockStore        // Fx55
	OpBlockLoad         // Fx65
)

var opNames = [...]string{
	OpInvalid:     "invalid",
	OpClearScreen: "clear-screen",
	OpReturn:      "return",
	OpJump:        "jump",
	OpCall:        "call",
	OpSkipEqImm:   "skip-eq-imm",
	OpSkipNeImm:   "skip-ne-imm",
	OpSkipEqReg:   "skip-eq-reg",
	OpSetImm:      "set-imm",
	OpAddImm:      "add-imm",
	OpMove:        "move",
	OpOr:          "or",
	OpAnd:         "and",
	OpXor:         "xor",
	OpAddReg:      "add-reg",
	OpSubReg:      "sub-reg",
	OpShiftRight:  "shift-right",
	OpSubNeg:      "sub-neg",
	OpShiftLeft:   "shift-left",
	OpSkipNeReg:   "skip-ne-reg",
	OpSetIndex:    "set-index",
	OpJumpOffset:  "jump-offset",
	OpRandom:      "random",
	OpDraw:        "draw",
	OpSkipKey:     "skip-if-key",
	OpSkipNotKey:  "skip-if-not-key",
	OpReadDelay:   "read-delay-timer",
	OpAwaitKey:    "await-key",
	OpSetDelay:    "set-delay-timer",
	OpSetSound:    "set-sound-timer",
	OpAddIndex:    "add-to-index",
	OpFontChar:    "font-char-address",
	OpStoreBCD:    "store-bcd",
	OpBlockStore:  "block-store",
	OpBlockLoad:   "block-load",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Instruction is a decoded instruction word. Only the operand fields used
// by Op carry meaning.
type Instruction struct {
	Op   Op
	Word uint16 // raw instruction word

	X   byte   // register index from bits 8-11
	Y   byte   // register index from bits 4-7
	N   byte   // 4 bit immediate
	NN  byte   // 8 bit immediate
	NNN uint16 // 12 bit address
}

// Decode splits an instruction word into its fields and resolves the
// operation. Bit patterns without defined semantics return ErrUnknownOpcode.
func Decode(word uint16) (Instruction, error) {
	ins := Instruction{
		Word: word,
		X:    byte(word>>8) & 0xF,
		Y:    byte(word>>4) & 0xF,
		N:    byte(word) & 0xF,
		NN:   byte(word),
		NNN:  word & 0x0FFF,
	}

	ins.Op = decodeOp(word, ins.N, ins.NN)
	if ins.Op == OpInvalid {
		return ins, ErrUnknownOpcode
	}
	return ins, nil
}

var arithmeticOps = [16]Op{
	0x0: OpMove,
	0x1: OpOr,
	0x2: OpAnd,
	0x3: OpXor,
	0x4: OpAddReg,
	0x5: OpSubReg,
	0x6: OpShiftRight,
	0x7: OpSubNeg,
	0xE: OpShiftLeft,
}

var miscOps = map[byte]Op{
	0x07: OpReadDelay,
	0x0A: OpAwaitKey,
	0x15: OpSetDelay,
	0x18: OpSetSound,
	0x1E: OpAddIndex,
	0x29: OpFontChar,
	0x33: OpStoreBCD,
	0x55: OpBlockStore,
	0x65: OpBlockLoad,
}

func decodeOp(word uint16, n, nn byte) Op {
	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			return OpClearScreen
		case 0x00EE:
			return OpReturn
		}
	case 0x1:
		return OpJump
	case 0x2:
		return OpCall
	case 0x3:
		return OpSkipEqImm
	case 0x4:
		return OpSkipNeImm
	case 0x5:
		if n == 0 {
			return OpSkipEqReg
		}
	case 0x6:
		return OpSetImm
	case 0x7:
		return OpAddImm
	case 0x8:
		return arithmeticOps[n]
	case 0x9:
		if n == 0 {
			return OpSkipNeReg
		}
	case 0xA:
		return OpSetIndex
	case 0xB:
		return OpJumpOffset
	case 0xC:
		return OpRandom
	case 0xD:
		return OpDraw
	case 0xE:
		switch nn {
		case 0x9E:
			return OpSkipKey
		case 0xA1:
			return OpSkipNotKey
		}
	case 0xF:
		return miscOps[nn]
	}
	return OpInvalid
}
