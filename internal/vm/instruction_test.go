package vm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word uint16
		op   Op
	}{
		{0x00E0, OpClearScreen},
		{0x00EE, OpReturn},
		{0x1ABC, OpJump},
		{0x2ABC, OpCall},
		{0x3122, OpSkipEqImm},
		{0x4122, OpSkipNeImm},
		{0x5120, OpSkipEqReg},
		{0x6122, OpSetImm},
		{0x7122, OpAddImm},
		{0x8120, OpMove},
		{0x8121, OpOr},
		{0x8122, OpAnd},
		{0x8123, OpXor},
		{0x8124, OpAddReg},
		{0x8125, OpSubReg},
		{0x8126, OpShiftRight},
		{0x8127, OpSubNeg},
		{0x812E, OpShiftLeft},
		{0x9120, OpSkipNeReg},
		{0xA123, OpSetIndex},
		{0xB123, OpJumpOffset},
		{0xC1FF, OpRandom},
		{0xD125, OpDraw},
		{0xE19E, OpSkipKey},
		{0xE1A1, OpSkipNotKey},
		{0xF107, OpReadDelay},
		{0xF10A, OpAwaitKey},
		{0xF115, OpSetDelay},
		{0xF118, OpSetSound},
		{0xF11E, OpAddIndex},
		{0xF129, OpFontChar},
		{0xF133, OpStoreBCD},
		{0xF155, OpBlockStore},
		{0xF165, OpBlockLoad},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			ins, err := Decode(tt.word)
			assert.NoError(t, err)
			assert.Equal(t, tt.op, ins.Op)
			assert.Equal(t, tt.word, ins.Word)
		})
	}
}

func TestDecode_Fields(t *testing.T) {
	ins, err := Decode(0xD12F)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x1), ins.X)
	assert.Equal(t, byte(0x2), ins.Y)
	assert.Equal(t, byte(0xF), ins.N)
	assert.Equal(t, byte(0x2F), ins.NN)
	assert.Equal(t, uint16(0x12F), ins.NNN)
}

func TestDecode_Unknown(t *testing.T) {
	words := []uint16{0x0000, 0x0123, 0x00E1, 0x5121, 0x8128, 0x812F, 0x9121, 0xE100, 0xF100, 0xF1FF}

	for _, word := range words {
		ins, err := Decode(word)
		assert.True(t, errors.Is(err, ErrUnknownOpcode))
		assert.Equal(t, OpInvalid, ins.Op)
	}
}
