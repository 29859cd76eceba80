package window

import (
	"bytes"
	"testing"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad_CoversAllKeys(t *testing.T) {
	seen := map[vm.Key]bool{}
	for _, key := range Keypad {
		seen[key] = true
	}
	assert.Len(t, seen, vm.KeyCount)
}

func TestPollKeypad(t *testing.T) {
	tests := []struct {
		name      string
		positions []int
		key       vm.Key
		pressed   bool
	}{
		{"nothing pressed", nil, 0, false},
		{"key 1", []int{0}, 0x1, true},
		{"key C", []int{3}, 0xC, true},
		{"key 0", []int{13}, 0x0, true},
		{"key F", []int{15}, 0xF, true},
		{"first position wins", []int{11, 4}, 0x4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			held := map[int]bool{}
			for _, position := range tt.positions {
				held[position] = true
			}

			key, pressed := PollKeypad(func(position int) bool { return held[position] })
			assert.Equal(t, tt.pressed, pressed)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestFillPixels(t *testing.T) {
	pixels := make([]byte, 2*4)
	fillPixels(pixels, []byte{1, 0})

	assert.True(t, bytes.Equal(foreground[:], pixels[:4]))
	assert.True(t, bytes.Equal(background[:], pixels[4:]))
}
