// Package window hosts the virtual machine in a desktop window.
package window

import "github.com/retroenv/retrochip8/internal/vm"

// Keypad lists the virtual machine key for every physical key position,
// row by row. The 4x4 block 1234/QWER/ASDF/ZXCV of a keyboard maps to the
// COSMAC VIP keypad layout.
var Keypad = [vm.KeyCount]vm.Key{
	0x1, 0x2, 0x3, 0xC,
	0x4, 0x5, 0x6, 0xD,
	0x7, 0x8, 0x9, 0xE,
	0xA, 0x0, 0xB, 0xF,
}

// PollKeypad returns the key of the first pressed physical position. The
// virtual machine latches a single key, later positions lose when multiple
// keys are held.
func PollKeypad(pressed func(position int) bool) (vm.Key, bool) {
	for position, key := range Keypad {
		if pressed(position) {
			return key, true
		}
	}
	return 0, false
}

// Display colors as RGBA.
var (
	foreground = [4]byte{0xFF, 0xFF, 0xFF, 0xFF}
	background = [4]byte{0x00, 0x00, 0x00, 0xFF}
)

// fillPixels converts the framebuffer cells to RGBA pixels.
func fillPixels(pixels, framebuffer []byte) {
	for i, cell := range framebuffer {
		color := background
		if cell != 0 {
			color = foreground
		}
		copy(pixels[i*4:i*4+4], color[:])
	}
}
