package vm

// Key is a logical hexadecimal keypad code 0x0-0xF.
type Key byte

// KeyCount is the number of keys on the hexadecimal keypad.
const KeyCount = 16

// Input is a latch holding the single currently pressed key. Pressing
// multiple keys at once is not modelled; the host decides which one wins.
type Input struct {
	key     Key
	pressed bool
}

// Set overwrites the latch. A released state clears any held key.
func (in *Input) Set(key Key, pressed bool) {
	in.key = key & 0xF
	in.pressed = pressed
}

// IsPressed reports whether the latch holds the given key code.
// Codes above 0xF never match.
func (in *Input) IsPressed(code byte) bool {
	return in.pressed && byte(in.key) == code
}

// Pressed returns the held key and whether one is held at all.
func (in *Input) Pressed() (Key, bool) {
	return in.key, in.pressed
}
