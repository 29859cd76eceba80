package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// fixedRandom returns the same value for every call.
type fixedRandom uint32

func (f fixedRandom) Uint32() uint32 { return uint32(f) }

// newTestEngine returns an engine with the given instruction words loaded at
// the program start address.
func newTestEngine(t *testing.T, words ...uint16) *Engine {
	t.Helper()

	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}

	e := New(WithRandom(fixedRandom(0xFF)))
	assert.NoError(t, e.LoadProgram(program))
	return e
}

// stepN executes n instructions and fails the test on any fault.
func stepN(t *testing.T, e *Engine, n int) {
	t.Helper()

	for range n {
		_, err := e.Step()
		assert.NoError(t, err)
	}
}
