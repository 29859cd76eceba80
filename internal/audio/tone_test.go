package audio

import (
	"encoding/binary"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTone_Silent(t *testing.T) {
	tone := NewTone(8, 2)
	buf := make([]byte, 16)
	for i := range buf {
		buf[i] = 0xFF
	}

	n, err := tone.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 16, n)
	for _, b := range buf {
		assert.Equal(t, byte(0), b)
	}
}

func TestTone_SquareWave(t *testing.T) {
	// 2 samples high followed by 2 samples low
	tone := NewTone(8, 2)
	tone.SetActive(true)
	assert.True(t, tone.Active())

	buf := make([]byte, 8*sampleSize)
	n, err := tone.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, len(buf), n)

	expected := []int16{amplitude, amplitude, -amplitude, -amplitude, amplitude, amplitude, -amplitude, -amplitude}
	for i, want := range expected {
		got := int16(binary.LittleEndian.Uint16(buf[i*sampleSize:]))
		assert.Equal(t, want, got)
	}
}

func TestTone_PartialSample(t *testing.T) {
	tone := NewTone(SampleRate, Frequency)

	n, err := tone.Read(make([]byte, 5))
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
}
