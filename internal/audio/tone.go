// Package audio generates the tone that is audible while the sound timer of
// the virtual machine is running.
package audio

import (
	"encoding/binary"
	"sync/atomic"
)

// Tone settings.
const (
	SampleRate = 44100
	Frequency  = 440
	amplitude  = 0x1000
	sampleSize = 2 // signed 16 bit little endian mono
)

// Tone is an io.Reader producing a square wave while it is active and
// silence otherwise. SetActive may be called concurrently with Read.
type Tone struct {
	active     atomic.Bool
	halfPeriod int
	position   int
}

// NewTone returns an inactive tone of the given frequency.
func NewTone(sampleRate, frequency int) *Tone {
	halfPeriod := sampleRate / frequency / 2
	if halfPeriod < 1 {
		halfPeriod = 1
	}
	return &Tone{halfPeriod: halfPeriod}
}

// SetActive switches the tone on or off.
func (t *Tone) SetActive(active bool) {
	t.active.Store(active)
}

// Active returns whether the tone is audible.
func (t *Tone) Active() bool {
	return t.active.Load()
}

// Read fills p with whole samples.
func (t *Tone) Read(p []byte) (int, error) {
	n := len(p) - len(p)%sampleSize
	active := t.active.Load()

	for i := 0; i < n; i += sampleSize {
		var sample int16
		if active {
			sample = amplitude
			if t.position >= t.halfPeriod {
				sample = -amplitude
			}
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(sample))

		t.position++
		if t.position >= 2*t.halfPeriod {
			t.position = 0
		}
	}
	return n, nil
}

// Silent is a beeper that never makes a sound.
type Silent struct{}

// SetActive does nothing.
func (Silent) SetActive(bool) {}

// Close does nothing.
func (Silent) Close() error { return nil }
