package vm

// TimerFrequency is the nominal rate in Hz at which hosts call Timers.Tick.
const TimerFrequency = 60

// Timers contains the delay and sound countdown counters. They are driven by
// the host independently of the instruction rate.
type Timers struct {
	delay byte
	sound byte
}

// Tick decrements both counters if they are not zero.
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

// Delay returns the delay counter.
func (t *Timers) Delay() byte { return t.delay }

// SetDelay sets the delay counter.
func (t *Timers) SetDelay(value byte) { t.delay = value }

// Sound returns the sound counter.
func (t *Timers) Sound() byte { return t.sound }

// SetSound sets the sound counter.
func (t *Timers) SetSound(value byte) { t.sound = value }

// SoundActive reports whether a tone should currently be audible.
func (t *Timers) SoundActive() bool { return t.sound > 0 }
