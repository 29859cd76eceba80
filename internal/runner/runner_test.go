package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// counterLoop increments V0 and jumps back to the program start.
var counterLoop = []uint16{0x7001, 0x1200}

func newEngine(t *testing.T, words ...uint16) *vm.Engine {
	t.Helper()

	program := make([]byte, 0, 2*len(words))
	for _, word := range words {
		program = append(program, byte(word>>8), byte(word))
	}

	engine := vm.New(vm.WithSeed(1))
	assert.NoError(t, engine.LoadProgram(program))
	return engine
}

func newRunner(t *testing.T, engine *vm.Engine, cfg Config) *Runner {
	t.Helper()

	r, err := New(log.NewTestLogger(t), engine, cfg)
	assert.NoError(t, err)
	return r
}

func TestNew_InvalidRates(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero speed", Config{Speed: 0, TimerHz: 60}},
		{"negative speed", Config{Speed: -1, TimerHz: 60}},
		{"zero timer frequency", Config{Speed: 700, TimerHz: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(log.NewTestLogger(t), vm.New(), tt.cfg)
			assert.True(t, errors.Is(err, ErrInvalidRate))
		})
	}
}

func TestAdvance_Cadences(t *testing.T) {
	engine := newEngine(t, counterLoop...)
	engine.Timers().SetDelay(20)
	r := newRunner(t, engine, Config{Speed: 1000, TimerHz: 100})

	assert.NoError(t, r.Advance(100*time.Millisecond))

	assert.Equal(t, uint64(100), r.Executed())
	assert.Equal(t, byte(50), engine.Registers().V[0])
	assert.Equal(t, byte(10), engine.Timers().Delay())
}

func TestAdvance_CarriesRemainder(t *testing.T) {
	engine := newEngine(t, counterLoop...)
	r := newRunner(t, engine, Config{Speed: 1000, TimerHz: 60})

	assert.NoError(t, r.Advance(500*time.Microsecond))
	assert.Equal(t, uint64(0), r.Executed())

	assert.NoError(t, r.Advance(500*time.Microsecond))
	assert.Equal(t, uint64(1), r.Executed())
}

func TestAdvance_TimersIndependentOfSpeed(t *testing.T) {
	slow := newEngine(t, counterLoop...)
	slow.Timers().SetSound(30)
	fast := newEngine(t, counterLoop...)
	fast.Timers().SetSound(30)

	slowRunner := newRunner(t, slow, Config{Speed: 100, TimerHz: 60})
	fastRunner := newRunner(t, fast, Config{Speed: 2000, TimerHz: 60})

	for range 5 {
		assert.NoError(t, slowRunner.Advance(100*time.Millisecond))
		assert.NoError(t, fastRunner.Advance(100*time.Millisecond))
	}

	assert.Equal(t, slow.Timers().Sound(), fast.Timers().Sound())
	assert.Equal(t, byte(0), fast.Timers().Sound())
	assert.True(t, fastRunner.Executed() > slowRunner.Executed())
}

func TestAdvance_LimitsCatchUp(t *testing.T) {
	engine := newEngine(t, counterLoop...)
	r := newRunner(t, engine, Config{Speed: 1000, TimerHz: 60})

	assert.NoError(t, r.Advance(10*time.Second))
	assert.Equal(t, uint64(250), r.Executed())
}

func TestAdvance_Fault(t *testing.T) {
	engine := newEngine(t, 0x6001, 0x0000)
	r := newRunner(t, engine, Config{Speed: 1000, TimerHz: 60})

	err := r.Advance(10 * time.Millisecond)
	assert.True(t, errors.Is(err, vm.ErrUnknownOpcode))

	var fault *vm.Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x202), fault.PC)
	assert.Equal(t, uint64(1), r.Executed())
	assert.Equal(t, vm.StateFaulted, engine.State())
}

func TestRun(t *testing.T) {
	t.Run("step limit", func(t *testing.T) {
		engine := newEngine(t, counterLoop...)
		r := newRunner(t, engine, Config{Speed: DefaultSpeed, TimerHz: vm.TimerFrequency})

		assert.NoError(t, r.Run(context.Background(), 10))
		assert.Equal(t, uint64(10), r.Executed())
		assert.Equal(t, byte(5), engine.Registers().V[0])
	})

	t.Run("breakpoint", func(t *testing.T) {
		engine := newEngine(t, 0x6005, 0x6106)
		r := newRunner(t, engine, Config{Speed: DefaultSpeed, TimerHz: vm.TimerFrequency,
			Breakpoints: []uint16{0x202}})

		err := r.Run(context.Background(), 0)
		assert.True(t, errors.Is(err, ErrBreakpoint))
		assert.Equal(t, uint64(1), r.Executed())
		assert.Equal(t, byte(5), engine.Registers().V[0])
		assert.Equal(t, byte(0), engine.Registers().V[1])
	})

	t.Run("waiting for key", func(t *testing.T) {
		engine := newEngine(t, 0xF00A)
		r := newRunner(t, engine, Config{Speed: DefaultSpeed, TimerHz: vm.TimerFrequency})

		err := r.Run(context.Background(), 0)
		assert.True(t, errors.Is(err, ErrNoInput))
		assert.Equal(t, vm.StateAwaitingKey, engine.State())
	})

	t.Run("cancelled context", func(t *testing.T) {
		engine := newEngine(t, counterLoop...)
		r := newRunner(t, engine, Config{Speed: DefaultSpeed, TimerHz: vm.TimerFrequency})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := r.Run(ctx, 0)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, uint64(0), r.Executed())
	})

	t.Run("trace", func(t *testing.T) {
		engine := newEngine(t, counterLoop...)
		r := newRunner(t, engine, Config{Speed: DefaultSpeed, TimerHz: vm.TimerFrequency, Trace: true})

		assert.NoError(t, r.Run(context.Background(), 4))
		assert.Equal(t, byte(2), engine.Registers().V[0])
	})
}
