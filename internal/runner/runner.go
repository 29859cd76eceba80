// Package runner drives a virtual machine at a fixed instruction speed and
// timer frequency, independent of how often the host calls it.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const (
	// DefaultSpeed is the default number of instructions per second.
	DefaultSpeed = 700

	// maxElapsed limits the catch up work done in a single Advance call, a
	// host that was suspended does not replay all the missed time.
	maxElapsed = 250 * time.Millisecond
)

var (
	// ErrBreakpoint is returned when the program counter reaches a breakpoint.
	ErrBreakpoint = errors.New("breakpoint reached")
	// ErrNoInput is returned by Run when the program waits for a key press,
	// a headless run has no keyboard to provide one.
	ErrNoInput = errors.New("program is waiting for a key press")
	// ErrInvalidRate is returned for non positive speed or timer settings.
	ErrInvalidRate = errors.New("rate must be positive")
)

// Config contains the runner settings.
type Config struct {
	Speed       int      // instructions per second
	TimerHz     int      // timer decrements per second
	Breakpoints []uint16 // addresses that stop execution before they run
	Trace       bool     // log every executed instruction
}

// Runner advances a virtual machine in wall clock time.
type Runner struct {
	logger *log.Logger
	engine *vm.Engine

	instructionPeriod time.Duration
	timerPeriod       time.Duration
	instructionDebt   time.Duration
	timerDebt         time.Duration

	breakpoints set.Set[uint16]
	trace       bool
	executed    uint64
}

// New returns a runner for the given engine.
func New(logger *log.Logger, engine *vm.Engine, cfg Config) (*Runner, error) {
	if cfg.Speed <= 0 {
		return nil, fmt.Errorf("invalid speed %d: %w", cfg.Speed, ErrInvalidRate)
	}
	if cfg.TimerHz <= 0 {
		return nil, fmt.Errorf("invalid timer frequency %d: %w", cfg.TimerHz, ErrInvalidRate)
	}

	r := &Runner{
		logger:            logger,
		engine:            engine,
		instructionPeriod: time.Second / time.Duration(cfg.Speed),
		timerPeriod:       time.Second / time.Duration(cfg.TimerHz),
		breakpoints:       set.New[uint16](),
		trace:             cfg.Trace,
	}
	for _, address := range cfg.Breakpoints {
		r.breakpoints.Add(address)
	}
	return r, nil
}

// Engine returns the driven virtual machine.
func (r *Runner) Engine() *vm.Engine {
	return r.engine
}

// Executed returns the number of instructions executed by the runner.
func (r *Runner) Executed() uint64 {
	return r.executed
}

// Advance moves the machine forward by the elapsed time. Timers tick at
// their own frequency and are not affected by the instruction speed.
// Time that does not add up to a full instruction or timer period is carried
// over to the next call.
func (r *Runner) Advance(elapsed time.Duration) error {
	if elapsed > maxElapsed {
		elapsed = maxElapsed
	}

	r.timerDebt += elapsed
	for r.timerDebt >= r.timerPeriod {
		r.engine.Timers().Tick()
		r.timerDebt -= r.timerPeriod
	}

	r.instructionDebt += elapsed
	for r.instructionDebt >= r.instructionPeriod {
		if err := r.step(); err != nil {
			r.instructionDebt = 0
			return err
		}
		r.instructionDebt -= r.instructionPeriod
	}
	return nil
}

// Run executes the program on a virtual clock as fast as possible until
// the given number of instructions was executed, the context is cancelled
// or execution fails. A step count of 0 runs without limit.
func (r *Runner) Run(ctx context.Context, steps uint64) error {
	for steps == 0 || r.executed < steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stopped at address %03X: %w", r.engine.PC(), err)
		}

		if err := r.Advance(r.instructionPeriod); err != nil {
			return err
		}

		if r.engine.State() == vm.StateAwaitingKey {
			return fmt.Errorf("stopped at address %03X: %w", r.engine.PC(), ErrNoInput)
		}
	}
	return nil
}

func (r *Runner) step() error {
	pc := r.engine.PC()
	if r.breakpoints.Contains(pc) {
		r.logState(pc)
		return fmt.Errorf("address %03X: %w", pc, ErrBreakpoint)
	}

	ins, err := r.engine.Step()
	if err != nil {
		return fmt.Errorf("stepping: %w", err)
	}
	r.executed++

	if r.trace {
		r.logger.Debug("Executed instruction",
			log.Hex("address", pc),
			log.Hex("opcode", ins.Word),
			log.String("instruction", disasm.Format(ins.Word)))
	}
	return nil
}

// logState logs the machine registers at a breakpoint.
func (r *Runner) logState(pc uint16) {
	regs := r.engine.Registers()

	var sb strings.Builder
	for i, value := range regs.V {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "V%X=%02X", i, value)
	}

	r.logger.Info("Breakpoint reached",
		log.Hex("address", pc),
		log.Hex("index", regs.I),
		log.Int("stack", r.engine.Stack().Depth()),
		log.Uint8("delay", r.engine.Timers().Delay()),
		log.Uint8("sound", r.engine.Timers().Sound()),
		log.String("registers", sb.String()))
}
