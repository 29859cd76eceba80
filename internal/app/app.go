// Package app provides the main application helper for the virtual machine.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// App runs a program with the given options.
type App struct {
	logger *log.Logger
	opts   options.Program
	output io.Writer
	loader *loader.Loader
}

// New returns a new application instance writing console output to stdout.
func New(logger *log.Logger, opts options.Program) *App {
	return &App{
		logger: logger,
		opts:   opts,
		output: os.Stdout,
		loader: loader.New(),
	}
}

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo prints the information about the program and the machine setup.
func PrintInfo(logger *log.Logger, opts options.Program, program []byte, quirks vm.Quirks) {
	if opts.Quiet {
		return
	}

	logger.Info("Loaded CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.String("quirks", opts.Quirks),
	)
	logger.Debug("Machine settings",
		log.Stringer("quirks", quirks),
		log.Int("speed", opts.Speed),
		log.Int("timerHz", opts.TimerHz),
	)
}

// Run loads the program and lists, runs headless or opens a window for it
// depending on the options.
func (a *App) Run(ctx context.Context) error {
	program, err := a.loader.Load(a.opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	if a.opts.Disasm {
		if err := disasm.Listing(a.output, program, vm.ProgramStart); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		return nil
	}

	machine, err := a.setup(program)
	if err != nil {
		return err
	}

	if a.opts.Headless {
		return a.runHeadless(ctx, machine)
	}
	return runWindow(ctx, a.logger, a.opts, machine)
}

// setup creates the virtual machine and its runner for the program.
func (a *App) setup(program []byte) (*runner.Runner, error) {
	quirks, err := config.Quirks(a.opts)
	if err != nil {
		return nil, err
	}
	engineOptions, err := config.Engine(a.opts)
	if err != nil {
		return nil, err
	}
	runnerConfig, err := config.Runner(a.opts)
	if err != nil {
		return nil, err
	}

	engine := vm.New(engineOptions...)
	if err := loader.Install(engine, program); err != nil {
		return nil, fmt.Errorf("installing program: %w", err)
	}
	PrintInfo(a.logger, a.opts, program, quirks)

	machine, err := runner.New(a.logger, engine, runnerConfig)
	if err != nil {
		return nil, fmt.Errorf("creating runner: %w", err)
	}
	return machine, nil
}

// runHeadless executes the program without a window and prints the final
// display content. Stopping at a breakpoint or at a key press request is
// a regular end of the run.
func (a *App) runHeadless(ctx context.Context, machine *runner.Runner) error {
	runErr := machine.Run(ctx, a.opts.Steps)

	switch {
	case runErr == nil:
		a.logger.Info("Step limit reached", log.Int("steps", int(machine.Executed())))
	case errors.Is(runErr, runner.ErrBreakpoint), errors.Is(runErr, runner.ErrNoInput):
		a.logger.Info("Execution stopped", log.String("reason", runErr.Error()),
			log.Int("steps", int(machine.Executed())))
		runErr = nil
	}

	if !terminal.Fits(a.output) {
		a.logger.Warn("Terminal is too narrow for the display", log.Int("columns", terminal.FrameWidth))
	}
	if err := terminal.New(a.output).Render(machine.Engine().Display()); err != nil {
		return fmt.Errorf("rendering display: %w", err)
	}

	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}
	return nil
}
