// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shift-vy":
			opts.ShiftVYSet = true
		case "index-increment":
			opts.IndexIncrementSet = true
		}
	})

	if opts.Input == "" {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <ROM file>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Quirks = strings.ToLower(opts.Quirks)
	if _, err := vm.QuirksForPreset(opts.Quirks); err != nil {
		return fmt.Errorf("invalid quirks option: %w", err)
	}

	if opts.Speed <= 0 {
		return fmt.Errorf("invalid speed %d, must be positive", opts.Speed)
	}
	if opts.TimerHz <= 0 {
		return fmt.Errorf("invalid timer frequency %d, must be positive", opts.TimerHz)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid scale %d, must be positive", opts.Scale)
	}

	if _, err := config.Breakpoints(*opts); err != nil {
		return fmt.Errorf("invalid break option: %w", err)
	}

	// tracing logs on debug level
	if opts.Trace {
		opts.Debug = true
		opts.Quiet = false
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated addresses to stop execution at, for example 0x200,0x2A4")
	flags.StringVar(&opts.Quirks, "quirks", vm.PresetModern, "quirk preset ("+strings.Join(vm.QuirkPresets, "/")+")")
	flags.BoolVar(&opts.ShiftVY, "shift-vy", false, "shift instructions read Vy instead of Vx, overrides the preset")
	flags.BoolVar(&opts.IndexIncrement, "index-increment", false, "block load and store advance the index register, overrides the preset")
	flags.BoolVar(&opts.Headless, "headless", false, "run without a window and print the final display to the console")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a listing of the program instead of running it")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the sound")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.IntVar(&opts.Speed, "speed", runner.DefaultSpeed, "instructions executed per second")
	flags.IntVar(&opts.TimerHz, "timer-hz", vm.TimerFrequency, "timer decrements per second")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random number seed, 0 uses the current time")
	flags.IntVar(&opts.Scale, "scale", 10, "window scale factor")
	flags.Uint64Var(&opts.Steps, "steps", 0, "headless mode: stop after this many instructions, 0 runs until an error")
}
