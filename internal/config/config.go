// Package config handles application configuration and setup
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Quirks returns the quirks of the selected preset with the explicitly set
// quirk flags applied on top.
func Quirks(opts options.Program) (vm.Quirks, error) {
	quirks, err := vm.QuirksForPreset(opts.Quirks)
	if err != nil {
		return vm.Quirks{}, err
	}

	if opts.ShiftVYSet {
		quirks.ShiftUsesVY = opts.ShiftVY
	}
	if opts.IndexIncrementSet {
		quirks.LoadStoreIncrementsIndex = opts.IndexIncrement
	}
	return quirks, nil
}

// Breakpoints parses the comma separated breakpoint address list. Addresses
// are decimal or prefixed with 0x or $ for hexadecimal.
func Breakpoints(opts options.Program) ([]uint16, error) {
	if strings.TrimSpace(opts.Breakpoints) == "" {
		return nil, nil
	}

	var addresses []uint16
	for _, field := range strings.Split(opts.Breakpoints, ",") {
		field = strings.TrimSpace(field)
		if strings.HasPrefix(field, "$") {
			field = "0x" + field[1:]
		}

		address, err := strconv.ParseUint(field, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("parsing breakpoint address '%s': %w", field, err)
		}
		if address > vm.MaxAddress {
			return nil, fmt.Errorf("breakpoint address %#x exceeds memory: %w", address, vm.ErrOutOfRange)
		}
		addresses = append(addresses, uint16(address))
	}
	return addresses, nil
}

// Runner returns the runner settings.
func Runner(opts options.Program) (runner.Config, error) {
	breakpoints, err := Breakpoints(opts)
	if err != nil {
		return runner.Config{}, err
	}

	return runner.Config{
		Speed:       opts.Speed,
		TimerHz:     opts.TimerHz,
		Breakpoints: breakpoints,
		Trace:       opts.Trace,
	}, nil
}

// Engine returns the options to create a virtual machine with.
func Engine(opts options.Program) ([]vm.Option, error) {
	quirks, err := Quirks(opts)
	if err != nil {
		return nil, err
	}

	engineOptions := []vm.Option{vm.WithQuirks(quirks)}
	if opts.Seed != 0 {
		engineOptions = append(engineOptions, vm.WithSeed(opts.Seed))
	}
	return engineOptions, nil
}
