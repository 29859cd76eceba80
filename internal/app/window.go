//go:build !headless

package app

import (
	"context"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/window"
	"github.com/retroenv/retrogolib/log"
)

// runWindow opens a window for the machine and blocks until it is closed or
// the context is cancelled.
func runWindow(ctx context.Context, logger *log.Logger, opts options.Program, machine *runner.Runner) error {
	var beeper window.Beeper = audio.Silent{}
	if !opts.Mute {
		device, err := audio.NewBeeper()
		if err != nil {
			logger.Warn("Audio output not available", log.Err(err))
		} else {
			defer func() { _ = device.Close() }()
			beeper = device
		}
	}

	game := window.New(logger, machine, beeper)
	stop := context.AfterFunc(ctx, game.Close)
	defer stop()

	if err := window.Run(game, "retrochip8 - "+opts.Input, opts.Scale); err != nil {
		return err
	}
	return ctx.Err()
}
