//go:build headless

package app

import (
	"context"
	"errors"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

var errNoWindow = errors.New("window support is not included in this build, use -headless")

func runWindow(_ context.Context, _ *log.Logger, _ options.Program, _ *runner.Runner) error {
	return errNoWindow
}
