//go:build !headless

package window

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// physicalKeys are the keyboard keys in the order of the Keypad positions.
var physicalKeys = [vm.KeyCount]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyR,
	ebiten.KeyA, ebiten.KeyS, ebiten.KeyD, ebiten.KeyF,
	ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC, ebiten.KeyV,
}

// Beeper plays the tone while the sound timer is running.
type Beeper interface {
	SetActive(active bool)
}

// Game implements ebiten.Game for a runner. After a fatal error the machine
// is no longer stepped and the last frame stays visible.
type Game struct {
	logger *log.Logger
	runner *runner.Runner
	beeper Beeper

	frame  *ebiten.Image
	pixels []byte
	last   time.Time
	halted bool
	closed atomic.Bool
}

// New returns a game driving the runner.
func New(logger *log.Logger, runner *runner.Runner, beeper Beeper) *Game {
	return &Game{
		logger: logger,
		runner: runner,
		beeper: beeper,
		pixels: make([]byte, vm.DisplayWidth*vm.DisplayHeight*4),
	}
}

// Run opens the window and blocks until it is closed.
func Run(game *Game, title string, scale int) error {
	ebiten.SetWindowSize(vm.DisplayWidth*scale, vm.DisplayHeight*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)

	defer game.beeper.SetActive(false)
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update polls the keyboard and advances the machine by the time passed
// since the previous update.
func (g *Game) Update() error {
	if g.closed.Load() || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	elapsed := now.Sub(g.last)
	if g.last.IsZero() {
		elapsed = 0
	}
	g.last = now

	if g.halted {
		return nil
	}

	engine := g.runner.Engine()
	key, pressed := PollKeypad(func(position int) bool {
		return ebiten.IsKeyPressed(physicalKeys[position])
	})
	engine.SetKey(key, pressed)

	if err := g.runner.Advance(elapsed); err != nil {
		g.halt(err)
		return nil
	}

	g.beeper.SetActive(engine.Timers().SoundActive())
	return nil
}

// Draw renders the framebuffer.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		g.frame = ebiten.NewImage(vm.DisplayWidth, vm.DisplayHeight)
	}

	fillPixels(g.pixels, g.runner.Engine().Display().Framebuffer())
	g.frame.WritePixels(g.pixels)
	screen.DrawImage(g.frame, nil)
}

// Layout returns the native display resolution, ebiten scales it to the
// window size.
func (g *Game) Layout(_, _ int) (int, int) {
	return vm.DisplayWidth, vm.DisplayHeight
}

// Close requests the window to close, it is safe to call from any goroutine.
func (g *Game) Close() {
	g.closed.Store(true)
}

func (g *Game) halt(err error) {
	g.halted = true
	g.beeper.SetActive(false)

	if errors.Is(err, runner.ErrBreakpoint) {
		g.logger.Info("Execution stopped", log.Err(err))
		return
	}
	g.logger.Error("Execution failed, close the window to exit", log.Err(err))
}
