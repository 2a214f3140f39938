// Package app runs one game session: it samples input, places the board
// (fixed or through the anchor locator), steps the simulation and hands
// feedback events and a read-only view to the presentation layer.
package app

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/vovakirdan/xr-pong/internal/anchor"
	"github.com/vovakirdan/xr-pong/internal/config"
	"github.com/vovakirdan/xr-pong/internal/core"
	"github.com/vovakirdan/xr-pong/internal/feedback"
	"github.com/vovakirdan/xr-pong/internal/games/pong"
	"github.com/vovakirdan/xr-pong/internal/storage"
	"github.com/vovakirdan/xr-pong/internal/xr"
)

// MatchRecorder stores finished matches.
type MatchRecorder interface {
	SaveMatch(storage.MatchRecord) error
}

// Activator is started on the user gesture that enters the session.
type Activator interface {
	Activate()
}

// Options configures an App.
type Options struct {
	Variant   string // config.VariantFixed or config.VariantAnchor
	Params    pong.Params
	Runtime   core.RuntimeConfig
	Placement mgl64.Vec3 // Board origin in the fixed variant

	Store     anchor.Store
	Tester    anchor.HitTester
	AnchorKey string

	Sink    feedback.Sink
	Audio   Activator
	Matches MatchRecorder
	Logger  *log.Logger
}

// App is one session of the game.
type App struct {
	opts    Options
	logger  *log.Logger
	sampler *core.Sampler
	game    *pong.Game
	locator *anchor.Locator // nil in the fixed variant

	entered bool
	elapsed float64 // Simulated seconds of the current match
	input   core.ControllerState
}

// New creates a session. In the anchor variant the locator restores any
// persisted placement immediately.
func New(opts Options) *App {
	if opts.Variant == "" {
		opts.Variant = config.VariantFixed
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Sink == nil {
		opts.Sink = feedback.Discard
	}

	a := &App{
		opts:    opts,
		logger:  opts.Logger,
		sampler: core.NewSampler(),
		game:    pong.New(opts.Params, opts.Runtime),
	}
	if opts.Variant == config.VariantAnchor {
		a.locator = anchor.NewLocator(opts.Store, opts.Tester,
			anchor.WithKey(opts.AnchorKey),
			anchor.WithLogger(opts.Logger),
		)
	}
	return a
}

// EnterImmersive handles the user gesture that starts the session. Audio is
// opened here because devices may only start on a gesture.
func (a *App) EnterImmersive() {
	if a.entered {
		return
	}
	a.entered = true
	if a.opts.Audio != nil {
		a.opts.Audio.Activate()
	}
	a.logger.Info("session started", "variant", a.opts.Variant)
}

// Entered reports whether EnterImmersive was called.
func (a *App) Entered() bool {
	return a.entered
}

// Reset is the user-facing reset. The anchor variant forgets the placement
// and starts over; the fixed variant restarts the match.
func (a *App) Reset() error {
	a.elapsed = 0
	if a.locator == nil {
		a.game.Restart()
		a.logger.Info("match restarted")
		return nil
	}
	err := a.locator.Reset()
	a.game = pong.New(a.opts.Params, a.opts.Runtime)
	return err
}

// Frame runs one host frame and returns what to present. Nothing advances
// while the session is inactive.
func (a *App) Frame(f xr.Frame) View {
	if !f.Active {
		a.input = a.sampler.Sample(nil)
		return a.view(f, nil)
	}

	a.input = a.sampler.Sample(f.Sources)

	if a.locator != nil {
		a.locator.Update(a.input.Primary)
	}
	if !a.placed() {
		return a.view(f, nil)
	}

	dt := f.Delta
	if dt < 0 {
		dt = 0
	}
	if a.game.Phase() == pong.PhasePlaying {
		a.elapsed += dt
	}

	res := a.game.Step(a.input, dt)
	for _, e := range res.Events {
		a.opts.Sink.Emit(e)
	}
	if res.Restarted {
		a.elapsed = 0
		a.logger.Debug("match restarted")
	}
	if res.Finished {
		a.recordMatch()
	}
	return a.view(f, res.Events)
}

func (a *App) placed() bool {
	return a.locator == nil || a.locator.Phase() == anchor.PhaseAnchored
}

// placement returns the board's world transform, if placed.
func (a *App) placement() (anchor.Transform, bool) {
	if a.locator == nil {
		return anchor.At(a.opts.Placement), true
	}
	return a.locator.Anchor()
}

func (a *App) recordMatch() {
	st := a.game.State()
	rec := storage.MatchRecord{
		ID:           uuid.NewString(),
		Variant:      a.opts.Variant,
		OnePlayer:    st.OnePlayer,
		LeftScore:    st.LeftScore,
		RightScore:   st.RightScore,
		Winner:       st.Winner.String(),
		LongestRally: st.LongestRally,
		Frames:       st.Frames,
		Duration:     time.Duration(a.elapsed * float64(time.Second)),
	}
	a.logger.Info("match finished",
		"winner", rec.Winner,
		"score", []int{rec.LeftScore, rec.RightScore},
		"rally", rec.LongestRally,
	)
	if a.opts.Matches == nil {
		return
	}
	if err := a.opts.Matches.SaveMatch(rec); err != nil {
		a.logger.Warn("cannot save match", "error", err)
	}
}

// Game returns the running simulation.
func (a *App) Game() *pong.Game {
	return a.game
}

// Locator returns the anchor locator, or nil in the fixed variant.
func (a *App) Locator() *anchor.Locator {
	return a.locator
}
