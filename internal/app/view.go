package app

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/xr-pong/internal/anchor"
	"github.com/vovakirdan/xr-pong/internal/core"
	"github.com/vovakirdan/xr-pong/internal/feedback"
	"github.com/vovakirdan/xr-pong/internal/games/pong"
	"github.com/vovakirdan/xr-pong/internal/xr"
)

// View is the read-only result of one frame.
type View struct {
	Variant string
	Active  bool
	Entered bool

	// Placed is false while the anchor variant is still locating.
	Placed    bool
	Placement anchor.Transform
	Reticle   anchor.Reticle

	Game   pong.Snapshot
	Input  core.ControllerState
	Events []feedback.Event // Emitted this frame
}

// Locating reports whether the view shows the reticle instead of the board.
func (v View) Locating() bool {
	return !v.Placed
}

// BoardToWorld maps a board-local point to world space. The board's bottom
// edge sits on the placement origin.
func (v View) BoardToWorld(x, y float64) mgl64.Vec3 {
	return v.Placement.Apply(mgl64.Vec3{x, y + v.Game.Height/2, 0})
}

func (a *App) view(f xr.Frame, events []feedback.Event) View {
	v := View{
		Variant: a.opts.Variant,
		Active:  f.Active,
		Entered: a.entered,
		Game:    a.game.Snapshot(),
		Input:   a.input,
		Events:  events,
	}
	v.Placement, v.Placed = a.placement()
	if a.locator != nil {
		v.Reticle, _ = a.locator.Reticle()
	}
	return v
}
