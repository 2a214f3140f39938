package xr

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/xr-pong/internal/anchor"
	"github.com/vovakirdan/xr-pong/internal/core"
)

// Table is a horizontal rectangle in world space, Y up.
type Table struct {
	Center mgl64.Vec3 // Top surface center
	HalfX  float64
	HalfZ  float64
}

// DefaultTable is a desk-height table one meter in front of the viewer.
func DefaultTable() Table {
	return Table{Center: mgl64.Vec3{0, 0.75, -1}, HalfX: 0.6, HalfZ: 0.4}
}

// Contains reports whether the point (x, z) lies on the table top.
func (t Table) Contains(x, z float64) bool {
	dx := x - t.Center.X()
	dz := z - t.Center.Z()
	return dx >= -t.HalfX && dx <= t.HalfX && dz >= -t.HalfZ && dz <= t.HalfZ
}

// SurfaceOptions configures a simulated surface.
type SurfaceOptions struct {
	Table      Table
	ReadyDelay int     // Frames between a source request and its delivery
	GazeStep   float64 // Meters the gaze moves per MoveGaze unit
	Refuse     bool    // Refuse every source request
}

// Surface simulates a host's hit-test subsystem over a single table. It
// implements anchor.HitTester.
type Surface struct {
	opts SurfaceOptions

	gaze mgl64.Vec2 // World (x, z) the viewer looks at

	pending   chan anchor.HitTestSource
	countdown int

	live     []*surfaceSource
	requests int
}

// NewSurface creates a surface with the gaze on the table center.
func NewSurface(opts SurfaceOptions) *Surface {
	if opts.Table.HalfX <= 0 || opts.Table.HalfZ <= 0 {
		opts.Table = DefaultTable()
	}
	if opts.ReadyDelay < 0 {
		opts.ReadyDelay = 0
	}
	if opts.GazeStep <= 0 {
		opts.GazeStep = 0.05
	}
	return &Surface{
		opts: opts,
		gaze: mgl64.Vec2{opts.Table.Center.X(), opts.Table.Center.Z()},
	}
}

// RequestHitTestSource starts acquiring a source. The source is delivered by
// a later Advance call.
func (s *Surface) RequestHitTestSource() <-chan anchor.HitTestSource {
	s.requests++
	ch := make(chan anchor.HitTestSource, 1)
	if s.opts.Refuse {
		close(ch)
		return ch
	}
	s.pending = ch
	s.countdown = s.opts.ReadyDelay
	return ch
}

// Advance runs one frame of the surface, delivering a pending source when
// its delay has elapsed.
func (s *Surface) Advance() {
	if s.pending == nil {
		return
	}
	if s.countdown > 0 {
		s.countdown--
		return
	}
	src := &surfaceSource{surface: s}
	s.live = append(s.live, src)
	s.pending <- src
	close(s.pending)
	s.pending = nil
}

// MoveGaze shifts the gaze by dx, dz steps. The gaze may leave the table,
// but not by more than the table's own size.
func (s *Surface) MoveGaze(dx, dz float64) {
	t := s.opts.Table
	x := s.gaze.X() + dx*s.opts.GazeStep
	z := s.gaze.Y() + dz*s.opts.GazeStep
	x = core.ClampF(x, t.Center.X()-3*t.HalfX, t.Center.X()+3*t.HalfX)
	z = core.ClampF(z, t.Center.Z()-3*t.HalfZ, t.Center.Z()+3*t.HalfZ)
	s.gaze = mgl64.Vec2{x, z}
}

// Gaze returns the world (x, z) the viewer looks at.
func (s *Surface) Gaze() (x, z float64) {
	return s.gaze.X(), s.gaze.Y()
}

// OnTable reports whether the gaze currently lies on the table.
func (s *Surface) OnTable() bool {
	return s.opts.Table.Contains(s.gaze.X(), s.gaze.Y())
}

// Table returns the simulated table.
func (s *Surface) Table() Table {
	return s.opts.Table
}

// Requests returns how many sources were requested.
func (s *Surface) Requests() int {
	return s.requests
}

// LiveSources returns how many delivered sources have not been cancelled.
func (s *Surface) LiveSources() int {
	n := 0
	for _, src := range s.live {
		if !src.cancelled {
			n++
		}
	}
	return n
}

// hit returns the pose where the gaze meets the table.
func (s *Surface) hit() (mgl64.Mat4, bool) {
	if !s.OnTable() {
		return mgl64.Mat4{}, false
	}
	return mgl64.Translate3D(s.gaze.X(), s.opts.Table.Center.Y(), s.gaze.Y()), true
}

type surfaceSource struct {
	surface   *Surface
	cancelled bool
}

func (src *surfaceSource) LatestHit() (mgl64.Mat4, bool) {
	if src.cancelled {
		return mgl64.Mat4{}, false
	}
	return src.surface.hit()
}

// Cancel releases the source.
func (src *surfaceSource) Cancel() {
	src.cancelled = true
}

var _ anchor.HitTester = (*Surface)(nil)
