package xr

import "github.com/vovakirdan/xr-pong/internal/core"

// HostOptions configures a simulated host.
type HostOptions struct {
	HoldWindow float64
	Surface    SurfaceOptions
}

// Host is a simulated XR device: two hand controllers, a table surface and
// an immersive session flag.
type Host struct {
	left    *Controller
	right   *Controller
	surface *Surface
	active  bool
}

// NewHost creates a host with both controllers connected.
func NewHost(opts HostOptions) *Host {
	return &Host{
		left:    NewController(core.HandLeft, opts.HoldWindow),
		right:   NewController(core.HandRight, opts.HoldWindow),
		surface: NewSurface(opts.Surface),
	}
}

// Controller returns the controller held in the given hand, or nil.
func (h *Host) Controller(hand core.Handedness) *Controller {
	switch hand {
	case core.HandLeft:
		return h.left
	case core.HandRight:
		return h.right
	default:
		return nil
	}
}

// Surface returns the host's hit-test surface.
func (h *Host) Surface() *Surface {
	return h.surface
}

// Begin starts the immersive session.
func (h *Host) Begin() {
	h.active = true
}

// End stops the immersive session.
func (h *Host) End() {
	h.active = false
}

// Active reports whether the immersive session is running.
func (h *Host) Active() bool {
	return h.active
}

// Next advances the host by dt seconds and returns the frame to run.
// Controllers are only reported while the session is active.
func (h *Host) Next(dt float64) Frame {
	if dt < 0 {
		dt = 0
	}
	h.surface.Advance()

	left := h.left.advance(dt)
	right := h.right.advance(dt)

	f := Frame{Delta: dt, Active: h.active}
	if h.active {
		f.Sources = []core.InputSource{left, right}
	}
	return f
}
