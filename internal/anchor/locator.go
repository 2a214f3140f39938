package anchor

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultKey is the store key holding the persisted transform.
const DefaultKey = "pong-anchor"

// Store is the key-value string store the transform is persisted in.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// HitTestSource yields hit-test results for the current frame.
type HitTestSource interface {
	// LatestHit returns the pose of the nearest detected surface, if any.
	// It must not block.
	LatestHit() (mgl64.Mat4, bool)
}

// HitTester acquires hit-test sources from the host session.
type HitTester interface {
	// RequestHitTestSource starts acquiring a source asynchronously. The
	// channel delivers at most one source and is closed without a value when
	// the host cannot provide one.
	RequestHitTestSource() <-chan HitTestSource
}

// canceler is implemented by sources that hold host resources.
type canceler interface {
	Cancel()
}

// Phase is the locator state.
type Phase int

const (
	PhaseLocating Phase = iota
	PhaseAnchored
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	if p == PhaseAnchored {
		return "Anchored"
	}
	return "Locating"
}

// Reticle marks where a surface was detected, before placement is confirmed.
type Reticle struct {
	Pose    Transform
	Visible bool
}

// Locator decides the board's world transform. It either restores a persisted
// transform or runs hit-testing until the user confirms a reticle pose.
// Exactly one of reticle or anchor exists at any time.
type Locator struct {
	store  Store
	tester HitTester
	key    string
	logger *log.Logger

	pending  <-chan HitTestSource
	source   HitTestSource
	requests int

	reticle *Reticle
	anchor  *Transform
}

// Option configures a Locator.
type Option func(*Locator)

// WithKey overrides the store key.
func WithKey(key string) Option {
	return func(l *Locator) {
		if key != "" {
			l.key = key
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Locator) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLocator creates a locator and restores any persisted transform.
func NewLocator(store Store, tester HitTester, opts ...Option) *Locator {
	l := &Locator{
		store:  store,
		tester: tester,
		key:    DefaultKey,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.start()
	return l
}

// start enters the anchored phase from persisted data, or the locate phase.
func (l *Locator) start() {
	if t, ok := l.load(); ok {
		l.anchor = &t
		l.reticle = nil
		l.logger.Info("anchor restored", "position", fmtVec(t.Position))
		return
	}
	l.anchor = nil
	l.reticle = &Reticle{}
}

// load reads the persisted transform. Any failure is treated as absent.
func (l *Locator) load() (Transform, bool) {
	if l.store == nil {
		return Transform{}, false
	}
	data, ok, err := l.store.Get(l.key)
	if err != nil {
		l.logger.Warn("cannot read persisted anchor", "key", l.key, "error", err)
		return Transform{}, false
	}
	if !ok {
		return Transform{}, false
	}
	t, err := Decode(data)
	if err != nil {
		l.logger.Warn("discarding persisted anchor", "key", l.key, "error", err)
		return Transform{}, false
	}
	return t, true
}

// Update advances one frame. primaryPressed is the edge-triggered primary
// action of any controller. Once anchored, Update does nothing.
func (l *Locator) Update(primaryPressed bool) {
	if l.anchor != nil {
		return
	}

	l.updateReticle()

	if primaryPressed && l.reticle.Visible {
		l.confirm(l.reticle.Pose)
	}
}

// updateReticle requests the hit-test source once and polls it without blocking.
func (l *Locator) updateReticle() {
	if l.source == nil {
		l.acquire()
	}
	if l.source == nil {
		l.reticle.Visible = false
		return
	}

	m, ok := l.source.LatestHit()
	if !ok {
		l.reticle.Visible = false
		return
	}
	l.reticle.Pose = FromMatrix(m)
	l.reticle.Visible = true
}

// acquire issues the source request if none is outstanding and picks up a
// delivered source. A refused request is retried on a later frame.
func (l *Locator) acquire() {
	if l.tester == nil {
		return
	}
	if l.pending == nil {
		l.pending = l.tester.RequestHitTestSource()
		l.requests++
	}

	select {
	case src, ok := <-l.pending:
		l.pending = nil
		if !ok || src == nil {
			l.logger.Debug("hit-test source unavailable, will retry")
			return
		}
		l.source = src
		l.logger.Debug("hit-test source ready")
	default:
	}
}

// confirm fixes the anchor, persists it and stops hit-testing.
func (l *Locator) confirm(pose Transform) {
	t := pose
	l.anchor = &t
	l.reticle = nil
	l.stopHitTest()

	if l.store == nil {
		return
	}
	data, err := t.Encode()
	if err == nil {
		err = l.store.Set(l.key, data)
	}
	if err != nil {
		l.logger.Warn("cannot persist anchor", "key", l.key, "error", err)
		return
	}
	l.logger.Info("anchor placed", "position", fmtVec(t.Position))
}

func (l *Locator) stopHitTest() {
	if c, ok := l.source.(canceler); ok {
		c.Cancel()
	}
	l.source = nil
	l.pending = nil
}

// Reset forgets the persisted transform and restarts the locate phase.
// The in-memory state is reset even when clearing the store fails.
func (l *Locator) Reset() error {
	var err error
	if l.store != nil {
		if delErr := l.store.Delete(l.key); delErr != nil {
			err = fmt.Errorf("anchor: clear persisted transform: %w", delErr)
		}
	}
	l.stopHitTest()
	l.anchor = nil
	l.reticle = &Reticle{}
	l.logger.Info("anchor reset")
	return err
}

// Phase returns the current phase.
func (l *Locator) Phase() Phase {
	if l.anchor != nil {
		return PhaseAnchored
	}
	return PhaseLocating
}

// Anchor returns the confirmed transform, if any.
func (l *Locator) Anchor() (Transform, bool) {
	if l.anchor == nil {
		return Transform{}, false
	}
	return *l.anchor, true
}

// Reticle returns the reticle while locating.
func (l *Locator) Reticle() (Reticle, bool) {
	if l.reticle == nil {
		return Reticle{}, false
	}
	return *l.reticle, true
}

// HitTestRequests returns how many source requests were issued.
func (l *Locator) HitTestRequests() int {
	return l.requests
}

func fmtVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X(), v.Y(), v.Z())
}
