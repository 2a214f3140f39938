package anchor

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// fakeSource reports a fixed pose while hit is set.
type fakeSource struct {
	pose     mgl64.Mat4
	hit      bool
	canceled bool
}

func (s *fakeSource) LatestHit() (mgl64.Mat4, bool) { return s.pose, s.hit }
func (s *fakeSource) Cancel()                       { s.canceled = true }

// fakeTester hands out its source when the test calls deliver.
type fakeTester struct {
	source   *fakeSource
	refuse   bool
	requests int
	ch       chan HitTestSource
}

func (f *fakeTester) RequestHitTestSource() <-chan HitTestSource {
	f.requests++
	f.ch = make(chan HitTestSource, 1)
	if f.refuse {
		close(f.ch)
	}
	return f.ch
}

func (f *fakeTester) deliver() {
	f.ch <- f.source
	close(f.ch)
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (failingStore) Set(string, string) error         { return errors.New("disk on fire") }
func (failingStore) Delete(string) error              { return errors.New("disk on fire") }

func tablePose() mgl64.Mat4 {
	return mgl64.Translate3D(0.3, 0.75, -1.2)
}

func TestLocatorRestoresPersistedAnchor(t *testing.T) {
	store := NewMemoryStore()
	store.Set(DefaultKey, `{"position":[1,0,-2],"quaternion":[0,0,0,1]}`)
	tester := &fakeTester{source: &fakeSource{hit: true}}

	l := NewLocator(store, tester)
	for i := 0; i < 10; i++ {
		l.Update(true)
	}

	got, ok := l.Anchor()
	if !ok {
		t.Fatal("expected anchor restored from store")
	}
	if got.Position != (mgl64.Vec3{1, 0, -2}) || got.Orientation != mgl64.QuatIdent() {
		t.Errorf("anchor = %+v", got)
	}
	if l.Phase() != PhaseAnchored {
		t.Errorf("phase = %v", l.Phase())
	}
	if _, ok := l.Reticle(); ok {
		t.Error("reticle must not exist while anchored")
	}
	if tester.requests != 0 || l.HitTestRequests() != 0 {
		t.Errorf("hit-testing ran %d times for a restored anchor", tester.requests)
	}
}

func TestLocatorMalformedDataFallsBackToLocate(t *testing.T) {
	store := NewMemoryStore()
	store.Set(DefaultKey, `{"position":[1,0],"quaternion":"nope"}`)

	l := NewLocator(store, &fakeTester{source: &fakeSource{}})
	if l.Phase() != PhaseLocating {
		t.Fatalf("phase = %v, expected Locating", l.Phase())
	}
	if _, ok := l.Reticle(); !ok {
		t.Error("reticle should be active while locating")
	}
}

func TestLocatorStoreReadErrorFallsBackToLocate(t *testing.T) {
	l := NewLocator(&failingStore{}, &fakeTester{source: &fakeSource{}})
	if l.Phase() != PhaseLocating {
		t.Errorf("phase = %v, expected Locating", l.Phase())
	}
}

func TestLocatorRequestsSourceOnceAndTolerantOfLatency(t *testing.T) {
	src := &fakeSource{pose: tablePose(), hit: true}
	tester := &fakeTester{source: src}
	l := NewLocator(NewMemoryStore(), tester)

	// Source not ready yet: reticle hidden, single request
	for i := 0; i < 5; i++ {
		l.Update(false)
		r, _ := l.Reticle()
		if r.Visible {
			t.Fatal("reticle visible before source is ready")
		}
	}
	if tester.requests != 1 {
		t.Fatalf("requests = %d, expected 1", tester.requests)
	}

	tester.deliver()
	l.Update(false)

	r, ok := l.Reticle()
	if !ok || !r.Visible {
		t.Fatal("reticle should be visible once the source reports a hit")
	}
	if !r.Pose.Position.ApproxEqual(mgl64.Vec3{0.3, 0.75, -1.2}) {
		t.Errorf("reticle position = %v", r.Pose.Position)
	}
	if tester.requests != 1 {
		t.Errorf("requests = %d after source ready, expected 1", tester.requests)
	}
}

func TestLocatorHidesReticleWithoutHit(t *testing.T) {
	src := &fakeSource{pose: tablePose(), hit: true}
	tester := &fakeTester{source: src}
	l := NewLocator(NewMemoryStore(), tester)
	l.Update(false)
	tester.deliver()
	l.Update(false)

	src.hit = false
	l.Update(false)
	if r, _ := l.Reticle(); r.Visible {
		t.Error("reticle should hide when no hit is reported")
	}

	// Trigger with a hidden reticle does nothing
	l.Update(true)
	if l.Phase() != PhaseLocating {
		t.Error("placement must require a visible reticle")
	}
}

func TestLocatorConfirmPersistsAndStopsHitTesting(t *testing.T) {
	store := NewMemoryStore()
	src := &fakeSource{pose: tablePose(), hit: true}
	tester := &fakeTester{source: src}
	l := NewLocator(store, tester)
	l.Update(false)
	tester.deliver()
	l.Update(false)

	l.Update(true)

	got, ok := l.Anchor()
	if !ok {
		t.Fatal("trigger with visible reticle should anchor")
	}
	if !got.Position.ApproxEqual(mgl64.Vec3{0.3, 0.75, -1.2}) {
		t.Errorf("anchor position = %v", got.Position)
	}
	if _, ok := l.Reticle(); ok {
		t.Error("reticle must be discarded after placement")
	}
	if !src.canceled {
		t.Error("hit-test source should be canceled")
	}

	data, ok, _ := store.Get(DefaultKey)
	if !ok {
		t.Fatal("anchor not persisted")
	}
	persisted, err := Decode(data)
	if err != nil || !persisted.ApproxEqual(got) {
		t.Errorf("persisted %q (err %v) does not match anchor %+v", data, err, got)
	}

	// Further frames change nothing
	src.pose = mgl64.Translate3D(9, 9, 9)
	l.Update(true)
	again, _ := l.Anchor()
	if again != got || tester.requests != 1 {
		t.Error("anchor must be immutable once confirmed")
	}
}

func TestLocatorRetriesRefusedSource(t *testing.T) {
	tester := &fakeTester{source: &fakeSource{pose: tablePose(), hit: true}, refuse: true}
	l := NewLocator(NewMemoryStore(), tester)

	l.Update(false)
	l.Update(false)
	if tester.requests < 2 {
		t.Fatalf("refused request should be retried, requests = %d", tester.requests)
	}

	tester.refuse = false
	l.Update(false) // picks up a fresh pending request
	tester.deliver()
	l.Update(false)
	if r, _ := l.Reticle(); !r.Visible {
		t.Error("reticle should appear after a later request succeeds")
	}
}

func TestLocatorPersistFailureStillAnchors(t *testing.T) {
	tester := &fakeTester{source: &fakeSource{pose: tablePose(), hit: true}}
	l := NewLocator(&failingStore{}, tester)
	l.Update(false)
	tester.deliver()
	l.Update(true)

	if l.Phase() != PhaseAnchored {
		t.Error("a failed write must not block placement")
	}
}

func TestLocatorReset(t *testing.T) {
	store := NewMemoryStore()
	store.Set(DefaultKey, `{"position":[1,0,-2],"quaternion":[0,0,0,1]}`)
	tester := &fakeTester{source: &fakeSource{pose: tablePose(), hit: true}}
	l := NewLocator(store, tester)

	if err := l.Reset(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if _, ok, _ := store.Get(DefaultKey); ok {
		t.Error("Reset() should clear the persisted record")
	}
	if l.Phase() != PhaseLocating {
		t.Fatalf("phase after reset = %v", l.Phase())
	}

	l.Update(false)
	if tester.requests != 1 {
		t.Errorf("locate phase should request hit-testing again, requests = %d", tester.requests)
	}

	// A fresh locator over the same store starts locating too
	if NewLocator(store, nil).Phase() != PhaseLocating {
		t.Error("reload after reset should locate")
	}
}

func TestLocatorResetReportsStoreError(t *testing.T) {
	l := NewLocator(&failingStore{}, nil)
	if err := l.Reset(); err == nil {
		t.Error("expected store error from Reset()")
	}
	if l.Phase() != PhaseLocating {
		t.Error("state should reset even on store error")
	}
}

func TestLocatorCustomKey(t *testing.T) {
	store := NewMemoryStore()
	store.Set("alice", `{"position":[0,1,0],"quaternion":[0,0,0,1]}`)

	if NewLocator(store, nil, WithKey("alice")).Phase() != PhaseAnchored {
		t.Error("custom key should be read")
	}
	if NewLocator(store, nil, WithKey("bob")).Phase() != PhaseLocating {
		t.Error("other keys should not see alice's anchor")
	}
}
