package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/xr-pong/internal/anchor"
	"github.com/vovakirdan/xr-pong/internal/config"
	"github.com/vovakirdan/xr-pong/internal/core"
	"github.com/vovakirdan/xr-pong/internal/games/pong"
	"github.com/vovakirdan/xr-pong/internal/storage"
	"github.com/vovakirdan/xr-pong/internal/xr"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestSession(t *testing.T, variant string) *Session {
	t.Helper()
	cfg := config.Default()
	cfg.Placement.Variant = variant
	return NewSession(SessionConfig{
		Config:  cfg,
		Runtime: core.RuntimeConfig{TickRate: 60, Seed: 7},
		Store:   anchor.NewMemoryStore(),
	})
}

func TestKeyMapIntents(t *testing.T) {
	km := DefaultKeyMap()
	host := xr.NewHost(xr.HostOptions{})

	tests := []struct {
		msg  tea.KeyMsg
		want Intent
	}{
		{runeKey('q'), IntentQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, IntentQuit},
		{runeKey('e'), IntentEnter},
		{runeKey('x'), IntentReset},
		{runeKey('w'), IntentNone},
		{runeKey('z'), IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			if got := km.Apply(tt.msg, host); got != tt.want {
				t.Errorf("Apply(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestKeyMapSticks(t *testing.T) {
	km := DefaultKeyMap()
	host := xr.NewHost(xr.HostOptions{})
	host.Begin()
	sampler := core.NewSampler()

	km.Apply(runeKey('w'), host)
	km.Apply(tea.KeyMsg{Type: tea.KeyDown}, host)
	st := sampler.Sample(host.Next(1.0 / 60).Sources)

	// w drives the right-hand stick, which moves the left paddle
	if st.RightStickY != 1 {
		t.Errorf("RightStickY = %v, want 1", st.RightStickY)
	}
	if st.LeftStickY != -1 {
		t.Errorf("LeftStickY = %v, want -1", st.LeftStickY)
	}
}

func TestKeyMapButtons(t *testing.T) {
	km := DefaultKeyMap()
	host := xr.NewHost(xr.HostOptions{})
	host.Begin()
	sampler := core.NewSampler()

	km.Apply(runeKey('a'), host)
	km.Apply(runeKey('b'), host)
	km.Apply(runeKey(' '), host)
	st := sampler.Sample(host.Next(1.0 / 60).Sources)

	if !st.ModeToggle || !st.Reset || !st.Primary {
		t.Errorf("state = %+v, want mode, reset and primary edges", st)
	}
}

func TestKeyMapGaze(t *testing.T) {
	km := DefaultKeyMap()
	host := xr.NewHost(xr.HostOptions{Surface: xr.SurfaceOptions{GazeStep: 0.1}})
	x0, z0 := host.Surface().Gaze()

	km.Apply(runeKey('l'), host)
	km.Apply(runeKey('k'), host)
	x, z := host.Surface().Gaze()

	if x <= x0 {
		t.Errorf("l did not move gaze right: %v -> %v", x0, x)
	}
	if z >= z0 {
		t.Errorf("k did not move gaze farther: %v -> %v", z0, z)
	}
}

func TestFrameDelta(t *testing.T) {
	t0 := time.Unix(100, 0)

	tests := []struct {
		name string
		prev time.Time
		now  time.Time
		want float64
	}{
		{"first tick", time.Time{}, t0, 0},
		{"normal", t0, t0.Add(20 * time.Millisecond), 0.02},
		{"stall clamped", t0, t0.Add(2 * time.Second), maxFrameDelta},
		{"clock went back", t0, t0.Add(-time.Second), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := frameDelta(tt.prev, tt.now)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("frameDelta() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderBoardPlacesPieces(t *testing.T) {
	snap := pong.New(pong.DefaultParams(), core.RuntimeConfig{}).Snapshot()
	out := RenderBoard(snap, 41, 15)

	lines := strings.Split(out, "\n")
	if len(lines) != 15 {
		t.Fatalf("got %d rows, want 15", len(lines))
	}
	for i, l := range lines {
		if n := len([]rune(l)); n != 41 {
			t.Fatalf("row %d has %d cells, want 41", i, n)
		}
	}

	// Ball starts at the center cell
	if got := []rune(lines[7])[20]; got != runeBall {
		t.Errorf("center cell = %q, want ball", got)
	}
	if c := strings.Count(out, string(runePaddle)); c < 4 {
		t.Errorf("found %d paddle cells, want both paddles drawn", c)
	}
}

func TestRenderBoardHidesBallAfterGameOver(t *testing.T) {
	snap := pong.New(pong.DefaultParams(), core.RuntimeConfig{}).Snapshot()
	snap.GameOver = true
	if strings.ContainsRune(RenderBoard(snap, 41, 15), runeBall) {
		t.Error("ball drawn after game over")
	}
}

func TestRenderPhases(t *testing.T) {
	s := newTestSession(t, config.VariantAnchor)
	v := s.App.Frame(s.Host.Next(0))
	if out := Render(v, s.Host.Surface(), 80, 24, ""); !strings.Contains(out, "Press e") {
		t.Errorf("pre-session screen missing hint:\n%s", out)
	}

	s.Host.Begin()
	s.App.EnterImmersive()
	v = s.App.Frame(s.Host.Next(0))
	out := Render(v, s.Host.Surface(), 80, 24, "")
	if !strings.Contains(out, "Looking for a surface") {
		t.Errorf("locate screen missing status:\n%s", out)
	}
	if !strings.ContainsRune(out, runeGaze) {
		t.Error("locate screen missing gaze marker")
	}
}

func TestModelEnterAndTick(t *testing.T) {
	s := newTestSession(t, config.VariantFixed)
	var m tea.Model = NewModel(s, 60, 80, 24, nil)

	m, _ = m.Update(runeKey('e'))
	if !s.Host.Active() || !s.App.Entered() {
		t.Fatal("e did not enter the immersive session")
	}

	t0 := time.Unix(0, 0)
	m, _ = m.Update(TickMsg(t0))
	m, cmd := m.Update(TickMsg(t0.Add(16 * time.Millisecond)))
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}

	got := m.(Model).view
	if got.Game.Frames != 2 {
		t.Errorf("simulation frames = %d, want 2", got.Game.Frames)
	}
	if !strings.Contains(m.View(), "XR PONG") {
		t.Error("View() missing title")
	}
}

func TestModelQuit(t *testing.T) {
	s := newTestSession(t, config.VariantFixed)
	m, cmd := NewModel(s, 60, 80, 24, nil).Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestModelResetRelocates(t *testing.T) {
	store := anchor.NewMemoryStore()
	store.Set(anchor.DefaultKey, `{"position":[0,0.75,-1],"quaternion":[0,0,0,1]}`)
	cfg := config.Default()
	cfg.Placement.Variant = config.VariantAnchor
	s := NewSession(SessionConfig{Config: cfg, Store: store})

	var m tea.Model = NewModel(s, 60, 80, 24, nil)
	m, _ = m.Update(runeKey('e'))
	m, _ = m.Update(TickMsg(time.Unix(0, 0)))
	if !m.(Model).view.Placed {
		t.Fatal("restored anchor not placed")
	}

	m, _ = m.Update(runeKey('x'))
	m, _ = m.Update(TickMsg(time.Unix(0, 1e7)))
	if m.(Model).view.Placed {
		t.Error("x did not restart placement")
	}
}

func TestSessionAnchorKey(t *testing.T) {
	tests := []struct {
		base, user, want string
	}{
		{"pong-anchor", "alice", "pong-anchor:alice"},
		{"", "bob", anchor.DefaultKey + ":bob"},
		{"custom", "", "custom"},
	}
	for _, tt := range tests {
		if got := SessionAnchorKey(tt.base, tt.user); got != tt.want {
			t.Errorf("SessionAnchorKey(%q, %q) = %q, want %q", tt.base, tt.user, got, tt.want)
		}
	}
}

func TestHistoryRows(t *testing.T) {
	rows := HistoryRows([]storage.MatchRecord{
		{
			Variant:      "anchor",
			OnePlayer:    true,
			LeftScore:    5,
			RightScore:   2,
			Winner:       "left",
			LongestRally: 8,
			Duration:     83*time.Second + 420*time.Millisecond,
			CreatedAt:    time.Date(2025, 3, 4, 18, 30, 0, 0, time.UTC),
		},
	})

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	want := []string{"Mar 04 18:30", "anchor", "1P", "5:2", "left", "8", "1m23.4s"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("column %d = %q, want %q", i, rows[0][i], cell)
		}
	}
	if len(rows[0]) != len(historyColumns()) {
		t.Errorf("row has %d cells, table has %d columns", len(rows[0]), len(historyColumns()))
	}
}
