package core

import "testing"

func TestDebouncerEdges(t *testing.T) {
	var d Debouncer

	samples := []bool{false, true, true, true, false, false, true}
	expected := []Edge{EdgeNone, EdgePress, EdgeNone, EdgeNone, EdgeRelease, EdgeNone, EdgePress}

	for i, pressed := range samples {
		got := d.Sample(pressed)
		if got != expected[i] {
			t.Errorf("sample %d: Sample(%v) = %v, expected %v", i, pressed, got, expected[i])
		}
	}
	if !d.Held() {
		t.Error("Held() should be true after final press")
	}
}

func pad(stickY float64, pressed ...int) *Gamepad {
	g := &Gamepad{
		Axes:    []float64{0, 0, 0, stickY},
		Buttons: make([]Button, 6),
	}
	for _, i := range pressed {
		g.Buttons[i].Pressed = true
	}
	return g
}

func TestSamplerSticks(t *testing.T) {
	s := NewSampler()

	st := s.Sample([]InputSource{
		{Handedness: HandLeft, Gamepad: pad(-0.5)},
		{Handedness: HandRight, Gamepad: pad(1)},
	})

	// Thumbstick up is negative on the device
	if st.LeftStickY != 0.5 {
		t.Errorf("LeftStickY = %v, expected 0.5", st.LeftStickY)
	}
	if st.RightStickY != -1 {
		t.Errorf("RightStickY = %v, expected -1", st.RightStickY)
	}
}

func TestSamplerClampsAndMissingAxes(t *testing.T) {
	s := NewSampler()

	st := s.Sample([]InputSource{
		{Handedness: HandLeft, Gamepad: &Gamepad{Axes: []float64{0, 0}}},
		{Handedness: HandRight, Gamepad: pad(-3)},
	})

	if st.LeftStickY != 0 {
		t.Errorf("missing axis should read 0, got %v", st.LeftStickY)
	}
	if st.RightStickY != 1 {
		t.Errorf("RightStickY should clamp to 1, got %v", st.RightStickY)
	}
}

func TestSamplerEdgeTriggeredButtons(t *testing.T) {
	s := NewSampler()

	held := []InputSource{{Handedness: HandRight, Gamepad: pad(0, ButtonMode)}}

	if st := s.Sample(held); !st.ModeToggle {
		t.Fatal("first press should toggle")
	}
	for i := 0; i < 5; i++ {
		if st := s.Sample(held); st.ModeToggle {
			t.Fatalf("held button fired again on frame %d", i)
		}
	}

	// Release then press again
	s.Sample(nil)
	if st := s.Sample(held); !st.ModeToggle {
		t.Error("second physical press should toggle")
	}
}

func TestSamplerAnyControllerPresses(t *testing.T) {
	s := NewSampler()

	st := s.Sample([]InputSource{
		{Handedness: HandLeft, Gamepad: pad(0)},
		{Handedness: HandRight, Gamepad: pad(0, ButtonPrimary, ButtonReset)},
	})
	if !st.Primary || !st.Reset {
		t.Errorf("expected primary and reset edges, got %+v", st)
	}
	if st.ModeToggle {
		t.Error("mode toggle should not fire")
	}

	// Same buttons now held by the other hand: still held, no new edge
	st = s.Sample([]InputSource{
		{Handedness: HandLeft, Gamepad: pad(0, ButtonPrimary, ButtonReset)},
		{Handedness: HandRight, Gamepad: pad(0)},
	})
	if st.Primary || st.Reset {
		t.Errorf("held buttons should not re-fire, got %+v", st)
	}
}

func TestSamplerNilGamepad(t *testing.T) {
	s := NewSampler()
	st := s.Sample([]InputSource{{Handedness: HandLeft}})
	if st != (ControllerState{}) {
		t.Errorf("expected neutral state, got %+v", st)
	}
}
