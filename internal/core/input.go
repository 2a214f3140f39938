package core

// Handedness identifies which hand holds a controller.
type Handedness string

const (
	HandNone  Handedness = "none"
	HandLeft  Handedness = "left"
	HandRight Handedness = "right"
)

// Fixed gamepad layout of a standard XR controller.
const (
	AxisThumbstickY = 3 // Vertical thumbstick axis (negative is up)

	ButtonPrimary = 0 // Trigger - confirms placement
	ButtonMode    = 4 // A/X - toggles one-player mode
	ButtonReset   = 5 // B/Y - restarts after game over
)

// Button is a single gamepad button sample.
type Button struct {
	Pressed bool
}

// Gamepad is the raw axis and button state of one controller for one frame.
type Gamepad struct {
	Axes    []float64
	Buttons []Button
}

// Axis returns the axis value at index i, or 0 when the controller has no such axis.
func (g *Gamepad) Axis(i int) float64 {
	if g == nil || i < 0 || i >= len(g.Axes) {
		return 0
	}
	return g.Axes[i]
}

// Pressed reports whether the button at index i is held.
// Missing buttons read as released.
func (g *Gamepad) Pressed(i int) bool {
	if g == nil || i < 0 || i >= len(g.Buttons) {
		return false
	}
	return g.Buttons[i].Pressed
}

// InputSource is one connected controller as reported by the host.
type InputSource struct {
	Handedness Handedness
	Gamepad    *Gamepad
}

// Edge is a transition observed by a Debouncer.
type Edge int

const (
	EdgeNone Edge = iota
	EdgePress
	EdgeRelease
)

// String returns a human-readable name for the edge.
func (e Edge) String() string {
	switch e {
	case EdgeNone:
		return "None"
	case EdgePress:
		return "Press"
	case EdgeRelease:
		return "Release"
	default:
		return "Unknown"
	}
}

// Debouncer turns raw per-frame button samples into press/release edges,
// so a held button fires once per physical press.
type Debouncer struct {
	held bool
}

// Sample feeds the current raw state and returns the edge it produced.
func (d *Debouncer) Sample(pressed bool) Edge {
	switch {
	case pressed && !d.held:
		d.held = true
		return EdgePress
	case !pressed && d.held:
		d.held = false
		return EdgeRelease
	default:
		return EdgeNone
	}
}

// Held reports the last sampled state.
func (d *Debouncer) Held() bool {
	return d.held
}

// ControllerState is the per-frame controller summary consumed by the simulation
// and the anchor locator. Stick values are in [-1, 1] with up positive; the
// action flags are true only on the frame their button went down.
type ControllerState struct {
	LeftStickY  float64
	RightStickY float64

	Primary    bool
	ModeToggle bool
	Reset      bool
}

// Sampler converts raw input sources into ControllerState.
// It owns the debouncers, so one Sampler must be used per session.
type Sampler struct {
	primary Debouncer
	mode    Debouncer
	reset   Debouncer
}

// NewSampler creates a sampler with all buttons released.
func NewSampler() *Sampler {
	return &Sampler{}
}

// Sample reads the vertical stick of each hand and edge-detects the action
// buttons across all controllers. A nil or empty source list yields a neutral
// state and releases every button.
func (s *Sampler) Sample(sources []InputSource) ControllerState {
	var (
		st                      ControllerState
		primary, mode, resetBtn bool
	)

	for _, src := range sources {
		if src.Gamepad == nil {
			continue
		}
		y := ClampF(-src.Gamepad.Axis(AxisThumbstickY), -1, 1)
		switch src.Handedness {
		case HandLeft:
			st.LeftStickY = y
		case HandRight:
			st.RightStickY = y
		}

		primary = primary || src.Gamepad.Pressed(ButtonPrimary)
		mode = mode || src.Gamepad.Pressed(ButtonMode)
		resetBtn = resetBtn || src.Gamepad.Pressed(ButtonReset)
	}

	st.Primary = s.primary.Sample(primary) == EdgePress
	st.ModeToggle = s.mode.Sample(mode) == EdgePress
	st.Reset = s.reset.Sample(resetBtn) == EdgePress
	return st
}
