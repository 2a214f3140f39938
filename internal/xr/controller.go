package xr

import "github.com/vovakirdan/xr-pong/internal/core"

// DefaultHoldWindow is how long a stick stays deflected after a nudge.
const DefaultHoldWindow = 0.15

// Controller is a virtual gamepad fed by discrete key presses.
//
// Key presses carry no release, so a stick nudge holds for a window and each
// button press is reported as one held frame followed by one released frame.
type Controller struct {
	hand core.Handedness
	hold float64

	stick     float64
	remaining float64

	queued  [core.ButtonReset + 1]int
	pressed [core.ButtonReset + 1]bool
}

// NewController creates a controller for the given hand.
func NewController(hand core.Handedness, hold float64) *Controller {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &Controller{hand: hand, hold: hold}
}

// Hand returns the controller's handedness.
func (c *Controller) Hand() core.Handedness {
	return c.hand
}

// Nudge deflects the stick: dir > 0 is up, dir < 0 is down. Repeated nudges
// extend the hold.
func (c *Controller) Nudge(dir float64) {
	c.stick = core.Sign(dir)
	c.remaining = c.hold
}

// Press queues one press of the button at index i.
func (c *Controller) Press(i int) {
	if i < 0 || i >= len(c.queued) {
		return
	}
	c.queued[i]++
}

// advance moves time forward and returns this frame's gamepad sample.
func (c *Controller) advance(dt float64) core.InputSource {
	stick := 0.0
	if c.remaining > 0 {
		stick = c.stick
		c.remaining -= dt
	}

	buttons := make([]core.Button, len(c.pressed))
	for i := range c.pressed {
		switch {
		case c.pressed[i]:
			c.pressed[i] = false
		case c.queued[i] > 0:
			c.queued[i]--
			c.pressed[i] = true
		}
		buttons[i].Pressed = c.pressed[i]
	}

	axes := make([]float64, core.AxisThumbstickY+1)
	axes[core.AxisThumbstickY] = -stick // Negative is up on the device

	return core.InputSource{
		Handedness: c.hand,
		Gamepad:    &core.Gamepad{Axes: axes, Buttons: buttons},
	}
}
