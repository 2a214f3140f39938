package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/xr-pong/internal/core"
	"github.com/vovakirdan/xr-pong/internal/xr"
)

// Intent is a session-level request derived from a key press. Controller
// keys are routed straight to the host and yield IntentNone.
type Intent int

const (
	IntentNone Intent = iota
	IntentQuit
	IntentEnter
	IntentReset
)

// KeyMap defines the key bindings of the emulated XR session.
type KeyMap struct {
	LeftUp    key.Binding // Right-hand stick, drives the left paddle
	LeftDown  key.Binding
	RightUp   key.Binding // Left-hand stick, drives the right paddle
	RightDown key.Binding

	Mode    key.Binding
	Restart key.Binding
	Trigger key.Binding

	GazeLeft  key.Binding
	GazeRight key.Binding
	GazeNear  key.Binding
	GazeFar   key.Binding

	Enter key.Binding
	Reset key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LeftUp, k.RightUp, k.Mode, k.Restart, k.Trigger, k.Enter, k.Reset, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LeftUp, k.LeftDown, k.RightUp, k.RightDown},
		{k.Mode, k.Restart, k.Trigger},
		{k.GazeLeft, k.GazeRight, k.GazeFar, k.GazeNear},
		{k.Enter, k.Reset, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		LeftUp: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w/s", "left paddle"),
		),
		LeftDown: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "left paddle down"),
		),
		RightUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "right paddle"),
		),
		RightDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "right paddle down"),
		),
		Mode: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "1P/2P"),
		),
		Restart: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "restart"),
		),
		Trigger: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "place"),
		),
		GazeLeft: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "look left"),
		),
		GazeRight: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "look right"),
		),
		GazeNear: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "look nearer"),
		),
		GazeFar: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "look farther"),
		),
		Enter: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "enter AR"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Apply routes a key press to the emulated host. Returns the session intent,
// if the key carries one.
func (k KeyMap) Apply(msg tea.KeyMsg, host *xr.Host) Intent {
	right := host.Controller(core.HandRight)
	left := host.Controller(core.HandLeft)

	switch {
	case key.Matches(msg, k.Quit):
		return IntentQuit
	case key.Matches(msg, k.Enter):
		return IntentEnter
	case key.Matches(msg, k.Reset):
		return IntentReset

	case key.Matches(msg, k.LeftUp):
		right.Nudge(1)
	case key.Matches(msg, k.LeftDown):
		right.Nudge(-1)
	case key.Matches(msg, k.RightUp):
		left.Nudge(1)
	case key.Matches(msg, k.RightDown):
		left.Nudge(-1)

	case key.Matches(msg, k.Mode):
		right.Press(core.ButtonMode)
	case key.Matches(msg, k.Restart):
		right.Press(core.ButtonReset)
	case key.Matches(msg, k.Trigger):
		right.Press(core.ButtonPrimary)

	case key.Matches(msg, k.GazeLeft):
		host.Surface().MoveGaze(-1, 0)
	case key.Matches(msg, k.GazeRight):
		host.Surface().MoveGaze(1, 0)
	case key.Matches(msg, k.GazeNear):
		host.Surface().MoveGaze(0, 1)
	case key.Matches(msg, k.GazeFar):
		host.Surface().MoveGaze(0, -1)
	}
	return IntentNone
}
