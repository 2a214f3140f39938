// Package tui is the terminal XR host: it emulates an immersive session with
// keyboard-driven controllers, runs the game loop on Bubble Tea ticks and
// renders the board, locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameDelta caps the delta of a single frame after a stall.
const maxFrameDelta = 0.1

// TickMsg is sent to trigger a host frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the seconds between two ticks, clamped to [0, maxFrameDelta].
// The first tick has no predecessor and yields zero.
func frameDelta(prev, now time.Time) float64 {
	if prev.IsZero() {
		return 0
	}
	dt := now.Sub(prev).Seconds()
	if dt < 0 {
		return 0
	}
	if dt > maxFrameDelta {
		return maxFrameDelta
	}
	return dt
}
