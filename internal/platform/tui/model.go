package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/xr-pong/internal/app"
)

// Model is the Bubble Tea model running one emulated XR session.
type Model struct {
	session  *Session
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	view     app.View
	last     time.Time
	tickRate int
	width    int
	height   int
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given session.
func NewModel(s *Session, tickRate, width, height int, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}
	h := help.New()
	h.Width = width
	return Model{
		session:  s,
		logger:   logger,
		keys:     DefaultKeyMap(),
		help:     h,
		tickRate: tickRate,
		width:    width,
		height:   height,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Apply(msg, m.session.Host) {
	case IntentQuit:
		m.quitting = true
		return m, tea.Quit

	case IntentEnter:
		m.session.Host.Begin()
		m.session.App.EnterImmersive()

	case IntentReset:
		if err := m.session.App.Reset(); err != nil {
			m.logger.Warn("reset incomplete", "error", err)
		}
	}
	return m, nil
}

// handleTick runs one host frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.last, now)
	m.last = now

	frame := m.session.Host.Next(dt)
	m.view = m.session.App.Frame(frame)

	return m, tickCmd(m.tickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return Render(m.view, m.session.Host.Surface(), m.width, m.height, m.help.View(m.keys))
}

// Run starts the Bubble Tea program for a local session.
func Run(s *Session, tickRate, width, height int, logger *log.Logger) error {
	model := NewModel(s, tickRate, width, height, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
