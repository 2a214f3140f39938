package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/xr-pong/internal/storage"
)

// HistoryKeyMap defines the key bindings for the match history.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the match history screen.
type HistoryModel struct {
	matches  []storage.MatchRecord
	stats    *storage.MatchStats
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history screen over already loaded matches.
func NewHistoryModel(matches []storage.MatchRecord, stats *storage.MatchStats, width, height int) HistoryModel {
	h := help.New()
	h.Width = width
	m := HistoryModel{
		matches: matches,
		stats:   stats,
		help:    h,
		keys:    DefaultHistoryKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.table.SetRows(HistoryRows(matches))
	return m
}

// historyColumns returns the history table columns.
func historyColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Placement", Width: 9},
		{Title: "Mode", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Winner", Width: 6},
		{Title: "Rally", Width: 5},
		{Title: "Time", Width: 7},
	}
}

// createTable creates the table with the history columns.
func (m *HistoryModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(historyColumns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// HistoryRows formats matches as table rows.
func HistoryRows(matches []storage.MatchRecord) []table.Row {
	rows := make([]table.Row, len(matches))
	for i, r := range matches {
		mode := "2P"
		if r.OnePlayer {
			mode = "1P"
		}
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Variant,
			mode,
			fmt.Sprintf("%d:%d", r.LeftScore, r.RightScore),
			r.Winner,
			fmt.Sprintf("%d", r.LongestRally),
			r.Duration.Round(100 * time.Millisecond).String(),
		}
	}
	return rows
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(HistoryRows(m.matches))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("MATCH HISTORY"))
	b.WriteString("\n")
	if m.stats != nil {
		b.WriteString(dimStyle.Render(StatsLine(*m.stats)))
	}
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.matches) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No matches recorded yet.\nPlay one with 'xrpong play'!")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// StatsLine summarizes aggregated match statistics.
func StatsLine(s storage.MatchStats) string {
	return fmt.Sprintf("%d matches, left %d / right %d, longest rally %d",
		s.Matches, s.LeftWins, s.RightWins, s.LongestRally)
}

// RunHistory runs the history screen.
func RunHistory(matches []storage.MatchRecord, stats *storage.MatchStats, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(matches, stats, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
