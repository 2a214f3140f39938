package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/xr-pong/internal/app"
	"github.com/vovakirdan/xr-pong/internal/games/pong"
	"github.com/vovakirdan/xr-pong/internal/xr"
)

// Board glyphs.
const (
	runePaddle  = '█'
	runeBall    = '●'
	runeNet     = '┆'
	runeTable   = '·'
	runeGaze    = '+'
	runeReticle = '◎'
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	scoreStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	boardBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6"))
)

// canvas is a fixed-size rune grid.
type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int, fill rune) *canvas {
	w = max(w, 1)
	h = max(h, 1)
	c := &canvas{w: w, h: h, cells: make([][]rune, h)}
	for y := range c.cells {
		row := make([]rune, w)
		for x := range row {
			row[x] = fill
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = r
}

func (c *canvas) String() string {
	lines := make([]string, c.h)
	for y, row := range c.cells {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n")
}

// boardSize picks the board cell size for a terminal. Cells are about twice
// as tall as wide, so the board keeps its aspect with twice the columns.
func boardSize(snap pong.Snapshot, termW, termH int) (cols, rows int) {
	maxCols := max(termW-4, 10)
	maxRows := max(termH-8, 5)
	aspect := 2.0
	if snap.Height > 0 {
		aspect = snap.Width / snap.Height * 2
	}
	cols = maxCols
	rows = int(float64(cols) / aspect)
	if rows > maxRows {
		rows = maxRows
		cols = int(float64(rows) * aspect)
	}
	return max(cols, 10), max(rows, 5)
}

// project maps a board-local point to a canvas cell.
func project(snap pong.Snapshot, x, y float64, cols, rows int) (int, int) {
	cx := (x + snap.Width/2) / snap.Width * float64(cols-1)
	cy := (snap.Height/2 - y) / snap.Height * float64(rows-1)
	return int(math.Round(cx)), int(math.Round(cy))
}

// RenderBoard draws the playfield of a snapshot into cols x rows cells.
func RenderBoard(snap pong.Snapshot, cols, rows int) string {
	c := newCanvas(cols, rows, ' ')
	if snap.Width <= 0 || snap.Height <= 0 {
		return c.String()
	}

	for y := 0; y < rows; y += 2 {
		c.set(cols/2, y, runeNet)
	}

	for _, side := range []pong.Side{pong.SideLeft, pong.SideRight} {
		py := snap.LeftPaddleY
		if side == pong.SideRight {
			py = snap.RightPaddleY
		}
		x, top := project(snap, snap.PaddleX(side), py+snap.PaddleHeight/2, cols, rows)
		_, bottom := project(snap, snap.PaddleX(side), py-snap.PaddleHeight/2, cols, rows)
		for y := top; y <= bottom; y++ {
			c.set(x, y, runePaddle)
		}
	}

	if !snap.GameOver {
		bx, by := project(snap, snap.BallX, snap.BallY, cols, rows)
		c.set(bx, by, runeBall)
	}
	return c.String()
}

// RenderTable draws the simulated table top-down with the gaze and, when
// visible, the reticle.
func RenderTable(surface *xr.Surface, v app.View, cols, rows int) string {
	c := newCanvas(cols, rows, ' ')
	if surface == nil {
		return c.String()
	}
	t := surface.Table()

	// The canvas spans three table sizes, as far as the gaze may wander
	spanX, spanZ := 3*t.HalfX, 3*t.HalfZ
	toCell := func(x, z float64) (int, int) {
		cx := (x - t.Center.X() + spanX) / (2 * spanX) * float64(cols-1)
		cz := (z - t.Center.Z() + spanZ) / (2 * spanZ) * float64(rows-1)
		return int(math.Round(cx)), int(math.Round(cz))
	}

	x0, z0 := toCell(t.Center.X()-t.HalfX, t.Center.Z()-t.HalfZ)
	x1, z1 := toCell(t.Center.X()+t.HalfX, t.Center.Z()+t.HalfZ)
	for y := z0; y <= z1; y++ {
		for x := x0; x <= x1; x++ {
			c.set(x, y, runeTable)
		}
	}

	if v.Reticle.Visible {
		p := v.Reticle.Pose.Position
		rx, rz := toCell(p.X(), p.Z())
		c.set(rx, rz, runeReticle)
	} else {
		gx, gz := surface.Gaze()
		x, z := toCell(gx, gz)
		c.set(x, z, runeGaze)
	}
	return c.String()
}

// scoreLine renders the score, mode and rally counters.
func scoreLine(v app.View) string {
	s := v.Game
	mode := "2P"
	if s.OnePlayer {
		mode = "1P vs AI"
	}
	return fmt.Sprintf("%s   %s   %s",
		scoreStyle.Render(fmt.Sprintf("%d : %d", s.LeftScore, s.RightScore)),
		dimStyle.Render(fmt.Sprintf("first to %d, %s", s.WinScore, mode)),
		dimStyle.Render(fmt.Sprintf("rally %d (best %d)", s.Rally, s.LongestRally)),
	)
}

// placementLine describes where the board sits in the room.
func placementLine(v app.View) string {
	p := v.BoardToWorld(0, 0)
	return dimStyle.Render(fmt.Sprintf("%s placement, board center at (%.2f, %.2f, %.2f) m",
		v.Variant, p.X(), p.Y(), p.Z()))
}

// Render composes the full screen for a frame.
func Render(v app.View, surface *xr.Surface, width, height int, help string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("XR PONG"))
	b.WriteString("\n\n")

	switch {
	case !v.Entered:
		b.WriteString(hintStyle.Render("Press e to enter the immersive session."))
		b.WriteString("\n")

	case v.Locating():
		cols, rows := max(width-4, 10), max(height-10, 5)
		b.WriteString(boardBorder.Render(RenderTable(surface, v, cols, rows)))
		b.WriteString("\n")
		if v.Reticle.Visible {
			b.WriteString(hintStyle.Render("Surface found. Press space to place the board here."))
		} else {
			b.WriteString(dimStyle.Render("Looking for a surface... move your gaze with h/j/k/l."))
		}
		b.WriteString("\n")

	default:
		b.WriteString(scoreLine(v))
		b.WriteString("\n")
		cols, rows := boardSize(v.Game, width, height)
		b.WriteString(boardBorder.Render(RenderBoard(v.Game, cols, rows)))
		b.WriteString("\n")
		if v.Game.GameOver {
			b.WriteString(alertStyle.Render(fmt.Sprintf("GAME OVER: %s wins. Press b to play again.", v.Game.Winner)))
		} else {
			b.WriteString(placementLine(v))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(help))
	return b.String()
}
