// Package pong implements the board simulation: two paddles, a ball,
// scoring to a winning threshold and an optional reactive AI opponent.
// The right-hand controller drives the left paddle; the left-hand controller
// or the AI drives the right paddle.
package pong

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/xr-pong/internal/config"
	"github.com/vovakirdan/xr-pong/internal/core"
	"github.com/vovakirdan/xr-pong/internal/feedback"
)

// Params holds the board geometry and physics constants.
type Params struct {
	Width        float64
	Height       float64
	PaddleWidth  float64
	PaddleHeight float64
	BallSize     float64

	BallSpeed   float64
	PaddleSpeed float64
	AISpeed     float64
	SpeedUp     float64
	SpinFactor  float64
	LaunchSlope float64

	WinScore  int
	OnePlayer bool // Initial mode
}

// DefaultParams returns the stock board.
func DefaultParams() Params {
	return ParamsFromConfig(config.Default())
}

// ParamsFromConfig extracts simulation parameters from the game config.
func ParamsFromConfig(cfg config.Config) Params {
	return Params{
		Width:        cfg.Board.Width,
		Height:       cfg.Board.Height,
		PaddleWidth:  cfg.Board.PaddleWidth,
		PaddleHeight: cfg.Board.PaddleHeight,
		BallSize:     cfg.Board.BallSize,
		BallSpeed:    cfg.Physics.BallSpeed,
		PaddleSpeed:  cfg.Physics.PaddleSpeed,
		AISpeed:      cfg.Physics.AISpeed,
		SpeedUp:      cfg.Physics.SpeedUp,
		SpinFactor:   cfg.Physics.SpinFactor,
		LaunchSlope:  cfg.Physics.LaunchSlope,
		WinScore:     cfg.Gameplay.WinScore,
		OnePlayer:    cfg.Gameplay.OnePlayer,
	}
}

// PaddleLimit is the largest |y| a paddle center may reach.
func (p Params) PaddleLimit() float64 {
	return p.Height/2 - p.PaddleHeight/2
}

// Side identifies a player side of the board.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Phase is the simulation state machine state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	if p == PhaseGameOver {
		return "GameOver"
	}
	return "Playing"
}

// GameState is the authoritative game state. Positions are board-local,
// origin at the board center, +Y up.
type GameState struct {
	LeftPaddleY  float64
	RightPaddleY float64

	Ball         mgl64.Vec2
	BallVelocity mgl64.Vec2

	LeftScore  int
	RightScore int

	GameOver  bool
	OnePlayer bool
	Winner    Side

	Frames       uint64
	Rally        int // Paddle hits since the last serve
	LongestRally int
}

// StepResult is returned by Step after each frame.
type StepResult struct {
	Events []feedback.Event
	Scorer Side // Side that scored this frame, if any

	Restarted bool // Reset press started a new match
	Finished  bool // This frame ended the match
}

// Game is the per-frame board simulation.
type Game struct {
	params Params
	state  GameState
	rng    *rand.Rand
}

// New creates a simulation ready to play with the given runtime seed.
func New(params Params, runtime core.RuntimeConfig) *Game {
	g := &Game{
		params: params,
		rng:    rand.New(rand.NewSource(runtime.Seed)),
	}
	g.state = g.initialState()
	return g
}

func (g *Game) initialState() GameState {
	return GameState{
		Ball:         mgl64.Vec2{0, 0},
		BallVelocity: mgl64.Vec2{g.params.BallSpeed, g.params.BallSpeed * g.params.LaunchSlope},
		OnePlayer:    g.params.OnePlayer,
	}
}

// Params returns the simulation parameters.
func (g *Game) Params() Params {
	return g.params
}

// Phase returns the current state machine phase.
func (g *Game) Phase() Phase {
	if g.state.GameOver {
		return PhaseGameOver
	}
	return PhasePlaying
}

// Restart zeroes the scores, re-centers the paddles and re-launches the ball
// in a random horizontal direction. The player mode is kept.
func (g *Game) Restart() {
	mode := g.state.OnePlayer
	g.state = GameState{OnePlayer: mode}
	g.resetBall()
}

// resetBall centers the ball with a fresh launch velocity.
func (g *Game) resetBall() {
	dir := 1.0
	if g.rng.Float64() <= 0.5 {
		dir = -1
	}
	g.state.Ball = mgl64.Vec2{0, 0}
	g.state.BallVelocity = mgl64.Vec2{
		g.params.BallSpeed * dir,
		g.params.BallSpeed * g.params.LaunchSlope,
	}
	g.state.Rally = 0
}

// Step advances the simulation by dt seconds.
// While the match is over only the reset press is honored.
func (g *Game) Step(in core.ControllerState, dt float64) StepResult {
	var res StepResult

	if g.state.GameOver {
		if in.Reset {
			g.Restart()
			res.Restarted = true
		}
		return res
	}
	if dt < 0 {
		dt = 0
	}

	g.state.Frames++

	if in.ModeToggle {
		g.state.OnePlayer = !g.state.OnePlayer
	}

	g.updatePaddles(in, dt)

	p := g.params
	s := &g.state
	next := s.Ball.Add(s.BallVelocity.Mul(dt))

	// Walls: flip only, the ball may overlap by one frame of travel.
	// A ball already heading back in is left alone.
	wall := p.Height/2 - p.BallSize/2
	vy := s.BallVelocity.Y()
	if (next.Y() > wall && vy > 0) || (next.Y() < -wall && vy < 0) {
		s.BallVelocity[1] = -s.BallVelocity[1]
		res.Events = append(res.Events, feedback.EventWallHit)
	}

	if g.hitsPaddle(next, SideLeft) {
		g.bounce(next, s.LeftPaddleY)
		res.Events = append(res.Events, feedback.EventPaddleHit)
	}
	if g.hitsPaddle(next, SideRight) {
		g.bounce(next, s.RightPaddleY)
		res.Events = append(res.Events, feedback.EventPaddleHit)
	}

	goal := p.Width/2 + p.BallSize
	switch {
	case next.X() < -goal:
		g.score(SideRight, &res)
	case next.X() > goal:
		g.score(SideLeft, &res)
	default:
		s.Ball = next
	}

	return res
}

// updatePaddles integrates both paddles and clamps them to the playfield.
func (g *Game) updatePaddles(in core.ControllerState, dt float64) {
	p := g.params
	s := &g.state
	limit := p.PaddleLimit()

	s.LeftPaddleY = core.ClampF(s.LeftPaddleY+in.RightStickY*p.PaddleSpeed*dt, -limit, limit)

	var right float64
	if s.OnePlayer {
		right = g.aiTarget(dt)
	} else {
		right = s.RightPaddleY + in.LeftStickY*p.PaddleSpeed*dt
	}
	s.RightPaddleY = core.ClampF(right, -limit, limit)
}

// aiTarget tracks the ball's current height, at most AISpeed*dt per frame.
func (g *Game) aiTarget(dt float64) float64 {
	return core.MoveToward(g.state.RightPaddleY, g.state.Ball.Y(), g.params.AISpeed*dt)
}

// hitsPaddle reports whether the ball lies in the paddle's collision band
// while moving toward that paddle.
func (g *Game) hitsPaddle(ball mgl64.Vec2, side Side) bool {
	p := g.params
	edge := p.Width / 2
	band := p.PaddleWidth/2 + p.BallSize/2
	vx := g.state.BallVelocity.X()

	var inBand bool
	var paddleY float64
	if side == SideLeft {
		inBand = vx < 0 && ball.X() < -edge+band && ball.X() > -edge
		paddleY = g.state.LeftPaddleY
	} else {
		inBand = vx > 0 && ball.X() > edge-band && ball.X() < edge
		paddleY = g.state.RightPaddleY
	}
	if !inBand {
		return false
	}

	dy := ball.Y() - paddleY
	return dy < p.PaddleHeight/2 && dy > -p.PaddleHeight/2
}

// bounce reflects the ball off a paddle. Speed grows on every hit and the
// off-center distance steers the ball.
func (g *Game) bounce(ball mgl64.Vec2, paddleY float64) {
	s := &g.state
	s.BallVelocity[0] *= -g.params.SpeedUp
	s.BallVelocity[1] += (ball.Y() - paddleY) * g.params.SpinFactor

	s.Rally++
	if s.Rally > s.LongestRally {
		s.LongestRally = s.Rally
	}
}

// score credits a point and either ends the match or serves again.
func (g *Game) score(side Side, res *StepResult) {
	s := &g.state
	total := 0
	if side == SideLeft {
		s.LeftScore++
		total = s.LeftScore
	} else {
		s.RightScore++
		total = s.RightScore
	}
	res.Scorer = side
	res.Events = append(res.Events, feedback.EventScore)

	if total >= g.params.WinScore {
		s.GameOver = true
		s.Winner = side
		res.Finished = true
		return
	}
	g.resetBall()
}

// State returns a copy of the current game state.
func (g *Game) State() GameState {
	return g.state
}
