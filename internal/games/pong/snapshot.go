package pong

// Snapshot is the read-only projection of the simulation consumed by the
// presentation layer. Uses primitive types only so renderers need no math
// dependencies.
type Snapshot struct {
	Frames uint64
	Phase  Phase

	LeftPaddleY  float64
	RightPaddleY float64
	BallX        float64
	BallY        float64
	BallVX       float64
	BallVY       float64

	LeftScore  int
	RightScore int
	WinScore   int
	Winner     Side

	GameOver  bool
	OnePlayer bool

	Rally        int
	LongestRally int

	// Board geometry, for renderers.
	Width        float64
	Height       float64
	PaddleWidth  float64
	PaddleHeight float64
	BallSize     float64
}

// Snapshot returns the current state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.state
	p := g.params
	return Snapshot{
		Frames:       s.Frames,
		Phase:        g.Phase(),
		LeftPaddleY:  s.LeftPaddleY,
		RightPaddleY: s.RightPaddleY,
		BallX:        s.Ball.X(),
		BallY:        s.Ball.Y(),
		BallVX:       s.BallVelocity.X(),
		BallVY:       s.BallVelocity.Y(),
		LeftScore:    s.LeftScore,
		RightScore:   s.RightScore,
		WinScore:     p.WinScore,
		Winner:       s.Winner,
		GameOver:     s.GameOver,
		OnePlayer:    s.OnePlayer,
		Rally:        s.Rally,
		LongestRally: s.LongestRally,
		Width:        p.Width,
		Height:       p.Height,
		PaddleWidth:  p.PaddleWidth,
		PaddleHeight: p.PaddleHeight,
		BallSize:     p.BallSize,
	}
}

// PaddleX returns the board-local x of a paddle center.
func (s Snapshot) PaddleX(side Side) float64 {
	x := s.Width/2 - s.PaddleWidth/2
	if side == SideLeft {
		return -x
	}
	return x
}
