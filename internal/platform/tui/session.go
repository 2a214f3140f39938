package tui

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/xr-pong/internal/anchor"
	"github.com/vovakirdan/xr-pong/internal/app"
	"github.com/vovakirdan/xr-pong/internal/audio"
	"github.com/vovakirdan/xr-pong/internal/config"
	"github.com/vovakirdan/xr-pong/internal/core"
	"github.com/vovakirdan/xr-pong/internal/feedback"
	"github.com/vovakirdan/xr-pong/internal/games/pong"
	"github.com/vovakirdan/xr-pong/internal/xr"
)

// SessionConfig describes one emulated XR session.
type SessionConfig struct {
	Config    config.Config
	Params    pong.Params // Overrides the params derived from Config when non-zero
	Runtime   core.RuntimeConfig
	Store     anchor.Store
	Matches   app.MatchRecorder
	AnchorKey string // Defaults to Config.Placement.AnchorKey
	Audio     bool
	Logger    *log.Logger
}

// Session bundles the runtime, the emulated host and the audio player.
type Session struct {
	App    *app.App
	Host   *xr.Host
	Player *audio.Player // nil when audio is off
}

// NewSession wires a session. Audio output is not opened until the user
// enters the immersive session.
func NewSession(sc SessionConfig) *Session {
	logger := sc.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	params := sc.Params
	if params.Width == 0 {
		params = pong.ParamsFromConfig(sc.Config)
	}
	key := sc.AnchorKey
	if key == "" {
		key = sc.Config.Placement.AnchorKey
	}

	host := xr.NewHost(xr.HostOptions{
		HoldWindow: xr.DefaultHoldWindow,
		Surface:    xr.SurfaceOptions{ReadyDelay: 3},
	})

	sinks := feedback.Multi{feedback.LogSink{Logger: logger}}
	opts := app.Options{
		Variant:   sc.Config.Placement.Variant,
		Params:    params,
		Runtime:   sc.Runtime,
		Placement: mgl64.Vec3(sc.Config.Placement.Position),
		Store:     sc.Store,
		Tester:    host.Surface(),
		AnchorKey: key,
		Matches:   sc.Matches,
		Logger:    logger,
	}

	s := &Session{Host: host}
	if sc.Audio && sc.Config.Audio.Enabled {
		s.Player = audio.NewPlayer(audio.Options{
			SampleRate: sc.Config.Audio.SampleRate,
			Gain:       sc.Config.Audio.Volume,
			Logger:     logger,
		})
		sinks = append(sinks, s.Player)
		opts.Audio = s.Player
	}
	opts.Sink = sinks

	s.App = app.New(opts)
	return s
}

// Close releases the audio output.
func (s *Session) Close() {
	if s.Player != nil {
		s.Player.Close()
	}
}
