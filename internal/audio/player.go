package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/xr-pong/internal/feedback"
)

// Output is the device the mixer is played on.
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
}

// Speaker is the system audio output.
type Speaker struct{}

// Init opens the audio device.
func (Speaker) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

// Play starts the streamers on the device.
func (Speaker) Play(s ...beep.Streamer) { speaker.Play(s...) }

// Lock pauses the device callback while streamers are modified.
func (Speaker) Lock() { speaker.Lock() }

// Unlock resumes the device callback.
func (Speaker) Unlock() { speaker.Unlock() }

// Player turns feedback events into tones. The output is opened on the first
// Activate call; until then, and after a failed open, events are dropped.
type Player struct {
	mu          sync.Mutex
	out         Output
	rate        beep.SampleRate
	gain        float64
	mixer       *beep.Mixer
	logger      *log.Logger
	initialized bool
	disabled    bool
}

// Options configures a Player.
type Options struct {
	Output     Output // Defaults to Speaker
	SampleRate int
	Gain       float64
	Logger     *log.Logger
}

// NewPlayer creates a player. It does not touch the audio device.
func NewPlayer(opts Options) *Player {
	if opts.Output == nil {
		opts.Output = Speaker{}
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = 48000
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Player{
		out:    opts.Output,
		rate:   beep.SampleRate(opts.SampleRate),
		gain:   opts.Gain,
		mixer:  &beep.Mixer{},
		logger: opts.Logger,
	}
}

// Activate opens the audio output. It is meant to be called from a user
// gesture and is a no-op once the output is open or has failed.
func (p *Player) Activate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || p.disabled {
		return
	}

	if err := p.out.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		p.disabled = true
		p.logger.Warn("audio unavailable, continuing without sound", "error", err)
		return
	}
	p.out.Play(p.mixer)
	p.initialized = true
}

// Active reports whether tones are being played.
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Emit queues the tone for e. It never blocks on the device.
func (p *Player) Emit(e feedback.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := Sound(e, p.gain, p.rate)
	if s == nil {
		return
	}
	p.out.Lock()
	p.mixer.Add(s)
	p.out.Unlock()
}

// Close silences any queued tones. The player stays silent afterwards.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.out.Lock()
	p.mixer.Clear()
	p.out.Unlock()
	p.initialized = false
	p.disabled = true
}

// Pending returns how many tones are still in the mixer.
func (p *Player) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out.Lock()
	defer p.out.Unlock()
	return p.mixer.Len()
}

var _ feedback.Sink = (*Player)(nil)
