// Package audio synthesizes the short feedback tones played on wall hits,
// paddle hits and scores.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/xr-pong/internal/feedback"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// Tone parameters.
const (
	PaddleFreq = 440.0
	WallFreq   = 220.0
	ScoreFreq1 = 523.0
	ScoreFreq2 = 659.0

	ShortTone  = 100 * time.Millisecond
	ScoreTone  = 150 * time.Millisecond
	ScoreDelay = 100 * time.Millisecond

	// Gain every tone decays to by its end.
	floorGain = 0.01
)

// oscillator generates a raw periodic wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay scales a stream by a gain falling exponentially from 1 to end over
// the given number of samples.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
	ratio    float64
}

// NewDecay wraps s with an exponential decay from unity to end over duration.
func NewDecay(s beep.Streamer, duration time.Duration, end float64, rate beep.SampleRate) beep.Streamer {
	if end <= 0 || end > 1 {
		end = 1
	}
	return &decay{
		streamer: s,
		total:    max(rate.N(duration), 1),
		ratio:    end,
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := math.Min(float64(d.position)/float64(d.total), 1)
		gain := math.Pow(d.ratio, t)
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume scales s linearly by vol. math.Log2(0) is -Inf, so zero volume
// is made silent instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// NewTone returns a single tone starting at gain and decaying to the floor gain.
func NewTone(freq float64, duration time.Duration, wave WaveType, gain float64, rate beep.SampleRate) beep.Streamer {
	end := 1.0
	if gain > floorGain {
		end = floorGain / gain
	}
	osc := NewOscillator(freq, duration, wave, rate)
	return newVolume(NewDecay(osc, duration, end, rate), gain)
}

// Sound returns the tone played for a feedback event, or nil for unknown events.
func Sound(e feedback.Event, gain float64, rate beep.SampleRate) beep.Streamer {
	switch e {
	case feedback.EventPaddleHit:
		return NewTone(PaddleFreq, ShortTone, WaveSquare, gain, rate)
	case feedback.EventWallHit:
		return NewTone(WallFreq, ShortTone, WaveSine, gain, rate)
	case feedback.EventScore:
		first := NewTone(ScoreFreq1, ScoreTone, WaveTriangle, gain, rate)
		second := beep.Seq(
			beep.Silence(rate.N(ScoreDelay)),
			NewTone(ScoreFreq2, ScoreTone, WaveTriangle, gain, rate),
		)
		return beep.Mix(first, second)
	default:
		return nil
	}
}
