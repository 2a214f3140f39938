// Package feedback defines the events the simulation emits for audio and other
// fire-and-forget feedback, and a few sinks to route them.
package feedback

import "github.com/charmbracelet/log"

// Event is a feedback event kind. Events carry no payload.
type Event int

const (
	EventWallHit Event = iota
	EventPaddleHit
	EventScore
)

// String returns the wire name of the event.
func (e Event) String() string {
	switch e {
	case EventWallHit:
		return "wall-hit"
	case EventPaddleHit:
		return "paddle-hit"
	case EventScore:
		return "score"
	default:
		return "unknown"
	}
}

// Sink consumes feedback events. Emit must not block the frame.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// Multi fans events out to several sinks in order.
type Multi []Sink

// Emit forwards e to every non-nil sink.
func (m Multi) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}

// Recorder keeps every emitted event. Useful in tests and replays.
type Recorder struct {
	Events []Event
}

// Emit appends e.
func (r *Recorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns how many times e was emitted.
func (r *Recorder) Count(e Event) int {
	n := 0
	for _, got := range r.Events {
		if got == e {
			n++
		}
	}
	return n
}

// Reset forgets recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// LogSink writes each event to a logger at debug level.
type LogSink struct {
	Logger *log.Logger
}

// Emit logs e.
func (s LogSink) Emit(e Event) {
	if s.Logger == nil {
		return
	}
	s.Logger.Debug("feedback", "event", e.String())
}
