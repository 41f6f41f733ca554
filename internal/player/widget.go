package player

// State mirrors the external widget's playback states.
type State int

const (
	StateUnstarted State = -1
	StateEnded     State = 0
	StatePlaying   State = 1
	StatePaused    State = 2
	StateBuffering State = 3
	StateCued      State = 5
)

func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StateEnded:
		return "ended"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateBuffering:
		return "buffering"
	case StateCued:
		return "cued"
	default:
		return "unknown"
	}
}

// Instance is the opaque external player object. The external API only
// guarantees teardown; everything else must be feature-detected.
type Instance interface {
	Destroy() error
}

// Controllable is the command surface a fully functional instance exposes.
// The external widget is known to report ready before these methods are
// actually callable, so readiness is established by asserting the live
// instance to this interface and probing it, never by the ready callback
// alone.
type Controllable interface {
	SeekTo(seconds float64, allowSeekAhead bool) error
	CurrentTime() (float64, error)
	Duration() (float64, error)
}

// Events carries the external widget's callbacks.
type Events struct {
	OnReady       func()
	OnStateChange func(State)
	OnError       func(code int)
}
