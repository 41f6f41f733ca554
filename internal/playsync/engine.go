package playsync

import (
	"sync"
	"time"
)

const (
	// TickInterval is how often the host drives Tick.
	TickInterval = 100 * time.Millisecond
	// StalenessThreshold is the maximum gap between real samples before
	// the engine switches to simulated time.
	StalenessThreshold = 1000 * time.Millisecond
	// DiscontinuityThreshold separates normal playback drift from an
	// intentional seek. Jumps beyond it snap immediately; anything under
	// it is adopted without visible snap-back.
	DiscontinuityThreshold = 0.5
)

// State is the engine's published view. Owned and mutated exclusively by
// the engine; consumers read copies.
type State struct {
	DisplayTime      float64   `json:"displayTime"`
	LastRealUpdateAt time.Time `json:"lastRealUpdateAt"`
	// IsSimulating is true while DisplayTime advances on the local clock
	// because real samples have gone stale and no seek is pending.
	IsSimulating bool `json:"isSimulating"`
}

// Engine produces one authoritative display time per session, interpolating
// through gaps in real updates and clamping simulated time to the known
// total duration.
type Engine struct {
	mu            sync.Mutex
	st            State
	generation    string
	totalDuration float64
	seekPending   bool
	lastTick      time.Time
	// baseline anchors the staleness check before the first real sample
	// of a session arrives.
	baseline time.Time
}

// NewEngine returns an engine for a session whose known duration is
// totalDuration seconds (0 when unknown).
func NewEngine(generation string, totalDuration float64) *Engine {
	return &Engine{generation: generation, totalDuration: totalDuration}
}

// State returns a copy of the current sync state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st
}

// SetTotalDuration updates the clamp ceiling, typically once the player
// reports a real duration.
func (e *Engine) SetTotalDuration(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if seconds > 0 {
		e.totalDuration = seconds
	}
}

// Reset rebuilds the state for a new video session: time zero, not
// simulating, and a fresh generation token so samples from the previous
// player instance become no-ops.
func (e *Engine) Reset(generation string, totalDuration float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st = State{}
	e.generation = generation
	e.totalDuration = totalDuration
	e.seekPending = false
	e.lastTick = time.Time{}
	e.baseline = time.Time{}
}

// OnRealSample folds a player-reported position into the state. A jump
// beyond the discontinuity threshold means the player seeked (or drifted
// badly) and is snapped; smaller deltas are adopted without ever moving
// display time backwards. Always refreshes liveness.
func (e *Engine) OnRealSample(s Sample) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s.Generation != e.generation {
		return
	}

	delta := s.Time - e.st.DisplayTime
	if delta > DiscontinuityThreshold || delta < -DiscontinuityThreshold {
		e.st.DisplayTime = s.Time
	} else if s.Time > e.st.DisplayTime {
		e.st.DisplayTime = s.Time
	}
	e.st.LastRealUpdateAt = s.ObservedAt
	e.st.IsSimulating = false
	e.seekPending = false
}

// ApplySeek optimistically resets display time to the seek target. This is
// the one sanctioned non-monotonic transition. Simulation stays off until
// the seek resolves.
func (e *Engine) ApplySeek(target float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if target < 0 {
		target = 0
	}
	e.st.DisplayTime = target
	e.st.IsSimulating = false
	e.seekPending = true
}

// SeekSettled marks the pending seek as resolved (delivered or abandoned),
// re-enabling the staleness fallback.
func (e *Engine) SeekSettled() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seekPending = false
}

// Tick advances the clock. Called by the session host every TickInterval
// while playback is active. When real samples have gone stale and no seek
// is pending, display time advances by the tick delta, clamped to the total
// duration; simulated mode exits only via OnRealSample.
func (e *Engine) Tick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.baseline.IsZero() {
		e.baseline = now
	}
	var delta time.Duration
	if !e.lastTick.IsZero() {
		delta = now.Sub(e.lastTick)
	}
	e.lastTick = now

	ref := e.st.LastRealUpdateAt
	if ref.IsZero() {
		ref = e.baseline
	}
	if now.Sub(ref) <= StalenessThreshold || e.seekPending {
		return
	}

	e.st.IsSimulating = true
	if delta <= 0 {
		return
	}
	next := e.st.DisplayTime + delta.Seconds()
	if e.totalDuration > 0 && next > e.totalDuration {
		next = e.totalDuration
	}
	if next > e.st.DisplayTime {
		e.st.DisplayTime = next
	}
}

// Generation returns the session token samples must carry to be accepted.
func (e *Engine) Generation() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}
