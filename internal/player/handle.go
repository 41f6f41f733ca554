package player

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
)

// HandleState tracks the handle lifecycle. Re-entering Loading for a new
// video requires passing through Destroyed first.
type HandleState int

const (
	HandleUninitialized HandleState = iota
	HandleLoading
	HandleReady
	HandleDestroyed
)

func (s HandleState) String() string {
	switch s {
	case HandleUninitialized:
		return "uninitialized"
	case HandleLoading:
		return "loading"
	case HandleReady:
		return "ready"
	case HandleDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

var (
	// ErrNotReady is returned by commands issued before the instance is
	// controllable.
	ErrNotReady = errors.New("player: handle not ready")
	// ErrDestroyed is returned when a destroy raced an initialization.
	ErrDestroyed = errors.New("player: handle destroyed")
	// ErrBusy is returned when Initialize is called without destroying the
	// previous instance first.
	ErrBusy = errors.New("player: destroy required before re-initializing")
)

// Handle wraps the external widget lifecycle. All methods are safe for
// concurrent use; commands on a not-ready handle degrade to logged no-ops
// rather than failures.
type Handle struct {
	loader Loader

	mu         sync.Mutex
	state      HandleState
	generation string
	inst       Instance
	ctrl       Controllable
	onState    func(generation string, s State)
}

// NewHandle returns an uninitialized handle over the given loader.
func NewHandle(loader Loader) *Handle {
	return &Handle{loader: loader}
}

// SetStateChangeFunc installs the callback that receives widget state
// changes together with the generation token they belong to. Consumers must
// drop events carrying a stale token.
func (h *Handle) SetStateChangeFunc(fn func(generation string, s State)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onState = fn
}

// Initialize loads the external library (once per process when the loader
// is wrapped with CacheLoad) and constructs an instance bound to the
// container. Failure is non-fatal: the handle returns to Uninitialized and
// the caller may retry or surface a loading placeholder.
func (h *Handle) Initialize(ctx context.Context, containerID, externalID string) error {
	h.mu.Lock()
	switch h.state {
	case HandleLoading, HandleReady:
		h.mu.Unlock()
		return ErrBusy
	}
	h.state = HandleLoading
	gen := uuid.NewString()
	h.generation = gen
	h.mu.Unlock()

	if err := h.loader.Load(ctx); err != nil {
		log.Printf("player: external library load failed: %v", err)
		h.abortInit(gen)
		return err
	}

	inst, err := h.loader.New(containerID, externalID, Events{
		OnReady:       func() { h.ready(gen) },
		OnStateChange: func(s State) { h.stateChange(gen, s) },
		OnError:       func(code int) { log.Printf("player: widget error code=%d", code) },
	})
	if err != nil {
		log.Printf("player: widget construction failed (container=%s): %v", containerID, err)
		h.abortInit(gen)
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.generation != gen {
		// Destroyed (or re-initialized) while we were constructing.
		_ = inst.Destroy()
		return ErrDestroyed
	}
	h.inst = inst
	return nil
}

func (h *Handle) abortInit(gen string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.generation == gen && h.state == HandleLoading {
		h.state = HandleUninitialized
	}
}

// ready runs on the widget's ready callback. The external API may fire it
// before seek/time methods are callable, so the transition to Ready happens
// only after the capability assertion and a live probe both succeed.
func (h *Handle) ready(gen string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.generation != gen || h.state != HandleLoading || h.inst == nil {
		return
	}
	ctrl, ok := h.inst.(Controllable)
	if !ok {
		log.Printf("player: instance reported ready without a command surface, waiting")
		return
	}
	if _, err := ctrl.CurrentTime(); err != nil {
		log.Printf("player: ready probe failed, waiting: %v", err)
		return
	}
	h.ctrl = ctrl
	h.state = HandleReady
}

func (h *Handle) stateChange(gen string, s State) {
	h.mu.Lock()
	fn := h.onState
	current := h.generation == gen
	h.mu.Unlock()
	if !current || fn == nil {
		return
	}
	fn(gen, s)
}

// IsReady reports whether seek and time commands are currently deliverable.
func (h *Handle) IsReady() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state == HandleReady && h.ctrl != nil
}

// Generation returns the token identifying the current instance. Callbacks
// carrying an older token must be treated as no-ops.
func (h *Handle) Generation() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.generation
}

// State returns the lifecycle state.
func (h *Handle) State() HandleState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// CurrentTime returns the player-reported position, or false when the
// handle is not ready or the command errors.
func (h *Handle) CurrentTime() (float64, bool) {
	h.mu.Lock()
	ctrl := h.ctrl
	ready := h.state == HandleReady
	h.mu.Unlock()
	if !ready || ctrl == nil {
		return 0, false
	}
	t, err := ctrl.CurrentTime()
	if err != nil {
		log.Printf("player: getCurrentTime failed: %v", err)
		return 0, false
	}
	return t, true
}

// Duration returns the player-reported total duration, if available.
func (h *Handle) Duration() (float64, bool) {
	h.mu.Lock()
	ctrl := h.ctrl
	ready := h.state == HandleReady
	h.mu.Unlock()
	if !ready || ctrl == nil {
		return 0, false
	}
	d, err := ctrl.Duration()
	if err != nil {
		return 0, false
	}
	return d, true
}

// SeekTo forwards a seek command. Not-ready handles log and return
// ErrNotReady so the coordinator can retry.
func (h *Handle) SeekTo(seconds float64) error {
	h.mu.Lock()
	ctrl := h.ctrl
	ready := h.state == HandleReady
	h.mu.Unlock()
	if !ready || ctrl == nil {
		log.Printf("player: seekTo(%.2f) dropped, handle not ready", seconds)
		return ErrNotReady
	}
	return ctrl.SeekTo(seconds, true)
}

// Destroy tears down the instance and clears every internal reference so a
// stale instance can never race its successor. Must be called before
// re-initializing for a new video id.
func (h *Handle) Destroy() {
	h.mu.Lock()
	inst := h.inst
	h.inst = nil
	h.ctrl = nil
	h.state = HandleDestroyed
	h.generation = uuid.NewString()
	h.mu.Unlock()

	if inst != nil {
		if err := inst.Destroy(); err != nil {
			log.Printf("player: destroy failed: %v", err)
		}
	}
}
