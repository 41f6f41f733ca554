package player

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type fakeInstance struct {
	mu        sync.Mutex
	destroyed bool
}

func (f *fakeInstance) Destroy() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = true
	return nil
}

// fakeWidget is a fully controllable instance.
type fakeWidget struct {
	fakeInstance
	time     float64
	duration float64
	probeErr error
	seeks    []float64
}

func (f *fakeWidget) SeekTo(seconds float64, allowSeekAhead bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, seconds)
	f.time = seconds
	return nil
}

func (f *fakeWidget) CurrentTime() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.probeErr != nil {
		return 0, f.probeErr
	}
	return f.time, nil
}

func (f *fakeWidget) Duration() (float64, error) {
	return f.duration, nil
}

type fakeLoader struct {
	mu      sync.Mutex
	loads   int
	loadErr error
	inst    Instance
	events  Events
}

func (f *fakeLoader) Load(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	return f.loadErr
}

func (f *fakeLoader) New(containerID, externalID string, ev Events) (Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inst == nil {
		return nil, errors.New("no container")
	}
	f.events = ev
	return f.inst, nil
}

func newReadyHandle(t *testing.T, w *fakeWidget) (*Handle, *fakeLoader) {
	t.Helper()
	loader := &fakeLoader{inst: w}
	h := NewHandle(loader)
	if err := h.Initialize(context.Background(), "player-container", "ZVnjOPwW4ZA"); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	loader.events.OnReady()
	if !h.IsReady() {
		t.Fatalf("handle not ready after ready callback")
	}
	return h, loader
}

func TestInitializeAndReady(t *testing.T) {
	w := &fakeWidget{time: 12.5, duration: 960}
	h, _ := newReadyHandle(t, w)

	if got := h.State(); got != HandleReady {
		t.Fatalf("State() = %v, want ready", got)
	}
	if tm, ok := h.CurrentTime(); !ok || tm != 12.5 {
		t.Fatalf("CurrentTime() = %v, %v; want 12.5, true", tm, ok)
	}
	if d, ok := h.Duration(); !ok || d != 960 {
		t.Fatalf("Duration() = %v, %v; want 960, true", d, ok)
	}
}

func TestReadyCallbackWithoutCommandSurface(t *testing.T) {
	// Instance implements lifecycle only; the ready callback must not be
	// trusted when seek/time are missing.
	inst := &fakeInstance{}
	loader := &fakeLoader{inst: inst}
	h := NewHandle(loader)
	if err := h.Initialize(context.Background(), "c", "x"); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	loader.events.OnReady()
	if h.IsReady() {
		t.Fatalf("handle became ready without a controllable instance")
	}
	if got := h.State(); got != HandleLoading {
		t.Fatalf("State() = %v, want loading", got)
	}
}

func TestReadyProbeFailureDefersReadiness(t *testing.T) {
	w := &fakeWidget{probeErr: errors.New("not wired yet")}
	loader := &fakeLoader{inst: w}
	h := NewHandle(loader)
	if err := h.Initialize(context.Background(), "c", "x"); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	loader.events.OnReady()
	if h.IsReady() {
		t.Fatalf("probe failed but handle reported ready")
	}

	// Probe succeeds on a later ready event.
	w.mu.Lock()
	w.probeErr = nil
	w.mu.Unlock()
	loader.events.OnReady()
	if !h.IsReady() {
		t.Fatalf("handle not ready after successful probe")
	}
}

func TestReinitializeRequiresDestroy(t *testing.T) {
	w := &fakeWidget{}
	h, loader := newReadyHandle(t, w)

	if err := h.Initialize(context.Background(), "c", "y"); !errors.Is(err, ErrBusy) {
		t.Fatalf("Initialize() on ready handle = %v, want ErrBusy", err)
	}

	h.Destroy()
	if !w.destroyed {
		t.Fatalf("underlying instance not destroyed")
	}
	if h.IsReady() {
		t.Fatalf("handle still ready after destroy")
	}

	next := &fakeWidget{}
	loader.mu.Lock()
	loader.inst = next
	loader.mu.Unlock()
	if err := h.Initialize(context.Background(), "c", "y"); err != nil {
		t.Fatalf("re-Initialize() after destroy error = %v", err)
	}
	loader.events.OnReady()
	if !h.IsReady() {
		t.Fatalf("handle not ready after re-initialize")
	}
}

func TestSeekOnNotReadyHandle(t *testing.T) {
	h := NewHandle(&fakeLoader{inst: &fakeWidget{}})
	if err := h.SeekTo(30); !errors.Is(err, ErrNotReady) {
		t.Fatalf("SeekTo() = %v, want ErrNotReady", err)
	}
	if _, ok := h.CurrentTime(); ok {
		t.Fatalf("CurrentTime() on uninitialized handle must report false")
	}
}

func TestStaleReadyCallbackAfterDestroy(t *testing.T) {
	w := &fakeWidget{}
	loader := &fakeLoader{inst: w}
	h := NewHandle(loader)
	if err := h.Initialize(context.Background(), "c", "x"); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	staleReady := loader.events.OnReady

	h.Destroy()
	staleReady()
	if h.IsReady() {
		t.Fatalf("stale ready callback revived a destroyed handle")
	}
	if got := h.State(); got != HandleDestroyed {
		t.Fatalf("State() = %v, want destroyed", got)
	}
}

func TestStateChangeEventsCarryGeneration(t *testing.T) {
	w := &fakeWidget{}
	loader := &fakeLoader{inst: w}
	h := NewHandle(loader)

	var got []State
	var gens []string
	h.SetStateChangeFunc(func(gen string, s State) {
		got = append(got, s)
		gens = append(gens, gen)
	})

	if err := h.Initialize(context.Background(), "c", "x"); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	loader.events.OnReady()
	loader.events.OnStateChange(StatePlaying)

	if len(got) != 1 || got[0] != StatePlaying {
		t.Fatalf("state events = %v, want [playing]", got)
	}
	if gens[0] != h.Generation() {
		t.Fatalf("event generation %q does not match handle generation %q", gens[0], h.Generation())
	}

	// Events from the old instance are dropped after destroy.
	stale := loader.events.OnStateChange
	h.Destroy()
	stale(StatePaused)
	if len(got) != 1 {
		t.Fatalf("stale state event was delivered")
	}
}

func TestCacheLoadLoadsOnce(t *testing.T) {
	loader := &fakeLoader{inst: &fakeWidget{}}
	cached := CacheLoad(loader)

	for i := 0; i < 3; i++ {
		if err := cached.Load(context.Background()); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
	}
	if loader.loads != 1 {
		t.Fatalf("inner Load called %d times, want 1", loader.loads)
	}
}

func TestInitializeLoadFailureIsRetryable(t *testing.T) {
	loader := &fakeLoader{inst: &fakeWidget{}, loadErr: errors.New("network down")}
	h := NewHandle(loader)

	if err := h.Initialize(context.Background(), "c", "x"); err == nil {
		t.Fatalf("expected load error")
	}
	if got := h.State(); got != HandleUninitialized {
		t.Fatalf("State() after failed load = %v, want uninitialized", got)
	}

	loader.mu.Lock()
	loader.loadErr = nil
	loader.mu.Unlock()
	if err := h.Initialize(context.Background(), "c", "x"); err != nil {
		t.Fatalf("retry Initialize() error = %v", err)
	}
}
