package playsync

import (
	"sync"
	"testing"
	"time"
)

type fakeSeeker struct {
	mu    sync.Mutex
	ready bool
	seeks []float64
	done  chan struct{}
}

func newFakeSeeker(ready bool) *fakeSeeker {
	return &fakeSeeker{ready: ready, done: make(chan struct{}, 8)}
}

func (f *fakeSeeker) IsReady() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready
}

func (f *fakeSeeker) SeekTo(seconds float64) error {
	f.mu.Lock()
	f.seeks = append(f.seeks, seconds)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func (f *fakeSeeker) setReady(ready bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ready = ready
}

func (f *fakeSeeker) delivered() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]float64, len(f.seeks))
	copy(out, f.seeks)
	return out
}

func waitDelivery(t *testing.T, f *fakeSeeker) {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(time.Second):
		t.Fatalf("no seek delivered within 1s")
	}
}

func TestImmediateDeliveryWhenReady(t *testing.T) {
	seeker := newFakeSeeker(true)
	engine := NewEngine("g", 960)
	c := NewCoordinator(seeker, engine)

	c.RequestSeek(120)
	waitDelivery(t, seeker)

	if got := seeker.delivered(); len(got) != 1 || got[0] != 120 {
		t.Fatalf("delivered = %v, want [120]", got)
	}
	if engine.State().DisplayTime != 120 {
		t.Fatalf("display time not optimistically updated")
	}
	if c.Pending() {
		t.Fatalf("intent still pending after delivery")
	}
}

func TestLastWriteWins(t *testing.T) {
	seeker := newFakeSeeker(false)
	engine := NewEngine("g", 960)
	c := NewCoordinator(seeker, engine)
	c.RetryDelay = 20 * time.Millisecond

	c.RequestSeek(90)
	c.RequestSeek(30)
	seeker.setReady(true)
	waitDelivery(t, seeker)

	// Give the superseded retry a chance to misfire.
	time.Sleep(3 * c.RetryDelay)
	if got := seeker.delivered(); len(got) != 1 || got[0] != 30 {
		t.Fatalf("delivered = %v, want exactly [30]", got)
	}
	if engine.State().DisplayTime != 30 {
		t.Fatalf("display time = %v, want 30", engine.State().DisplayTime)
	}
}

func TestRetryOnceThenGiveUp(t *testing.T) {
	seeker := newFakeSeeker(false)
	engine := NewEngine("g", 960)
	c := NewCoordinator(seeker, engine)
	c.RetryDelay = 10 * time.Millisecond

	c.RequestSeek(45)
	time.Sleep(5 * c.RetryDelay)

	if got := seeker.delivered(); len(got) != 0 {
		t.Fatalf("delivered = %v, want none", got)
	}
	if c.Pending() {
		t.Fatalf("intent still pending after give-up")
	}
	// The optimistic display time survives; the seek just never reached
	// the player.
	if engine.State().DisplayTime != 45 {
		t.Fatalf("display time = %v, want 45", engine.State().DisplayTime)
	}
}

func TestRetrySucceedsWhenHandleBecomesReady(t *testing.T) {
	seeker := newFakeSeeker(false)
	engine := NewEngine("g", 960)
	c := NewCoordinator(seeker, engine)
	c.RetryDelay = 20 * time.Millisecond

	c.RequestSeek(60)
	seeker.setReady(true)
	waitDelivery(t, seeker)

	if got := seeker.delivered(); len(got) != 1 || got[0] != 60 {
		t.Fatalf("delivered = %v, want [60]", got)
	}
}

func TestCancelDropsPendingIntent(t *testing.T) {
	seeker := newFakeSeeker(false)
	engine := NewEngine("g", 960)
	c := NewCoordinator(seeker, engine)
	c.RetryDelay = 10 * time.Millisecond

	c.RequestSeek(200)
	c.Cancel()
	seeker.setReady(true)
	time.Sleep(5 * c.RetryDelay)

	if got := seeker.delivered(); len(got) != 0 {
		t.Fatalf("delivered = %v after cancel, want none", got)
	}
}

func TestBusFanOutAndUnsubscribe(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var a, b []float64
	unsubA := bus.Subscribe(func(req SeekRequest) {
		mu.Lock()
		a = append(a, req.Time)
		mu.Unlock()
	})
	bus.Subscribe(func(req SeekRequest) {
		mu.Lock()
		b = append(b, req.Time)
		mu.Unlock()
	})

	bus.Publish(SeekRequest{Time: 42})
	unsubA()
	bus.Publish(SeekRequest{Time: 99})

	mu.Lock()
	defer mu.Unlock()
	if len(a) != 1 || a[0] != 42 {
		t.Fatalf("subscriber a = %v, want [42]", a)
	}
	if len(b) != 2 || b[1] != 99 {
		t.Fatalf("subscriber b = %v, want [42 99]", b)
	}
}
