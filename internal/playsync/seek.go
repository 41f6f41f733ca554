package playsync

import (
	"log"
	"sync"
	"time"
)

// DefaultRetryDelay is how long the coordinator waits before its single
// redelivery attempt. The external widget may not expose seek immediately
// after construction even when nominally ready.
const DefaultRetryDelay = 100 * time.Millisecond

// Seeker is the slice of the player handle the coordinator needs.
type Seeker interface {
	IsReady() bool
	SeekTo(seconds float64) error
}

type seekIntent struct {
	target      float64
	requestedAt time.Time
	seq         uint64
}

// Coordinator serializes seek requests against player readiness. Newer
// requests supersede older unresolved ones (last-write-wins); delivery is
// attempted immediately, retried once after RetryDelay, then dropped with a
// logged warning.
type Coordinator struct {
	seeker Seeker
	engine *Engine

	// RetryDelay overrides DefaultRetryDelay when set before first use.
	RetryDelay time.Duration

	mu      sync.Mutex
	pending *seekIntent
	seq     uint64
}

// NewCoordinator wires a coordinator to its player handle and engine.
func NewCoordinator(seeker Seeker, engine *Engine) *Coordinator {
	return &Coordinator{seeker: seeker, engine: engine, RetryDelay: DefaultRetryDelay}
}

// RequestSeek records a seek intent, optimistically moves display time to
// the target for responsive UI, and attempts delivery.
func (c *Coordinator) RequestSeek(target float64) {
	if target < 0 {
		target = 0
	}

	c.mu.Lock()
	c.seq++
	intent := &seekIntent{target: target, requestedAt: time.Now(), seq: c.seq}
	c.pending = intent
	c.mu.Unlock()

	c.engine.ApplySeek(target)
	c.deliver(intent.seq, true)
}

// Pending reports whether an intent is awaiting delivery.
func (c *Coordinator) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Cancel drops any unresolved intent, e.g. when the session is torn down.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	dropped := c.pending != nil
	c.pending = nil
	c.mu.Unlock()
	if dropped {
		c.engine.SeekSettled()
	}
}

func (c *Coordinator) deliver(seq uint64, allowRetry bool) {
	c.mu.Lock()
	intent := c.pending
	if intent == nil || intent.seq != seq {
		// Superseded or already resolved.
		c.mu.Unlock()
		return
	}
	if !c.seeker.IsReady() {
		c.mu.Unlock()
		if allowRetry {
			time.AfterFunc(c.RetryDelay, func() { c.deliver(seq, false) })
			return
		}
		c.giveUp(seq)
		return
	}
	target := intent.target
	c.pending = nil
	c.mu.Unlock()

	if err := c.seeker.SeekTo(target); err != nil {
		log.Printf("playsync: seek to %.2fs failed: %v", target, err)
	}
	c.engine.SeekSettled()
}

func (c *Coordinator) giveUp(seq uint64) {
	c.mu.Lock()
	intent := c.pending
	if intent == nil || intent.seq != seq {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.mu.Unlock()

	log.Printf("playsync: dropping seek to %.2fs, player never became ready", intent.target)
	c.engine.SeekSettled()
}
