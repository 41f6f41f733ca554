package playsync

import "sync"

// Bus is a small publish/subscribe channel for seek requests. It replaces
// the ambient window-level event the feature panels would otherwise need:
// subscribers are wired explicitly at session construction.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(SeekRequest)
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(SeekRequest))}
}

// Subscribe registers a handler and returns its unsubscribe function.
func (b *Bus) Subscribe(fn func(SeekRequest)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers the request to every subscriber. Handlers run
// synchronously on the caller; delivery order is not guaranteed.
func (b *Bus) Publish(req SeekRequest) {
	b.mu.Lock()
	handlers := make([]func(SeekRequest), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn(req)
	}
}
