package server

import (
	"context"
	"errors"
	"sync"

	"github.com/treefix50/learntube/internal/player"
)

var errWidgetDestroyed = errors.New("server: widget destroyed")

// remoteWidget stands in for the embedded player running on the client.
// The client reports positions into it and polls it for queued seek
// commands; the player handle drives it through the same capability
// interfaces it would use against a local widget.
type remoteWidget struct {
	mu          sync.Mutex
	destroyed   bool
	hasPosition bool
	position    float64
	duration    float64
	pendingSeek *float64
}

func (w *remoteWidget) Destroy() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.destroyed = true
	w.pendingSeek = nil
	return nil
}

// SeekTo queues the command for the client to pick up. A newer seek
// replaces an unclaimed older one.
func (w *remoteWidget) SeekTo(seconds float64, allowSeekAhead bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return errWidgetDestroyed
	}
	target := seconds
	w.pendingSeek = &target
	return nil
}

// CurrentTime errors until the client has reported at least one position,
// which keeps the handle from going ready before the player is actually
// playing out there.
func (w *remoteWidget) CurrentTime() (float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return 0, errWidgetDestroyed
	}
	if !w.hasPosition {
		return 0, errors.New("server: no position reported yet")
	}
	return w.position, nil
}

func (w *remoteWidget) Duration() (float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return 0, errWidgetDestroyed
	}
	if w.duration <= 0 {
		return 0, errors.New("server: duration not reported yet")
	}
	return w.duration, nil
}

func (w *remoteWidget) report(position, duration float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return
	}
	w.hasPosition = true
	w.position = position
	if duration > 0 {
		w.duration = duration
	}
}

// takePendingSeek claims the queued seek command, if any. Claiming clears
// it: each command is delivered to the client at most once.
func (w *remoteWidget) takePendingSeek() (float64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pendingSeek == nil {
		return 0, false
	}
	target := *w.pendingSeek
	w.pendingSeek = nil
	return target, true
}

// remoteLoader constructs remote widgets and keeps hold of the event
// callbacks so the session can relay client-reported lifecycle events into
// the handle.
type remoteLoader struct {
	mu     sync.Mutex
	widget *remoteWidget
	events player.Events
}

func (l *remoteLoader) Load(ctx context.Context) error { return nil }

func (l *remoteLoader) New(containerID, externalID string, ev player.Events) (player.Instance, error) {
	w := &remoteWidget{}
	l.mu.Lock()
	l.widget = w
	l.events = ev
	l.mu.Unlock()
	return w, nil
}

func (l *remoteLoader) current() (*remoteWidget, player.Events) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.widget, l.events
}
