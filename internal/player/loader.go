package player

import (
	"context"
	"sync"
)

// Loader loads the external player library and constructs widget instances
// bound to a page container. Implementations exist per external library
// version; the rest of the package never introspects instance shape beyond
// the Controllable assertion.
type Loader interface {
	// Load fetches the external library. Called before any New.
	Load(ctx context.Context) error
	// New constructs an instance in the given container for the given
	// external video id. Events fire asynchronously.
	New(containerID, externalID string, ev Events) (Instance, error)
}

// onceLoader caches the result of the first Load so the external library is
// fetched at most once per process, matching the library's own global
// bootstrap.
type onceLoader struct {
	inner Loader
	once  sync.Once
	err   error
}

// CacheLoad wraps a Loader so Load runs exactly once; later calls return
// the first result.
func CacheLoad(inner Loader) Loader {
	return &onceLoader{inner: inner}
}

func (l *onceLoader) Load(ctx context.Context) error {
	l.once.Do(func() {
		l.err = l.inner.Load(ctx)
	})
	return l.err
}

func (l *onceLoader) New(containerID, externalID string, ev Events) (Instance, error) {
	return l.inner.New(containerID, externalID, ev)
}
