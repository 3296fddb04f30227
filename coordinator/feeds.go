package coordinator

import (
	"context"
	"sort"
	"sync"

	"github.com/nrfta/feed-go"
)

// Feeds keeps one coordinator per resource kind. A coordinator is created and
// started on first Mount and discarded, with its accumulated list, on
// Unmount.
type Feeds[T any] struct {
	ctx      context.Context
	provider feed.Provider[T]
	id       feed.IDFunc[T]
	opts     []Option

	mu      sync.Mutex
	mounted map[feed.Kind]*mount[T]
}

type mount[T any] struct {
	coordinator *Coordinator[T]
	cancel      context.CancelFunc
}

// NewFeeds creates an empty registry. Coordinators run under ctx and share
// the provider, id function and options.
func NewFeeds[T any](ctx context.Context, provider feed.Provider[T], id feed.IDFunc[T], opts ...Option) *Feeds[T] {
	return &Feeds[T]{
		ctx:      ctx,
		provider: provider,
		id:       id,
		opts:     opts,
		mounted:  make(map[feed.Kind]*mount[T]),
	}
}

// Mount returns the coordinator for kind, starting one if needed.
func (f *Feeds[T]) Mount(kind feed.Kind) *Coordinator[T] {
	f.mu.Lock()
	defer f.mu.Unlock()

	if m, ok := f.mounted[kind]; ok {
		return m.coordinator
	}

	ctx, cancel := context.WithCancel(f.ctx)
	c := New(kind, f.provider, f.id, f.opts...)
	c.Start(ctx)

	f.mounted[kind] = &mount[T]{coordinator: c, cancel: cancel}
	return c
}

// Unmount stops the coordinator for kind and forgets its state. It waits
// for the event loop to exit.
func (f *Feeds[T]) Unmount(kind feed.Kind) {
	f.mu.Lock()
	m, ok := f.mounted[kind]
	delete(f.mounted, kind)
	f.mu.Unlock()

	if !ok {
		return
	}
	m.cancel()
	m.coordinator.Wait()
}

// Kinds returns the mounted kinds in sorted order.
func (f *Feeds[T]) Kinds() []feed.Kind {
	f.mu.Lock()
	defer f.mu.Unlock()

	kinds := make([]feed.Kind, 0, len(f.mounted))
	for kind := range f.mounted {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Close unmounts every kind.
func (f *Feeds[T]) Close() {
	for _, kind := range f.Kinds() {
		f.Unmount(kind)
	}
}
