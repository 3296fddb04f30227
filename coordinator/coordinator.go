// Package coordinator drives paginated feed synchronization for one resource
// kind at a time.
//
// A Coordinator is a state machine fed by an event queue and consumed by a
// single goroutine. Public methods only enqueue events; provider calls run in
// their own goroutines and report back through the same queue. Every handler
// runs to completion before the next event is read, so the accumulated list
// is never mutated concurrently.
//
// Responses are validated on arrival: a response is applied only if its
// request is the one currently in flight, of the current generation, and its
// query still matches the baseline kept by the ResetController. Anything else
// is stale and dropped silently.
//
// Example usage:
//
//	c := coordinator.New(feed.KindShifts, provider, listing.ID,
//	    coordinator.WithLogger(logger),
//	)
//	c.Start(ctx)
//	c.SetQuery(feed.BuildQuery(sel, feed.PageArgs{Kind: feed.KindShifts}))
//	state, err := c.Settle(ctx)
package coordinator

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/friendsofgo/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nrfta/feed-go"
	"github.com/nrfta/feed-go/accumulator"
)

// ErrStopped is returned by calls that need the event loop after it exited.
var ErrStopped = errors.New("coordinator stopped")

// request is one outstanding provider call.
type request struct {
	id         string
	query      feed.Query
	generation uint64
	cancel     context.CancelFunc
}

// auxiliary tracks the secondary query (e.g. urgent highlights). It has its
// own generation and never touches the main cursor.
type auxiliary[T any] struct {
	query      *feed.Query
	items      []T
	err        error
	inflight   *request
	generation uint64
}

// Coordinator owns the accumulated list of one resource kind.
type Coordinator[T any] struct {
	kind     feed.Kind
	provider feed.Provider[T]
	logger   zerolog.Logger

	events    chan event[T]
	done      chan struct{}
	startOnce sync.Once
	wg        sync.WaitGroup
	ctx       context.Context

	// Owned by the loop goroutine.
	acc         *accumulator.Accumulator[T]
	resets      *ResetController
	phase       Phase
	meta        *feed.PaginationMeta
	inflight    *request
	generation  uint64
	err         error
	loadMoreErr error
	exhausted   bool // a later page repeated the last applied one
	aux         auxiliary[T]
	version     uint64

	current atomic.Pointer[State[T]]

	subsMu  sync.Mutex
	subs    map[chan State[T]]struct{}
	stopped bool
}

// New creates a coordinator for kind. Call Start before using it.
func New[T any](
	kind feed.Kind,
	provider feed.Provider[T],
	id feed.IDFunc[T],
	opts ...Option,
) *Coordinator[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	acc := accumulator.New(kind, id)

	c := &Coordinator[T]{
		kind:     kind,
		provider: provider,
		logger:   cfg.logger.With().Str("kind", string(kind)).Logger(),
		events:   make(chan event[T], cfg.eventBuffer),
		done:     make(chan struct{}),
		acc:      acc,
		resets:   NewResetController(acc),
		phase:    PhaseIdle,
		subs:     make(map[chan State[T]]struct{}),
	}
	c.current.Store(&State[T]{
		Kind:        kind,
		Phase:       PhaseIdle,
		Items:       []T{},
		CurrentPage: 1,
	})

	return c
}

// Start runs the event loop until ctx is cancelled. Cancelling ctx also
// cancels every outstanding provider call. Subsequent calls are no-ops.
func (c *Coordinator[T]) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		c.ctx = ctx
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			defer close(c.done)
			c.loop(ctx)
		}()
	})
}

// Wait blocks until the event loop exits.
// Call after cancelling the context passed to Start.
func (c *Coordinator[T]) Wait() {
	c.wg.Wait()
}

func (c *Coordinator[T]) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.stop()
			return
		case ev := <-c.events:
			ev.handle(c)
		}
	}
}

func (c *Coordinator[T]) stop() {
	c.cancelInflight()
	c.cancelAuxiliary()
	c.logger.Debug().Msg("coordinator stopped")

	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	c.stopped = true
	for ch := range c.subs {
		close(ch)
	}
	c.subs = nil
}

// post enqueues ev. It reports false once the loop has exited.
func (c *Coordinator[T]) post(ev event[T]) bool {
	select {
	case c.events <- ev:
		return true
	case <-c.done:
		return false
	}
}

// Kind returns the resource kind this coordinator serves.
func (c *Coordinator[T]) Kind() feed.Kind {
	return c.kind
}

// SetQuery submits the current search descriptor. Changing anything but the
// page resets the list and fetches page 1. An equivalent query is ignored.
func (c *Coordinator[T]) SetQuery(q feed.Query) {
	q.Kind = c.kind
	c.post(paramsChanged[T]{query: q})
}

// LoadMore requests the next page. It does nothing unless the feed is ready,
// more data is available and no request is outstanding.
func (c *Coordinator[T]) LoadMore() {
	c.post(loadMoreRequested[T]{})
}

// Reset drops the list and any outstanding result and fetches page 1 of the
// current query again. Without a query the feed goes back to idle.
func (c *Coordinator[T]) Reset() {
	c.post(resetRequested[T]{})
}

// AddOutOfBandItems makes items available to Lookup without listing them.
func (c *Coordinator[T]) AddOutOfBandItems(items []T) {
	cp := make([]T, len(items))
	copy(cp, items)
	c.post(outOfBand[T]{items: cp})
}

// SetAuxiliaryQuery runs q as the auxiliary lineage. Its results become the
// Highlights of the state and are registered for lookup. It never affects the
// main list, its cursor or its progress.
func (c *Coordinator[T]) SetAuxiliaryQuery(q feed.Query) {
	q.Kind = c.kind
	c.post(auxiliaryChanged[T]{query: &q})
}

// ClearAuxiliaryQuery stops the auxiliary lineage and clears the highlights.
func (c *Coordinator[T]) ClearAuxiliaryQuery() {
	c.post(auxiliaryChanged[T]{})
}

// Lookup finds an item by id among listed and out-of-band items.
func (c *Coordinator[T]) Lookup(ctx context.Context, id string) (T, bool, error) {
	var zero T

	reply := make(chan lookupResult[T], 1)
	if !c.post(lookupRequested[T]{id: id, reply: reply}) {
		return zero, false, ErrStopped
	}

	select {
	case res := <-reply:
		return res.item, res.found, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case <-c.done:
		return zero, false, ErrStopped
	}
}

// State returns the last published snapshot.
func (c *Coordinator[T]) State() State[T] {
	return *c.current.Load()
}

// Subscribe returns a channel receiving every published snapshot. Slow
// readers only see the latest one. The channel is closed when the
// coordinator stops or the returned cancel func is called.
func (c *Coordinator[T]) Subscribe() (<-chan State[T], func()) {
	ch := make(chan State[T], 1)

	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	if c.stopped {
		close(ch)
		return ch, func() {}
	}
	c.subs[ch] = struct{}{}

	return ch, func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		if _, ok := c.subs[ch]; ok {
			delete(c.subs, ch)
			close(ch)
		}
	}
}

// Settle waits until every event submitted before the call is processed and
// no request, main or auxiliary, is outstanding. It returns the settled state.
func (c *Coordinator[T]) Settle(ctx context.Context) (State[T], error) {
	updates, cancel := c.Subscribe()
	defer cancel()

	reply := make(chan struct{})
	if !c.post(barrier[T]{reply: reply}) {
		return c.State(), ErrStopped
	}

	select {
	case <-reply:
	case <-ctx.Done():
		return c.State(), ctx.Err()
	case <-c.done:
		return c.State(), ErrStopped
	}

	for {
		s := c.State()
		if s.Settled() {
			return s, nil
		}

		select {
		case _, ok := <-updates:
			if !ok {
				return c.State(), ErrStopped
			}
		case <-ctx.Done():
			return c.State(), ctx.Err()
		}
	}
}

// restart begins a new generation: outstanding results become stale,
// progress and errors are cleared and page 1 of the baseline is requested.
// The accumulator must already be reset.
func (c *Coordinator[T]) restart(reason string) {
	c.generation++
	c.cancelInflight()
	c.meta = nil
	c.exhausted = false
	c.err = nil
	c.loadMoreErr = nil
	c.acc.AddOutOfBand(c.aux.items)

	baseline, ok := c.resets.Baseline()
	if !ok {
		c.phase = PhaseIdle
		c.logger.Debug().Str("reason", reason).Msg("feed idle")
		c.publish()
		return
	}

	c.phase = PhaseLoading
	c.logger.Debug().
		Str("reason", reason).
		Uint64("generation", c.generation).
		Msg("feed restarted")
	c.fetch(baseline.WithPage(1))
	c.publish()
}

// fetch issues q to the provider on its own goroutine.
func (c *Coordinator[T]) fetch(q feed.Query) {
	ctx, cancel := context.WithCancel(c.ctx)
	req := &request{
		id:         uuid.NewString(),
		query:      q,
		generation: c.generation,
		cancel:     cancel,
	}
	c.inflight = req

	c.logger.Debug().
		Str("request_id", req.id).
		Object("query", q).
		Msg("requesting page")

	go func() {
		resp, err := c.provider.Search(ctx, q)
		c.post(pageResolved[T]{req: req, resp: resp, err: err})
	}()
}

func (c *Coordinator[T]) fetchAuxiliary(q feed.Query) {
	ctx, cancel := context.WithCancel(c.ctx)
	req := &request{
		id:         uuid.NewString(),
		query:      q,
		generation: c.aux.generation,
		cancel:     cancel,
	}
	c.aux.inflight = req

	c.logger.Debug().
		Str("request_id", req.id).
		Object("query", q).
		Msg("requesting highlights")

	go func() {
		resp, err := c.provider.Search(ctx, q)
		c.post(auxiliaryResolved[T]{req: req, resp: resp, err: err})
	}()
}

func (c *Coordinator[T]) cancelInflight() {
	if c.inflight != nil {
		c.inflight.cancel()
		c.inflight = nil
	}
}

func (c *Coordinator[T]) cancelAuxiliary() {
	if c.aux.inflight != nil {
		c.aux.inflight.cancel()
		c.aux.inflight = nil
	}
}

// stale reports whether a resolved main request may no longer be applied.
func (c *Coordinator[T]) stale(req *request) bool {
	return req != c.inflight ||
		req.generation != c.generation ||
		!c.resets.IsCurrent(req.query)
}

// progress consults the oracle. A lineage whose later page came back as a
// repeat of the last applied one cannot advance and reports no more data.
func (c *Coordinator[T]) progress() feed.Progress {
	progress := feed.ComputeProgress(c.meta, c.acc.Len())
	if c.exhausted {
		progress.HasMore = false
	}
	return progress
}

// publish stores a fresh snapshot and notifies subscribers.
func (c *Coordinator[T]) publish() {
	progress := c.progress()

	total := c.acc.Len()
	if progress.TotalCount != nil {
		total = *progress.TotalCount
	}

	highlights := make([]T, len(c.aux.items))
	copy(highlights, c.aux.items)

	c.version++
	s := State[T]{
		Kind:              c.kind,
		Phase:             c.phase,
		Items:             c.acc.Items(),
		Highlights:        highlights,
		HasMore:           progress.HasMore,
		TotalCount:        total,
		CurrentPage:       c.acc.CurrentPage(),
		IsInitialLoading:  c.inflight != nil && c.acc.CurrentPage() <= 1 && !c.acc.Accepted(),
		IsFetching:        c.inflight != nil,
		HighlightsLoading: c.aux.inflight != nil,
		Err:               c.err,
		LoadMoreErr:       c.loadMoreErr,
		HighlightsErr:     c.aux.err,
		Version:           c.version,
	}
	c.current.Store(&s)

	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}
