package coordinator

import (
	"github.com/nrfta/feed-go"
)

// event is a unit of work for the loop goroutine. Handlers never block.
type event[T any] interface {
	handle(c *Coordinator[T])
}

type paramsChanged[T any] struct {
	query feed.Query
}

func (e paramsChanged[T]) handle(c *Coordinator[T]) {
	if !c.resets.Observe(e.query) {
		c.logger.Debug().Object("query", e.query).Msg("query unchanged")
		return
	}
	c.restart("query_changed")
}

type resetRequested[T any] struct{}

func (resetRequested[T]) handle(c *Coordinator[T]) {
	c.acc.Reset()
	c.restart("reset")
}

type loadMoreRequested[T any] struct{}

func (loadMoreRequested[T]) handle(c *Coordinator[T]) {
	progress := c.progress()
	if c.phase != PhaseReady || !progress.HasMore || c.inflight != nil {
		c.logger.Debug().
			Stringer("phase", c.phase).
			Bool("has_more", progress.HasMore).
			Bool("fetching", c.inflight != nil).
			Msg("load more ignored")
		return
	}

	baseline, _ := c.resets.Baseline()
	c.phase = PhaseLoadingMore
	c.loadMoreErr = nil
	c.fetch(baseline.WithPage(c.acc.CurrentPage() + 1))
	c.publish()
}

type pageResolved[T any] struct {
	req  *request
	resp *feed.PageResponse[T]
	err  error
}

func (e pageResolved[T]) handle(c *Coordinator[T]) {
	req := e.req
	if c.stale(req) {
		c.logger.Debug().
			Str("request_id", req.id).
			Int("page", req.query.Page).
			Msg("discarding stale response")
		return
	}
	c.inflight = nil
	req.cancel()

	err := e.err
	if err == nil && e.resp == nil {
		err = feed.ErrNilResponse
	}

	if err != nil {
		fetchErr := &feed.FetchError{
			Kind:      c.kind,
			Page:      req.query.Page,
			RequestID: req.id,
			Err:       err,
		}

		if fetchErr.Initial() {
			c.phase = PhaseError
			c.err = fetchErr
		} else {
			c.phase = PhaseReady
			c.loadMoreErr = fetchErr
		}

		c.logger.Warn().
			Err(err).
			Str("request_id", req.id).
			Int("page", req.query.Page).
			Bool("initial", fetchErr.Initial()).
			Msg("page request failed")
		c.publish()
		return
	}

	if c.acc.Apply(req.query, e.resp) {
		c.meta = e.resp.Pagination
	} else {
		c.exhausted = req.query.Page > 1
		c.logger.Debug().
			Str("request_id", req.id).
			Int("page", req.query.Page).
			Bool("exhausted", c.exhausted).
			Msg("response already applied")
	}

	c.phase = PhaseReady
	c.err = nil
	c.loadMoreErr = nil

	c.logger.Debug().
		Str("request_id", req.id).
		Int("page", c.acc.CurrentPage()).
		Int("received", len(e.resp.Items)).
		Int("listed", c.acc.Len()).
		Msg("page applied")
	c.publish()
}

type auxiliaryChanged[T any] struct {
	query *feed.Query
}

func (e auxiliaryChanged[T]) handle(c *Coordinator[T]) {
	prev := c.aux.query
	switch {
	case e.query == nil && prev == nil:
		return
	case e.query != nil && prev != nil && e.query.Equivalent(*prev) && e.query.Page == prev.Page:
		return
	}

	c.aux.generation++
	c.cancelAuxiliary()
	c.aux.query = e.query
	c.aux.err = nil

	if e.query == nil {
		c.aux.items = nil
		c.publish()
		return
	}

	q := *e.query
	if q.Page < 1 {
		q.Page = 1
	}
	c.fetchAuxiliary(q)
	c.publish()
}

type auxiliaryResolved[T any] struct {
	req  *request
	resp *feed.PageResponse[T]
	err  error
}

func (e auxiliaryResolved[T]) handle(c *Coordinator[T]) {
	if e.req != c.aux.inflight || e.req.generation != c.aux.generation {
		c.logger.Debug().Str("request_id", e.req.id).Msg("discarding stale highlights")
		return
	}
	c.aux.inflight = nil
	e.req.cancel()

	err := e.err
	if err == nil && e.resp == nil {
		err = feed.ErrNilResponse
	}

	if err != nil {
		c.aux.err = &feed.FetchError{
			Kind:      c.kind,
			Page:      e.req.query.Page,
			RequestID: e.req.id,
			Err:       err,
		}
		c.logger.Warn().Err(err).Str("request_id", e.req.id).Msg("highlights request failed")
		c.publish()
		return
	}

	c.aux.items = make([]T, len(e.resp.Items))
	copy(c.aux.items, e.resp.Items)
	added := c.acc.AddOutOfBand(e.resp.Items)

	c.logger.Debug().
		Str("request_id", e.req.id).
		Int("received", len(e.resp.Items)).
		Int("registered", added).
		Msg("highlights applied")
	c.publish()
}

type outOfBand[T any] struct {
	items []T
}

func (e outOfBand[T]) handle(c *Coordinator[T]) {
	added := c.acc.AddOutOfBand(e.items)
	c.logger.Debug().Int("registered", added).Msg("out-of-band items added")
}

type lookupResult[T any] struct {
	item  T
	found bool
}

type lookupRequested[T any] struct {
	id    string
	reply chan lookupResult[T]
}

func (e lookupRequested[T]) handle(c *Coordinator[T]) {
	item, found := c.acc.Lookup(e.id)
	e.reply <- lookupResult[T]{item: item, found: found}
}

// barrier is answered once every event queued before it was handled.
type barrier[T any] struct {
	reply chan struct{}
}

func (e barrier[T]) handle(*Coordinator[T]) {
	close(e.reply)
}
