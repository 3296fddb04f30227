// Package accumulator merges pages of search results into a stable,
// deduplicated list.
//
// The list keeps first-seen order: a first page replaces everything, later
// pages append only ids that are not listed yet. Items obtained outside the
// paged stream (out-of-band items) are kept for id lookup only and never
// appear in the list.
//
// An Accumulator is not safe for concurrent use. The coordinator owns one per
// resource kind and mutates it from a single goroutine.
//
// Example usage:
//
//	acc := accumulator.New(feed.KindShifts, listing.ID)
//	acc.Apply(q, resp)
//	items := acc.Items()
package accumulator

import (
	"github.com/nrfta/feed-go"
)

// Accumulator is the ordered, deduplicated result set of one resource kind.
type Accumulator[T any] struct {
	kind feed.Kind
	id   feed.IDFunc[T]

	items []T
	index map[string]int // id -> position in items
	extra map[string]T   // out-of-band items, lookup only

	currentPage int
	lastKey     string
	accepted    bool
}

// New creates an empty accumulator positioned on page 1.
func New[T any](kind feed.Kind, id feed.IDFunc[T]) *Accumulator[T] {
	a := &Accumulator[T]{
		kind: kind,
		id:   id,
	}
	a.Reset()
	return a
}

// Apply merges a page response delivered for q. It returns false when the
// response is a re-delivery of the last applied one and nothing changed.
//
// A response for page 1 replaces the list wholesale, including an empty page
// which clears it. Any other page appends the items whose id is not listed
// yet, in page order.
func (a *Accumulator[T]) Apply(q feed.Query, resp *feed.PageResponse[T]) bool {
	key := feed.ResponseFingerprint(q, resp, a.id)
	if a.accepted && key == a.lastKey {
		return false
	}

	page := feed.ResponsePage(q, resp)
	if page <= 1 {
		a.items = make([]T, 0, len(resp.Items))
		a.index = make(map[string]int, len(resp.Items))
		page = 1
	}

	for _, item := range resp.Items {
		id := a.id(item)
		if _, listed := a.index[id]; listed {
			continue
		}
		a.index[id] = len(a.items)
		a.items = append(a.items, item)
	}

	a.currentPage = page
	a.lastKey = key
	a.accepted = true

	return true
}

// AddOutOfBand registers items for id lookup without listing them. Items
// whose id is already known, listed or not, are ignored. It returns the
// number of items added.
func (a *Accumulator[T]) AddOutOfBand(items []T) int {
	added := 0
	for _, item := range items {
		id := a.id(item)
		if _, listed := a.index[id]; listed {
			continue
		}
		if _, known := a.extra[id]; known {
			continue
		}
		a.extra[id] = item
		added++
	}
	return added
}

// Reset clears the list, the lookup index and the duplicate-delivery key,
// and moves the cursor back to page 1.
func (a *Accumulator[T]) Reset() {
	a.items = []T{}
	a.index = map[string]int{}
	a.extra = map[string]T{}
	a.currentPage = 1
	a.lastKey = ""
	a.accepted = false
}

// Items returns a copy of the listed items in first-seen order.
func (a *Accumulator[T]) Items() []T {
	out := make([]T, len(a.items))
	copy(out, a.items)
	return out
}

// Len returns the number of listed items.
func (a *Accumulator[T]) Len() int {
	return len(a.items)
}

// Lookup finds an item by id among listed and out-of-band items.
func (a *Accumulator[T]) Lookup(id string) (T, bool) {
	if pos, ok := a.index[id]; ok {
		return a.items[pos], true
	}
	item, ok := a.extra[id]
	return item, ok
}

// Listed reports whether id is part of the visible list.
func (a *Accumulator[T]) Listed(id string) bool {
	_, ok := a.index[id]
	return ok
}

// CurrentPage returns the page of the last applied response, or 1 after a reset.
func (a *Accumulator[T]) CurrentPage() int {
	return a.currentPage
}

// Accepted reports whether any response was applied since the last reset.
func (a *Accumulator[T]) Accepted() bool {
	return a.accepted
}

// LastKey returns the fingerprint of the last applied response.
func (a *Accumulator[T]) LastKey() string {
	return a.lastKey
}

// Kind returns the resource kind this accumulator belongs to.
func (a *Accumulator[T]) Kind() feed.Kind {
	return a.kind
}
