package coordinator

import "github.com/nrfta/feed-go"

// Phase is the state of a coordinator's main pagination lineage.
type Phase int

const (
	// PhaseIdle means no query has been set.
	PhaseIdle Phase = iota

	// PhaseLoading means the first page is being fetched.
	PhaseLoading

	// PhaseReady means the list is usable and no main fetch is outstanding.
	PhaseReady

	// PhaseLoadingMore means a page after the first is being fetched.
	PhaseLoadingMore

	// PhaseError means the first page failed and no data is available.
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseLoadingMore:
		return "loading_more"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the snapshot published to consumers after every change.
// Slices are copies and safe to keep.
type State[T any] struct {
	Kind  feed.Kind
	Phase Phase

	// Items is the deduplicated list in first-seen order.
	Items []T

	// Highlights are the results of the auxiliary query. They are available
	// through Lookup but never part of Items.
	Highlights []T

	HasMore bool

	// TotalCount is the provider's total when it reported one, otherwise the
	// number of listed items.
	TotalCount int

	CurrentPage int

	// IsInitialLoading is true while the first page is outstanding and no
	// response has been accepted since the last reset.
	IsInitialLoading bool

	// IsFetching is true while any main-list request is outstanding.
	IsFetching bool

	// HighlightsLoading is true while the auxiliary request is outstanding.
	HighlightsLoading bool

	// Err is the blocking first-page failure, if any.
	Err error

	// LoadMoreErr is the last failure to load a later page. Items are kept
	// and LoadMore may be called again.
	LoadMoreErr error

	// HighlightsErr is the last failure of the auxiliary query.
	HighlightsErr error

	// Version increases with every published snapshot.
	Version uint64
}

// Settled reports whether no request, main or auxiliary, is outstanding.
func (s State[T]) Settled() bool {
	return !s.IsFetching && !s.HighlightsLoading
}
