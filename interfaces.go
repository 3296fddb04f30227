package feed

import "context"

// Kind identifies an independent pagination lineage. Each kind owns its own
// accumulated result set and page cursor.
type Kind string

const (
	// KindShifts is the one-off shift feed.
	KindShifts Kind = "shifts"

	// KindJobs is the permanent vacancy feed.
	KindJobs Kind = "jobs"
)

// Provider is the remote paginated search endpoint consumed by the feed engine.
// Implementations include the SQL-backed sqlboiler provider and the HTTP
// remote client.
//
// Type parameter T is the item type being searched (e.g., listing.Listing).
//
// Providers own their transport concerns (retries, timeouts, caching). The
// engine only ignores results whose governing query is no longer current.
type Provider[T any] interface {
	// Search resolves a single page for the given query.
	Search(ctx context.Context, q Query) (*PageResponse[T], error)
}

// ProviderFunc adapts an ordinary function to the Provider interface.
type ProviderFunc[T any] func(ctx context.Context, q Query) (*PageResponse[T], error)

// Search calls f(ctx, q).
func (f ProviderFunc[T]) Search(ctx context.Context, q Query) (*PageResponse[T], error) {
	return f(ctx, q)
}

// PageResponse is one page of results delivered by a Provider.
//
// Pagination is already normalized into the canonical PaginationMeta; wire
// formats carrying "pagination" or "meta" objects are folded together by
// DecodePageResponse at the provider boundary.
type PageResponse[T any] struct {
	// Items contains the records of this page, in provider order.
	Items []T

	// Pagination is the normalized pagination metadata, or nil when the
	// provider reported none.
	Pagination *PaginationMeta
}

// IDFunc extracts the stable identity of an item. Two items with the same id
// are the same record even if every other field differs.
//
// Example:
//
//	id := func(l listing.Listing) string { return strconv.FormatInt(l.ID, 10) }
type IDFunc[T any] func(item T) string
