// Package offset maps page-numbered queries onto an offset/limit window.
//
// A search query names a page and a page size. Storage backends paginate
// by offset and limit. The Paginator converts between the two and produces
// the pagination metadata reported back to the feed engine.
//
// Example usage:
//
//	paginator := offset.New(q.Page, q.PerPage, totalCount)
//	mods := paginator.QueryMods()
//	meta := paginator.Meta(feed.ConventionTotalCount)
package offset

import (
	"github.com/aarondl/sqlboiler/v4/queries/qm"

	"github.com/nrfta/feed-go"
)

// Paginator is the offset window of one requested page.
type Paginator struct {
	Page       int
	Limit      int
	Offset     int
	TotalCount int
}

// New creates a paginator for page (1-based) of size perPage over
// totalCount records.
//
// Inputs are clamped:
//   - page below 1 becomes 1
//   - perPage below 1 becomes feed.DefaultPerPage
//   - negative totalCount becomes 0
func New(page, perPage int, totalCount int64) Paginator {
	if page < 1 {
		page = 1
	}

	// Ensure limit is never 0 to avoid divide by zero
	if perPage < 1 {
		perPage = feed.DefaultPerPage
	}

	count := int(totalCount)
	if count < 0 {
		count = 0
	}

	return Paginator{
		Page:       page,
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
		TotalCount: count,
	}
}

// QueryMods returns SQLBoiler query modifiers selecting the window.
//
// Example usage:
//
//	rows, err := models.Listings(append(filters, paginator.QueryMods()...)...).All(ctx, db)
func (p Paginator) QueryMods() []qm.QueryMod {
	return []qm.QueryMod{
		qm.Offset(p.Offset),
		qm.Limit(p.Limit),
	}
}

// TotalPages returns the number of pages needed for TotalCount records.
func (p Paginator) TotalPages() int {
	return (p.TotalCount + p.Limit - 1) / p.Limit
}

// HasNextPage reports whether records exist past this window.
func (p Paginator) HasNextPage() bool {
	return p.Offset+p.Limit < p.TotalCount
}

// Meta returns the pagination metadata of the window in the requested
// convention. ConventionNone yields only the current page, which the oracle
// reads as "no more data".
func (p Paginator) Meta(convention feed.Convention) *feed.PaginationMeta {
	meta := &feed.PaginationMeta{CurrentPage: feed.IntPtr(p.Page)}

	switch convention {
	case feed.ConventionTotalCount:
		meta.TotalCount = feed.IntPtr(p.TotalCount)
	case feed.ConventionTotalPages:
		meta.TotalPages = feed.IntPtr(p.TotalPages())
	case feed.ConventionNextPage:
		meta.CurrentPage = nil
		if p.HasNextPage() {
			meta.NextPage = feed.IntPtr(p.Page + 1)
		}
	}

	return meta
}
