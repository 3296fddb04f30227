package feed

// Convention identifies which pagination metadata shape a provider used.
type Convention int

const (
	// ConventionNone means no usable pagination metadata was reported.
	ConventionNone Convention = iota

	// ConventionTotalCount is {current_page, total_count}.
	ConventionTotalCount

	// ConventionNextPage is {next_page} with a non-null value.
	ConventionNextPage

	// ConventionTotalPages is {current_page, total_pages}.
	ConventionTotalPages
)

func (c Convention) String() string {
	switch c {
	case ConventionTotalCount:
		return "total_count"
	case ConventionNextPage:
		return "next_page"
	case ConventionTotalPages:
		return "total_pages"
	default:
		return "none"
	}
}

// PaginationMeta is the canonical pagination metadata of a page response.
// Every field is optional; nil means the provider did not report it.
type PaginationMeta struct {
	CurrentPage *int `json:"current_page,omitempty"`
	TotalCount  *int `json:"total_count,omitempty"`
	NextPage    *int `json:"next_page,omitempty"`
	TotalPages  *int `json:"total_pages,omitempty"`
}

// Convention returns the first metadata shape present, in priority order:
// total count, then a non-null next page, then current page with total pages.
func (m *PaginationMeta) Convention() Convention {
	switch {
	case m == nil:
		return ConventionNone
	case m.TotalCount != nil:
		return ConventionTotalCount
	case m.NextPage != nil:
		return ConventionNextPage
	case m.CurrentPage != nil && m.TotalPages != nil:
		return ConventionTotalPages
	default:
		return ConventionNone
	}
}

// Progress is the answer of the pagination oracle.
type Progress struct {
	// HasMore reports whether another page can be requested.
	HasMore bool

	// TotalCount is the provider's total when it reported one.
	TotalCount *int
}

// ComputeProgress reads pagination metadata and the number of items
// accumulated so far and decides whether more data is available.
//
// The rules, first match wins:
//  1. total_count present: more while accumulated < total_count
//  2. next_page present and non-null: more
//  3. current_page and total_pages present: more while current_page < total_pages
//  4. otherwise: no more
//
// Without metadata the answer is conservatively "no more".
func ComputeProgress(meta *PaginationMeta, accumulated int) Progress {
	switch meta.Convention() {
	case ConventionTotalCount:
		total := *meta.TotalCount
		return Progress{
			HasMore:    accumulated < total,
			TotalCount: &total,
		}
	case ConventionNextPage:
		return Progress{HasMore: true}
	case ConventionTotalPages:
		return Progress{HasMore: *meta.CurrentPage < *meta.TotalPages}
	default:
		return Progress{}
	}
}

// IntPtr returns a pointer to n. Handy when building PaginationMeta literals.
func IntPtr(n int) *int {
	return &n
}
