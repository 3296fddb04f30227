package feed

import (
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

// DateLayout is the wire format of query dates.
const DateLayout = "2006-01-02"

// QuickFilter is a one-tap preset from the feed header.
type QuickFilter string

const (
	QuickNone     QuickFilter = ""
	QuickUrgent   QuickFilter = "urgent"
	QuickToday    QuickFilter = "today"
	QuickTomorrow QuickFilter = "tomorrow"
	QuickWeek     QuickFilter = "week"
)

// dateRange resolves a date preset relative to now. Presets that are not
// date based, or a zero now, resolve to an empty range.
func (f QuickFilter) dateRange(now time.Time) (time.Time, time.Time) {
	if now.IsZero() {
		return time.Time{}, time.Time{}
	}

	switch f {
	case QuickToday:
		return now, now
	case QuickTomorrow:
		tomorrow := now.AddDate(0, 0, 1)
		return tomorrow, tomorrow
	case QuickWeek:
		return now, now.AddDate(0, 0, 6)
	}

	return time.Time{}, time.Time{}
}

// Selection is the raw filter state of the search UI. Zero values mean
// "not selected".
type Selection struct {
	Category       string
	UrgentOnly     bool
	PriceMin       *int
	PriceMax       *int
	Position       string
	Specialization string
	StartDate      time.Time
	EndDate        time.Time
	QuickFilter    QuickFilter

	// Now anchors date quick filters. When zero, date presets are ignored,
	// which keeps BuildQuery free of clock reads.
	Now time.Time
}

// Query is the normalized request descriptor sent to a Provider.
//
// Optional filters are pointers: nil means "not filtered", which is
// different from filtering for an empty value. The url tags drive query
// string encoding in the remote client.
type Query struct {
	Kind           Kind    `url:"-" json:"kind"`
	Page           int     `url:"page" json:"page"`
	PerPage        int     `url:"per_page" json:"per_page"`
	Category       *string `url:"category,omitempty" json:"category,omitempty"`
	UrgentOnly     *bool   `url:"urgent,omitempty" json:"urgent,omitempty"`
	PriceMin       *int    `url:"price_min,omitempty" json:"price_min,omitempty"`
	PriceMax       *int    `url:"price_max,omitempty" json:"price_max,omitempty"`
	Position       *string `url:"position,omitempty" json:"position,omitempty"`
	Specialization *string `url:"specialization,omitempty" json:"specialization,omitempty"`
	StartDate      *string `url:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate        *string `url:"end_date,omitempty" json:"end_date,omitempty"`
}

// BuildQuery turns a filter selection plus page arguments into a Query.
// It is pure: the same input always yields an equal Query.
//
// Explicit dates win over a date quick filter. Page numbers below 1 are
// raised to 1 and PerPage is normalized by the PageConfig built from opts.
func BuildQuery(sel Selection, args PageArgs, opts ...PageOption) Query {
	cfg := ApplyPageOptions(opts...)

	page := args.Page
	if page < 1 {
		page = 1
	}

	q := Query{
		Kind:           args.Kind,
		Page:           page,
		PerPage:        cfg.EffectivePerPage(args.PerPage),
		Category:       optionalString(sel.Category),
		PriceMin:       optionalInt(sel.PriceMin),
		PriceMax:       optionalInt(sel.PriceMax),
		Position:       optionalString(sel.Position),
		Specialization: optionalString(sel.Specialization),
	}

	if sel.UrgentOnly || sel.QuickFilter == QuickUrgent {
		urgent := true
		q.UrgentOnly = &urgent
	}

	start, end := sel.StartDate, sel.EndDate
	if start.IsZero() && end.IsZero() {
		start, end = sel.QuickFilter.dateRange(sel.Now)
	}
	q.StartDate = optionalDate(start)
	q.EndDate = optionalDate(end)

	return q
}

// Baseline returns the query with its page cursor cleared. Two queries with
// equal baselines belong to the same pagination lineage.
func (q Query) Baseline() Query {
	q.Page = 0
	return q
}

// WithPage returns a copy of the query pointing at page n.
func (q Query) WithPage(n int) Query {
	q.Page = n
	return q
}

// Equivalent reports whether q and other differ only in their page.
// PerPage participates in the comparison: changing the page size starts a
// new lineage because total-count arithmetic is tied to it.
func (q Query) Equivalent(other Query) bool {
	return cmp.Equal(q.Baseline(), other.Baseline())
}

// MarshalZerologObject lets a Query be attached to log events.
func (q Query) MarshalZerologObject(e *zerolog.Event) {
	e.Str("kind", string(q.Kind)).
		Int("page", q.Page).
		Int("per_page", q.PerPage)

	if q.Category != nil {
		e.Str("category", *q.Category)
	}
	if q.UrgentOnly != nil {
		e.Bool("urgent", *q.UrgentOnly)
	}
	if q.PriceMin != nil {
		e.Int("price_min", *q.PriceMin)
	}
	if q.PriceMax != nil {
		e.Int("price_max", *q.PriceMax)
	}
	if q.Position != nil {
		e.Str("position", *q.Position)
	}
	if q.Specialization != nil {
		e.Str("specialization", *q.Specialization)
	}
	if q.StartDate != nil {
		e.Str("start_date", *q.StartDate)
	}
	if q.EndDate != nil {
		e.Str("end_date", *q.EndDate)
	}
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func optionalDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
