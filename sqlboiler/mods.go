package sqlboiler

import (
	"strings"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/strmangle"

	"github.com/nrfta/feed-go"
	"github.com/nrfta/feed-go/offset"
)

// OrderBy is the listing order of every search: urgent listings first, then
// by start date, with the id as a stable tie breaker.
var OrderBy = []string{"urgent DESC", "start_date", "id"}

// ident quotes a column name. Both supported dialects use ANSI quoting.
func ident(column string) string {
	return strmangle.IdentQuote('"', '"', column)
}

// FilterMods converts the filters of q into WHERE query mods.
// Unset filters produce no mod. The page window is not included, so the
// result is suitable for counting.
//
// The conversion follows these rules:
//   - Kind → kind = ?
//   - Category, Position, Specialization → column = ?
//   - UrgentOnly true → urgent = true (false means "not filtered")
//   - PriceMin, PriceMax → pay_per_hour >= ? / <= ?
//   - StartDate, EndDate → start_date >= ? / <= ?
func FilterMods(q feed.Query) []qm.QueryMod {
	mods := []qm.QueryMod{}

	if q.Kind != "" {
		mods = append(mods, qm.Where(ident("kind")+" = ?", string(q.Kind)))
	}

	if q.Category != nil {
		mods = append(mods, qm.Where(ident("category")+" = ?", *q.Category))
	}

	if q.UrgentOnly != nil && *q.UrgentOnly {
		mods = append(mods, qm.Where(ident("urgent")+" = ?", true))
	}

	if q.PriceMin != nil {
		mods = append(mods, qm.Where(ident("pay_per_hour")+" >= ?", *q.PriceMin))
	}

	if q.PriceMax != nil {
		mods = append(mods, qm.Where(ident("pay_per_hour")+" <= ?", *q.PriceMax))
	}

	if q.Position != nil {
		mods = append(mods, qm.Where(ident("position")+" = ?", *q.Position))
	}

	if q.Specialization != nil {
		mods = append(mods, qm.Where(ident("specialization")+" = ?", *q.Specialization))
	}

	if q.StartDate != nil {
		mods = append(mods, qm.Where(ident("start_date")+" >= ?", *q.StartDate))
	}

	if q.EndDate != nil {
		mods = append(mods, qm.Where(ident("start_date")+" <= ?", *q.EndDate))
	}

	return mods
}

// QueryToQueryMods converts q into the full set of query mods for one page:
// filters, ordering and the offset window.
//
// Example:
//
//	rows, err := models.Listings(sqlboiler.QueryToQueryMods(q)...).All(ctx, db)
func QueryToQueryMods(q feed.Query) []qm.QueryMod {
	mods := FilterMods(q)
	mods = append(mods, qm.OrderBy(buildOrderByClause(OrderBy)))

	paginator := offset.New(q.Page, q.PerPage, 0)
	return append(mods, paginator.QueryMods()...)
}

// buildOrderByClause quotes the column of each "column [DESC]" directive
// and joins them.
//
// Example:
//
//	[]string{"urgent DESC", "id"} → `"urgent" DESC, "id"`
func buildOrderByClause(orderBy []string) string {
	parts := make([]string, len(orderBy))
	for i, o := range orderBy {
		column, dir, desc := strings.Cut(o, " ")
		if desc {
			parts[i] = ident(column) + " " + dir
		} else {
			parts[i] = ident(column)
		}
	}
	return strings.Join(parts, ", ")
}
