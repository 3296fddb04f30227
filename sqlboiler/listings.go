package sqlboiler

import (
	"context"
	"fmt"
	"strings"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/strmangle"
	"github.com/friendsofgo/errors"

	"github.com/nrfta/feed-go/listing"
)

var (
	// PostgresDialect is the SQL dialect of github.com/lib/pq.
	PostgresDialect = drivers.Dialect{
		LQ:                   '"',
		RQ:                   '"',
		UseIndexPlaceholders: true,
	}

	// SQLiteDialect is the SQL dialect of modernc.org/sqlite.
	SQLiteDialect = drivers.Dialect{
		LQ: '"',
		RQ: '"',
	}
)

// DialectFor returns the dialect of a database/sql driver name.
func DialectFor(driver string) (drivers.Dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return PostgresDialect, nil
	case "sqlite", "sqlite3":
		return SQLiteDialect, nil
	default:
		return drivers.Dialect{}, errors.Errorf("unsupported sql driver %q", driver)
	}
}

// Listings returns a new query against the listings table.
func Listings(dialect drivers.Dialect, mods ...qm.QueryMod) *queries.Query {
	q := &queries.Query{}
	queries.SetDialect(q, &dialect)
	queries.SetFrom(q, strmangle.IdentQuote(dialect.LQ, dialect.RQ, listing.Table))
	qm.Apply(q, mods...)

	if len(queries.GetSelect(q)) == 0 {
		queries.SetSelect(q, []string{strmangle.IdentQuote(dialect.LQ, dialect.RQ, listing.Table) + ".*"})
	}
	return q
}

// NewListingProvider creates a search provider over the listings table.
func NewListingProvider(exec boil.ContextExecutor, dialect drivers.Dialect, opts ...Option) *Provider[listing.Listing] {
	queryFunc := func(ctx context.Context, mods ...qm.QueryMod) ([]listing.Listing, error) {
		var rows []listing.Listing
		if err := Listings(dialect, mods...).Bind(ctx, exec, &rows); err != nil {
			return nil, errors.Wrap(err, "bind listings")
		}
		return rows, nil
	}

	countFunc := func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
		q := Listings(dialect, mods...)
		queries.SetSelect(q, nil)
		queries.SetCount(q)

		var count int64
		if err := q.QueryRowContext(ctx, exec).Scan(&count); err != nil {
			return 0, errors.Wrap(err, "count listings")
		}
		return count, nil
	}

	return NewProvider(queryFunc, countFunc, opts...)
}

// CreateSchema creates the listings table and its search index if they do
// not exist. The statements are portable across the supported dialects.
func CreateSchema(ctx context.Context, exec boil.ContextExecutor, dialect drivers.Dialect) error {
	quote := func(s string) string { return strmangle.IdentQuote(dialect.LQ, dialect.RQ, s) }

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			%s BIGINT PRIMARY KEY,
			%s TEXT NOT NULL,
			%s TEXT NOT NULL,
			%s TEXT NOT NULL,
			%s TEXT,
			%s TEXT NOT NULL,
			%s TEXT,
			%s INTEGER NOT NULL,
			%s BOOLEAN NOT NULL DEFAULT FALSE,
			%s TEXT NOT NULL,
			%s TEXT,
			%s TEXT NOT NULL DEFAULT ''
		)`,
			quote(listing.Table),
			quote("id"),
			quote("kind"),
			quote("title"),
			quote("venue"),
			quote("category"),
			quote("position"),
			quote("specialization"),
			quote("pay_per_hour"),
			quote("urgent"),
			quote("start_date"),
			quote("end_date"),
			quote("schedule"),
		),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (%s, %s DESC, %s, %s)`,
			quote("idx_listings_feed"),
			quote(listing.Table),
			quote("kind"),
			quote("urgent"),
			quote("start_date"),
			quote("id"),
		),
	}

	for _, stmt := range statements {
		if boil.DebugMode {
			fmt.Fprintln(boil.DebugWriter, stmt)
		}
		if _, err := exec.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "create listings schema")
		}
	}
	return nil
}

// InsertListings inserts rows one statement per listing.
func InsertListings(ctx context.Context, exec boil.ContextExecutor, dialect drivers.Dialect, rows ...listing.Listing) error {
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		strmangle.IdentQuote(dialect.LQ, dialect.RQ, listing.Table),
		strings.Join(strmangle.IdentQuoteSlice(dialect.LQ, dialect.RQ, listing.Columns), ","),
		strmangle.Placeholders(dialect.UseIndexPlaceholders, len(listing.Columns), 1, 1),
	)

	for _, row := range rows {
		if boil.DebugMode {
			fmt.Fprintln(boil.DebugWriter, stmt)
			fmt.Fprintln(boil.DebugWriter, row.Values()...)
		}
		if _, err := exec.ExecContext(ctx, stmt, row.Values()...); err != nil {
			return errors.Wrapf(err, "insert listing %d", row.ID)
		}
	}
	return nil
}
