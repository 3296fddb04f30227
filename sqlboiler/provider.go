// Package sqlboiler serves feed searches from a SQL store through SQLBoiler
// query mods.
//
// The package separates ORM integration from the search semantics:
//  1. FilterMods and QueryToQueryMods translate a feed.Query into query mods
//  2. Provider runs those mods through a QueryFunc and a CountFunc and
//     answers with a feed.PageResponse
//
// Any SQLBoiler-generated model can be plugged in through the two funcs.
// NewListingProvider wires them for the listings table.
//
// Example usage:
//
//	provider := sqlboiler.NewProvider(
//	    func(ctx context.Context, mods ...qm.QueryMod) ([]*models.Listing, error) {
//	        return models.Listings(mods...).All(ctx, db)
//	    },
//	    func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
//	        return models.Listings(mods...).Count(ctx, db)
//	    },
//	)
//	resp, err := provider.Search(ctx, q)
package sqlboiler

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"
	"github.com/rs/zerolog"

	"github.com/nrfta/feed-go"
	"github.com/nrfta/feed-go/offset"
)

// QueryFunc executes a SQLBoiler query and returns results.
//
// Type parameter T is the model type (e.g., listing.Listing).
type QueryFunc[T any] func(ctx context.Context, mods ...qm.QueryMod) ([]T, error)

// CountFunc executes a SQLBoiler count query.
type CountFunc func(ctx context.Context, mods ...qm.QueryMod) (int64, error)

// Provider implements feed.Provider[T] over SQLBoiler queries.
type Provider[T any] struct {
	queryFunc  QueryFunc[T]
	countFunc  CountFunc
	convention feed.Convention
	pageConfig *feed.PageConfig
	logger     zerolog.Logger
}

// Option configures a Provider.
type Option func(*options)

type options struct {
	convention feed.Convention
	pageConfig *feed.PageConfig
	logger     zerolog.Logger
}

// WithConvention selects the pagination metadata shape of responses.
// Default: feed.ConventionTotalCount
func WithConvention(convention feed.Convention) Option {
	return func(o *options) {
		o.convention = convention
	}
}

// WithPageConfig sets the page size limits applied to incoming queries.
// Default: feed.NewPageConfig()
func WithPageConfig(config *feed.PageConfig) Option {
	return func(o *options) {
		if config != nil {
			o.pageConfig = config
		}
	}
}

// WithLogger sets the logger for query events.
// Default: zerolog.Nop()
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewProvider creates a search provider from ORM query funcs.
//
// Parameters:
//   - queryFunc: runs the filtered, ordered and windowed select
//   - countFunc: counts the records matching the filters only
func NewProvider[T any](queryFunc QueryFunc[T], countFunc CountFunc, opts ...Option) *Provider[T] {
	o := &options{
		convention: feed.ConventionTotalCount,
		pageConfig: feed.NewPageConfig(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Provider[T]{
		queryFunc:  queryFunc,
		countFunc:  countFunc,
		convention: o.convention,
		pageConfig: o.pageConfig,
		logger:     o.logger,
	}
}

// Search resolves one page of q.
func (p *Provider[T]) Search(ctx context.Context, q feed.Query) (*feed.PageResponse[T], error) {
	q.PerPage = p.pageConfig.EffectivePerPage(q.PerPage)

	total, err := p.countFunc(ctx, FilterMods(q)...)
	if err != nil {
		return nil, errors.Wrapf(err, "count %s", q.Kind)
	}

	paginator := offset.New(q.Page, q.PerPage, total)

	var items []T
	if paginator.Offset < paginator.TotalCount {
		items, err = p.queryFunc(ctx, QueryToQueryMods(q)...)
		if err != nil {
			return nil, errors.Wrapf(err, "search %s page %d", q.Kind, paginator.Page)
		}
	}
	if items == nil {
		items = []T{}
	}

	p.logger.Debug().
		Str("kind", string(q.Kind)).
		Int("page", paginator.Page).
		Int("items", len(items)).
		Int("total_count", paginator.TotalCount).
		Msg("search served")

	return &feed.PageResponse[T]{
		Items:      items,
		Pagination: paginator.Meta(p.convention),
	}, nil
}
