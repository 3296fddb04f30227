package cli

import (
	"database/sql"

	"github.com/friendsofgo/errors"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/nrfta/feed-go"
	"github.com/nrfta/feed-go/internal/config"
	"github.com/nrfta/feed-go/listing"
	"github.com/nrfta/feed-go/remote"
	"github.com/nrfta/feed-go/sqlboiler"
)

// openDB opens the configured SQL store.
func openDB(cfg config.ProviderConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", cfg.Driver)
	}
	if cfg.Driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// newProvider builds the listing provider selected by the configuration.
// The returned func releases its resources.
func newProvider(cfg config.Config, logger zerolog.Logger) (feed.Provider[listing.Listing], func() error, error) {
	switch cfg.Provider.Type {
	case config.ProviderSQL:
		dialect, err := sqlboiler.DialectFor(cfg.Provider.Driver)
		if err != nil {
			return nil, nil, err
		}
		convention, err := config.ParseConvention(cfg.Provider.Convention)
		if err != nil {
			return nil, nil, err
		}

		db, err := openDB(cfg.Provider)
		if err != nil {
			return nil, nil, err
		}

		provider := sqlboiler.NewListingProvider(db, dialect,
			sqlboiler.WithConvention(convention),
			sqlboiler.WithPageConfig(cfg.PageConfig()),
			sqlboiler.WithLogger(logger),
		)
		return provider, db.Close, nil

	case config.ProviderHTTP:
		client, err := remote.New[listing.Listing](cfg.Provider.BaseURL,
			remote.WithTimeout(cfg.Provider.Timeout),
			remote.WithRateLimit(cfg.Provider.RatePerSecond, 1),
			remote.WithLogger(logger),
		)
		if err != nil {
			return nil, nil, err
		}
		return client, func() error { return nil }, nil

	default:
		return nil, nil, errors.Errorf("unknown provider type %q", cfg.Provider.Type)
	}
}
