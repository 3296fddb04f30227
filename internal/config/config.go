// Package config loads the feedctl configuration file.
package config

import (
	"io/fs"
	"os"
	"time"

	"github.com/friendsofgo/errors"
	"gopkg.in/yaml.v3"

	"github.com/nrfta/feed-go"
)

// Provider types.
const (
	ProviderSQL  = "sql"
	ProviderHTTP = "http"
)

// Config is the top-level configuration.
type Config struct {
	LogLevel   string         `yaml:"log_level"`
	PerPage    int            `yaml:"per_page"`
	MaxPerPage int            `yaml:"max_per_page"`
	Provider   ProviderConfig `yaml:"provider"`
}

// ProviderConfig selects and configures the search provider.
type ProviderConfig struct {
	// Type is "sql" or "http".
	Type string `yaml:"type"`

	// Driver and DSN configure the sql provider.
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`

	// Convention is the pagination metadata shape answered by the sql
	// provider: total_count, total_pages or next_page.
	Convention string `yaml:"convention"`

	// BaseURL, RatePerSecond and Timeout configure the http provider.
	BaseURL       string        `yaml:"base_url"`
	RatePerSecond float64       `yaml:"rate_per_second"`
	Timeout       time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file exists: a local
// SQLite store answering with total counts.
func Default() Config {
	return Config{
		LogLevel:   "info",
		PerPage:    feed.DefaultPerPage,
		MaxPerPage: feed.DefaultMaxPerPage,
		Provider: ProviderConfig{
			Type:       ProviderSQL,
			Driver:     "sqlite",
			DSN:        "feed.db",
			Convention: feed.ConventionTotalCount.String(),
			Timeout:    15 * time.Second,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// PageConfig returns the page size limits of the configuration.
func (c Config) PageConfig() *feed.PageConfig {
	return feed.NewPageConfig().WithDefaultSize(c.PerPage).WithMaxSize(c.MaxPerPage)
}

// Validate checks the configuration for values no component can work with.
func (c Config) Validate() error {
	if c.PerPage < 1 {
		return errors.Errorf("per_page must be positive, got %d", c.PerPage)
	}
	if err := c.PageConfig().Validate(c.PerPage); err != nil {
		return err
	}

	switch c.Provider.Type {
	case ProviderSQL:
		switch c.Provider.Driver {
		case "postgres", "sqlite":
		default:
			return errors.Errorf("unsupported sql driver %q", c.Provider.Driver)
		}
		if c.Provider.DSN == "" {
			return errors.New("sql provider requires a dsn")
		}
		if _, err := ParseConvention(c.Provider.Convention); err != nil {
			return err
		}
	case ProviderHTTP:
		if c.Provider.BaseURL == "" {
			return errors.New("http provider requires a base_url")
		}
		if c.Provider.RatePerSecond < 0 {
			return errors.New("rate_per_second must not be negative")
		}
	default:
		return errors.Errorf("unknown provider type %q", c.Provider.Type)
	}

	return nil
}

// ParseConvention maps a convention name to a feed.Convention. An empty
// name selects the total count convention.
func ParseConvention(name string) (feed.Convention, error) {
	switch name {
	case "", "total_count":
		return feed.ConventionTotalCount, nil
	case "total_pages":
		return feed.ConventionTotalPages, nil
	case "next_page":
		return feed.ConventionNextPage, nil
	default:
		return feed.ConventionNone, errors.Errorf("unknown pagination convention %q", name)
	}
}
