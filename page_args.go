package feed

import "fmt"

const (
	// DefaultPerPage is the page size used when none is requested.
	DefaultPerPage = 20

	// DefaultMaxPerPage is the largest page size a query may carry.
	// Larger requests are capped, not rejected.
	DefaultMaxPerPage = 100
)

// PageConfig holds page size configuration.
// Use NewPageConfig() to create a config with sensible defaults,
// then customize using the With* methods.
//
// Example:
//
//	config := feed.NewPageConfig().WithMaxSize(50)
//	perPage := config.EffectivePerPage(requested)
type PageConfig struct {
	// DefaultSize is the page size used when PageArgs.PerPage is zero.
	DefaultSize int

	// MaxSize is the maximum allowed page size.
	MaxSize int
}

// NewPageConfig creates a PageConfig with sensible defaults:
// - DefaultSize: 20
// - MaxSize: 100
func NewPageConfig() *PageConfig {
	return &PageConfig{
		DefaultSize: DefaultPerPage,
		MaxSize:     DefaultMaxPerPage,
	}
}

// WithDefaultSize sets the default page size and returns the config for chaining.
func (c *PageConfig) WithDefaultSize(size int) *PageConfig {
	if size > 0 {
		c.DefaultSize = size
	}
	return c
}

// WithMaxSize sets the maximum page size and returns the config for chaining.
func (c *PageConfig) WithMaxSize(size int) *PageConfig {
	if size > 0 {
		c.MaxSize = size
	}
	return c
}

// EffectivePerPage returns the page size to use, applying defaults and caps.
// - If perPage is zero or negative, returns DefaultSize
// - If perPage exceeds MaxSize, returns MaxSize
// - Otherwise returns perPage
func (c *PageConfig) EffectivePerPage(perPage int) int {
	if c == nil {
		c = NewPageConfig()
	}

	defaultSize := c.DefaultSize
	if defaultSize <= 0 {
		defaultSize = DefaultPerPage
	}

	maxSize := c.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxPerPage
	}

	if perPage <= 0 {
		perPage = defaultSize
	}

	if perPage > maxSize {
		return maxSize
	}

	return perPage
}

// Validate returns a PageSizeError when perPage exceeds MaxSize.
// Unlike EffectivePerPage which caps silently, Validate is meant for
// configuration input that should be rejected outright.
func (c *PageConfig) Validate(perPage int) error {
	if c == nil {
		c = NewPageConfig()
	}

	maxSize := c.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxPerPage
	}

	if perPage > maxSize {
		return &PageSizeError{
			Requested: perPage,
			Maximum:   maxSize,
		}
	}

	return nil
}

// PageSizeError is returned when the requested page size exceeds the maximum allowed.
type PageSizeError struct {
	Requested int
	Maximum   int
}

func (e *PageSizeError) Error() string {
	return fmt.Sprintf("requested page size %d exceeds maximum allowed page size of %d",
		e.Requested, e.Maximum)
}

// PageArgs carries the pagination part of a query: which lineage, which
// page and how many items per page.
type PageArgs struct {
	Kind    Kind
	Page    int
	PerPage int
}

// PageOption configures page size limits for BuildQuery.
//
// Example:
//
//	q := feed.BuildQuery(sel, args, feed.WithMaxSize(50))
type PageOption func(*PageConfig)

// WithMaxSize sets the maximum page size for the built query.
func WithMaxSize(size int) PageOption {
	return func(c *PageConfig) {
		c.WithMaxSize(size)
	}
}

// WithDefaultSize sets the page size used when PageArgs.PerPage is zero.
func WithDefaultSize(size int) PageOption {
	return func(c *PageConfig) {
		c.WithDefaultSize(size)
	}
}

// ApplyPageOptions applies functional options over the default PageConfig.
func ApplyPageOptions(opts ...PageOption) *PageConfig {
	cfg := NewPageConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
