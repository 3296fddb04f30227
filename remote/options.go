package remote

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const defaultTimeout = 15 * time.Second

// Option configures a Client.
type Option func(*options)

type options struct {
	client  *http.Client
	limiter *rate.Limiter
	logger  zerolog.Logger
	header  http.Header
}

func defaultOptions() *options {
	return &options{
		client:  &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Inf, 1),
		logger:  zerolog.Nop(),
		header:  http.Header{},
	}
}

// WithHTTPClient sets the HTTP client.
// Default: a client with a 15s timeout
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.client = client
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.client = &http.Client{Timeout: timeout}
		}
	}
}

// WithRateLimit allows perSecond requests with the given burst.
// Default: unlimited
func WithRateLimit(perSecond float64, burst int) Option {
	return func(o *options) {
		if perSecond <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithHeader adds a header sent with every request, e.g. an API token.
func WithHeader(key, value string) Option {
	return func(o *options) {
		o.header.Add(key, value)
	}
}

// WithLogger sets the logger for request events.
// Default: zerolog.Nop()
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
