package coordinator

import "github.com/rs/zerolog"

const defaultEventBuffer = 64

// Option configures a coordinator.
type Option func(*config)

// config holds coordinator configuration.
type config struct {
	logger      zerolog.Logger
	eventBuffer int
}

func defaultConfig() *config {
	return &config{
		logger:      zerolog.Nop(),
		eventBuffer: defaultEventBuffer,
	}
}

// WithLogger sets the logger used for request and state transition events.
// Default: zerolog.Nop()
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithEventBuffer sets the capacity of the event queue.
// Default: 64
//
// Callers block once the queue is full until the loop catches up.
func WithEventBuffer(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.eventBuffer = n
		}
	}
}
