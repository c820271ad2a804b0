package observable

import (
	"github.com/rs/zerolog"

	"github.com/nickrobson/observable/internal/logging"
)

type config struct {
	sink   ErrorSink
	logger *zerolog.Logger
}

// Option configures an Observable.
type Option func(*config)

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// errorSink resolves the sink lazily so SetDefaultErrorSink affects
// observables created before it was called.
func (c config) errorSink() ErrorSink {
	if c.sink != nil {
		return c.sink
	}
	return DefaultErrorSink()
}

func (c config) log() zerolog.Logger {
	if c.logger != nil {
		return *c.logger
	}
	return logging.Logger
}

// WithErrorSink routes unhandled errors of the observable to sink instead of
// the process default.
func WithErrorSink(sink ErrorSink) Option {
	return func(c *config) {
		c.sink = sink
	}
}

// WithLogger sets the logger used for lifecycle diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = &logger
	}
}
