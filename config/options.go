package config

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/FirebirdSQL/jaybird-sub009/internal/rowupdater"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

type Option func(c *Config)

// WithTrace appends driver trace to early defined traces
func WithTrace(t trace.Driver, opts ...trace.DriverComposeOption) Option {
	return func(c *Config) {
		c.trace = c.trace.Compose(&t, opts...)
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *Config) {
		c.clock = clock
	}
}

// WithBlobBufferLength sets the segment size of large object streams.
// Values out of (0, wire.MaxSegmentSize] are ignored.
func WithBlobBufferLength(n int) Option {
	return func(c *Config) {
		if n > 0 && n <= wire.MaxSegmentSize {
			c.blobBufferLength = n
		}
	}
}

// WithFetchSize sets the number of rows per fetch. Non-positive values are ignored.
func WithFetchSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.fetchSize = n
		}
	}
}

func WithAutoCommit(autoCommit bool) Option {
	return func(c *Config) {
		c.autoCommit = autoCommit
	}
}

func WithHoldableResults() Option {
	return func(c *Config) {
		c.holdableResults = true
	}
}

func WithOutputParameterFallback() Option {
	return func(c *Config) {
		c.outputParameterFallback = true
	}
}

func WithQuoteStrategy(q rowupdater.QuoteStrategy) Option {
	return func(c *Config) {
		c.quoteStrategy = q
	}
}

func WithTxParameters(params wire.TxParameters) Option {
	return func(c *Config) {
		c.txParameters = params
	}
}

func WithIdleThreshold(d time.Duration) Option {
	return func(c *Config) {
		c.idleThreshold = d
	}
}
