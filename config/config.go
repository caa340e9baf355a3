package config

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/FirebirdSQL/jaybird-sub009/internal/rowupdater"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

const (
	DefaultBlobBufferLength = 16384
	DefaultFetchSize        = 400
	DefaultIdleThreshold    = time.Duration(0)
)

type Config struct {
	trace *trace.Driver
	clock clockwork.Clock

	blobBufferLength int
	fetchSize        int

	autoCommit              bool
	holdableResults         bool
	outputParameterFallback bool
	quoteStrategy           rowupdater.QuoteStrategy
	txParameters            wire.TxParameters

	idleThreshold time.Duration
}

func New(opts ...Option) *Config {
	c := defaults()
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

func defaults() *Config {
	return &Config{
		trace:            &trace.Driver{},
		clock:            clockwork.NewRealClock(),
		blobBufferLength: DefaultBlobBufferLength,
		fetchSize:        DefaultFetchSize,
		autoCommit:       true,
		quoteStrategy:    rowupdater.QuoteDialect3,
		txParameters:     wire.DefaultTxParameters(),
		idleThreshold:    DefaultIdleThreshold,
	}
}

// Trace defines trace over driver calls
func (c *Config) Trace() *trace.Driver {
	return c.trace
}

// Clock defines clock
func (c *Config) Clock() clockwork.Clock {
	return c.clock
}

// BlobBufferLength is the maximum size of one large object segment.
func (c *Config) BlobBufferLength() int {
	return c.blobBufferLength
}

// FetchSize is the number of rows requested per fetch of a live result.
func (c *Config) FetchSize() int {
	return c.fetchSize
}

// AutoCommit reports whether new connections start in auto-commit mode.
func (c *Config) AutoCommit() bool {
	return c.autoCommit
}

// HoldableResults keeps live results readable past a commit by
// materializing them instead of closing them.
func (c *Config) HoldableResults() bool {
	return c.holdableResults
}

// OutputParameterFallback lets a callable statement read an output value by
// position when the position was never registered as an output parameter.
// It is off by default: reading an unregistered position is a usage error.
func (c *Config) OutputParameterFallback() bool {
	return c.outputParameterFallback
}

func (c *Config) QuoteStrategy() rowupdater.QuoteStrategy {
	return c.quoteStrategy
}

// TxParameters are used for every transaction the driver begins.
func (c *Config) TxParameters() wire.TxParameters {
	return c.txParameters
}

// IdleThreshold is a maximum duration a connection may stay unused before
// the connector closes it.
//
// If IdleThreshold is less than or equal to zero then idle connections are never closed.
func (c *Config) IdleThreshold() time.Duration {
	return c.idleThreshold
}
