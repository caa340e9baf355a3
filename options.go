package fbsql

import (
	"database/sql"
	"database/sql/driver"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/FirebirdSQL/jaybird-sub009/config"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xsql"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xsql/isolation"
	"github.com/FirebirdSQL/jaybird-sub009/log"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

type options struct {
	config    []config.Option
	connector []xsql.Option
}

// Option configures a Connector.
type Option func(o *options) error

func withConfig(opts ...config.Option) Option {
	return func(o *options) error {
		o.config = append(o.config, opts...)

		return nil
	}
}

// WithLogger logs driver events of the given details through l.
func WithLogger(l log.Logger, details trace.Detailer, opts ...log.Option) Option {
	return withConfig(config.WithTrace(log.Driver(l, details, opts...)))
}

// WithTrace appends t to the driver trace.
func WithTrace(t trace.Driver, opts ...trace.DriverComposeOption) Option {
	return withConfig(config.WithTrace(t, opts...))
}

// WithAutoCommit sets the initial transaction policy of new connections.
// Connections start in auto-commit mode by default.
func WithAutoCommit(autoCommit bool) Option {
	return withConfig(config.WithAutoCommit(autoCommit))
}

// WithHoldableResults keeps open results readable across commits by reading
// them fully before the transaction ends.
func WithHoldableResults() Option {
	return withConfig(config.WithHoldableResults())
}

func WithFetchSize(n int) Option {
	return withConfig(config.WithFetchSize(n))
}

func WithBlobBufferLength(n int) Option {
	return withConfig(config.WithBlobBufferLength(n))
}

// WithOutputParameterFallback lets OutParameter read unregistered output
// positions by their index.
func WithOutputParameterFallback() Option {
	return withConfig(config.WithOutputParameterFallback())
}

func WithQuoteStrategy(q QuoteStrategy) Option {
	return withConfig(config.WithQuoteStrategy(q))
}

// WithDefaultTxOptions sets the isolation and access mode of transactions
// that are not started by BeginTx.
func WithDefaultTxOptions(opts sql.TxOptions) Option {
	return func(o *options) error {
		params, err := isolation.ToWire(driver.TxOptions{
			Isolation: driver.IsolationLevel(opts.Isolation),
			ReadOnly:  opts.ReadOnly,
		})
		if err != nil {
			return xerrors.WithStackTrace(err)
		}
		o.config = append(o.config, config.WithTxParameters(params))

		return nil
	}
}

// WithIdleThreshold closes connections unused for longer than threshold.
func WithIdleThreshold(threshold time.Duration) Option {
	return withConfig(config.WithIdleThreshold(threshold))
}

func WithClock(clock clockwork.Clock) Option {
	return withConfig(config.WithClock(clock))
}

// WithCloseLimit bounds the number of connections closed concurrently when the
// connector is closed.
func WithCloseLimit(limit int) Option {
	return func(o *options) error {
		o.connector = append(o.connector, xsql.WithCloseLimit(limit))

		return nil
	}
}
