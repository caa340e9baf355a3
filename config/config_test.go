package config

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/FirebirdSQL/jaybird-sub009/internal/rowupdater"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

func TestNew(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		cfg := New()
		require.NotNil(t, cfg.Trace())
		require.NotNil(t, cfg.Clock())
		require.Equal(t, DefaultBlobBufferLength, cfg.BlobBufferLength())
		require.Equal(t, DefaultFetchSize, cfg.FetchSize())
		require.True(t, cfg.AutoCommit())
		require.False(t, cfg.HoldableResults())
		require.False(t, cfg.OutputParameterFallback())
		require.Equal(t, rowupdater.QuoteDialect3, cfg.QuoteStrategy())
		require.Equal(t, wire.DefaultTxParameters(), cfg.TxParameters())
		require.Equal(t, DefaultIdleThreshold, cfg.IdleThreshold())
	})

	t.Run("WithOptions", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		params := wire.TxParameters{Isolation: wire.IsolationSnapshot, ReadOnly: true}
		cfg := New(
			WithClock(clock),
			WithBlobBufferLength(1024),
			WithFetchSize(10),
			WithAutoCommit(false),
			WithHoldableResults(),
			WithOutputParameterFallback(),
			WithQuoteStrategy(rowupdater.QuoteDialect1),
			WithTxParameters(params),
			WithIdleThreshold(time.Minute),
			nil,
		)
		require.Same(t, clock, cfg.Clock())
		require.Equal(t, 1024, cfg.BlobBufferLength())
		require.Equal(t, 10, cfg.FetchSize())
		require.False(t, cfg.AutoCommit())
		require.True(t, cfg.HoldableResults())
		require.True(t, cfg.OutputParameterFallback())
		require.Equal(t, rowupdater.QuoteDialect1, cfg.QuoteStrategy())
		require.Equal(t, params, cfg.TxParameters())
		require.Equal(t, time.Minute, cfg.IdleThreshold())
	})

	t.Run("IgnoredValues", func(t *testing.T) {
		cfg := New(WithBlobBufferLength(0), WithBlobBufferLength(wire.MaxSegmentSize+1), WithFetchSize(-1))
		require.Equal(t, DefaultBlobBufferLength, cfg.BlobBufferLength())
		require.Equal(t, DefaultFetchSize, cfg.FetchSize())
	})

	t.Run("WithTraceComposes", func(t *testing.T) {
		var calls []string
		hook := func(name string) trace.Driver {
			return trace.Driver{
				OnConnClose: func(trace.DriverConnCloseStartInfo) func(trace.DriverConnCloseDoneInfo) {
					calls = append(calls, name)

					return nil
				},
			}
		}
		cfg := New(WithTrace(hook("first")), WithTrace(hook("second")))
		ctx := context.Background()
		trace.DriverOnConnClose(cfg.Trace(), &ctx, nil, "conn")(nil)
		require.Equal(t, []string{"first", "second"}, calls)
	})
}
