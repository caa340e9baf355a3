package tx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/FirebirdSQL/jaybird-sub009/internal/wire/wiremock"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xtest"
)

func TestCounterBalanced(t *testing.T) {
	ctx := xtest.Context(t)
	_, _, counter, att, ctrl := newCoordinator(t, ModeAutoCommit)
	tx := wiremock.NewMockTransaction(ctrl)
	att.EXPECT().BeginTransaction(gomock.Any(), gomock.Any()).Return(tx, nil).Times(1)

	const depth = 3
	for i := 0; i < depth; i++ {
		require.NoError(t, counter.Ensure(ctx))
	}
	require.True(t, counter.Auto())
	require.Equal(t, depth, counter.Count())
	require.True(t, counter.WillEnd())

	for i := 0; i < depth-1; i++ {
		require.NoError(t, counter.Check(ctx, true))
	}
	require.Equal(t, 1, counter.Count())

	tx.EXPECT().Commit(gomock.Any()).Return(nil).Times(1)
	require.NoError(t, counter.Check(ctx, true))
	require.False(t, counter.Auto())
	require.Zero(t, counter.Count())

	// extra checks after the end are harmless
	require.NoError(t, counter.Check(ctx, true))
}

func TestCounterRollback(t *testing.T) {
	ctx := xtest.Context(t)
	_, _, counter, att, ctrl := newCoordinator(t, ModeAutoCommit)
	tx := wiremock.NewMockTransaction(ctrl)
	att.EXPECT().BeginTransaction(gomock.Any(), gomock.Any()).Return(tx, nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	require.NoError(t, counter.Ensure(ctx))
	require.NoError(t, counter.Check(ctx, false))
	require.False(t, counter.Auto())
}

func TestCounterExplicitTransaction(t *testing.T) {
	ctx := xtest.Context(t)
	c, _, counter, att, ctrl := newCoordinator(t, ModeAutoCommit)
	tx := wiremock.NewMockTransaction(ctrl)
	att.EXPECT().BeginTransaction(gomock.Any(), gomock.Any()).Return(tx, nil)

	require.NoError(t, c.EnsureTransaction(ctx))
	for i := 0; i < 2; i++ {
		require.NoError(t, counter.Ensure(ctx))
		require.False(t, counter.Auto())
		require.False(t, counter.WillEnd())
		require.NoError(t, counter.Check(ctx, true))
	}
	require.True(t, c.Local().InTransaction())
}

func TestCounterLocalModeNeverEnds(t *testing.T) {
	ctx := xtest.Context(t)
	c, _, counter, att, ctrl := newCoordinator(t, ModeLocal)
	att.EXPECT().BeginTransaction(gomock.Any(), gomock.Any()).Return(wiremock.NewMockTransaction(ctrl), nil)

	require.NoError(t, counter.Ensure(ctx))
	require.True(t, counter.Auto())
	require.False(t, counter.WillEnd())
	require.NoError(t, counter.Check(ctx, true))
	require.True(t, c.Local().InTransaction())
}

func TestCounterForgetsEndedTransaction(t *testing.T) {
	ctx := xtest.Context(t)
	c, _, counter, att, ctrl := newCoordinator(t, ModeLocal)
	tx1 := wiremock.NewMockTransaction(ctrl)
	tx2 := wiremock.NewMockTransaction(ctrl)
	gomock.InOrder(
		att.EXPECT().BeginTransaction(gomock.Any(), gomock.Any()).Return(tx1, nil),
		tx1.EXPECT().Commit(gomock.Any()).Return(nil),
		att.EXPECT().BeginTransaction(gomock.Any(), gomock.Any()).Return(tx2, nil),
	)

	require.NoError(t, counter.Ensure(ctx))
	require.True(t, counter.Auto())
	require.NoError(t, c.Commit(ctx))
	require.False(t, counter.Auto())

	// a transaction begun by someone else is not implicit
	require.NoError(t, c.EnsureTransaction(ctx))
	require.False(t, counter.Auto())
	require.False(t, counter.Holds())
}

func TestCounterCommitFailure(t *testing.T) {
	ctx := xtest.Context(t)
	_, _, counter, att, ctrl := newCoordinator(t, ModeAutoCommit)
	tx := wiremock.NewMockTransaction(ctrl)
	errCommit := errors.New("lock conflict")
	att.EXPECT().BeginTransaction(gomock.Any(), gomock.Any()).Return(tx, nil)
	gomock.InOrder(
		tx.EXPECT().Commit(gomock.Any()).Return(errCommit),
		tx.EXPECT().Commit(gomock.Any()).Return(nil),
	)

	require.NoError(t, counter.Ensure(ctx))
	require.ErrorIs(t, counter.Check(ctx, true), errCommit)
	require.True(t, counter.Auto())
	require.Zero(t, counter.Count())

	require.NoError(t, counter.Check(ctx, true))
	require.False(t, counter.Auto())
}

func TestCounterEnsureFailure(t *testing.T) {
	ctx := xtest.Context(t)
	_, _, counter, att, _ := newCoordinator(t, ModeAutoCommit)
	errBegin := errors.New("no route to host")
	att.EXPECT().BeginTransaction(gomock.Any(), gomock.Any()).Return(nil, errBegin)

	require.ErrorIs(t, counter.Ensure(ctx), errBegin)
	require.False(t, counter.Auto())
	require.Zero(t, counter.Count())
}

func TestScope(t *testing.T) {
	ctx := xtest.Context(t)
	_, _, counter, att, ctrl := newCoordinator(t, ModeAutoCommit)
	tx := wiremock.NewMockTransaction(ctrl)
	att.EXPECT().BeginTransaction(gomock.Any(), gomock.Any()).Return(tx, nil)
	tx.EXPECT().Commit(gomock.Any()).Return(nil)

	outer, err := counter.Acquire(ctx)
	require.NoError(t, err)
	inner, err := counter.Acquire(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, counter.Count())

	require.NoError(t, inner.Release(ctx, true))
	require.NoError(t, inner.Release(ctx, true))
	require.Equal(t, 1, counter.Count())
	require.NoError(t, outer.Release(ctx, true))
	require.False(t, counter.Auto())

	var nilScope *Scope
	require.NoError(t, nilScope.Release(ctx, true))
}
