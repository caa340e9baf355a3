package trace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FirebirdSQL/jaybird-sub009/internal/stack"
)

func TestDriverNilHooks(t *testing.T) {
	ctx := context.Background()
	require.NotPanics(t, func() {
		DriverOnTxBegin(nil, &ctx, stack.FunctionID(""), "conn", "AUTOCOMMIT")(nil)
		DriverOnBlobSegmentRead(&Driver{}, &ctx, stack.FunctionID(""), 1, 10)(10, false, nil)
		DriverOnTxCommit(&Driver{OnTxCommit: func(DriverTxCommitStartInfo) func(DriverTxCommitDoneInfo) {
			return nil
		}}, &ctx, stack.FunctionID(""), "conn")(nil)
	})
}

func TestDriverCompose(t *testing.T) {
	var calls []string
	hook := func(name string) *Driver {
		return &Driver{
			OnTxCommit: func(info DriverTxCommitStartInfo) func(DriverTxCommitDoneInfo) {
				calls = append(calls, name+":start:"+info.ConnID)

				return func(info DriverTxCommitDoneInfo) {
					if info.Error != nil {
						calls = append(calls, name+":"+info.Error.Error())

						return
					}
					calls = append(calls, name+":done")
				}
			},
		}
	}
	ctx := context.Background()
	composed := hook("a").Compose(hook("b"))
	DriverOnTxCommit(composed, &ctx, stack.FunctionID(""), "c1")(nil)
	DriverOnTxCommit(composed, &ctx, stack.FunctionID(""), "c2")(errors.New("fail"))
	require.Equal(t, []string{
		"a:start:c1", "b:start:c1", "a:done", "b:done",
		"a:start:c2", "b:start:c2", "a:fail", "b:fail",
	}, calls)
	require.Nil(t, composed.OnBlobOpen)
}

func TestDriverComposePanicCallback(t *testing.T) {
	var recovered interface{}
	panicking := &Driver{
		OnConnClose: func(DriverConnCloseStartInfo) func(DriverConnCloseDoneInfo) {
			panic("boom")
		},
	}
	composed := panicking.Compose(nil, WithDriverPanicCallback(func(e interface{}) {
		recovered = e
	}))
	ctx := context.Background()
	require.NotPanics(t, func() {
		DriverOnConnClose(composed, &ctx, stack.FunctionID(""), "c")(nil)
	})
	require.Equal(t, "boom", recovered)
}
