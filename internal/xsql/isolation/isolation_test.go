package isolation

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
)

func TestToWire(t *testing.T) {
	for _, tt := range []struct {
		txOptions driver.TxOptions
		params    wire.TxParameters
		err       bool
	}{
		{
			txOptions: driver.TxOptions{
				Isolation: driver.IsolationLevel(sql.LevelDefault),
			},
			params: wire.TxParameters{Isolation: wire.IsolationReadCommitted, Wait: true},
		},
		{
			txOptions: driver.TxOptions{
				Isolation: driver.IsolationLevel(sql.LevelReadUncommitted),
			},
			params: wire.TxParameters{Isolation: wire.IsolationReadCommitted, Wait: true},
		},
		{
			txOptions: driver.TxOptions{
				Isolation: driver.IsolationLevel(sql.LevelReadCommitted),
				ReadOnly:  true,
			},
			params: wire.TxParameters{Isolation: wire.IsolationReadCommitted, ReadOnly: true, Wait: true},
		},
		{
			txOptions: driver.TxOptions{
				Isolation: driver.IsolationLevel(sql.LevelWriteCommitted),
			},
			err: true,
		},
		{
			txOptions: driver.TxOptions{
				Isolation: driver.IsolationLevel(sql.LevelRepeatableRead),
			},
			params: wire.TxParameters{Isolation: wire.IsolationSnapshot, Wait: true},
		},
		{
			txOptions: driver.TxOptions{
				Isolation: driver.IsolationLevel(sql.LevelSnapshot),
				ReadOnly:  true,
			},
			params: wire.TxParameters{Isolation: wire.IsolationSnapshot, ReadOnly: true, Wait: true},
		},
		{
			txOptions: driver.TxOptions{
				Isolation: driver.IsolationLevel(sql.LevelSerializable),
			},
			params: wire.TxParameters{Isolation: wire.IsolationSnapshotTableStability, Wait: true},
		},
		{
			txOptions: driver.TxOptions{
				Isolation: driver.IsolationLevel(sql.LevelLinearizable),
			},
			params: wire.TxParameters{Isolation: wire.IsolationSnapshotTableStability, Wait: true},
		},
	} {
		t.Run(fmt.Sprintf("%+v", tt.txOptions), func(t *testing.T) {
			params, err := ToWire(tt.txOptions)
			if tt.err {
				require.Error(t, err)
				require.True(t, xerrors.IsUsage(err))
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.params, params)
			}
		})
	}
}

func TestFromWire(t *testing.T) {
	for _, tt := range []struct {
		params    wire.TxParameters
		txOptions *sql.TxOptions
		err       bool
	}{
		{
			params:    wire.DefaultTxParameters(),
			txOptions: &sql.TxOptions{Isolation: sql.LevelReadCommitted},
		},
		{
			params:    wire.TxParameters{Isolation: wire.IsolationSnapshot, ReadOnly: true},
			txOptions: &sql.TxOptions{Isolation: sql.LevelSnapshot, ReadOnly: true},
		},
		{
			params:    wire.TxParameters{Isolation: wire.IsolationSnapshotTableStability},
			txOptions: &sql.TxOptions{Isolation: sql.LevelSerializable},
		},
		{
			params: wire.TxParameters{Isolation: wire.Isolation(42)},
			err:    true,
		},
	} {
		t.Run(tt.params.Isolation.String(), func(t *testing.T) {
			txOptions, err := FromWire(tt.params)
			if tt.err {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.txOptions, txOptions)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, level := range []sql.IsolationLevel{
		sql.LevelReadCommitted,
		sql.LevelSnapshot,
		sql.LevelSerializable,
	} {
		t.Run(level.String(), func(t *testing.T) {
			params, err := ToWire(driver.TxOptions{Isolation: driver.IsolationLevel(level)})
			require.NoError(t, err)
			txOptions, err := FromWire(params)
			require.NoError(t, err)
			require.Equal(t, level, txOptions.Isolation)
		})
	}
}
