package isolation

import (
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
)

// ToWire maps driver transaction options to physical transaction parameters.
// It returns error on unsupported options.
func ToWire(opts driver.TxOptions) (params wire.TxParameters, err error) {
	params = wire.DefaultTxParameters()
	params.ReadOnly = opts.ReadOnly

	level := sql.IsolationLevel(opts.Isolation)
	switch level {
	case sql.LevelDefault,
		sql.LevelReadUncommitted,
		sql.LevelReadCommitted:
		params.Isolation = wire.IsolationReadCommitted
	case sql.LevelRepeatableRead,
		sql.LevelSnapshot:
		params.Isolation = wire.IsolationSnapshot
	case sql.LevelSerializable,
		sql.LevelLinearizable:
		params.Isolation = wire.IsolationSnapshotTableStability
	default:
		return params, xerrors.WithStackTrace(xerrors.Usage(fmt.Errorf(
			"unsupported transaction options: isolation=%s read_only=%t",
			nameIsolationLevel(level), opts.ReadOnly,
		)))
	}

	return params, nil
}

func nameIsolationLevel(x sql.IsolationLevel) string {
	if int(x) < len(isolationLevelName) {
		return isolationLevelName[x]
	}

	return "unknown_isolation"
}

var isolationLevelName = [...]string{
	sql.LevelDefault:         "default",
	sql.LevelReadUncommitted: "read_uncommitted",
	sql.LevelReadCommitted:   "read_committed",
	sql.LevelWriteCommitted:  "write_committed",
	sql.LevelRepeatableRead:  "repeatable_read",
	sql.LevelSnapshot:        "snapshot",
	sql.LevelSerializable:    "serializable",
	sql.LevelLinearizable:    "linearizable",
}

// FromWire maps physical transaction parameters to driver transaction options.
func FromWire(params wire.TxParameters) (*sql.TxOptions, error) {
	txOptions := &sql.TxOptions{
		ReadOnly: params.ReadOnly,
	}
	switch params.Isolation {
	case wire.IsolationReadCommitted:
		txOptions.Isolation = sql.LevelReadCommitted
	case wire.IsolationSnapshot:
		txOptions.Isolation = sql.LevelSnapshot
	case wire.IsolationSnapshotTableStability:
		txOptions.Isolation = sql.LevelSerializable
	default:
		return nil, xerrors.WithStackTrace(fmt.Errorf(
			"unsupported transaction parameters: isolation=%s", params.Isolation,
		))
	}

	return txOptions, nil
}
