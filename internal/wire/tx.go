package wire

import (
	"fmt"
)

type Isolation uint8

const (
	// IsolationReadCommitted sees changes committed by other transactions.
	IsolationReadCommitted Isolation = iota
	// IsolationSnapshot reads a stable snapshot taken at transaction start.
	IsolationSnapshot
	// IsolationSnapshotTableStability also locks the tables it reads.
	IsolationSnapshotTableStability
)

func (i Isolation) String() string {
	switch i {
	case IsolationReadCommitted:
		return "read_committed"
	case IsolationSnapshot:
		return "snapshot"
	case IsolationSnapshotTableStability:
		return "snapshot_table_stability"
	default:
		return fmt.Sprintf("unknown_isolation(%d)", i)
	}
}

// TxParameters are the parameters of a physical transaction.
type TxParameters struct {
	Isolation Isolation
	ReadOnly  bool
	Wait      bool
}

func DefaultTxParameters() TxParameters {
	return TxParameters{
		Isolation: IsolationReadCommitted,
		Wait:      true,
	}
}
