package tx

import (
	"fmt"
)

// Mode selects the policy governing when the physical transaction begins and ends.
type Mode uint8

const (
	// ModeAutoCommit ends the transaction as soon as the only active statement completes.
	ModeAutoCommit = Mode(iota)
	// ModeLocal leaves the transaction open until it is committed or rolled back explicitly.
	ModeLocal
	// ModeManaged leaves the transaction lifetime to an external coordinator.
	ModeManaged
	// ModeDisabled fails every operation. Installed when the connection closes.
	ModeDisabled
)

func (m Mode) String() string {
	switch m {
	case ModeAutoCommit:
		return "AUTOCOMMIT"
	case ModeLocal:
		return "LOCAL"
	case ModeManaged:
		return "MANAGED"
	case ModeDisabled:
		return "DISABLED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", m)
	}
}

// Completion is the reason a statement is completed by the coordinator.
type Completion uint8

const (
	CompletionCommit = Completion(iota)
	CompletionRollback
	CompletionClose
	CompletionAbort
)

func (c Completion) String() string {
	switch c {
	case CompletionCommit:
		return "commit"
	case CompletionRollback:
		return "rollback"
	case CompletionClose:
		return "close"
	case CompletionAbort:
		return "abort"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// StatementID identifies a statement in the registry of its connection.
type StatementID uint64
