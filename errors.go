package fbsql

import (
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
)

// IsUsageError reports whether err was caused by calling the driver in a state
// that does not allow the call.
func IsUsageError(err error) bool {
	return xerrors.IsUsage(err)
}

// IsNotUpdatableError reports whether err was returned because a result
// cannot be changed through a RowUpdater.
func IsNotUpdatableError(err error) bool {
	return xerrors.IsNotUpdatable(err)
}

func IsTransportError(err error) bool {
	return xerrors.IsTransport(err)
}

// IsIOError reports whether err came from reading or writing a blob stream.
func IsIOError(err error) bool {
	return xerrors.IsIO(err)
}
