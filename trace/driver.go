package trace

import (
	"context"

	"github.com/FirebirdSQL/jaybird-sub009/internal/stack"
)

type (
	// Driver specified trace of driver core activity: connections, transaction
	// coordination, statement execution, updatable cursors and large objects.
	// gtrace:gen
	Driver struct {
		OnConnectorConnect func(DriverConnectorConnectStartInfo) func(DriverConnectorConnectDoneInfo)
		OnConnectorClose   func(DriverConnectorCloseStartInfo) func(DriverConnectorCloseDoneInfo)

		OnConnClose func(DriverConnCloseStartInfo) func(DriverConnCloseDoneInfo)

		OnTxBegin    func(DriverTxBeginStartInfo) func(DriverTxBeginDoneInfo)
		OnTxCommit   func(DriverTxCommitStartInfo) func(DriverTxCommitDoneInfo)
		OnTxRollback func(DriverTxRollbackStartInfo) func(DriverTxRollbackDoneInfo)

		OnCoordinatorSwitch func(DriverCoordinatorSwitchStartInfo) func(DriverCoordinatorSwitchDoneInfo)
		OnImplicitTxEnsure  func(DriverImplicitTxEnsureStartInfo) func(DriverImplicitTxEnsureDoneInfo)
		OnImplicitTxRelease func(DriverImplicitTxReleaseStartInfo) func(DriverImplicitTxReleaseDoneInfo)

		OnStmtExecute  func(DriverStmtExecuteStartInfo) func(DriverStmtExecuteDoneInfo)
		OnStmtComplete func(DriverStmtCompleteStartInfo) func(DriverStmtCompleteDoneInfo)
		OnStmtClose    func(DriverStmtCloseStartInfo) func(DriverStmtCloseDoneInfo)

		OnRowsMaterialize func(DriverRowsMaterializeStartInfo) func(DriverRowsMaterializeDoneInfo)

		OnRowUpdaterExecute func(DriverRowUpdaterExecuteStartInfo) func(DriverRowUpdaterExecuteDoneInfo)

		OnBlobOpen         func(DriverBlobOpenStartInfo) func(DriverBlobOpenDoneInfo)
		OnBlobSegmentRead  func(DriverBlobSegmentReadStartInfo) func(DriverBlobSegmentReadDoneInfo)
		OnBlobSegmentWrite func(DriverBlobSegmentWriteStartInfo) func(DriverBlobSegmentWriteDoneInfo)
		OnBlobClose        func(DriverBlobCloseStartInfo) func(DriverBlobCloseDoneInfo)
	}

	DriverConnectorConnectStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
	}
	DriverConnectorConnectDoneInfo struct {
		ConnID string
		Error  error
	}
	DriverConnectorCloseStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		Conns   int
	}
	DriverConnectorCloseDoneInfo struct {
		Error error
	}
	DriverConnCloseStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		ConnID  string
	}
	DriverConnCloseDoneInfo struct {
		Error error
	}
	DriverTxBeginStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		ConnID  string
		Mode    string
	}
	DriverTxBeginDoneInfo struct {
		Error error
	}
	DriverTxCommitStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		ConnID  string
	}
	DriverTxCommitDoneInfo struct {
		Error error
	}
	DriverTxRollbackStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		ConnID  string
	}
	DriverTxRollbackDoneInfo struct {
		Error error
	}
	DriverCoordinatorSwitchStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		ConnID  string
		From    string
		To      string
	}
	DriverCoordinatorSwitchDoneInfo struct {
		Error error
	}
	DriverImplicitTxEnsureStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		ConnID  string
	}
	DriverImplicitTxEnsureDoneInfo struct {
		Opened bool
		Count  int
		Error  error
	}
	DriverImplicitTxReleaseStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		ConnID  string
		Commit  bool
	}
	DriverImplicitTxReleaseDoneInfo struct {
		Ended bool
		Count int
		Error error
	}
	DriverStmtExecuteStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		ConnID  string
		StmtID  uint64
		Kind    string
		Query   string
	}
	DriverStmtExecuteDoneInfo struct {
		HasRows bool
		Cached  bool
		Error   error
	}
	DriverStmtCompleteStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		StmtID  uint64
		Reason  string
	}
	DriverStmtCompleteDoneInfo struct {
		Error error
	}
	DriverStmtCloseStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		StmtID  uint64
	}
	DriverStmtCloseDoneInfo struct {
		Error error
	}
	DriverRowsMaterializeStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		StmtID  uint64
	}
	DriverRowsMaterializeDoneInfo struct {
		RowCount int
		Error    error
	}
	DriverRowUpdaterExecuteStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context   *context.Context
		Call      call
		Table     string
		Operation string
		Query     string
	}
	DriverRowUpdaterExecuteDoneInfo struct {
		Error error
	}
	DriverBlobOpenStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		BlobID  uint64
		Write   bool
	}
	DriverBlobOpenDoneInfo struct {
		BlobID uint64
		Error  error
	}
	DriverBlobSegmentReadStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		BlobID  uint64
		Max     int
	}
	DriverBlobSegmentReadDoneInfo struct {
		Size  int
		EOF   bool
		Error error
	}
	DriverBlobSegmentWriteStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		BlobID  uint64
		Size    int
	}
	DriverBlobSegmentWriteDoneInfo struct {
		Error error
	}
	DriverBlobCloseStartInfo struct {
		// Context make available context in trace callback function.
		// Pointer to context provide replacement of context in trace callback function.
		// Warning: concurrent access to pointer on client side must be excluded.
		// Safe replacement of context are provided only inside callback function
		Context *context.Context
		Call    call
		BlobID  uint64
	}
	DriverBlobCloseDoneInfo struct {
		Error error
	}
)

type call = stack.Caller
