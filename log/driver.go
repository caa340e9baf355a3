package log

import (
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

// Driver makes trace.Driver with logging events from details
func Driver(l Logger, d trace.Detailer, opts ...Option) (t trace.Driver) {
	return internalDriver(wrapLogger(l, opts...), d)
}

//nolint:funlen,gocyclo
func internalDriver(l *wrapper, d trace.Detailer) (t trace.Driver) {
	t.OnConnectorConnect = func(
		info trace.DriverConnectorConnectStartInfo,
	) func(
		trace.DriverConnectorConnectDoneInfo,
	) {
		if d.Details()&trace.ConnectorEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "connector", "connect")
		l.Log(ctx, "start")
		start := l.clock.Now()

		return func(info trace.DriverConnectorConnectDoneInfo) {
			if info.Error == nil {
				l.Log(WithLevel(ctx, DEBUG), "connected",
					latencyField(l.clock, start),
					String("conn_id", info.ConnID),
				)
			} else {
				l.Log(WithLevel(ctx, ERROR), "failed",
					Error(info.Error),
					latencyField(l.clock, start),
				)
			}
		}
	}
	t.OnConnectorClose = func(info trace.DriverConnectorCloseStartInfo) func(trace.DriverConnectorCloseDoneInfo) {
		if d.Details()&trace.ConnectorEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "connector", "close")
		l.Log(ctx, "start",
			Int("conns", info.Conns),
		)
		start := l.clock.Now()

		return func(info trace.DriverConnectorCloseDoneInfo) {
			if info.Error == nil {
				l.Log(WithLevel(ctx, INFO), "closed",
					latencyField(l.clock, start),
				)
			} else {
				l.Log(WithLevel(ctx, WARN), "failed",
					Error(info.Error),
					latencyField(l.clock, start),
				)
			}
		}
	}
	t.OnConnClose = func(info trace.DriverConnCloseStartInfo) func(trace.DriverConnCloseDoneInfo) {
		if d.Details()&trace.ConnEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "conn", "close")
		connID := info.ConnID
		l.Log(ctx, "start",
			String("conn_id", connID),
		)
		start := l.clock.Now()

		return func(info trace.DriverConnCloseDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "done",
					String("conn_id", connID),
					latencyField(l.clock, start),
				)
			} else {
				l.Log(WithLevel(ctx, WARN), "failed",
					String("conn_id", connID),
					Error(info.Error),
					latencyField(l.clock, start),
				)
			}
		}
	}
	t.OnTxBegin = func(info trace.DriverTxBeginStartInfo) func(trace.DriverTxBeginDoneInfo) {
		if d.Details()&trace.TxEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "tx", "begin")
		connID := info.ConnID
		l.Log(ctx, "start",
			String("conn_id", connID),
			String("mode", info.Mode),
		)
		start := l.clock.Now()

		return func(info trace.DriverTxBeginDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "done",
					String("conn_id", connID),
					latencyField(l.clock, start),
				)
			} else {
				l.Log(WithLevel(ctx, ERROR), "failed",
					String("conn_id", connID),
					Error(info.Error),
					latencyField(l.clock, start),
				)
			}
		}
	}
	t.OnTxCommit = func(info trace.DriverTxCommitStartInfo) func(trace.DriverTxCommitDoneInfo) {
		if d.Details()&trace.TxEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "tx", "commit")
		connID := info.ConnID
		l.Log(ctx, "start",
			String("conn_id", connID),
		)
		start := l.clock.Now()

		return func(info trace.DriverTxCommitDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "done",
					String("conn_id", connID),
					latencyField(l.clock, start),
				)
			} else {
				l.Log(WithLevel(ctx, ERROR), "failed",
					String("conn_id", connID),
					Error(info.Error),
					latencyField(l.clock, start),
				)
			}
		}
	}
	t.OnTxRollback = func(info trace.DriverTxRollbackStartInfo) func(trace.DriverTxRollbackDoneInfo) {
		if d.Details()&trace.TxEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "tx", "rollback")
		connID := info.ConnID
		l.Log(ctx, "start",
			String("conn_id", connID),
		)
		start := l.clock.Now()

		return func(info trace.DriverTxRollbackDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "done",
					String("conn_id", connID),
					latencyField(l.clock, start),
				)
			} else {
				l.Log(WithLevel(ctx, ERROR), "failed",
					String("conn_id", connID),
					Error(info.Error),
					latencyField(l.clock, start),
				)
			}
		}
	}
	t.OnCoordinatorSwitch = func(
		info trace.DriverCoordinatorSwitchStartInfo,
	) func(
		trace.DriverCoordinatorSwitchDoneInfo,
	) {
		if d.Details()&trace.CoordinatorEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, DEBUG, "fbsql", "tx", "coordinator", "switch")
		connID, from, to := info.ConnID, info.From, info.To
		start := l.clock.Now()

		return func(info trace.DriverCoordinatorSwitchDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "switched",
					String("conn_id", connID),
					String("from", from),
					String("to", to),
					latencyField(l.clock, start),
				)
			} else {
				l.Log(WithLevel(ctx, ERROR), "failed",
					String("conn_id", connID),
					String("from", from),
					String("to", to),
					Error(info.Error),
					latencyField(l.clock, start),
				)
			}
		}
	}
	t.OnImplicitTxEnsure = func(
		info trace.DriverImplicitTxEnsureStartInfo,
	) func(
		trace.DriverImplicitTxEnsureDoneInfo,
	) {
		if d.Details()&trace.CoordinatorEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "tx", "implicit", "ensure")
		connID := info.ConnID

		return func(info trace.DriverImplicitTxEnsureDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "done",
					String("conn_id", connID),
					Bool("opened", info.Opened),
					Int("count", info.Count),
				)
			} else {
				l.Log(WithLevel(ctx, ERROR), "failed",
					String("conn_id", connID),
					Error(info.Error),
				)
			}
		}
	}
	t.OnImplicitTxRelease = func(
		info trace.DriverImplicitTxReleaseStartInfo,
	) func(
		trace.DriverImplicitTxReleaseDoneInfo,
	) {
		if d.Details()&trace.CoordinatorEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "tx", "implicit", "release")
		connID, commit := info.ConnID, info.Commit

		return func(info trace.DriverImplicitTxReleaseDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "done",
					String("conn_id", connID),
					Bool("commit", commit),
					Bool("ended", info.Ended),
					Int("count", info.Count),
				)
			} else {
				l.Log(WithLevel(ctx, ERROR), "failed",
					String("conn_id", connID),
					Bool("commit", commit),
					Error(info.Error),
				)
			}
		}
	}
	t.OnStmtExecute = func(info trace.DriverStmtExecuteStartInfo) func(trace.DriverStmtExecuteDoneInfo) {
		if d.Details()&trace.StmtEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "stmt", "execute")
		query := info.Query
		fields := []Field{
			String("conn_id", info.ConnID),
			Int64("stmt_id", int64(info.StmtID)),
			String("kind", info.Kind),
		}
		l.Log(ctx, "start",
			appendFieldByCondition(l.logQuery,
				String("query", query),
				fields...,
			)...,
		)
		start := l.clock.Now()

		return func(info trace.DriverStmtExecuteDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "done",
					append(fields,
						Bool("has_rows", info.HasRows),
						Bool("cached", info.Cached),
						latencyField(l.clock, start),
					)...,
				)
			} else {
				l.Log(WithLevel(ctx, ERROR), "failed",
					appendFieldByCondition(l.logQuery,
						String("query", query),
						append(fields,
							Error(info.Error),
							latencyField(l.clock, start),
						)...,
					)...,
				)
			}
		}
	}
	t.OnStmtComplete = func(info trace.DriverStmtCompleteStartInfo) func(trace.DriverStmtCompleteDoneInfo) {
		if d.Details()&trace.StmtEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "stmt", "complete")
		stmtID, reason := info.StmtID, info.Reason

		return func(info trace.DriverStmtCompleteDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "done",
					Int64("stmt_id", int64(stmtID)),
					String("reason", reason),
				)
			} else {
				l.Log(WithLevel(ctx, ERROR), "failed",
					Int64("stmt_id", int64(stmtID)),
					String("reason", reason),
					Error(info.Error),
				)
			}
		}
	}
	t.OnStmtClose = func(info trace.DriverStmtCloseStartInfo) func(trace.DriverStmtCloseDoneInfo) {
		if d.Details()&trace.StmtEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "stmt", "close")
		stmtID := info.StmtID

		return func(info trace.DriverStmtCloseDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "done",
					Int64("stmt_id", int64(stmtID)),
				)
			} else {
				l.Log(WithLevel(ctx, WARN), "failed",
					Int64("stmt_id", int64(stmtID)),
					Error(info.Error),
				)
			}
		}
	}
	t.OnRowsMaterialize = func(info trace.DriverRowsMaterializeStartInfo) func(trace.DriverRowsMaterializeDoneInfo) {
		if d.Details()&trace.RowsEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "stmt", "rows", "materialize")
		stmtID := info.StmtID
		start := l.clock.Now()

		return func(info trace.DriverRowsMaterializeDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "done",
					Int64("stmt_id", int64(stmtID)),
					Int("rows", info.RowCount),
					latencyField(l.clock, start),
				)
			} else {
				l.Log(WithLevel(ctx, ERROR), "failed",
					Int64("stmt_id", int64(stmtID)),
					Error(info.Error),
					latencyField(l.clock, start),
				)
			}
		}
	}
	t.OnRowUpdaterExecute = func(
		info trace.DriverRowUpdaterExecuteStartInfo,
	) func(
		trace.DriverRowUpdaterExecuteDoneInfo,
	) {
		if d.Details()&trace.RowUpdaterEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "stmt", "rows", "updater", info.Operation)
		query := info.Query
		table := info.Table
		l.Log(ctx, "start",
			appendFieldByCondition(l.logQuery,
				String("query", query),
				String("table", table),
			)...,
		)
		start := l.clock.Now()

		return func(info trace.DriverRowUpdaterExecuteDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "done",
					String("table", table),
					latencyField(l.clock, start),
				)
			} else {
				l.Log(WithLevel(ctx, ERROR), "failed",
					appendFieldByCondition(l.logQuery,
						String("query", query),
						String("table", table),
						Error(info.Error),
						latencyField(l.clock, start),
					)...,
				)
			}
		}
	}
	t.OnBlobOpen = func(info trace.DriverBlobOpenStartInfo) func(trace.DriverBlobOpenDoneInfo) {
		if d.Details()&trace.BlobEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "blob", "open")
		write := info.Write
		start := l.clock.Now()

		return func(info trace.DriverBlobOpenDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "done",
					Int64("blob_id", int64(info.BlobID)),
					Bool("write", write),
					latencyField(l.clock, start),
				)
			} else {
				l.Log(WithLevel(ctx, ERROR), "failed",
					Bool("write", write),
					Error(info.Error),
					latencyField(l.clock, start),
				)
			}
		}
	}
	t.OnBlobSegmentRead = func(info trace.DriverBlobSegmentReadStartInfo) func(trace.DriverBlobSegmentReadDoneInfo) {
		if d.Details()&trace.BlobSegmentEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "blob", "segment", "read")
		blobID := info.BlobID

		return func(info trace.DriverBlobSegmentReadDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "done",
					Int64("blob_id", int64(blobID)),
					Int("size", info.Size),
					Bool("eof", info.EOF),
				)
			} else {
				l.Log(WithLevel(ctx, ERROR), "failed",
					Int64("blob_id", int64(blobID)),
					Error(info.Error),
				)
			}
		}
	}
	t.OnBlobSegmentWrite = func(
		info trace.DriverBlobSegmentWriteStartInfo,
	) func(
		trace.DriverBlobSegmentWriteDoneInfo,
	) {
		if d.Details()&trace.BlobSegmentEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "blob", "segment", "write")
		blobID, size := info.BlobID, info.Size

		return func(info trace.DriverBlobSegmentWriteDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "done",
					Int64("blob_id", int64(blobID)),
					Int("size", size),
				)
			} else {
				l.Log(WithLevel(ctx, ERROR), "failed",
					Int64("blob_id", int64(blobID)),
					Int("size", size),
					Error(info.Error),
				)
			}
		}
	}
	t.OnBlobClose = func(info trace.DriverBlobCloseStartInfo) func(trace.DriverBlobCloseDoneInfo) {
		if d.Details()&trace.BlobEvents == 0 {
			return nil
		}
		ctx := with(*info.Context, TRACE, "fbsql", "blob", "close")
		blobID := info.BlobID

		return func(info trace.DriverBlobCloseDoneInfo) {
			if info.Error == nil {
				l.Log(ctx, "done",
					Int64("blob_id", int64(blobID)),
				)
			} else {
				l.Log(WithLevel(ctx, WARN), "failed",
					Int64("blob_id", int64(blobID)),
					Error(info.Error),
				)
			}
		}
	}

	return t
}
