package rowupdater

import (
	"context"
	"strings"

	"github.com/FirebirdSQL/jaybird-sub009/internal/stack"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

// refreshFetchSize is large enough to notice a key that matches several rows.
const refreshFetchSize = 10

// keyColumns resolves the row identifying columns once. The result, error
// included, is kept for the lifetime of the updater.
func (u *Updater) keyColumns(ctx context.Context, tx wire.Transaction) ([]int, error) {
	if u.resolved {
		return u.keys, u.keysErr
	}
	identifier, err := u.session.Attachment().BestRowIdentifier(ctx, tx, u.table)
	if err != nil {
		return nil, xerrors.WithStackTrace(xerrors.Transport(err))
	}
	u.resolved = true
	u.keys = u.matchIdentifier(identifier)
	if len(u.keys) == 0 {
		u.keys = u.dbKey()
	}
	if len(u.keys) == 0 {
		u.keysErr = xerrors.WithStackTrace(xerrors.NotUpdatable(errNoRowIdentifier))
	}

	return u.keys, u.keysErr
}

// matchIdentifier maps the best row identifier onto the projection. It
// returns nil unless every identifier column is projected.
func (u *Updater) matchIdentifier(identifier []wire.RowIdentifierColumn) []int {
	keys := make([]int, 0, len(identifier))
	for _, column := range identifier {
		found := -1
		for i, fd := range u.fields {
			if (column.Pseudo || strings.EqualFold(column.Name, wire.DBKeyColumn)) && fd.IsDBKey() {
				return []int{i}
			}
			if column.Name == fd.OriginalName {
				found = i

				break
			}
		}
		if found < 0 {
			return nil
		}
		keys = append(keys, found)
	}

	return keys
}

func (u *Updater) dbKey() []int {
	for i, fd := range u.fields {
		if fd.IsDBKey() {
			return []int{i}
		}
	}

	return nil
}

func (u *Updater) checkPosition(op operation) error {
	if u.closed {
		return xerrors.WithStackTrace(xerrors.Usage(errClosed), xerrors.WithSkipDepth(1))
	}
	if op == operationInsert {
		if !u.inserting {
			return xerrors.WithStackTrace(xerrors.Usage(errNotOnInsertRow), xerrors.WithSkipDepth(1))
		}

		return nil
	}
	if u.inserting {
		return xerrors.WithStackTrace(xerrors.Usage(errOnInsertRow), xerrors.WithSkipDepth(1))
	}
	if u.old == nil {
		return xerrors.WithStackTrace(xerrors.Usage(errNotOnRow), xerrors.WithSkipDepth(1))
	}

	return nil
}

// statement returns the handle for op bound to tx, allocating it on first use.
func (u *Updater) statement(ctx context.Context, op operation, tx wire.Transaction) (wire.Statement, error) {
	if stmt := u.stmts[op]; stmt != nil {
		stmt.SetTransaction(tx)

		return stmt, nil
	}
	stmt, err := u.session.Attachment().AllocateStatement(ctx)
	if err != nil {
		return nil, xerrors.WithStackTrace(xerrors.Transport(err))
	}
	u.stmts[op] = stmt

	return stmt, nil
}

// flush writes deferred stream payloads and returns the pending row they
// produce. The updater state is not touched.
func (u *Updater) flush(ctx context.Context) (wire.Row, error) {
	if len(u.streams) == 0 {
		return u.pending, nil
	}
	pending := u.pending.Clone()
	for i, r := range u.streams {
		data, err := u.session.WriteBlob(ctx, r)
		if err != nil {
			return nil, xerrors.WithStackTrace(err)
		}
		pending[i] = data
	}

	return pending, nil
}

// run executes op inside one updater execution. fn, when set, runs on the
// executed statement before the execution counts as successful.
func (u *Updater) run(ctx context.Context, op operation, fn func(stmt wire.Statement) error) (finalErr error) {
	if err := u.checkPosition(op); err != nil {
		return err
	}
	tx, err := u.session.ExecutionStarted(ctx)
	if err != nil {
		return xerrors.WithStackTrace(err)
	}
	success := false
	defer func() {
		finalErr = xerrors.Join(finalErr, u.session.ExecutionCompleted(ctx, success))
	}()

	var keys []int
	if op != operationInsert {
		keys, err = u.keyColumns(ctx, tx)
		if err != nil {
			return err
		}
	}
	pending, err := u.flush(ctx)
	if err != nil {
		return err
	}
	query := u.build(op, keys)

	onDone := trace.DriverOnRowUpdaterExecute(u.trace, &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/rowupdater.(*Updater).run"),
		u.table, op.String(), query,
	)
	defer func() {
		onDone(finalErr)
	}()

	stmt, err := u.statement(ctx, op, tx)
	if err != nil {
		return err
	}
	if err = stmt.Prepare(ctx, tx, query); err != nil {
		return xerrors.WithStackTrace(xerrors.Transport(err))
	}
	if _, err = stmt.Execute(ctx, u.params(op, keys, pending), false); err != nil {
		return xerrors.WithStackTrace(xerrors.Transport(err))
	}
	if fn != nil {
		if err = fn(stmt); err != nil {
			return err
		}
	}
	success = true
	u.apply(op, pending)

	return nil
}

// apply moves the virtual rows forward after op succeeded.
func (u *Updater) apply(op operation, pending wire.Row) {
	switch op {
	case operationUpdate:
		row := u.old.Clone()
		for _, pos := range u.assigned() {
			row[pos] = pending[pos]
		}
		u.old = row
	case operationDelete:
		u.old = nil
	case operationInsert, operationSelect:
	}
	u.reset()
}

// UpdateRow writes the pending changes of the current row to the table.
// Without pending changes nothing is executed.
func (u *Updater) UpdateRow(ctx context.Context) error {
	if err := u.checkPosition(operationUpdate); err != nil {
		return err
	}
	if len(u.assigned()) == 0 {
		return nil
	}

	return u.run(ctx, operationUpdate, nil)
}

func (u *Updater) DeleteRow(ctx context.Context) error {
	return u.run(ctx, operationDelete, nil)
}

// InsertRow inserts the insert row. Only columns that were written are listed.
func (u *Updater) InsertRow(ctx context.Context) error {
	return u.run(ctx, operationInsert, nil)
}

// RefreshRow reloads the current row from the table. The key must match
// exactly one row.
func (u *Updater) RefreshRow(ctx context.Context) error {
	var row wire.Row

	err := u.run(ctx, operationSelect, func(stmt wire.Statement) (finalErr error) {
		defer func() {
			if err := stmt.CloseCursor(ctx); err != nil {
				finalErr = xerrors.Join(finalErr, xerrors.Transport(err))
			}
		}()
		rows, _, err := stmt.Fetch(ctx, refreshFetchSize)
		if err != nil {
			return xerrors.WithStackTrace(xerrors.Transport(err))
		}
		switch len(rows) {
		case 0:
			return xerrors.WithStackTrace(xerrors.Usage(errNoRowsFetched))
		case 1:
			row = rows[0]

			return nil
		default:
			return xerrors.WithStackTrace(xerrors.Usage(errTooManyRows))
		}
	})
	if err != nil {
		return err
	}
	u.SetRow(row)

	return nil
}

// Close deallocates the statement handles. Every handle is closed and all
// failures are returned joined.
func (u *Updater) Close(ctx context.Context) error {
	u.closed = true
	var errs []error
	for i, stmt := range u.stmts {
		if stmt == nil {
			continue
		}
		if err := stmt.Close(ctx, true); err != nil {
			errs = append(errs, xerrors.Transport(err))
		}
		u.stmts[i] = nil
	}

	return xerrors.WithStackTrace(xerrors.Join(errs...))
}
