package xsql

import (
	"context"
	"database/sql/driver"
	"io"

	"github.com/FirebirdSQL/jaybird-sub009/internal/rowupdater"
	"github.com/FirebirdSQL/jaybird-sub009/internal/stack"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

var (
	_ driver.Rows                           = (*Rows)(nil)
	_ driver.RowsColumnTypeDatabaseTypeName = (*Rows)(nil)
	_ driver.RowsColumnTypeNullable         = (*Rows)(nil)
)

// Rows is the result of a statement. A live result fetches from the open
// cursor in batches of the configured fetch size; a cached result holds every
// row in memory and no longer needs the transaction.
type Rows struct {
	conn *Conn
	stmt *Stmt
	ctx  context.Context //nolint:containedctx

	fields  []wire.FieldDescriptor
	buffer  []wire.Row
	current wire.Row

	cursorOpen   bool
	exhausted    bool
	completed    bool
	materialized bool
	closed       bool
	ownsStmt     bool
	// the transaction ended before the result was read to its end
	interrupted bool

	updater *RowUpdater
}

func newLiveRows(ctx context.Context, s *Stmt, fields []wire.FieldDescriptor) *Rows {
	return &Rows{
		conn:       s.conn,
		stmt:       s,
		ctx:        context.WithoutCancel(ctx),
		fields:     fields,
		cursorOpen: true,
	}
}

func newCachedRows(ctx context.Context, s *Stmt, fields []wire.FieldDescriptor, rows []wire.Row) *Rows {
	return &Rows{
		conn:         s.conn,
		stmt:         s,
		ctx:          context.WithoutCancel(ctx),
		fields:       fields,
		buffer:       rows,
		exhausted:    true,
		completed:    true,
		materialized: true,
	}
}

// Cached reports whether every row is held in memory.
func (r *Rows) Cached() bool {
	r.conn.mu.Lock()
	defer r.conn.mu.Unlock()

	return r.materialized
}

func (r *Rows) Columns() []string {
	names := make([]string, len(r.fields))
	for i, fd := range r.fields {
		names[i] = fd.Name
	}

	return names
}

func (r *Rows) ColumnTypeDatabaseTypeName(index int) string {
	return r.fields[index].Type.String()
}

func (r *Rows) ColumnTypeNullable(index int) (nullable, ok bool) {
	return r.fields[index].Nullable, true
}

func (r *Rows) Next(dest []driver.Value) error {
	r.conn.mu.Lock()
	defer r.conn.mu.Unlock()

	if r.closed {
		return xerrors.WithStackTrace(xerrors.Usage(errRowsClosed))
	}
	if r.interrupted {
		return xerrors.WithStackTrace(xerrors.Usage(errResultInterrupted))
	}
	r.conn.touch()

	if len(r.buffer) == 0 && r.cursorOpen && !r.exhausted {
		if err := r.fetch(r.ctx); err != nil {
			return xerrors.BadConn(xerrors.Join(err, r.finish(r.ctx, false)), r.conn)
		}
	}
	if len(r.buffer) == 0 {
		r.position(nil)
		if err := r.finish(r.ctx, true); err != nil {
			return xerrors.BadConn(err, r.conn)
		}

		return io.EOF
	}

	r.position(r.buffer[0])
	r.buffer = r.buffer[1:]

	return r.conn.toValues(r.fields, r.current, r.materialized, dest)
}

// position moves the result and its updater onto row; nil is past the end.
func (r *Rows) position(row wire.Row) {
	r.current = row
	if r.updater != nil {
		r.updater.u.SetRow(row)
	}
}

// interrupt drops the unread rows of a result whose transaction ended.
func (r *Rows) interrupt() {
	r.buffer = nil
	r.position(nil)
	r.cursorOpen = false
	r.completed = true
	r.interrupted = true
}

func (r *Rows) fetch(ctx context.Context) error {
	rows, done, err := r.stmt.handle.Fetch(ctx, r.conn.connector.config.FetchSize())
	if err != nil {
		return xerrors.WithStackTrace(xerrors.Transport(err))
	}
	r.buffer = append(r.buffer, rows...)
	r.exhausted = done

	return nil
}

func (r *Rows) closeCursor(ctx context.Context) error {
	if !r.cursorOpen {
		return nil
	}
	r.cursorOpen = false

	return xerrors.WithStackTrace(xerrors.Transport(r.stmt.handle.CloseCursor(ctx)))
}

// finish closes the cursor and reports the statement as completed.
func (r *Rows) finish(ctx context.Context, success bool) error {
	if r.completed {
		return nil
	}
	r.completed = true
	err := r.closeCursor(ctx)

	return xerrors.Join(err, r.conn.coordinator.StatementCompleted(ctx, r.stmt.id, success && err == nil))
}

// materialize fetches the remaining rows and replaces large object locators
// with their content, so that the result outlives the transaction.
func (r *Rows) materialize(ctx context.Context) (finalErr error) {
	var rowCount int
	onDone := trace.DriverOnRowsMaterialize(r.conn.trace(), &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/xsql.(*Rows).materialize"),
		uint64(r.stmt.id),
	)
	defer func() {
		onDone(rowCount, finalErr)
	}()

	for r.cursorOpen && !r.exhausted {
		if err := r.fetch(ctx); err != nil {
			return err
		}
	}
	if err := r.closeCursor(ctx); err != nil {
		return err
	}
	for _, row := range r.buffer {
		for i, fd := range r.fields {
			if !fd.IsBlob() || i >= len(row) || row[i] == nil {
				continue
			}
			id, err := wire.DecodeBlobID(row[i])
			if err != nil {
				return xerrors.WithStackTrace(err)
			}
			data, err := r.conn.newBlob(id).blob.ReadAll(ctx)
			if err != nil {
				return err
			}
			row[i] = data
		}
	}
	r.exhausted = true
	r.completed = true
	r.materialized = true
	rowCount = len(r.buffer)

	return nil
}

func (r *Rows) closeUpdater(ctx context.Context) error {
	if r.updater == nil {
		return nil
	}
	err := r.updater.u.Close(ctx)
	r.updater = nil

	return err
}

func (r *Rows) close(ctx context.Context) error {
	if r.closed {
		return nil
	}
	r.closed = true
	errs := []error{
		r.closeUpdater(ctx),
		r.finish(ctx, true),
	}
	if r.stmt.rows == r {
		r.stmt.rows = nil
	}
	if r.ownsStmt {
		errs = append(errs, r.conn.closeStmt(ctx, r.stmt))
	}

	return xerrors.Join(errs...)
}

func (r *Rows) Close() error {
	r.conn.mu.Lock()
	defer r.conn.mu.Unlock()

	return r.close(r.ctx)
}

// Updater returns the updater of the result. It fails with a not-updatable
// error unless every column comes from one table.
func (r *Rows) Updater() (*RowUpdater, error) {
	r.conn.mu.Lock()
	defer r.conn.mu.Unlock()

	if r.closed {
		return nil, xerrors.WithStackTrace(xerrors.Usage(errRowsClosed))
	}
	if r.updater != nil {
		return r.updater, nil
	}
	cfg := r.conn.connector.config
	u, err := rowupdater.New(updaterSession{conn: r.conn}, r.fields,
		rowupdater.WithQuoteStrategy(cfg.QuoteStrategy()),
		rowupdater.WithCoder(r.conn.connector.coder),
		rowupdater.WithTrace(cfg.Trace()),
	)
	if err != nil {
		return nil, err
	}
	if r.current != nil {
		u.SetRow(r.current)
	}
	r.updater = &RowUpdater{conn: r.conn, fields: r.fields, u: u}

	return r.updater, nil
}
