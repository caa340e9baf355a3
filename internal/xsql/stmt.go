package xsql

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/FirebirdSQL/jaybird-sub009/internal/stack"
	"github.com/FirebirdSQL/jaybird-sub009/internal/tx"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

var (
	_ driver.Stmt              = (*Stmt)(nil)
	_ driver.StmtExecContext   = (*Stmt)(nil)
	_ driver.StmtQueryContext  = (*Stmt)(nil)
	_ driver.NamedValueChecker = (*Stmt)(nil)
	_ driver.Result            = result{}
)

type stmtKind uint8

const (
	stmtPlain = stmtKind(iota)
	stmtPrepared
	stmtCallable
)

func (k stmtKind) String() string {
	switch k {
	case stmtPlain:
		return "plain"
	case stmtPrepared:
		return "prepared"
	case stmtCallable:
		return "callable"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

func kindOf(query string) stmtKind {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "EXECUTE PROCEDURE") {
		return stmtCallable
	}

	return stmtPlain
}

type result struct {
	rowsAffected int64
}

func (r result) LastInsertId() (int64, error) {
	return 0, xerrors.WithStackTrace(xerrors.Usage(errLastInsertIDMissing))
}

func (r result) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}

// Stmt is a statement of a connection. Every execution is announced to the
// transaction coordinator under the statement id.
type Stmt struct {
	conn  *Conn
	id    tx.StatementID
	query string
	kind  stmtKind

	handle   wire.Statement
	prepared bool
	tx       wire.Transaction

	rows *Rows

	output     wire.Row
	outFields  []wire.FieldDescriptor
	registered []int

	closed bool
}

func (s *Stmt) ID() tx.StatementID {
	return s.id
}

func (s *Stmt) NumInput() int {
	return -1
}

func (s *Stmt) CheckNamedValue(v *driver.NamedValue) error {
	return checkNamedValue(v)
}

func (s *Stmt) Close() error {
	s.conn.mu.Lock()
	defer s.conn.mu.Unlock()

	return s.conn.closeStmt(context.Background(), s)
}

func (s *Stmt) Exec(args []driver.Value) (driver.Result, error) {
	return nil, errDeprecated
}

func (s *Stmt) Query(args []driver.Value) (driver.Rows, error) {
	return nil, errDeprecated
}

func (s *Stmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	s.conn.mu.Lock()
	defer s.conn.mu.Unlock()

	if err := s.conn.check(); err != nil {
		return nil, err
	}
	res, err := s.exec(ctx, args)
	if err != nil {
		return nil, xerrors.BadConn(err, s.conn)
	}

	return res, nil
}

func (s *Stmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	s.conn.mu.Lock()
	defer s.conn.mu.Unlock()

	if err := s.conn.check(); err != nil {
		return nil, err
	}
	rows, err := s.queryRows(ctx, args)
	if err != nil {
		return nil, xerrors.BadConn(err, s.conn)
	}

	return rows, nil
}

// RegisterOutParameter marks parameter i (1-based) of a procedure call as an
// output parameter. Output values are numbered in registration order.
func (s *Stmt) RegisterOutParameter(i int) error {
	s.conn.mu.Lock()
	defer s.conn.mu.Unlock()

	if s.kind != stmtCallable {
		return xerrors.WithStackTrace(xerrors.Usage(errNotCallable))
	}
	if i < 1 {
		return xerrors.WithStackTrace(xerrors.Usage(fmt.Errorf("parameter index must be 1 or greater, got %d", i)))
	}
	for _, r := range s.registered {
		if r == i {
			return nil
		}
	}
	s.registered = append(s.registered, i)

	return nil
}

// OutParameter returns the value of output parameter i (1-based) of the last
// execution.
func (s *Stmt) OutParameter(i int) (driver.Value, error) {
	s.conn.mu.Lock()
	defer s.conn.mu.Unlock()

	if s.kind != stmtCallable {
		return nil, xerrors.WithStackTrace(xerrors.Usage(errNotCallable))
	}
	if s.output == nil {
		return nil, xerrors.WithStackTrace(xerrors.Usage(errNoOutput))
	}
	pos := -1
	for p, r := range s.registered {
		if r == i {
			pos = p

			break
		}
	}
	if pos < 0 {
		if !s.conn.connector.config.OutputParameterFallback() {
			return nil, xerrors.WithStackTrace(xerrors.Usage(fmt.Errorf(
				"parameter %d was not registered as output parameter", i,
			)))
		}
		pos = i - 1
	}
	if pos < 0 || pos >= len(s.output) {
		return nil, xerrors.WithStackTrace(xerrors.Usage(fmt.Errorf(
			"output parameter %d out of range, the call returned %d values", i, len(s.output),
		)))
	}
	fd := wire.FieldDescriptor{Type: wire.TypeUnknown}
	if pos < len(s.outFields) {
		fd = s.outFields[pos]
	}
	dest := make([]driver.Value, 1)
	if err := s.conn.toValues([]wire.FieldDescriptor{fd}, wire.Row{s.output[pos]}, false, dest); err != nil {
		return nil, err
	}

	return dest[0], nil
}

// release drops the result of a previous execution without notifying the
// coordinator. The statement is about to execute again.
func (s *Stmt) release(ctx context.Context) error {
	rows := s.rows
	if rows == nil {
		return nil
	}
	s.rows = nil
	err := xerrors.Join(rows.closeUpdater(ctx), rows.closeCursor(ctx))
	rows.completed = true
	rows.closed = true

	return err
}

// prepare allocates and prepares the handle on first use and rebinds it to t
// when the transaction changed since.
func (s *Stmt) prepare(ctx context.Context, t wire.Transaction) error {
	if s.handle == nil {
		handle, err := s.conn.att.AllocateStatement(ctx)
		if err != nil {
			return xerrors.WithStackTrace(xerrors.Transport(err))
		}
		s.handle = handle
	}
	if !s.prepared {
		if err := s.handle.Prepare(ctx, t, s.query); err != nil {
			return xerrors.WithStackTrace(xerrors.Transport(err))
		}
		s.prepared = true
		s.tx = t

		return nil
	}
	if s.tx != t {
		s.handle.SetTransaction(t)
		s.tx = t
	}

	return nil
}

// execute runs one execution. On failure the statement is already reported
// as completed unsuccessfully.
func (s *Stmt) execute(ctx context.Context, args []driver.NamedValue) (_ wire.ExecuteResult, finalErr error) {
	if s.closed {
		return wire.ExecuteResult{}, xerrors.WithStackTrace(xerrors.Usage(errStmtClosed))
	}
	if err := s.release(ctx); err != nil {
		return wire.ExecuteResult{}, err
	}
	c := s.conn
	if err := c.coordinator.ExecutionStarted(ctx, s.id); err != nil {
		return wire.ExecuteResult{}, xerrors.WithStackTrace(err)
	}
	defer func() {
		if finalErr != nil {
			finalErr = xerrors.Join(finalErr, c.coordinator.StatementCompleted(ctx, s.id, false))
		}
	}()

	if err := s.prepare(ctx, c.local.Transaction()); err != nil {
		return wire.ExecuteResult{}, err
	}
	params, err := c.toParams(ctx, args)
	if err != nil {
		return wire.ExecuteResult{}, err
	}
	res, err := s.handle.Execute(ctx, params, s.kind == stmtCallable)
	if err != nil {
		return wire.ExecuteResult{}, xerrors.WithStackTrace(xerrors.Transport(err))
	}

	return res, nil
}

// call executes a procedure call inside one implicit transaction scope, so
// the transaction it opens ends once the output is read.
func (s *Stmt) call(ctx context.Context, args []driver.NamedValue) (_ wire.ExecuteResult, finalErr error) {
	c := s.conn
	scope, err := c.counter.Acquire(ctx)
	if err != nil {
		return wire.ExecuteResult{}, xerrors.WithStackTrace(err)
	}
	success := false
	defer func() {
		finalErr = xerrors.Join(finalErr, scope.Release(ctx, success))
	}()

	res, err := s.execute(ctx, args)
	if err != nil {
		return res, err
	}
	s.output = res.Output.Clone()
	s.outFields = s.handle.Fields()
	if res.HasCursor {
		if err = s.handle.CloseCursor(ctx); err != nil {
			return res, xerrors.Join(
				xerrors.WithStackTrace(xerrors.Transport(err)),
				c.coordinator.StatementCompleted(ctx, s.id, false),
			)
		}
	}
	if err = c.coordinator.StatementCompleted(ctx, s.id, true); err != nil {
		return res, err
	}
	success = true

	return res, nil
}

func (s *Stmt) exec(ctx context.Context, args []driver.NamedValue) (_ driver.Result, finalErr error) {
	onDone := trace.DriverOnStmtExecute(s.conn.trace(), &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/xsql.(*Stmt).exec"),
		s.conn.ID(), uint64(s.id), s.kind.String(), s.query,
	)
	defer func() {
		onDone(false, false, finalErr)
	}()

	if s.kind == stmtCallable {
		res, err := s.call(ctx, args)
		if err != nil {
			return nil, err
		}

		return result{rowsAffected: res.RowsAffected}, nil
	}

	res, err := s.execute(ctx, args)
	if err != nil {
		return nil, err
	}
	var cursorErr error
	if res.HasCursor {
		if err = s.handle.CloseCursor(ctx); err != nil {
			cursorErr = xerrors.WithStackTrace(xerrors.Transport(err))
		}
	}
	if err = xerrors.Join(cursorErr, s.conn.coordinator.StatementCompleted(ctx, s.id, cursorErr == nil)); err != nil {
		return nil, err
	}

	return result{rowsAffected: res.RowsAffected}, nil
}

func (s *Stmt) queryRows(ctx context.Context, args []driver.NamedValue) (_ *Rows, finalErr error) {
	var (
		hasRows bool
		cached  bool
	)
	onDone := trace.DriverOnStmtExecute(s.conn.trace(), &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/xsql.(*Stmt).queryRows"),
		s.conn.ID(), uint64(s.id), s.kind.String(), s.query,
	)
	defer func() {
		onDone(hasRows, cached, finalErr)
	}()

	if s.kind == stmtCallable {
		if _, err := s.call(ctx, args); err != nil {
			return nil, err
		}
		cached = true
		var rows []wire.Row
		if s.output != nil {
			rows = []wire.Row{s.output.Clone()}
		}
		s.rows = newCachedRows(ctx, s, s.outFields, rows)
		hasRows = len(rows) > 0

		return s.rows, nil
	}

	res, err := s.execute(ctx, args)
	if err != nil {
		return nil, err
	}
	fields := s.handle.Fields()
	if !res.HasCursor {
		cached = true
		var rows []wire.Row
		if res.Output != nil {
			rows = []wire.Row{res.Output.Clone()}
		}
		if err = s.conn.coordinator.StatementCompleted(ctx, s.id, true); err != nil {
			return nil, err
		}
		s.rows = newCachedRows(ctx, s, fields, rows)
		hasRows = len(rows) > 0

		return s.rows, nil
	}

	hasRows = true
	s.rows = newLiveRows(ctx, s, fields)

	return s.rows, nil
}
