package xsql

import (
	"context"
	"database/sql/driver"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/FirebirdSQL/jaybird-sub009/internal/blob"
	"github.com/FirebirdSQL/jaybird-sub009/internal/stack"
	"github.com/FirebirdSQL/jaybird-sub009/internal/tx"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xsync"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

var (
	_ driver.Conn               = (*Conn)(nil)
	_ driver.ConnPrepareContext = (*Conn)(nil)
	_ driver.ConnBeginTx        = (*Conn)(nil)
	_ driver.ExecerContext      = (*Conn)(nil)
	_ driver.QueryerContext     = (*Conn)(nil)
	_ driver.Pinger             = (*Conn)(nil)
	_ driver.Validator          = (*Conn)(nil)
	_ driver.SessionResetter    = (*Conn)(nil)
	_ driver.NamedValueChecker  = (*Conn)(nil)

	_ tx.Completer = (*Conn)(nil)
	_ blob.Owner   = (*Conn)(nil)
)

// Conn is one attachment with its transaction coordination. Exported methods
// take the connection lock; unexported ones expect it to be held.
type Conn struct {
	mu xsync.Mutex

	connector *Connector
	id        uuid.UUID
	att       wire.Attachment

	local       *tx.Local
	counter     *tx.Counter
	coordinator *tx.Coordinator

	stmts      map[tx.StatementID]*Stmt
	lastStmtID tx.StatementID

	currentTx *Tx
	closed    bool

	lastUsage atomic.Int64
}

func newConn(c *Connector, id uuid.UUID, att wire.Attachment) *Conn {
	cfg := c.config
	connID := id.String()
	conn := &Conn{
		connector: c,
		id:        id,
		att:       att,
		stmts:     make(map[tx.StatementID]*Stmt),
	}
	conn.local = tx.NewLocal(att,
		tx.WithTxParameters(cfg.TxParameters()),
		tx.WithTrace(cfg.Trace()),
		tx.WithConnID(connID),
	)
	conn.counter = tx.NewCounter(
		tx.WithCounterTrace(cfg.Trace()),
		tx.WithCounterConnID(connID),
	)
	mode := tx.ModeLocal
	if cfg.AutoCommit() {
		mode = tx.ModeAutoCommit
	}
	conn.coordinator = tx.NewCoordinator(conn.local, conn, mode,
		tx.WithHolder(conn.counter),
		tx.WithCoordinatorTrace(cfg.Trace()),
		tx.WithCoordinatorConnID(connID),
	)
	conn.counter.Bind(conn.coordinator)
	conn.touch()

	return conn
}

func (c *Conn) ID() string {
	return c.id.String()
}

func (c *Conn) touch() {
	c.lastUsage.Store(c.connector.config.Clock().Now().UnixNano())
}

// LastUsage returns the time of the last call on the connection.
func (c *Conn) LastUsage() time.Time {
	return time.Unix(0, c.lastUsage.Load())
}

func (c *Conn) trace() *trace.Driver {
	return c.connector.config.Trace()
}

// IsValid reports whether the connection can still be used. It does not take
// the lock so that database/sql may call it at any time.
func (c *Conn) IsValid() bool {
	return c.att.IsValid()
}

func (c *Conn) check() error {
	if c.closed {
		return xerrors.WithStackTrace(driver.ErrBadConn)
	}
	c.touch()

	return nil
}

// Attachment is the physical connection of c.
func (c *Conn) Attachment() wire.Attachment {
	return c.att
}

// Mode returns the installed transaction policy.
func (c *Conn) Mode() tx.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.coordinator.Mode()
}

// InTransaction reports whether a physical transaction is open.
func (c *Conn) InTransaction() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.local.InTransaction()
}

func (c *Conn) CheckNamedValue(v *driver.NamedValue) error {
	return checkNamedValue(v)
}

func (c *Conn) Ping(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(); err != nil {
		return err
	}
	if !c.att.IsValid() {
		return xerrors.WithStackTrace(driver.ErrBadConn)
	}

	return nil
}

func (c *Conn) ResetSession(ctx context.Context) error {
	if !c.IsValid() {
		return xerrors.WithStackTrace(driver.ErrBadConn)
	}

	return nil
}

func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	return nil, errDeprecated
}

func (c *Conn) Begin() (driver.Tx, error) {
	return nil, errDeprecated
}

func (c *Conn) PrepareContext(ctx context.Context, query string) (_ driver.Stmt, finalErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(); err != nil {
		return nil, err
	}

	return c.newStmt(query, stmtPrepared), nil
}

// PrepareCall prepares a procedure call whose output parameters can be read
// with Stmt.OutParameter after execution.
func (c *Conn) PrepareCall(ctx context.Context, query string) (*Stmt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(); err != nil {
		return nil, err
	}

	return c.newStmt(query, stmtCallable), nil
}

func (c *Conn) ExecContext(
	ctx context.Context, query string, args []driver.NamedValue,
) (res driver.Result, finalErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(); err != nil {
		return nil, err
	}
	s := c.newStmt(query, kindOf(query))
	defer func() {
		if err := c.closeStmt(ctx, s); err != nil {
			res, finalErr = nil, xerrors.Join(finalErr, xerrors.BadConn(err, c))
		}
	}()

	res, err := s.exec(ctx, args)
	if err != nil {
		return nil, xerrors.BadConn(err, c)
	}

	return res, nil
}

func (c *Conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(); err != nil {
		return nil, err
	}
	s := c.newStmt(query, kindOf(query))

	rows, err := s.queryRows(ctx, args)
	if err != nil {
		return nil, xerrors.BadConn(xerrors.Join(err, c.closeStmt(ctx, s)), c)
	}
	rows.ownsStmt = true

	return rows, nil
}

func (c *Conn) BeginTx(ctx context.Context, opts driver.TxOptions) (_ driver.Tx, finalErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(); err != nil {
		return nil, err
	}

	t, err := c.beginTx(ctx, opts)
	if err != nil {
		return nil, xerrors.BadConn(err, c)
	}

	return t, nil
}

// SetAutoCommit switches between auto-commit and local transaction mode.
// Switching commits the work of the current mode.
func (c *Conn) SetAutoCommit(ctx context.Context, autoCommit bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(); err != nil {
		return err
	}
	if c.currentTx != nil {
		return xerrors.WithStackTrace(xerrors.Usage(errTxInProgress))
	}
	if c.coordinator.Mode() == tx.ModeManaged {
		return xerrors.WithStackTrace(xerrors.Usage(errManaged))
	}
	mode := tx.ModeLocal
	if autoCommit {
		mode = tx.ModeAutoCommit
	}

	return xerrors.BadConn(c.coordinator.Switch(ctx, mode), c)
}

// Commit commits the transaction of a connection in local mode.
func (c *Conn) Commit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(); err != nil {
		return err
	}
	if c.currentTx != nil {
		return xerrors.WithStackTrace(xerrors.Usage(errTxInProgress))
	}

	return xerrors.BadConn(c.coordinator.Commit(ctx), c)
}

// Rollback rolls back the transaction of a connection in local mode.
func (c *Conn) Rollback(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(); err != nil {
		return err
	}
	if c.currentTx != nil {
		return xerrors.WithStackTrace(xerrors.Usage(errTxInProgress))
	}

	return xerrors.BadConn(c.coordinator.Rollback(ctx), c)
}

// SetManaged enlists the connection in an externally owned transaction, or
// leaves it again when t is nil. The external owner ends t.
func (c *Conn) SetManaged(ctx context.Context, t wire.Transaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(); err != nil {
		return err
	}
	if c.currentTx != nil {
		return xerrors.WithStackTrace(xerrors.Usage(errTxInProgress))
	}
	if t != nil {
		if err := c.coordinator.Switch(ctx, tx.ModeManaged); err != nil {
			return xerrors.BadConn(err, c)
		}
		c.local.Adopt(t)

		return nil
	}
	if c.coordinator.Mode() != tx.ModeManaged {
		return nil
	}
	mode := tx.ModeLocal
	if c.connector.config.AutoCommit() {
		mode = tx.ModeAutoCommit
	}
	if err := c.coordinator.Switch(ctx, mode); err != nil {
		return xerrors.BadConn(err, c)
	}
	c.local.Release()

	return nil
}

// GuaranteeTransaction takes a reference on an implicitly opened transaction,
// opening one when none is open.
func (c *Conn) GuaranteeTransaction(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(); err != nil {
		return err
	}

	return xerrors.BadConn(c.counter.Ensure(ctx), c)
}

// ReleaseTransactionReference drops a reference taken by GuaranteeTransaction.
// The last reference ends an implicitly opened transaction in auto-commit mode.
func (c *Conn) ReleaseTransactionReference(ctx context.Context, commit bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(); err != nil {
		return err
	}

	return xerrors.BadConn(c.counter.Check(ctx, commit), c)
}

// NewBlob returns an empty large object to write and pass as a parameter.
func (c *Conn) NewBlob() *Blob {
	return c.newBlob(0)
}

// OpenBlob returns the large object with locator id.
func (c *Conn) OpenBlob(id uint64) *Blob {
	return c.newBlob(id)
}

func (c *Conn) newBlob(id uint64) *Blob {
	cfg := c.connector.config

	return &Blob{
		conn: c,
		blob: blob.New(c, id,
			blob.WithBufferLength(cfg.BlobBufferLength()),
			blob.WithTrace(cfg.Trace()),
		),
	}
}

// BlobStarted implements blob.Owner.
func (c *Conn) BlobStarted(ctx context.Context) (wire.Transaction, error) {
	if err := c.coordinator.BlobStarted(ctx); err != nil {
		return nil, err
	}

	return c.local.Transaction(), nil
}

// BlobCompleted implements blob.Owner.
func (c *Conn) BlobCompleted(ctx context.Context) error {
	return c.coordinator.BlobCompleted(ctx)
}

func (c *Conn) writeBlob(ctx context.Context, r io.Reader) ([]byte, error) {
	b := c.newBlob(0)
	if _, err := b.blob.CopyFrom(ctx, r); err != nil {
		return nil, err
	}
	id, err := b.blob.ID()
	if err != nil {
		return nil, err
	}

	return wire.EncodeBlobID(id), nil
}

func (c *Conn) newStmt(query string, kind stmtKind) *Stmt {
	c.lastStmtID++
	s := &Stmt{
		conn:  c,
		id:    c.lastStmtID,
		query: query,
		kind:  kind,
	}
	c.stmts[s.id] = s

	return s
}

// CompleteStatement implements tx.Completer.
func (c *Conn) CompleteStatement(ctx context.Context, id tx.StatementID, reason tx.Completion) (finalErr error) {
	s, ok := c.stmts[id]
	if !ok || s.rows == nil || s.rows.completed {
		return nil
	}
	onDone := trace.DriverOnStmtComplete(c.trace(), &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/xsql.(*Conn).CompleteStatement"),
		uint64(id), reason.String(),
	)
	defer func() {
		onDone(finalErr)
	}()

	rows := s.rows
	switch {
	case reason == tx.CompletionAbort:
		rows.interrupt()
	case reason == tx.CompletionCommit && c.connector.config.HoldableResults():
		if err := rows.materialize(ctx); err != nil {
			return xerrors.Join(err, c.coordinator.StatementCompleted(ctx, id, false))
		}
	default:
		err := rows.closeCursor(ctx)
		rows.interrupt()
		if err != nil {
			return xerrors.Join(err, c.coordinator.StatementCompleted(ctx, id, false))
		}
	}

	return c.coordinator.StatementCompleted(ctx, id, true)
}

// closeStmt releases s and its result. An open result is completed first.
func (c *Conn) closeStmt(ctx context.Context, s *Stmt) (finalErr error) {
	if s.closed {
		return nil
	}
	onDone := trace.DriverOnStmtClose(c.trace(), &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/xsql.(*Conn).closeStmt"),
		uint64(s.id),
	)
	defer func() {
		onDone(finalErr)
	}()

	s.closed = true
	var errs []error
	if s.rows != nil {
		errs = append(errs, s.rows.close(ctx))
	}
	delete(c.stmts, s.id)
	if s.handle != nil {
		errs = append(errs, xerrors.Transport(s.handle.Close(ctx, true)))
		s.handle = nil
	}

	return xerrors.Join(errs...)
}

func (c *Conn) Close() (finalErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	ctx := context.Background()
	onDone := trace.DriverOnConnClose(c.trace(), &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/xsql.(*Conn).Close"),
		c.ID(),
	)
	defer func() {
		onDone(finalErr)
	}()

	var errs []error
	for _, s := range c.stmts {
		errs = append(errs, c.closeStmt(ctx, s))
	}
	if c.currentTx != nil {
		c.currentTx.done = true
		c.currentTx = nil
	}
	if c.coordinator.Mode() != tx.ModeDisabled {
		errs = append(errs,
			c.coordinator.HandleClose(ctx),
			c.coordinator.Switch(ctx, tx.ModeDisabled),
		)
	}
	errs = append(errs, xerrors.Transport(c.att.Close(ctx)))

	c.closed = true
	c.connector.conns.LoadAndDelete(c.id)

	return xerrors.WithStackTrace(xerrors.Join(errs...))
}
