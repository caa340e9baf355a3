package tx

import (
	"context"
	"errors"

	"github.com/FirebirdSQL/jaybird-sub009/internal/stack"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

var (
	errCommitInAutoCommit   = errors.New("calling commit is not allowed in auto-commit mode")
	errRollbackInAutoCommit = errors.New("calling rollback is not allowed in auto-commit mode")
	errCommitInManaged      = errors.New("calling commit is not allowed for a managed connection")
	errRollbackInManaged    = errors.New("calling rollback is not allowed for a managed connection")
	errDisabled             = errors.New("connection is closed")
)

// Completer completes statements on behalf of the coordinator.
type Completer interface {
	// CompleteStatement finishes the current execution of the statement.
	// Completing an idle statement is a no-op.
	CompleteStatement(ctx context.Context, id StatementID, reason Completion) error
}

// Holder reports whether a nested implicit transaction scope holds the
// transaction open. AutoCommit does not end a held transaction when a
// statement completes; the scope ends it instead.
type Holder interface {
	Holds() bool
}

type noHolder struct{}

func (noHolder) Holds() bool { return false }

// Coordinator decides when the physical transaction of a connection begins
// and ends relative to statement and large object activity. Callers serialize
// access with the connection lock.
type Coordinator struct {
	mode      Mode
	local     *Local
	completer Completer
	holder    Holder

	statements []StatementID

	connID string
	trace  *trace.Driver
}

type coordinatorOption func(c *Coordinator)

func WithHolder(h Holder) coordinatorOption {
	return func(c *Coordinator) {
		c.holder = h
	}
}

func WithCoordinatorTrace(t *trace.Driver) coordinatorOption {
	return func(c *Coordinator) {
		c.trace = t
	}
}

func WithCoordinatorConnID(id string) coordinatorOption {
	return func(c *Coordinator) {
		c.connID = id
	}
}

func NewCoordinator(local *Local, completer Completer, mode Mode, opts ...coordinatorOption) *Coordinator {
	c := &Coordinator{
		mode:      mode,
		local:     local,
		completer: completer,
		holder:    noHolder{},
		trace:     &trace.Driver{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

func (c *Coordinator) Mode() Mode {
	return c.mode
}

func (c *Coordinator) Local() *Local {
	return c.local
}

// Statements returns the tracked statements in registration order.
func (c *Coordinator) Statements() []StatementID {
	return append([]StatementID(nil), c.statements...)
}

func (c *Coordinator) tracks(id StatementID) bool {
	for _, s := range c.statements {
		if s == id {
			return true
		}
	}

	return false
}

func (c *Coordinator) track(id StatementID) {
	if !c.tracks(id) {
		c.statements = append(c.statements, id)
	}
}

func (c *Coordinator) untrack(id StatementID) {
	for i, s := range c.statements {
		if s == id {
			c.statements = append(c.statements[:i], c.statements[i+1:]...)

			return
		}
	}
}

// completeStatements completes every tracked statement, clears the tracked set
// and returns all failures joined.
func (c *Coordinator) completeStatements(ctx context.Context, reason Completion, skip ...StatementID) error {
	var errs []error
	for _, id := range c.Statements() {
		if len(skip) > 0 && skip[0] == id {
			continue
		}
		if err := c.completer.CompleteStatement(ctx, id, reason); err != nil {
			errs = append(errs, err)
		}
		c.untrack(id)
	}

	return xerrors.Join(errs...)
}

// EnsureTransaction begins the physical transaction when none is open.
func (c *Coordinator) EnsureTransaction(ctx context.Context) error {
	switch c.mode {
	case ModeDisabled:
		return xerrors.Usage(errDisabled)
	case ModeManaged:
		return nil
	default:
		return c.local.Begin(ctx, c.mode)
	}
}

// ExecutionStarted is called before statement id executes.
func (c *Coordinator) ExecutionStarted(ctx context.Context, id StatementID) error {
	switch c.mode {
	case ModeDisabled:
		return xerrors.Usage(errDisabled)
	case ModeAutoCommit:
		// re-entrancy for the same statement is allowed
		if err := c.completeStatements(ctx, CompletionCommit, id); err != nil {
			return err
		}
		c.track(id)

		return c.EnsureTransaction(ctx)
	default:
		c.track(id)

		return c.EnsureTransaction(ctx)
	}
}

// StatementCompleted is called when statement id finished its execution,
// including reading or materializing its result.
func (c *Coordinator) StatementCompleted(ctx context.Context, id StatementID, success bool) error {
	c.untrack(id)
	if c.mode != ModeAutoCommit || !c.local.InTransaction() || c.holder.Holds() {
		return nil
	}
	if success {
		err := c.local.Commit(ctx)
		if err == nil {
			return nil
		}

		return xerrors.Join(err, c.local.Rollback(ctx))
	}

	return c.local.Rollback(ctx)
}

// BlobStarted guarantees a transaction for a large object stream without
// completing any statement.
func (c *Coordinator) BlobStarted(ctx context.Context) error {
	return c.EnsureTransaction(ctx)
}

func (c *Coordinator) BlobCompleted(context.Context) error {
	if c.mode == ModeDisabled {
		return xerrors.Usage(errDisabled)
	}

	return nil
}

func (c *Coordinator) Commit(ctx context.Context) error {
	switch c.mode {
	case ModeAutoCommit:
		return xerrors.Usage(errCommitInAutoCommit)
	case ModeManaged:
		return xerrors.Usage(errCommitInManaged)
	case ModeDisabled:
		return xerrors.Usage(errDisabled)
	default:
		return xerrors.Join(
			c.completeStatements(ctx, CompletionCommit),
			c.local.Commit(ctx),
		)
	}
}

func (c *Coordinator) Rollback(ctx context.Context) error {
	switch c.mode {
	case ModeAutoCommit:
		return xerrors.Usage(errRollbackInAutoCommit)
	case ModeManaged:
		return xerrors.Usage(errRollbackInManaged)
	case ModeDisabled:
		return xerrors.Usage(errDisabled)
	default:
		return xerrors.Join(
			c.completeStatements(ctx, CompletionRollback),
			c.local.Rollback(ctx),
		)
	}
}

// HandleClose ends the transaction as the connection is closing.
func (c *Coordinator) HandleClose(ctx context.Context) error {
	switch c.mode {
	case ModeAutoCommit:
		if !c.local.InTransaction() {
			return nil
		}

		return xerrors.Join(
			c.completeStatements(ctx, CompletionCommit),
			c.local.Commit(ctx),
		)
	case ModeLocal:
		if !c.local.InTransaction() {
			return nil
		}

		return xerrors.Join(
			c.completeStatements(ctx, CompletionRollback),
			c.local.Rollback(ctx),
		)
	case ModeManaged:
		return nil
	default:
		return xerrors.Usage(errDisabled)
	}
}

// HandleAbort completes every statement without touching the transaction.
func (c *Coordinator) HandleAbort(ctx context.Context) error {
	return c.completeStatements(ctx, CompletionAbort)
}

// Switch installs the policy for mode. The current policy first completes its
// statements and commits. On failure the current policy stays installed.
func (c *Coordinator) Switch(ctx context.Context, mode Mode) (finalErr error) {
	if c.mode == mode {
		return nil
	}
	onDone := trace.DriverOnCoordinatorSwitch(c.trace, &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/tx.(*Coordinator).Switch"),
		c.connID, c.mode.String(), mode.String(),
	)
	defer func() {
		onDone(finalErr)
	}()

	if c.mode == ModeDisabled {
		return xerrors.Usage(errDisabled)
	}
	if mode == ModeDisabled {
		c.mode = mode

		return nil
	}

	errs := []error{c.completeStatements(ctx, CompletionCommit)}
	if c.mode != ModeManaged {
		errs = append(errs, c.local.Commit(ctx))
	}
	if err := xerrors.Join(errs...); err != nil {
		return err
	}
	// statements still tracked at this point stay tracked by the new policy
	c.mode = mode

	return nil
}
