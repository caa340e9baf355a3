package tx

import (
	"context"

	"github.com/FirebirdSQL/jaybird-sub009/internal/stack"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

// Counter lets nested operations share one implicitly opened transaction.
// The transaction ends when the last reference is released, and only in
// auto-commit mode.
type Counter struct {
	coordinator *Coordinator

	// auto is set when the open transaction was opened by Ensure.
	auto       bool
	count      int
	generation uint64

	connID string
	trace  *trace.Driver
}

var _ Holder = (*Counter)(nil)

type counterOption func(c *Counter)

func WithCounterTrace(t *trace.Driver) counterOption {
	return func(c *Counter) {
		c.trace = t
	}
}

func WithCounterConnID(id string) counterOption {
	return func(c *Counter) {
		c.connID = id
	}
}

func NewCounter(opts ...counterOption) *Counter {
	c := &Counter{
		trace: &trace.Driver{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Bind attaches the counter to coordinator. The coordinator usually holds the
// counter as its Holder, so both are bound after construction.
func (c *Counter) Bind(coordinator *Coordinator) {
	c.coordinator = coordinator
}

// sync drops the implicit flag once the transaction it refers to has ended
// by other means, such as an explicit commit.
func (c *Counter) sync() {
	local := c.coordinator.Local()
	if c.auto && (!local.InTransaction() || local.Generation() != c.generation) {
		c.auto = false
		c.count = 0
	}
}

// Auto reports whether the open transaction was opened implicitly.
func (c *Counter) Auto() bool {
	c.sync()

	return c.auto
}

func (c *Counter) Count() int {
	c.sync()

	return c.count
}

// Holds reports whether an implicit scope is in progress.
func (c *Counter) Holds() bool {
	if c.coordinator == nil {
		return false
	}
	c.sync()

	return c.auto && c.count > 0
}

// Ensure guarantees a transaction. A transaction opened here is implicit and
// counted; an open implicit transaction gains a reference; an open explicit
// transaction is left alone.
func (c *Counter) Ensure(ctx context.Context) (finalErr error) {
	var opened bool
	onDone := trace.DriverOnImplicitTxEnsure(c.trace, &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/tx.(*Counter).Ensure"),
		c.connID,
	)
	defer func() {
		onDone(opened, c.count, finalErr)
	}()

	c.sync()
	local := c.coordinator.Local()
	if local.InTransaction() {
		if c.auto {
			c.count++
		}

		return nil
	}
	if err := c.coordinator.EnsureTransaction(ctx); err != nil {
		return err
	}
	if local.InTransaction() {
		opened = true
		c.auto = true
		c.count = 1
		c.generation = local.Generation()
	}

	return nil
}

// WillEnd reports whether releasing the last reference ends the transaction.
func (c *Counter) WillEnd() bool {
	c.sync()

	return c.coordinator.Mode() == ModeAutoCommit && c.auto
}

// Check releases one reference taken by Ensure. When it was the last one in
// auto-commit mode the transaction is committed or rolled back. Transport
// failures leave the counter as it was after the decrement.
func (c *Counter) Check(ctx context.Context, commit bool) (finalErr error) {
	var ended bool
	onDone := trace.DriverOnImplicitTxRelease(c.trace, &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/tx.(*Counter).Check"),
		c.connID, commit,
	)
	defer func() {
		onDone(ended, c.count, finalErr)
	}()

	c.sync()
	if c.auto && c.count > 0 {
		c.count--
	}
	if !c.WillEnd() || c.count != 0 {
		return nil
	}

	local := c.coordinator.Local()
	var err error
	if commit {
		err = local.Commit(ctx)
	} else {
		err = local.Rollback(ctx)
	}
	if err != nil {
		return err
	}
	ended = true
	c.auto = false

	return nil
}

// Scope is one reference on the implicit transaction. Release is idempotent.
type Scope struct {
	counter  *Counter
	released bool
}

// Acquire calls Ensure and returns the reference as a scope to release.
func (c *Counter) Acquire(ctx context.Context) (*Scope, error) {
	if err := c.Ensure(ctx); err != nil {
		return nil, err
	}

	return &Scope{counter: c}, nil
}

func (s *Scope) Release(ctx context.Context, commit bool) error {
	if s == nil || s.released {
		return nil
	}
	s.released = true

	return s.counter.Check(ctx, commit)
}
