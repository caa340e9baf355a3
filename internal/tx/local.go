package tx

import (
	"context"

	"github.com/FirebirdSQL/jaybird-sub009/internal/stack"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

// Local holds the single physical transaction of a connection.
type Local struct {
	att    wire.Attachment
	params wire.TxParameters
	tx     wire.Transaction

	// generation changes every time a transaction begins or is adopted.
	generation uint64
	adopted    bool

	connID string
	trace  *trace.Driver
}

type localOption func(l *Local)

func WithTxParameters(params wire.TxParameters) localOption {
	return func(l *Local) {
		l.params = params
	}
}

func WithTrace(t *trace.Driver) localOption {
	return func(l *Local) {
		l.trace = t
	}
}

func WithConnID(id string) localOption {
	return func(l *Local) {
		l.connID = id
	}
}

func NewLocal(att wire.Attachment, opts ...localOption) *Local {
	l := &Local{
		att:    att,
		params: wire.DefaultTxParameters(),
		trace:  &trace.Driver{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	return l
}

func (l *Local) InTransaction() bool {
	return l.tx != nil
}

// Transaction returns the open physical transaction or nil.
func (l *Local) Transaction() wire.Transaction {
	return l.tx
}

func (l *Local) Generation() uint64 {
	return l.generation
}

func (l *Local) Parameters() wire.TxParameters {
	return l.params
}

// SetParameters changes the parameters used by the next Begin.
func (l *Local) SetParameters(params wire.TxParameters) {
	l.params = params
}

func (l *Local) Begin(ctx context.Context, mode Mode) (finalErr error) {
	if l.tx != nil {
		return nil
	}
	onDone := trace.DriverOnTxBegin(l.trace, &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/tx.(*Local).Begin"),
		l.connID, mode.String(),
	)
	defer func() {
		onDone(finalErr)
	}()

	tx, err := l.att.BeginTransaction(ctx, l.params)
	if err != nil {
		return xerrors.Transport(err)
	}
	l.tx = tx
	l.generation++
	l.adopted = false

	return nil
}

// Commit commits the open transaction. On failure the transaction stays open.
func (l *Local) Commit(ctx context.Context) (finalErr error) {
	if l.tx == nil {
		return nil
	}
	onDone := trace.DriverOnTxCommit(l.trace, &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/tx.(*Local).Commit"),
		l.connID,
	)
	defer func() {
		onDone(finalErr)
	}()

	if err := l.tx.Commit(ctx); err != nil {
		return xerrors.Transport(err)
	}
	l.tx = nil

	return nil
}

// Rollback rolls back the open transaction. On failure the transaction stays open.
func (l *Local) Rollback(ctx context.Context) (finalErr error) {
	if l.tx == nil {
		return nil
	}
	onDone := trace.DriverOnTxRollback(l.trace, &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/tx.(*Local).Rollback"),
		l.connID,
	)
	defer func() {
		onDone(finalErr)
	}()

	if err := l.tx.Rollback(ctx); err != nil {
		return xerrors.Transport(err)
	}
	l.tx = nil

	return nil
}

// Adopt makes an externally owned transaction the current one.
func (l *Local) Adopt(tx wire.Transaction) {
	l.tx = tx
	l.generation++
	l.adopted = true
}

// Release forgets an adopted transaction without ending it.
func (l *Local) Release() wire.Transaction {
	if !l.adopted {
		return nil
	}
	tx := l.tx
	l.tx = nil
	l.adopted = false

	return tx
}
