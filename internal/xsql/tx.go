package xsql

import (
	"context"
	"database/sql/driver"

	"github.com/FirebirdSQL/jaybird-sub009/internal/tx"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xsql/isolation"
)

var _ driver.Tx = (*Tx)(nil)

// Tx is an explicit transaction started by BeginTx. While it is open the
// connection runs in local mode; the previous mode and transaction parameters
// are restored when it ends.
type Tx struct {
	conn *Conn
	ctx  context.Context //nolint:containedctx

	prevMode   tx.Mode
	prevParams wire.TxParameters
	done       bool
}

func (c *Conn) beginTx(ctx context.Context, opts driver.TxOptions) (*Tx, error) {
	if c.currentTx != nil {
		return nil, xerrors.WithStackTrace(xerrors.Usage(errTxInProgress))
	}
	mode := c.coordinator.Mode()
	if mode == tx.ModeManaged {
		return nil, xerrors.WithStackTrace(xerrors.Usage(errManaged))
	}
	params, err := isolation.ToWire(opts)
	if err != nil {
		return nil, err
	}

	t := &Tx{
		conn:       c,
		ctx:        context.WithoutCancel(ctx),
		prevMode:   mode,
		prevParams: c.local.Parameters(),
	}
	if err = c.coordinator.Switch(ctx, tx.ModeLocal); err != nil {
		return nil, err
	}
	c.local.SetParameters(params)
	if err = c.coordinator.EnsureTransaction(ctx); err != nil {
		return nil, xerrors.Join(err, t.restore(ctx))
	}
	c.currentTx = t

	return t, nil
}

// restore reinstalls the mode and parameters in effect before the transaction.
func (t *Tx) restore(ctx context.Context) error {
	t.conn.local.SetParameters(t.prevParams)

	return t.conn.coordinator.Switch(ctx, t.prevMode)
}

func (t *Tx) end(commit bool) error {
	c := t.conn
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.done {
		return xerrors.WithStackTrace(xerrors.Usage(errTxDone))
	}
	if err := c.check(); err != nil {
		return err
	}
	t.done = true
	c.currentTx = nil

	var err error
	if commit {
		err = c.coordinator.Commit(t.ctx)
		if err != nil {
			err = xerrors.Join(err, c.coordinator.Rollback(t.ctx))
		}
	} else {
		err = c.coordinator.Rollback(t.ctx)
	}

	return xerrors.BadConn(xerrors.Join(err, t.restore(t.ctx)), c)
}

func (t *Tx) Commit() error {
	return t.end(true)
}

func (t *Tx) Rollback() error {
	return t.end(false)
}
