package xsql

import (
	"context"
	"database/sql/driver"
	"io"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/FirebirdSQL/jaybird-sub009/config"
	"github.com/FirebirdSQL/jaybird-sub009/internal/stack"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xsync"
	"github.com/FirebirdSQL/jaybird-sub009/trace"
)

var (
	_ io.Closer        = (*Connector)(nil)
	_ driver.Connector = (*Connector)(nil)
	_ driver.Driver    = (*Connector)(nil)
)

type (
	// Dialer opens physical attachments.
	Dialer interface {
		Attach(ctx context.Context) (wire.Attachment, error)
	}
	DialerFunc func(ctx context.Context) (wire.Attachment, error)

	Connector struct {
		dialer Dialer
		config *config.Config
		coder  wire.Coder

		closeLimit int
		onClose    []func(*Connector)

		conns xsync.Map[uuid.UUID, *Conn]
		done  chan struct{}
	}
)

func (f DialerFunc) Attach(ctx context.Context) (wire.Attachment, error) {
	return f(ctx)
}

func (c *Connector) Config() *config.Config {
	return c.config
}

func (c *Connector) Trace() *trace.Driver {
	return c.config.Trace()
}

// Conns returns the number of open connections.
func (c *Connector) Conns() int {
	return c.conns.Len()
}

func (c *Connector) Open(name string) (driver.Conn, error) {
	return nil, xerrors.WithStackTrace(errDeprecated)
}

func (c *Connector) Connect(ctx context.Context) (_ driver.Conn, finalErr error) {
	var connID string
	onDone := trace.DriverOnConnectorConnect(c.Trace(), &ctx,
		stack.FunctionID("database/sql.(*Connector).Connect"),
	)
	defer func() {
		onDone(connID, finalErr)
	}()

	select {
	case <-c.done:
		return nil, xerrors.WithStackTrace(xerrors.Usage(errAlreadyClosed))
	default:
	}

	att, err := c.dialer.Attach(ctx)
	if err != nil {
		return nil, xerrors.WithStackTrace(xerrors.Transport(err))
	}

	id := uuid.New()
	connID = id.String()
	conn := newConn(c, id, att)
	c.conns.Store(id, conn)

	return conn, nil
}

func (c *Connector) Driver() driver.Driver {
	return c
}

// Close closes every open connection and returns all failures joined.
func (c *Connector) Close() (finalErr error) {
	select {
	case <-c.done:
		return xerrors.WithStackTrace(xerrors.Usage(errAlreadyClosed))
	default:
		close(c.done)
	}

	ctx := context.Background()
	onDone := trace.DriverOnConnectorClose(c.Trace(), &ctx,
		stack.FunctionID("github.com/FirebirdSQL/jaybird-sub009/internal/xsql.(*Connector).Close"),
		c.conns.Len(),
	)
	defer func() {
		onDone(finalErr)
	}()

	var (
		mu   xsync.Mutex
		errs []error
		g    errgroup.Group
	)
	if c.closeLimit > 0 {
		g.SetLimit(c.closeLimit)
	}
	c.conns.Range(func(_ uuid.UUID, cc *Conn) bool {
		g.Go(func() error {
			if err := cc.Close(); err != nil {
				mu.WithLock(func() {
					errs = append(errs, err)
				})
			}

			return nil
		})

		return true
	})
	_ = g.Wait()

	for _, onClose := range c.onClose {
		onClose(c)
	}

	return xerrors.Join(errs...)
}

func Open(dialer Dialer, opts ...Option) (_ *Connector, err error) {
	c := &Connector{
		dialer: dialer,
		config: config.New(),
		coder:  wire.BinaryCoder{},
		done:   make(chan struct{}),
	}

	for _, opt := range opts {
		if opt != nil {
			if err = opt.Apply(c); err != nil {
				return nil, err
			}
		}
	}

	if idleThreshold := c.config.IdleThreshold(); idleThreshold > 0 {
		clock := c.config.Clock()
		go func() {
			for {
				idleThresholdTimer := clock.NewTimer(idleThreshold)
				select {
				case <-c.done:
					idleThresholdTimer.Stop()

					return
				case <-idleThresholdTimer.Chan():
					idleThresholdTimer.Stop() // no really need, stop for common style only
					c.conns.Range(func(_ uuid.UUID, cc *Conn) bool {
						if clock.Since(cc.LastUsage()) > idleThreshold {
							_ = cc.Close()
						}

						return true
					})
				}
			}
		}()
	}

	return c, nil
}
