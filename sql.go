package fbsql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xsql"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xsync"
)

// DriverName is the name the driver is registered with in database/sql.
const DriverName = "firebirdsql"

var d = &sqlDriver{connectors: make(map[*xsql.Connector]struct{})}

func init() {
	sql.Register(DriverName, d)
}

// sqlDriver keeps track of the connectors it opened so that they can be
// closed together. Data source names resolve to dialers registered with
// RegisterDialer.
type sqlDriver struct {
	dialers       xsync.Map[string, Dialer]
	connectors    map[*xsql.Connector]struct{}
	connectorsMtx xsync.Mutex
}

var (
	_ driver.Driver        = &sqlDriver{}
	_ driver.DriverContext = &sqlDriver{}
)

func (d *sqlDriver) Close() error {
	var connectors []*xsql.Connector
	d.connectorsMtx.WithLock(func() {
		for c := range d.connectors {
			connectors = append(connectors, c)
		}
	})
	errs := make([]error, 0, len(connectors))
	for _, c := range connectors {
		errs = append(errs, c.Close())
	}

	return xerrors.Join(errs...)
}

func (d *sqlDriver) Open(string) (driver.Conn, error) {
	return nil, xerrors.WithStackTrace(driver.ErrSkip)
}

func (d *sqlDriver) OpenConnector(dataSourceName string) (driver.Connector, error) {
	dialer, ok := d.dialers.Load(dataSourceName)
	if !ok {
		return nil, xerrors.WithStackTrace(xerrors.Usage(
			fmt.Errorf("no dialer registered for data source %q", dataSourceName),
		))
	}

	return Connector(dialer)
}

func (d *sqlDriver) attach(c *xsql.Connector) {
	d.connectorsMtx.WithLock(func() {
		d.connectors[c] = struct{}{}
	})
}

func (d *sqlDriver) detach(c *xsql.Connector) {
	d.connectorsMtx.WithLock(func() {
		delete(d.connectors, c)
	})
}

// RegisterDialer makes dialer available to sql.Open(DriverName, name).
// Connectors opened this way use the default configuration.
func RegisterDialer(name string, dialer Dialer) {
	d.dialers.Store(name, dialer)
}

// Connector makes a database/sql connector over dialer.
func Connector(dialer Dialer, opts ...Option) (*xsql.Connector, error) {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			if err := opt(o); err != nil {
				return nil, xerrors.WithStackTrace(err)
			}
		}
	}
	connectorOpts := append(o.connector,
		xsql.WithConfig(o.config...),
		xsql.WithOnClose(d.detach),
	)
	c, err := xsql.Open(dialer, connectorOpts...)
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}
	d.attach(c)

	return c, nil
}

// Open returns a *sql.DB over a new connector.
func Open(dialer Dialer, opts ...Option) (*sql.DB, error) {
	c, err := Connector(dialer, opts...)
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	return sql.OpenDB(c), nil
}

// WithConn runs f on a connection taken from db, exposing the driver level
// API that database/sql does not surface (auto-commit switching, managed
// transactions, callable statements, blobs, updatable results).
func WithConn(ctx context.Context, db *sql.DB, f func(ctx context.Context, cc *Conn) error) error {
	cc, err := db.Conn(ctx)
	if err != nil {
		return xerrors.WithStackTrace(err)
	}
	defer func() {
		_ = cc.Close()
	}()

	return Raw(cc, func(c *Conn) error {
		return f(ctx, c)
	})
}

// Raw calls f with the driver connection behind cc. c must not be used after
// f returns.
func Raw(cc *sql.Conn, f func(c *Conn) error) error {
	return cc.Raw(func(driverConn any) error {
		c, ok := driverConn.(*Conn)
		if !ok {
			return xerrors.WithStackTrace(xerrors.Usage(
				fmt.Errorf("%T is not a connection of %s", driverConn, DriverName),
			))
		}

		return f(c)
	})
}
