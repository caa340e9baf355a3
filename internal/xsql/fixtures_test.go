package xsql

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"testing"

	"github.com/rekby/fixenv"

	"github.com/FirebirdSQL/jaybird-sub009/config"
	"github.com/FirebirdSQL/jaybird-sub009/internal/mock"
	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xtest"
)

type mockResult = mock.Result

func MockAttachment(e fixenv.Env) *mock.Attachment {
	f := func() (*fixenv.GenericResult[*mock.Attachment], error) {
		return fixenv.NewGenericResult(mock.NewAttachment()), nil
	}

	return fixenv.CacheResult(e, f)
}

// ConnectorWith opens a connector over the mock attachment. Fixtures with the
// same name share one connector within a test.
func ConnectorWith(e fixenv.Env, name string, opts ...config.Option) *Connector {
	f := func() (*fixenv.GenericResult[*Connector], error) {
		att := MockAttachment(e)
		c, err := Open(DialerFunc(func(context.Context) (wire.Attachment, error) {
			return att, nil
		}), WithConfig(opts...))
		if err != nil {
			return nil, err
		}

		return fixenv.NewGenericResultWithCleanup(c, func() {
			_ = c.Close()
		}), nil
	}

	return fixenv.CacheResult(e, f, fixenv.CacheOptions{CacheKey: name})
}

func DefaultConnector(e fixenv.Env) *Connector {
	return ConnectorWith(e, "default")
}

// ConnOf connects to c.
func ConnOf(t testing.TB, c *Connector) *Conn {
	cc, err := c.Connect(xtest.Context(t))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	return cc.(*Conn) //nolint:forcetypeassert
}

func DefaultConn(e fixenv.Env) *Conn {
	f := func() (*fixenv.GenericResult[*Conn], error) {
		cc, err := DefaultConnector(e).Connect(context.Background())
		if err != nil {
			return nil, err
		}

		return fixenv.NewGenericResult(cc.(*Conn)), nil //nolint:forcetypeassert
	}

	return fixenv.CacheResult(e, f)
}

func args(values ...driver.Value) []driver.NamedValue {
	named := make([]driver.NamedValue, len(values))
	for i, v := range values {
		named[i] = driver.NamedValue{Ordinal: i + 1, Value: v}
	}

	return named
}

func encode(t testing.TB, fd wire.FieldDescriptor, v driver.Value) []byte {
	b, err := wire.BinaryCoder{}.Encode(fd, v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	return b
}

func readAll(t testing.TB, rows driver.Rows) [][]driver.Value {
	var all [][]driver.Value
	for {
		dest := make([]driver.Value, len(rows.Columns()))
		if err := rows.Next(dest); err != nil {
			if errors.Is(err, io.EOF) {
				return all
			}
			t.Fatalf("next: %v", err)
		}
		all = append(all, dest)
	}
}
