package xsql

import (
	"context"
	"database/sql/driver"
	"fmt"
	"io"
	"time"

	"github.com/FirebirdSQL/jaybird-sub009/internal/wire"
	"github.com/FirebirdSQL/jaybird-sub009/internal/xerrors"
)

// checkNamedValue passes large object values through database/sql untouched.
func checkNamedValue(v *driver.NamedValue) error {
	switch v.Value.(type) {
	case *Blob, io.Reader, wire.BlobID:
		return nil
	default:
		return driver.ErrSkip
	}
}

//nolint:gocyclo
func primitiveToField(v interface{}) (fd wire.FieldDescriptor, value driver.Value, err error) {
	if valuer, ok := v.(driver.Valuer); ok {
		v, err = valuer.Value()
		if err != nil {
			return fd, nil, fmt.Errorf("driver.Valuer error: %w", err)
		}
	}

	switch x := v.(type) {
	case nil:
		return wire.FieldDescriptor{Type: wire.TypeUnknown, Nullable: true}, nil, nil
	case bool:
		return wire.FieldDescriptor{Type: wire.TypeBoolean}, x, nil
	case int:
		return wire.FieldDescriptor{Type: wire.TypeBigint}, int64(x), nil
	case int8:
		return wire.FieldDescriptor{Type: wire.TypeSmallint}, int64(x), nil
	case int16:
		return wire.FieldDescriptor{Type: wire.TypeSmallint}, int64(x), nil
	case int32:
		return wire.FieldDescriptor{Type: wire.TypeInteger}, int64(x), nil
	case int64:
		return wire.FieldDescriptor{Type: wire.TypeBigint}, x, nil
	case uint8:
		return wire.FieldDescriptor{Type: wire.TypeSmallint}, int64(x), nil
	case uint16:
		return wire.FieldDescriptor{Type: wire.TypeInteger}, int64(x), nil
	case uint32:
		return wire.FieldDescriptor{Type: wire.TypeBigint}, int64(x), nil
	case float32:
		return wire.FieldDescriptor{Type: wire.TypeDouble}, float64(x), nil
	case float64:
		return wire.FieldDescriptor{Type: wire.TypeDouble}, x, nil
	case string:
		return wire.FieldDescriptor{Type: wire.TypeVarchar}, x, nil
	case []byte:
		return wire.FieldDescriptor{Type: wire.TypeVarchar}, x, nil
	case time.Time:
		return wire.FieldDescriptor{Type: wire.TypeTimestamp}, x, nil
	case wire.BlobID:
		return wire.FieldDescriptor{Type: wire.TypeBlob}, x, nil
	case *bool:
		return nullable(wire.TypeBoolean, x)
	case *int64:
		return nullable(wire.TypeBigint, x)
	case *float64:
		return nullable(wire.TypeDouble, x)
	case *string:
		return nullable(wire.TypeVarchar, x)
	case *time.Time:
		return nullable(wire.TypeTimestamp, x)
	default:
		return fd, nil, fmt.Errorf("unsupported parameter type %T", x)
	}
}

func nullable[T any](t wire.FieldType, v *T) (wire.FieldDescriptor, driver.Value, error) {
	fd := wire.FieldDescriptor{Type: t, Nullable: true}
	if v == nil {
		return fd, nil, nil
	}

	return fd, *v, nil
}

// toParams encodes args in order. Readers are written into new large objects
// of the current transaction, so it runs after the execution started.
func (c *Conn) toParams(ctx context.Context, args []driver.NamedValue) (wire.Row, error) {
	if len(args) == 0 {
		return nil, nil
	}
	params := wire.NewRow(len(args))
	for i, arg := range args {
		switch v := arg.Value.(type) {
		case *Blob:
			id, err := v.blob.ID()
			if err != nil {
				return nil, xerrors.WithStackTrace(err)
			}
			params[i] = wire.EncodeBlobID(id)

			continue
		case io.Reader:
			data, err := c.writeBlob(ctx, v)
			if err != nil {
				return nil, xerrors.WithStackTrace(err)
			}
			params[i] = data

			continue
		}
		fd, value, err := primitiveToField(arg.Value)
		if err != nil {
			return nil, xerrors.WithStackTrace(xerrors.Usage(err))
		}
		fd.Name = arg.Name
		params[i], err = c.connector.coder.Encode(fd, value)
		if err != nil {
			return nil, xerrors.WithStackTrace(xerrors.Usage(err))
		}
	}

	return params, nil
}

// toValues decodes row into dest. Large object columns become *Blob values
// on live results and hold their content on materialized ones.
func (c *Conn) toValues(fields []wire.FieldDescriptor, row wire.Row, materialized bool, dest []driver.Value) error {
	for i := range dest {
		if i >= len(row) || row[i] == nil {
			dest[i] = nil

			continue
		}
		fd := wire.FieldDescriptor{Type: wire.TypeUnknown}
		if i < len(fields) {
			fd = fields[i]
		}
		if fd.IsBlob() {
			if materialized {
				dest[i] = append([]byte{}, row[i]...)

				continue
			}
			id, err := wire.DecodeBlobID(row[i])
			if err != nil {
				return xerrors.WithStackTrace(err)
			}
			dest[i] = c.newBlob(id)

			continue
		}
		v, err := c.connector.coder.Decode(fd, row[i])
		if err != nil {
			return xerrors.WithStackTrace(err)
		}
		dest[i] = v
	}

	return nil
}
