package wire

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"time"
)

// BlobID is the decoded value of a large object column.
type BlobID uint64

// Coder converts between driver values and the encoded form of a column.
type Coder interface {
	Encode(fd FieldDescriptor, v driver.Value) ([]byte, error)
	Decode(fd FieldDescriptor, b []byte) (driver.Value, error)
}

var _ Coder = BinaryCoder{}

// BinaryCoder encodes numbers big-endian, text as raw bytes and large object
// columns as their 8-byte locator.
type BinaryCoder struct{}

func EncodeBlobID(id uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, id)

	return b
}

func DecodeBlobID(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("blob locator must be 8 bytes, got %d", len(b))
	}

	return binary.BigEndian.Uint64(b), nil
}

func (BinaryCoder) Encode(fd FieldDescriptor, v driver.Value) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	switch fd.Type {
	case TypeVarchar, TypeChar:
		switch v := v.(type) {
		case string:
			return []byte(v), nil
		case []byte:
			return append([]byte{}, v...), nil
		case int64:
			return []byte(strconv.FormatInt(v, 10)), nil
		}
	case TypeSmallint, TypeInteger, TypeBigint:
		var i int64
		switch v := v.(type) {
		case int64:
			i = v
		case string:
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", fd.Name, err)
			}
			i = parsed
		default:
			return nil, fmt.Errorf("column %s: cannot encode %T as %s", fd.Name, v, fd.Type)
		}
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, uint64(i))

		return b, nil
	case TypeDouble:
		if f, ok := v.(float64); ok {
			b := make([]byte, 8)
			binary.BigEndian.PutUint64(b, math.Float64bits(f))

			return b, nil
		}
	case TypeBoolean:
		if bv, ok := v.(bool); ok {
			if bv {
				return []byte{1}, nil
			}

			return []byte{0}, nil
		}
	case TypeTimestamp:
		if t, ok := v.(time.Time); ok {
			return t.UTC().MarshalBinary()
		}
	case TypeBlob:
		switch v := v.(type) {
		case BlobID:
			return EncodeBlobID(uint64(v)), nil
		case int64:
			return EncodeBlobID(uint64(v)), nil
		}
	case TypeDBKey, TypeUnknown:
		if b, ok := v.([]byte); ok {
			return append([]byte{}, b...), nil
		}
	}

	return nil, fmt.Errorf("column %s: cannot encode %T as %s", fd.Name, v, fd.Type)
}

func (BinaryCoder) Decode(fd FieldDescriptor, b []byte) (driver.Value, error) {
	if b == nil {
		return nil, nil
	}
	switch fd.Type {
	case TypeVarchar, TypeChar:
		return string(b), nil
	case TypeSmallint, TypeInteger, TypeBigint:
		if len(b) != 8 {
			return nil, fmt.Errorf("column %s: integer must be 8 bytes, got %d", fd.Name, len(b))
		}

		return int64(binary.BigEndian.Uint64(b)), nil
	case TypeDouble:
		if len(b) != 8 {
			return nil, fmt.Errorf("column %s: double must be 8 bytes, got %d", fd.Name, len(b))
		}

		return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
	case TypeBoolean:
		return len(b) > 0 && b[0] != 0, nil
	case TypeTimestamp:
		var t time.Time
		if err := t.UnmarshalBinary(b); err != nil {
			return nil, fmt.Errorf("column %s: %w", fd.Name, err)
		}

		return t, nil
	case TypeBlob:
		id, err := DecodeBlobID(b)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", fd.Name, err)
		}

		return BlobID(id), nil
	default:
		return append([]byte{}, b...), nil
	}
}
