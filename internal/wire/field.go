package wire

import (
	"strings"
)

// DBKeyColumn is the select-time name of the physical row locator.
const DBKeyColumn = "RDB$DB_KEY"

// MaxSegmentSize is the largest segment a single segment call can transfer.
const MaxSegmentSize = 65535

type FieldType uint8

const (
	TypeUnknown FieldType = iota
	TypeVarchar
	TypeChar
	TypeSmallint
	TypeInteger
	TypeBigint
	TypeDouble
	TypeBoolean
	TypeTimestamp
	TypeBlob
	TypeDBKey
)

func (t FieldType) String() string {
	switch t {
	case TypeVarchar:
		return "VARCHAR"
	case TypeChar:
		return "CHAR"
	case TypeSmallint:
		return "SMALLINT"
	case TypeInteger:
		return "INTEGER"
	case TypeBigint:
		return "BIGINT"
	case TypeDouble:
		return "DOUBLE PRECISION"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeTimestamp:
		return "TIMESTAMP"
	case TypeBlob:
		return "BLOB"
	case TypeDBKey:
		return "CHAR(8) OCTETS"
	default:
		return "UNKNOWN"
	}
}

// FieldDescriptor describes one column of a row.
type FieldDescriptor struct {
	// Name is the column alias as selected.
	Name string
	// OriginalName is the column name in its relation.
	OriginalName string
	// Relation is the table the column comes from, empty for derived columns.
	Relation string
	Type     FieldType
	Nullable bool
}

// IsDBKey reports whether the column is the physical row locator. Servers
// describe it as DB_KEY although it must be selected as RDB$DB_KEY.
func (fd FieldDescriptor) IsDBKey() bool {
	if fd.Type == TypeDBKey {
		return true
	}
	name := strings.ToUpper(fd.OriginalName)

	return name == "DB_KEY" || name == DBKeyColumn
}

func (fd FieldDescriptor) IsBlob() bool {
	return fd.Type == TypeBlob
}

// Row holds the encoded column values of one row. A nil element is NULL.
type Row [][]byte

func NewRow(n int) Row {
	return make(Row, n)
}

// Clone returns a deep copy of r.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	c := make(Row, len(r))
	for i, v := range r {
		if v != nil {
			c[i] = append([]byte{}, v...)
		}
	}

	return c
}
