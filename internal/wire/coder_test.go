package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBinaryCoder(t *testing.T) {
	ts := time.Date(2024, 2, 29, 13, 14, 15, 0, time.UTC)
	for _, tt := range []struct {
		name string
		fd   FieldDescriptor
		in   interface{}
		out  interface{}
	}{
		{name: "varchar", fd: FieldDescriptor{Type: TypeVarchar}, in: "abc", out: "abc"},
		{name: "integer", fd: FieldDescriptor{Type: TypeInteger}, in: int64(-42), out: int64(-42)},
		{name: "integerFromString", fd: FieldDescriptor{Type: TypeBigint}, in: "17", out: int64(17)},
		{name: "double", fd: FieldDescriptor{Type: TypeDouble}, in: 1.5, out: 1.5},
		{name: "boolean", fd: FieldDescriptor{Type: TypeBoolean}, in: true, out: true},
		{name: "timestamp", fd: FieldDescriptor{Type: TypeTimestamp}, in: ts, out: ts},
		{name: "blob", fd: FieldDescriptor{Type: TypeBlob}, in: BlobID(7), out: BlobID(7)},
		{name: "dbkey", fd: FieldDescriptor{Type: TypeDBKey}, in: []byte{0, 0, 0, 1}, out: []byte{0, 0, 0, 1}},
		{name: "null", fd: FieldDescriptor{Type: TypeInteger}, in: nil, out: nil},
	} {
		t.Run(tt.name, func(t *testing.T) {
			b, err := BinaryCoder{}.Encode(tt.fd, tt.in)
			require.NoError(t, err)
			v, err := BinaryCoder{}.Decode(tt.fd, b)
			require.NoError(t, err)
			require.Equal(t, tt.out, v)
		})
	}
}

func TestBinaryCoderErrors(t *testing.T) {
	_, err := BinaryCoder{}.Encode(FieldDescriptor{Name: "ID", Type: TypeInteger}, 1.5)
	require.ErrorContains(t, err, "cannot encode float64 as INTEGER")

	_, err = BinaryCoder{}.Decode(FieldDescriptor{Name: "B", Type: TypeBlob}, []byte{1})
	require.ErrorContains(t, err, "blob locator must be 8 bytes")
}

func TestFieldDescriptor(t *testing.T) {
	require.True(t, FieldDescriptor{OriginalName: "DB_KEY"}.IsDBKey())
	require.True(t, FieldDescriptor{OriginalName: "rdb$db_key"}.IsDBKey())
	require.True(t, FieldDescriptor{Type: TypeDBKey}.IsDBKey())
	require.False(t, FieldDescriptor{OriginalName: "ID", Type: TypeInteger}.IsDBKey())

	r := Row{[]byte("a"), nil}
	c := r.Clone()
	c[0][0] = 'b'
	require.Equal(t, "a", string(r[0]))
	require.Nil(t, c[1])
	require.Nil(t, Row(nil).Clone())
}
