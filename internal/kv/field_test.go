package kv

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stringerTest string

func (s stringerTest) String() string {
	return string(s)
}

func TestField_String(t *testing.T) {
	for _, tt := range []struct {
		f     KeyValue
		want  string
		panic bool
	}{
		{f: Int("int", 1), want: "1"},
		{f: Int64("int64", 9223372036854775807), want: "9223372036854775807"},
		{f: String("string", "test"), want: "test"},
		{f: Bool("bool", true), want: "true"},
		{f: Duration("duration", time.Hour), want: time.Hour.String()},
		{f: Strings("strings", []string{"Abc", "Def", "Ghi"}), want: "[Abc Def Ghi]"},
		{f: NamedError("named_error", errors.New("named error")), want: "named error"},
		{f: Error(errors.New("error")), want: "error"},
		{f: Error(nil), want: "<nil>"},
		{f: Any("any_int", 1), want: "1"},
		{f: Any("any_string", "any string"), want: "any string"},
		{f: Any("any_nil", nil), want: "<nil>"},
		{f: Any("any_int64_ptr", func(v int64) *int64 { return &v }(42)), want: "*int64(42)"},
		{f: Any("any_int64_nil", (*int64)(nil)), want: "<nil>"},
		{f: Stringer("stringer", stringerTest("stringerTest")), want: "stringerTest"},
		{f: KeyValue{ftype: InvalidType, key: "invalid"}, panic: true},
	} {
		t.Run(tt.f.key, func(t *testing.T) {
			if tt.panic {
				require.Panics(t, func() { _ = tt.f.String() })

				return
			}
			require.Equal(t, tt.want, tt.f.String())
		})
	}
}

func TestField_AnyValue(t *testing.T) {
	for _, tt := range []struct {
		name string
		f    KeyValue
		want interface{}
	}{
		{name: "int", f: Int("any", 1), want: 1},
		{name: "int64", f: Int64("any", 7), want: int64(7)},
		{name: "string", f: String("any", "any string"), want: "any string"},
		{name: "bool", f: Bool("any", true), want: true},
		{name: "duration", f: Duration("any", time.Second), want: time.Second},
		{name: "[]string", f: Strings("any", []string{"Abc"}), want: []string{"Abc"}},
		{name: "error", f: Error(errors.New("error")), want: errors.New("error")},
		{name: "stringer", f: Stringer("any", stringerTest("s")), want: stringerTest("s")},
	} {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.f.AnyValue())
		})
	}
}

func TestFieldType_String(t *testing.T) {
	for ft := IntType; ft <= endType; ft++ {
		require.NotEmpty(t, ft.String())
	}
	require.Panics(t, func() { _ = InvalidType.String() })
}
