package kv

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

type ftype int

const (
	InvalidType ftype = iota
	IntType
	Int64Type
	StringType
	BoolType
	DurationType
	StringsType
	ErrorType
	AnyType
	StringerType
	endType
)

func (ft ftype) String() (typeName string) {
	switch ft {
	case IntType:
		typeName = "int"
	case Int64Type:
		typeName = "int64"
	case StringType:
		typeName = "string"
	case BoolType:
		typeName = "bool"
	case DurationType:
		typeName = "time.Duration"
	case StringsType:
		typeName = "[]string"
	case ErrorType:
		typeName = "error"
	case AnyType:
		typeName = "any"
	case StringerType:
		typeName = "stringer"
	case endType:
		typeName = "endtype"
	default:
		panic("not implemented")
	}

	return typeName
}

// KeyValue is a typed key/value pair used as a log field.
type KeyValue struct {
	ftype ftype
	key   string

	vint int64
	vstr string
	vany interface{}
}

func (f KeyValue) Type() ftype {
	return f.ftype
}

func (f KeyValue) Key() string {
	return f.key
}

func (f KeyValue) StringValue() string {
	return f.vstr
}

func (f KeyValue) IntValue() int {
	return int(f.vint)
}

func (f KeyValue) Int64Value() int64 {
	return f.vint
}

func (f KeyValue) BoolValue() bool {
	return f.vint != 0
}

func (f KeyValue) DurationValue() time.Duration {
	return time.Duration(f.vint)
}

func (f KeyValue) StringsValue() []string {
	if f.vany == nil {
		return nil
	}
	v, _ := f.vany.([]string)

	return v
}

func (f KeyValue) ErrorValue() error {
	if f.vany == nil {
		return nil
	}
	v, _ := f.vany.(error)

	return v
}

func (f KeyValue) AnyValue() interface{} {
	switch f.ftype {
	case IntType:
		return f.IntValue()
	case Int64Type:
		return f.Int64Value()
	case StringType:
		return f.StringValue()
	case BoolType:
		return f.BoolValue()
	case DurationType:
		return f.DurationValue()
	default:
		return f.vany
	}
}

// String returns a human-readable representation of the value.
func (f KeyValue) String() string {
	switch f.ftype {
	case IntType, Int64Type:
		return strconv.FormatInt(f.vint, 10)
	case StringType:
		return f.vstr
	case BoolType:
		return strconv.FormatBool(f.BoolValue())
	case DurationType:
		return f.DurationValue().String()
	case StringsType:
		return fmt.Sprintf("%v", f.StringsValue())
	case ErrorType:
		if f.vany == nil {
			return "<nil>"
		}

		return f.ErrorValue().Error()
	case AnyType:
		if f.vany == nil {
			return "<nil>"
		}
		if v := reflect.ValueOf(f.vany); v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return "<nil>"
			}

			return fmt.Sprintf("%T(%v)", f.vany, v.Elem())
		}

		return fmt.Sprint(f.vany)
	case StringerType:
		if s, ok := f.vany.(fmt.Stringer); ok && s != nil {
			return s.String()
		}

		return "<nil>"
	default:
		panic(fmt.Sprintf("unknown field type: %d", f.ftype))
	}
}

func Int(k string, v int) KeyValue {
	return KeyValue{ftype: IntType, key: k, vint: int64(v)}
}

func Int64(k string, v int64) KeyValue {
	return KeyValue{ftype: Int64Type, key: k, vint: v}
}

func String(k, v string) KeyValue {
	return KeyValue{ftype: StringType, key: k, vstr: v}
}

func Bool(k string, v bool) KeyValue {
	var i int64
	if v {
		i = 1
	}

	return KeyValue{ftype: BoolType, key: k, vint: i}
}

func Duration(k string, v time.Duration) KeyValue {
	return KeyValue{ftype: DurationType, key: k, vint: v.Nanoseconds()}
}

func Strings(k string, v []string) KeyValue {
	return KeyValue{ftype: StringsType, key: k, vany: v}
}

func NamedError(k string, v error) KeyValue {
	return KeyValue{ftype: ErrorType, key: k, vany: v}
}

func Error(v error) KeyValue {
	return NamedError("error", v)
}

func Any(k string, v interface{}) KeyValue {
	return KeyValue{ftype: AnyType, key: k, vany: v}
}

func Stringer(k string, v fmt.Stringer) KeyValue {
	return KeyValue{ftype: StringerType, key: k, vany: v}
}
