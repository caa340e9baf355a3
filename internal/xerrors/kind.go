package xerrors

import (
	"database/sql/driver"
	"fmt"
)

// Kind classifies driver errors.
type Kind uint8

const (
	KindUndefined = Kind(iota)
	KindUsage
	KindNotUpdatable
	KindTransport
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindUsage:
		return "usage"
	case KindNotUpdatable:
		return "not updatable"
	case KindTransport:
		return "transport"
	case KindIO:
		return "io"
	default:
		return fmt.Sprintf("unknown error kind %d", k)
	}
}

type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string {
	return e.kind.String() + " error: " + e.err.Error()
}

func (e *kindError) Unwrap() error {
	return e.err
}

func wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}

	return WithStackTrace(&kindError{kind: kind, err: err}, WithSkipDepth(2))
}

// Usage marks err as a misuse of the API: never retried, reported synchronously.
func Usage(err error) error {
	return wrap(KindUsage, err)
}

// NotUpdatable marks err as an attempt to mutate a cursor without row identity.
func NotUpdatable(err error) error {
	return wrap(KindNotUpdatable, err)
}

// Transport marks err as a failure reported by the physical transport.
func Transport(err error) error {
	if err == nil || IsTransport(err) {
		return err
	}

	return wrap(KindTransport, err)
}

// IO marks err as a stream failure such as reading a closed blob stream.
func IO(err error) error {
	return wrap(KindIO, err)
}

// KindOf reports the outermost kind of err.
func KindOf(err error) Kind {
	var e *kindError
	if As(err, &e) {
		return e.kind
	}

	return KindUndefined
}

func isKind(err error, kinds ...Kind) bool {
	var e *kindError
	if !As(err, &e) {
		return false
	}
	for _, k := range kinds {
		if e.kind == k {
			return true
		}
	}

	return false
}

// IsUsage reports usage errors, including not-updatable errors.
func IsUsage(err error) bool {
	return isKind(err, KindUsage, KindNotUpdatable)
}

func IsNotUpdatable(err error) bool {
	return isKind(err, KindNotUpdatable)
}

func IsTransport(err error) bool {
	return isKind(err, KindTransport)
}

func IsIO(err error) bool {
	return isKind(err, KindIO)
}

type invalidator interface {
	IsValid() bool
}

// BadConn maps a transport error to driver.ErrBadConn when conn reports itself broken.
func BadConn(err error, conn invalidator) error {
	if err == nil || !IsTransport(err) || conn == nil || conn.IsValid() {
		return err
	}

	return badConnError{err: err}
}

type badConnError struct {
	err error
}

func (e badConnError) Error() string {
	return e.err.Error()
}

func (e badConnError) Is(err error) bool {
	//nolint:errorlint
	if err == driver.ErrBadConn {
		return true
	}

	return Is(e.err, err)
}

func (e badConnError) As(target interface{}) bool {
	return As(e.err, target)
}

func (e badConnError) Unwrap() error {
	return e.err
}
