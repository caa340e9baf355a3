package xerrors

import (
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type validity bool

func (v validity) IsValid() bool { return bool(v) }

func TestKinds(t *testing.T) {
	cause := errors.New("commit not allowed in auto-commit mode")

	usage := Usage(cause)
	require.True(t, IsUsage(usage))
	require.False(t, IsTransport(usage))
	require.False(t, IsNotUpdatable(usage))
	require.ErrorIs(t, usage, cause)
	require.Equal(t, KindUsage, KindOf(usage))
	require.True(t, strings.HasPrefix(usage.Error(), "usage error: commit not allowed"))
	require.Contains(t, usage.Error(), "kind_test.go")

	nu := NotUpdatable(errors.New("no relations"))
	require.True(t, IsUsage(nu))
	require.True(t, IsNotUpdatable(nu))

	tr := Transport(io.ErrUnexpectedEOF)
	require.True(t, IsTransport(tr))
	require.False(t, IsUsage(tr))
	require.ErrorIs(t, tr, io.ErrUnexpectedEOF)
	require.Same(t, tr, Transport(tr))

	require.True(t, IsIO(IO(errors.New("stream closed"))))
	require.Equal(t, KindUndefined, KindOf(cause))
	require.NoError(t, Usage(nil))
	require.NoError(t, Transport(nil))
}

func TestBadConn(t *testing.T) {
	tr := Transport(errors.New("connection reset"))
	require.ErrorIs(t, BadConn(tr, validity(false)), driver.ErrBadConn)
	require.NotErrorIs(t, BadConn(tr, validity(true)), driver.ErrBadConn)

	usage := Usage(errors.New("misuse"))
	require.NotErrorIs(t, BadConn(usage, validity(false)), driver.ErrBadConn)
	require.True(t, IsTransport(BadConn(tr, validity(false))))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "usage", KindUsage.String())
	require.Equal(t, "unknown error kind 42", Kind(42).String())
}
