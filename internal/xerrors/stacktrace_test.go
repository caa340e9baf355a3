package xerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackTraceError(t *testing.T) {
	for _, test := range []struct {
		error error
		text  string
	}{
		{
			error: WithStackTrace(fmt.Errorf("fmt.Errorf")),
			//nolint:lll
			text: "fmt.Errorf at `github.com/FirebirdSQL/jaybird-sub009/internal/xerrors.TestStackTraceError(stacktrace_test.go:17)`",
		},
		{
			error: WithStackTrace(
				WithStackTrace(errors.New("errors.New")),
			),
			//nolint:lll
			text: "errors.New at `github.com/FirebirdSQL/jaybird-sub009/internal/xerrors.TestStackTraceError(stacktrace_test.go:23)` at `github.com/FirebirdSQL/jaybird-sub009/internal/xerrors.TestStackTraceError(stacktrace_test.go:22)`",
		},
	} {
		t.Run(test.text, func(t *testing.T) {
			require.Equal(t, test.text, test.error.Error())
		})
	}
}

func TestWithStackTraceNil(t *testing.T) {
	require.NoError(t, WithStackTrace(nil))
}
