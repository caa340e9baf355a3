package xtest

import (
	"testing"

	"go.uber.org/goleak"
)

// CheckGoroutinesLeak fails t when goroutines started by the test are still running on cleanup.
func CheckGoroutinesLeak(t testing.TB) {
	ignore := goleak.IgnoreCurrent()
	t.Cleanup(func() {
		if err := goleak.Find(ignore); err != nil {
			t.Errorf("goroutines leak: %v", err)
		}
	})
}
