package xsync

import (
	"sync"
)

// Mutex is the coarse lock guarding a connection and everything it owns.
type Mutex struct { //nolint:gocritic
	sync.Mutex
}

func (l *Mutex) WithLock(f func()) {
	l.Lock()
	defer l.Unlock()

	f()
}

func WithLock[T any](l interface {
	Lock()
	Unlock()
}, f func() (T, error),
) (T, error) {
	l.Lock()
	defer l.Unlock()

	return f()
}
