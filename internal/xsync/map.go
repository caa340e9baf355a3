package xsync

import (
	"sync"
	"sync/atomic"
)

type Map[K comparable, V any] struct {
	m    sync.Map
	size atomic.Int64
}

func (m *Map[K, V]) Load(key K) (value V, ok bool) {
	v, ok := m.m.Load(key)
	if !ok {
		return value, false
	}
	value, ok = v.(V)

	return value, ok
}

func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.m.Load(key)

	return ok
}

func (m *Map[K, V]) Store(key K, value V) {
	if _, loaded := m.m.Swap(key, value); !loaded {
		m.size.Add(1)
	}
}

func (m *Map[K, V]) LoadAndDelete(key K) (value V, ok bool) {
	v, ok := m.m.LoadAndDelete(key)
	if !ok {
		return value, false
	}
	m.size.Add(-1)
	value, ok = v.(V)

	return value, ok
}

func (m *Map[K, V]) Len() int {
	return int(m.size.Load())
}

func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	m.m.Range(func(k, v any) bool {
		return f(k.(K), v.(V)) //nolint:forcetypeassert
	})
}
