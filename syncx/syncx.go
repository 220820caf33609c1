// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package syncx contains synchronization primitives shared by the header
// pipeline.
package syncx

import (
	"sync"

	"github.com/go4org/hashtriemap"
)

// Lazy represents a lazily computed value.
type Lazy[T any] struct {
	once sync.Once
	val  T
	err  error
}

// Get returns T, calling f to compute it, if necessary.
func (l *Lazy[T]) Get(f func() T) T {
	l.once.Do(func() { l.val = f() })
	return l.val
}

// GetErr returns T and an error, calling f to compute them, if necessary.
// A failed computation is not retried.
func (l *Lazy[T]) GetErr(f func() (T, error)) (T, error) {
	l.once.Do(func() { l.val, l.err = f() })
	return l.val, l.err
}

// Cache is a concurrent map of computed values. Entries are never evicted,
// so keys should come from a small domain (for example, distinct template
// sources seen during one run).
//
// The zero value is ready to use. A Cache must not be copied after first use.
type Cache[K comparable, V any] struct {
	m hashtriemap.HashTrieMap[K, V]
}

// Load returns the value stored for key, if any.
func (c *Cache[K, V]) Load(key K) (V, bool) { return c.m.Load(key) }

// Get returns the value stored for key, computing and storing it with f on a
// miss. Errors from f are returned and nothing is stored. When several
// goroutines miss at once, f may run more than once but only the first
// stored value is ever returned.
func (c *Cache[K, V]) Get(key K, f func() (V, error)) (V, error) {
	if v, ok := c.m.Load(key); ok {
		return v, nil
	}
	v, err := f()
	if err != nil {
		var zero V
		return zero, err
	}
	actual, _ := c.m.LoadOrStore(key, v)
	return actual, nil
}
