// Package memstore provides a process-lifetime key-value registry that is safe
// for concurrent use. Entries are lost on restart.
package memstore

import "sync"

// Store is a map guarded by a RWMutex. The zero value is not usable; call New.
type Store[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// New returns an empty Store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{items: make(map[K]V)}
}

// Get returns the value stored under k.
func (s *Store[K, V]) Get(k K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[k]
	return v, ok
}

// PutIfAbsent stores v under k unless k is already present. It reports whether
// the value was stored.
func (s *Store[K, V]) PutIfAbsent(k K, v V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[k]; exists {
		return false
	}
	s.items[k] = v
	return true
}

// Update applies fn to the value under k while holding the write lock. fn's
// result replaces the stored value; returning false from fn leaves it as is.
// Update reports whether k was present.
func (s *Store[K, V]) Update(k K, fn func(v V) (V, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.items[k]
	if !ok {
		return false
	}
	if next, write := fn(cur); write {
		s.items[k] = next
	}
	return true
}

// Delete removes k.
func (s *Store[K, V]) Delete(k K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, k)
}

// DeleteFunc removes every entry for which fn returns true and returns how
// many were removed.
func (s *Store[K, V]) DeleteFunc(fn func(k K, v V) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, v := range s.items {
		if fn(k, v) {
			delete(s.items, k)
			n++
		}
	}
	return n
}

// Values returns a snapshot of all stored values.
func (s *Store[K, V]) Values() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]V, 0, len(s.items))
	for _, v := range s.items {
		out = append(out, v)
	}
	return out
}

// Len returns the number of entries.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
