package shard

import "github.com/krisalay/remote-cache/types"

/*
This file defines how entries are actually stored inside a shard.
The store itself is NOT synchronized: the owning Shard's mutex guards it,
so multi-step operations (put-and-report, sweep, clear) stay atomic.
*/

// Store is the interface used by a shard to store and retrieve cache entries.
type Store[K comparable, V any] interface {

	// Get retrieves an entry by key.
	Get(K) (*types.Entry[V], bool)

	// Put inserts or replaces an entry and reports whether it replaced one.
	Put(K, *types.Entry[V]) bool

	// Delete removes an entry and reports whether it was present.
	Delete(K) bool

	// DeleteFunc removes every entry for which fn returns true and returns how many were removed.
	DeleteFunc(fn func(K, *types.Entry[V]) bool) int

	// Clear removes everything and returns how many entries were dropped.
	Clear() int

	// Keys appends every stored key to dst.
	Keys(dst []K) []K

	// Len returns how many entries are stored, stale ones included.
	Len() int
}

// mapStore is a plain map. Iteration order is whatever the runtime gives.
type mapStore[K comparable, V any] struct {
	data map[K]*types.Entry[V]
}

func NewMapStore[K comparable, V any]() Store[K, V] {
	return &mapStore[K, V]{data: make(map[K]*types.Entry[V])}
}

func (s *mapStore[K, V]) Get(key K) (*types.Entry[V], bool) {
	ent, ok := s.data[key]
	return ent, ok
}

func (s *mapStore[K, V]) Put(key K, ent *types.Entry[V]) bool {
	_, replaced := s.data[key]
	s.data[key] = ent
	return replaced
}

func (s *mapStore[K, V]) Delete(key K) bool {
	if _, ok := s.data[key]; !ok {
		return false
	}
	delete(s.data, key)
	return true
}

// DeleteFunc relies on deleting during range being safe for Go maps.
func (s *mapStore[K, V]) DeleteFunc(fn func(K, *types.Entry[V]) bool) int {
	n := 0
	for k, ent := range s.data {
		if fn(k, ent) {
			delete(s.data, k)
			n++
		}
	}
	return n
}

func (s *mapStore[K, V]) Clear() int {
	n := len(s.data)
	clear(s.data)
	return n
}

func (s *mapStore[K, V]) Keys(dst []K) []K {
	for k := range s.data {
		dst = append(dst, k)
	}
	return dst
}

func (s *mapStore[K, V]) Len() int {
	return len(s.data)
}
