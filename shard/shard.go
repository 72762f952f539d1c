package shard

import "sync"

/*
This file defines what a "Shard" is. A shard is a small, independent piece of the cache.
Instead of having one big map behind one big lock, keys are spread over shards,
each with its own lock, so unrelated keys do not contend.
*/

type Shard[K comparable, V any] struct {

	// Store holds the key → entry data for this shard.
	Store Store[K, V]

	// Mu guards Store. Reads take the read lock, writes the write lock.
	// It is never held across a resolver call.
	Mu sync.RWMutex
}

func NewShard[K comparable, V any]() *Shard[K, V] {
	return &Shard[K, V]{Store: NewMapStore[K, V]()}
}

// NewShards allocates n empty shards.
func NewShards[K comparable, V any](n int) []*Shard[K, V] {
	s := make([]*Shard[K, V], n)
	for i := range s {
		s[i] = NewShard[K, V]()
	}
	return s
}

/*
LockAll write-locks every shard in index order. Operations that must look
atomic across the whole cache (Reset) hold all locks at once. Everything else
holds at most one shard lock, so the fixed order cannot deadlock.
*/
func LockAll[K comparable, V any](shards []*Shard[K, V]) {
	for _, s := range shards {
		s.Mu.Lock()
	}
}

func UnlockAll[K comparable, V any](shards []*Shard[K, V]) {
	for _, s := range shards {
		s.Mu.Unlock()
	}
}

// RLockAll read-locks every shard in index order, for consistent snapshots.
func RLockAll[K comparable, V any](shards []*Shard[K, V]) {
	for _, s := range shards {
		s.Mu.RLock()
	}
}

func RUnlockAll[K comparable, V any](shards []*Shard[K, V]) {
	for _, s := range shards {
		s.Mu.RUnlock()
	}
}
