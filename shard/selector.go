package shard

import "hash/fnv"

/*
This file decides HOW a cache key is assigned to a shard.
If every key went to the same shard, that shard's lock would become a bottleneck.
*/

/*
Selector is the interface that decides which shard should handle a given key.
It receives the key's canonical string form (types.KeyString) so string and
integer keys hash the same way.
*/
type Selector[K comparable, V any] interface {
	Select(key string, shards []*Shard[K, V]) *Shard[K, V]
}

// HashSelector spreads keys with FNV-1a. With a power-of-two shard count the
// index is a mask instead of a modulo.
type HashSelector[K comparable, V any] struct{}

// hash converts a string key into a number. FNV is a fast, non-cryptographic hash.
func hash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

func (HashSelector[K, V]) Select(key string, shards []*Shard[K, V]) *Shard[K, V] {
	n := uint32(len(shards))
	if n&(n-1) == 0 {
		return shards[hash(key)&(n-1)]
	}
	return shards[hash(key)%n]
}

// NextPowerOfTwo rounds n up to a power of two, minimum 1.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
