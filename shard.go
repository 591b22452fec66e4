package evict

import (
	"hash/maphash"
	"iter"
	"slices"
	"sync"
)

type (
	// Sharded partitions the key space across independent [Cache]
	// instances by key hash, each behind its own lock; operations on
	// different shards proceed concurrently. The policies keep no
	// cross-shard state, so capacity, ARC's p, and ghost lists are
	// all per shard. Within one shard, operations observe the order
	// in which they acquire the shard's lock; there is no global
	// order across shards. Constructed by [NewSharded].
	Sharded[Key comparable, Value any] struct {
		shards []shard[Key, Value]
		seed   maphash.Seed
	}
	shard[Key comparable, Value any] struct {
		mu    sync.Mutex
		cache *Cache[Key, Value]
	}
)

// NewSharded creates a [Sharded] cache with the given total capacity
// split as evenly as possible over shards instances.
// The shard count must be within [1, capacity] so that
// every shard can hold at least one entry.
func NewSharded[Key comparable, Value any](capacity, shards int, config PolicyConfig) (*Sharded[Key, Value], error) {
	if capacity < MinimumCapacity {
		return nil, minCapacityError(capacity)
	}
	if shards < 1 || shards > capacity {
		return nil, shardCountError(shards, capacity)
	}
	var (
		instances = make([]shard[Key, Value], shards)
		base      = capacity / shards
		extra     = capacity % shards
	)
	for i := range instances {
		shardCapacity := base
		if i < extra {
			shardCapacity++
		}
		cache, err := New[Key, Value](shardCapacity, config)
		if err != nil {
			return nil, err
		}
		instances[i].cache = cache
	}
	return &Sharded[Key, Value]{
		shards: instances,
		seed:   maphash.MakeSeed(),
	}, nil
}

func (s *Sharded[Key, Value]) shardFor(key Key) *shard[Key, Value] {
	sum := maphash.Comparable(s.seed, key)
	return &s.shards[sum%uint64(len(s.shards))]
}

// Get returns the value for key if it is resident,
// marking it as referenced.
func (s *Sharded[Key, Value]) Get(key Key) (Value, bool) {
	shard := s.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	return shard.cache.Get(key)
}

// Put inserts or updates key with value and marks it as referenced.
func (s *Sharded[Key, Value]) Put(key Key, value Value) {
	shard := s.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.cache.Put(key, value)
}

// Load returns the cached value for key (if resident). Otherwise, it
// calls fetch, inserts and returns the value on success.
// fetch runs inside the shard's critical section; operations on other
// shards are not blocked by it.
func (s *Sharded[Key, Value]) Load(key Key, fetch func() (Value, error)) (Value, error) {
	shard := s.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	return shard.cache.Load(key, fetch)
}

// Remove deletes key, returning its value and whether it was resident.
func (s *Sharded[Key, Value]) Remove(key Key) (Value, bool) {
	shard := s.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	return shard.cache.Remove(key)
}

// Peek returns the value for key without marking it as referenced
// and without counting a hit or miss.
func (s *Sharded[Key, Value]) Peek(key Key) (Value, bool) {
	shard := s.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	return shard.cache.Peek(key)
}

// Contains reports whether key is resident,
// without marking it as referenced.
func (s *Sharded[Key, Value]) Contains(key Key) bool {
	shard := s.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	return shard.cache.Contains(key)
}

// Len returns the total number of resident entries across shards.
// The count is a snapshot; shards are tallied one at a time.
func (s *Sharded[Key, Value]) Len() int {
	var length int
	for i := range s.shards {
		shard := &s.shards[i]
		shard.mu.Lock()
		length += shard.cache.Len()
		shard.mu.Unlock()
	}
	return length
}

// Stats returns counters summed across shards.
func (s *Sharded[Key, Value]) Stats() Stats {
	var stats Stats
	for i := range s.shards {
		shard := &s.shards[i]
		shard.mu.Lock()
		shardStats := shard.cache.Stats()
		shard.mu.Unlock()
		stats.Hits += shardStats.Hits
		stats.Misses += shardStats.Misses
		stats.Evictions += shardStats.Evictions
	}
	return stats
}

// Keys returns an iterator over the (unordered) resident keys.
// Each shard is snapshotted under its lock before being yielded,
// so the sequence may include keys removed mid-iteration.
func (s *Sharded[Key, Value]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for i := range s.shards {
			shard := &s.shards[i]
			shard.mu.Lock()
			keys := slices.Collect(shard.cache.Keys())
			shard.mu.Unlock()
			for _, key := range keys {
				if !yield(key) {
					return
				}
			}
		}
	}
}

// Purge drops every entry in every shard. Counters are retained.
func (s *Sharded[Key, Value]) Purge() {
	for i := range s.shards {
		shard := &s.shards[i]
		shard.mu.Lock()
		shard.cache.Purge()
		shard.mu.Unlock()
	}
}
