package evict_test

import (
	"errors"
	"sync"
	"testing"

	evict "github.com/djdv/go-evict"
)

func TestSharded(t *testing.T) {
	t.Run("invalid shard count", shardedInvalidCount)
	t.Run("basic", shardedBasic)
	t.Run("capacity invariant", shardedCapacityInvariant)
	t.Run("stats aggregation", shardedStats)
	t.Run("purge", shardedPurge)
	t.Run("concurrent access", shardedConcurrentAccess)
}

func newShardedCache[
	Key comparable, Value any,
](tb testing.TB, capacity, shards int, config evict.PolicyConfig) testCache[Key, Value] {
	tb.Helper()
	cache, err := evict.NewSharded[Key, Value](capacity, shards, config)
	if err != nil {
		tb.Fatal(err)
	}
	return cache
}

func shardedInvalidCount(t *testing.T) {
	t.Parallel()
	const capacity = 8
	for _, shards := range []int{-1, 0, capacity + 1} {
		cache, err := evict.NewSharded[int, int](capacity, shards, nil)
		if cache != nil || !errors.Is(err, evict.ErrInvalidShardCount) {
			t.Errorf(
				"NewSharded did not reject invalid shard count: %d (err: %v)",
				shards, err,
			)
		}
	}
}

func shardedBasic(t *testing.T) {
	t.Parallel()
	// entries never exceeds a single shard's capacity,
	// so no hash distribution can force an eviction.
	const (
		capacity = 64
		shards   = 4
		entries  = capacity / shards
	)
	for _, policy := range policies() {
		cache := newShardedCache[int, int](t, capacity, shards, policy.config)
		addIncrementingInts(cache, entries)
		checkSize(t, cache, entries, "under capacity")
		for key := 1; key <= entries; key++ {
			checkGet(t, cache, key, key, "under capacity")
		}
		if got, ok := cache.Remove(1); !ok || got != 1 {
			t.Fatalf("expected Remove to return the resident value, got: %v %t", got, ok)
		}
		mustMiss(t, cache, 1, "key was removed")
		checkSize(t, cache, entries-1, "after removal")
	}
}

// Per-shard capacities must sum to the requested total.
func shardedCapacityInvariant(t *testing.T) {
	t.Parallel()
	const (
		capacity = 10 // does not divide evenly by 3
		shards   = 3
		churn    = 512
	)
	for _, policy := range policies() {
		cache := newShardedCache[int, int](t, capacity, shards, policy.config)
		for i := range churn {
			cache.Put(i, i)
			if size := cache.Len(); size > capacity {
				t.Fatalf(
					"resident entries exceed total capacity"+
						"\n\tgot: %d"+
						"\n\twant: <=%d",
					size, capacity)
			}
		}
	}
}

func shardedStats(t *testing.T) {
	t.Parallel()
	// entries fits within one shard so no eviction can
	// steal a hit regardless of hash distribution.
	const (
		capacity = 16
		shards   = 4
		entries  = capacity / shards
		misses   = 10
	)
	cache := newShardedCache[int, int](t, capacity, shards, evict.LRU{})
	for key := range misses {
		cache.Get(-key - 1)
	}
	if got := cache.Stats(); got.Misses != misses {
		t.Fatalf(
			"expected misses summed across shards"+
				"\n\tgot: %+v"+
				"\n\twant: Misses=%d",
			got, misses)
	}
	addIncrementingInts(cache, entries)
	for key := 1; key <= entries; key++ {
		cache.Get(key)
	}
	if got := cache.Stats(); got.Hits != entries {
		t.Fatalf(
			"expected hits summed across shards"+
				"\n\tgot: %+v"+
				"\n\twant: Hits=%d",
			got, entries)
	}
}

func shardedPurge(t *testing.T) {
	t.Parallel()
	const (
		capacity = 16
		shards   = 4
	)
	cache := newShardedCache[int, int](t, capacity, shards, evict.ARC{})
	addIncrementingInts(cache, capacity*2)
	cache.Purge()
	checkSize(t, cache, 0, "after purge")
	checkKeyLength(t, cache, 0, "after purge")
	// Refill fits within one shard; no hash distribution can evict.
	addIncrementingInts(cache, capacity/shards)
	checkSize(t, cache, capacity/shards, "refilled after purge")
}

func shardedConcurrentAccess(t *testing.T) {
	t.Parallel()
	const (
		capacity = 128
		shards   = 8
		workers  = 8
		opCount  = 4096
		universe = 512
	)
	for _, policy := range policies() {
		t.Run(policy.name, func(t *testing.T) {
			t.Parallel()
			cache := newShardedCache[int, int](t, capacity, shards, policy.config)
			var wg sync.WaitGroup
			for worker := range workers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for op := range opCount {
						key := (worker*opCount + op*13) % universe
						switch op % 4 {
						case 0:
							cache.Get(key)
						case 3:
							cache.Remove(key)
						default:
							cache.Put(key, op)
						}
					}
				}()
			}
			wg.Wait()
			if size := cache.Len(); size > capacity {
				t.Fatalf(
					"resident entries exceed total capacity"+
						"\n\tgot: %d"+
						"\n\twant: <=%d",
					size, capacity)
			}
		})
	}
}
