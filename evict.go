package evict

import (
	"fmt"
	"iter"

	"github.com/djdv/go-evict/internal/arena"
)

type (
	// Stats counts cache outcomes. Each counter is monotonically
	// non-decreasing for the lifetime of one [Cache]; [Cache.Purge]
	// does not reset them. Hits and Misses count [Cache.Get]
	// outcomes; Evictions counts capacity evictions only,
	// not explicit removals.
	Stats struct {
		Hits, Misses, Evictions uint64
	}
	// policy is implemented once per replacement algorithm.
	// The facade owns the entry store; policies own only their
	// ordering structures and are driven through these hooks,
	// always within the caller's critical section.
	policy[Key comparable] interface {
		// onMiss observes the key of an imminent insert before any
		// eviction, so adaptive policies can consult ghost state.
		onMiss(key Key)
		// victim reports the handle to evict to restore the capacity
		// invariant after the insert of incoming, or false when no
		// eviction is required. Policies that rank short-history
		// entries below warm ones may select incoming itself.
		// It may prune stale internal bookkeeping.
		victim(incoming arena.Handle) (arena.Handle, bool)
		// onEvict unlinks a victim; ghost records are written here.
		onEvict(handle arena.Handle)
		// onInsert admits the handle of a just-stored entry.
		onInsert(handle arena.Handle)
		// onHit records a reference to a resident handle.
		onHit(handle arena.Handle)
		// onRemove unlinks an explicitly removed handle.
		// Unlike onEvict, no ghost record is written.
		onRemove(handle arena.Handle)
		// reset drops all ordering and ghost state.
		reset()
	}
	// Cache maps keys to values with bounded capacity, evicting
	// per the [PolicyConfig] it was constructed with.
	// Concurrent access must be guarded by the caller;
	// see [Sharded]. Constructed by [New].
	Cache[Key comparable, Value any] struct {
		store    *arena.Store[Key, Value]
		policy   policy[Key]
		stats    Stats
		capacity int
	}
)

// MinimumCapacity defines the lowest value supported by [New].
const MinimumCapacity = 1

// New creates a [Cache] holding at most capacity entries.
// A nil config selects [LRU]. Invalid configurations are rejected
// here; a partially constructed cache is never returned.
func New[Key comparable, Value any](capacity int, config PolicyConfig) (*Cache[Key, Value], error) {
	if capacity < MinimumCapacity {
		return nil, minCapacityError(capacity)
	}
	if config == nil {
		config = LRU{}
	}
	if err := config.validate(capacity); err != nil {
		return nil, err
	}
	var (
		store = arena.NewStore[Key, Value](capacity)
		cache = &Cache[Key, Value]{
			store:    store,
			capacity: capacity,
		}
	)
	switch config := config.(type) {
	case LRU:
		cache.policy = newLRU[Key](capacity)
	case LRUK:
		cache.policy = newLRUK[Key](capacity, config.K)
	case TwoQueue:
		cache.policy = newTwoQueue[Key](capacity, config.ratio())
	case ARC:
		cache.policy = newARC(capacity, store.Key)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidPolicy, config)
	}
	return cache, nil
}

// Get returns the value for key if it is resident,
// marking it as referenced; otherwise it returns
// the zero value and false.
func (c *Cache[Key, Value]) Get(key Key) (Value, bool) {
	handle, ok := c.store.Lookup(key)
	if !ok {
		c.stats.Misses++
		var zero Value
		return zero, false
	}
	c.stats.Hits++
	c.policy.onHit(handle)
	return c.store.Value(handle), true
}

// Put inserts or updates key with value and marks it as referenced.
// Inserting a new key into a full cache evicts exactly one entry
// before Put returns.
func (c *Cache[Key, Value]) Put(key Key, value Value) {
	if handle, ok := c.store.Lookup(key); ok {
		c.store.Update(handle, value)
		c.policy.onHit(handle)
		return
	}
	c.policy.onMiss(key)
	handle := c.store.Insert(key, value)
	c.policy.onInsert(handle)
	if victim, evict := c.policy.victim(handle); evict {
		c.policy.onEvict(victim)
		c.store.Remove(victim)
		c.stats.Evictions++
	}
	if debugging {
		assert(c.store.Len() <= c.capacity,
			"resident entries exceed capacity")
	}
}

// Load returns the cached value for key (if resident). Otherwise, it
// calls fetch, inserts and returns the value on success.
// If fetch returns an error, the value is not cached.
func (c *Cache[Key, Value]) Load(key Key, fetch func() (Value, error)) (Value, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}
	value, err := fetch()
	if err != nil {
		return value, err
	}
	c.Put(key, value)
	return value, nil
}

// Remove deletes key, returning its value and whether it was
// resident. Removing an absent key is a no-op.
func (c *Cache[Key, Value]) Remove(key Key) (Value, bool) {
	handle, ok := c.store.Lookup(key)
	if !ok {
		var zero Value
		return zero, false
	}
	c.policy.onRemove(handle)
	return c.store.Remove(handle), true
}

// Peek returns the value for key without marking it as referenced
// and without counting a hit or miss.
func (c *Cache[Key, Value]) Peek(key Key) (Value, bool) {
	if handle, ok := c.store.Lookup(key); ok {
		return c.store.Value(handle), true
	}
	var zero Value
	return zero, false
}

// Contains reports whether key is resident,
// without marking it as referenced.
func (c *Cache[Key, Value]) Contains(key Key) bool {
	_, ok := c.store.Lookup(key)
	return ok
}

// Len returns the number of resident entries.
func (c *Cache[Key, Value]) Len() int {
	return c.store.Len()
}

// Stats returns a snapshot of the cache's counters.
func (c *Cache[Key, Value]) Stats() Stats {
	return c.stats
}

// Keys returns an iterator over the (unordered) resident keys.
func (c *Cache[Key, Value]) Keys() iter.Seq[Key] {
	return c.store.Keys
}

// Purge drops every entry along with all ordering and ghost state.
// Counters are retained.
func (c *Cache[Key, Value]) Purge() {
	c.store.Reset()
	c.policy.reset()
}
