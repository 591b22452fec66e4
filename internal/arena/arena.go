// Package arena provides the handle-addressed storage and ordering
// primitives shared by the eviction policies.
//
// Entries live in a slot array and are referred to by [Handle], an
// index into that array. Handles are stable for the lifetime of an
// entry and are reused after removal. Ordering structures ([List])
// link handles, never pointers, so an entry can sit in any ordering
// without aliasing its storage.
package arena

// Handle is a stable, non-owning reference to a stored entry.
type Handle int

// None is the null [Handle].
const None Handle = -1

type (
	// Store owns all key/value pairs of one cache instance,
	// along with the key index. All operations are O(1).
	// It has no policy knowledge.
	Store[Key comparable, Value any] struct {
		slots []slot[Key, Value]
		free  []Handle
		index map[Key]Handle
	}
	slot[Key comparable, Value any] struct {
		key   Key
		value Value
	}
)

// NewStore creates a [Store] sized for capacity entries.
func NewStore[Key comparable, Value any](capacity int) *Store[Key, Value] {
	return &Store[Key, Value]{
		slots: make([]slot[Key, Value], 0, capacity),
		index: make(map[Key]Handle, capacity),
	}
}

// Lookup returns the handle bound to key, if any.
func (s *Store[Key, Value]) Lookup(key Key) (Handle, bool) {
	handle, ok := s.index[key]
	return handle, ok
}

// Insert stores a new key/value pair and returns its handle.
// The key must not already be present; update entries in place
// via [Store.Update].
func (s *Store[Key, Value]) Insert(key Key, value Value) Handle {
	var handle Handle
	if free := len(s.free); free > 0 {
		handle = s.free[free-1]
		s.free = s.free[:free-1]
		s.slots[handle] = slot[Key, Value]{key: key, value: value}
	} else {
		handle = Handle(len(s.slots))
		s.slots = append(s.slots, slot[Key, Value]{key: key, value: value})
	}
	s.index[key] = handle
	return handle
}

// Key returns the key stored at handle.
func (s *Store[Key, Value]) Key(handle Handle) Key {
	return s.slots[handle].key
}

// Value returns the value stored at handle.
func (s *Store[Key, Value]) Value(handle Handle) Value {
	return s.slots[handle].value
}

// Update replaces the value stored at handle.
func (s *Store[Key, Value]) Update(handle Handle, value Value) {
	s.slots[handle].value = value
}

// Remove deletes the entry at handle and its index binding in the
// same call, returning the removed value. The handle is invalid
// afterwards and may be reused by a later [Store.Insert].
func (s *Store[Key, Value]) Remove(handle Handle) Value {
	var (
		taken = s.slots[handle]
		zero  slot[Key, Value]
	)
	delete(s.index, taken.key)
	s.slots[handle] = zero
	s.free = append(s.free, handle)
	return taken.value
}

// Len returns the number of live entries.
func (s *Store[Key, Value]) Len() int {
	return len(s.index)
}

// Keys calls yield for each live key until it returns false.
// Order is unspecified.
func (s *Store[Key, Value]) Keys(yield func(Key) bool) {
	for key := range s.index {
		if !yield(key) {
			return
		}
	}
}

// Reset drops all entries. Handles issued before Reset are invalid.
func (s *Store[Key, Value]) Reset() {
	clear(s.index)
	s.slots = s.slots[:0]
	s.free = s.free[:0]
}
