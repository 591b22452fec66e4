package evict

import "github.com/djdv/go-evict/internal/arena"

// lruPolicy keeps one recency list; hits move to front,
// eviction takes the tail. Stateless beyond the list.
type lruPolicy[Key comparable] struct {
	order    arena.List
	capacity int
}

func newLRU[Key comparable](capacity int) *lruPolicy[Key] {
	return &lruPolicy[Key]{
		order:    arena.NewList(capacity),
		capacity: capacity,
	}
}

func (l *lruPolicy[Key]) onMiss(Key) {}

func (l *lruPolicy[Key]) victim(arena.Handle) (arena.Handle, bool) {
	if l.order.Len() <= l.capacity {
		return arena.None, false
	}
	return l.order.Tail(), true
}

func (l *lruPolicy[Key]) onEvict(handle arena.Handle) {
	l.order.Remove(handle)
}

func (l *lruPolicy[Key]) onInsert(handle arena.Handle) {
	l.order.PushFront(handle)
}

func (l *lruPolicy[Key]) onHit(handle arena.Handle) {
	l.order.MoveToFront(handle)
}

func (l *lruPolicy[Key]) onRemove(handle arena.Handle) {
	l.order.Remove(handle)
}

func (l *lruPolicy[Key]) reset() {
	l.order.Reset()
}
