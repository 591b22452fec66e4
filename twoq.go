package evict

import "github.com/djdv/go-evict/internal/arena"

// twoQueuePolicy keeps a probationary FIFO and a main recency list.
// New keys always enter probation; a repeat reference while still
// probationary promotes to main, and a probationary key is never
// reordered in place. Probation overflow is a pure FIFO drop that
// never displaces a main resident.
type twoQueuePolicy[Key comparable] struct {
	probation, main arena.List
	inMain          []bool // queue tag by handle
	probationTarget int
	capacity        int
}

func newTwoQueue[Key comparable](capacity int, ratio float64) *twoQueuePolicy[Key] {
	probationTarget := max(int(ratio*float64(capacity)+0.5), 1)
	return &twoQueuePolicy[Key]{
		probation:       arena.NewList(probationTarget),
		main:            arena.NewList(capacity),
		probationTarget: probationTarget,
		capacity:        capacity,
	}
}

func (q *twoQueuePolicy[Key]) onMiss(Key) {}

func (q *twoQueuePolicy[Key]) onInsert(handle arena.Handle) {
	for arena.Handle(len(q.inMain)) <= handle {
		q.inMain = append(q.inMain, false)
	}
	q.inMain[handle] = false
	q.probation.PushFront(handle)
}

func (q *twoQueuePolicy[Key]) onHit(handle arena.Handle) {
	if q.inMain[handle] {
		q.main.MoveToFront(handle)
		return
	}
	// Promotion: the entry leaves probation for good.
	q.probation.Remove(handle)
	q.main.PushFront(handle)
	q.inMain[handle] = true
}

func (q *twoQueuePolicy[Key]) victim(arena.Handle) (arena.Handle, bool) {
	if q.probation.Len() > q.probationTarget {
		return q.probation.Tail(), true
	}
	if q.probation.Len()+q.main.Len() <= q.capacity {
		return arena.None, false
	}
	if tail := q.main.Tail(); tail != arena.None {
		return tail, true
	}
	// Main is empty; evict from the other queue instead.
	return q.probation.Tail(), true
}

func (q *twoQueuePolicy[Key]) onEvict(handle arena.Handle)  { q.unlink(handle) }
func (q *twoQueuePolicy[Key]) onRemove(handle arena.Handle) { q.unlink(handle) }

func (q *twoQueuePolicy[Key]) unlink(handle arena.Handle) {
	if q.inMain[handle] {
		q.main.Remove(handle)
		return
	}
	q.probation.Remove(handle)
}

func (q *twoQueuePolicy[Key]) reset() {
	q.probation.Reset()
	q.main.Reset()
	q.inMain = q.inMain[:0]
}
