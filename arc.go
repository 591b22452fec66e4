package evict

import "github.com/djdv/go-evict/internal/arena"

type (
	// arcPolicy keeps a recency list t1 (keys seen once) and a
	// frequency list t2 (keys seen at least twice), plus ghost lists
	// b1/b2 remembering keys recently evicted from each. The target
	// size of t1 is the adaptation parameter p, learned from ghost
	// hits: a b1 hit raises p (favor recency), a b2 hit lowers it
	// (favor frequency). p belongs to one cache instance; independent
	// caches never share it.
	arcPolicy[Key comparable] struct {
		t1, t2          arena.List
		b1, b2          ghost[Key]
		inT2            []bool // list tag by handle
		keyOf           func(arena.Handle) Key
		p               int // target size of t1, within [0, capacity]
		capacity        int
		pendingFrequent bool // next insert re-admits into t2
	}
	// ghost remembers the keys of evicted entries, never values,
	// in recency order, bounded independently of the resident set.
	ghost[Key comparable] struct {
		keys  *arena.Store[Key, struct{}]
		order arena.List
		bound int
	}
)

func newARC[Key comparable](capacity int, keyOf func(arena.Handle) Key) *arcPolicy[Key] {
	return &arcPolicy[Key]{
		t1:       arena.NewList(capacity),
		t2:       arena.NewList(capacity),
		b1:       newGhost[Key](capacity),
		b2:       newGhost[Key](capacity),
		keyOf:    keyOf,
		capacity: capacity,
	}
}

// onMiss consults the ghosts before the insert: a hit there means the
// key was evicted too early from the matching list, and p learns
// toward it. Deltas follow the ARC paper: the scarcer the hit ghost
// list relative to its sibling, the larger the step.
func (a *arcPolicy[Key]) onMiss(key Key) {
	b1Len, b2Len := a.b1.len(), a.b2.len()
	switch {
	case a.b1.hit(key):
		a.p = min(a.p+max(b2Len/b1Len, 1), a.capacity)
	case a.b2.hit(key):
		a.p = max(a.p-max(b1Len/b2Len, 1), 0)
		a.pendingFrequent = true
	}
}

func (a *arcPolicy[Key]) onInsert(handle arena.Handle) {
	for arena.Handle(len(a.inT2)) <= handle {
		a.inT2 = append(a.inT2, false)
	}
	if frequent := a.pendingFrequent; frequent {
		a.pendingFrequent = false
		a.inT2[handle] = true
		a.t2.PushFront(handle)
		return
	}
	a.inT2[handle] = false
	a.t1.PushFront(handle)
}

func (a *arcPolicy[Key]) onHit(handle arena.Handle) {
	if a.inT2[handle] {
		a.t2.MoveToFront(handle)
		return
	}
	a.t1.Remove(handle)
	a.t2.PushFront(handle)
	a.inT2[handle] = true
}

// victim evicts from whichever of t1/t2 exceeds its target
// (t1 targets p, t2 targets capacity-p).
func (a *arcPolicy[Key]) victim(incoming arena.Handle) (arena.Handle, bool) {
	if a.t1.Len()+a.t2.Len() <= a.capacity {
		return arena.None, false
	}
	first, second := &a.t2, &a.t1
	if a.t1.Len() > a.p {
		first, second = &a.t1, &a.t2
	}
	if tail := first.Tail(); tail != arena.None && tail != incoming {
		return tail, true
	}
	// Target list empty, or holds only the just-inserted entry;
	// evict from the other list instead.
	tail := second.Tail()
	if debugging {
		assert(tail != arena.None && tail != incoming,
			"no evictable entry in either list")
	}
	return tail, true
}

func (a *arcPolicy[Key]) onEvict(handle arena.Handle) {
	key := a.keyOf(handle)
	if a.inT2[handle] {
		a.t2.Remove(handle)
		a.b2.add(key)
		return
	}
	a.t1.Remove(handle)
	a.b1.add(key)
}

func (a *arcPolicy[Key]) onRemove(handle arena.Handle) {
	if a.inT2[handle] {
		a.t2.Remove(handle)
		return
	}
	a.t1.Remove(handle)
}

func (a *arcPolicy[Key]) reset() {
	a.t1.Reset()
	a.t2.Reset()
	a.b1.reset()
	a.b2.reset()
	a.inT2 = a.inT2[:0]
	a.p = 0
	a.pendingFrequent = false
}

func newGhost[Key comparable](bound int) ghost[Key] {
	return ghost[Key]{
		keys:  arena.NewStore[Key, struct{}](bound),
		order: arena.NewList(bound),
		bound: bound,
	}
}

// hit removes key from the ghost if present, reporting whether it was.
func (g *ghost[Key]) hit(key Key) bool {
	handle, ok := g.keys.Lookup(key)
	if !ok {
		return false
	}
	g.order.Remove(handle)
	g.keys.Remove(handle)
	return true
}

// add records key as the most recent ghost,
// forgetting the oldest past the bound. Pure forgetting;
// no adaptation signal.
func (g *ghost[Key]) add(key Key) {
	if g.order.Len() == g.bound {
		oldest := g.order.Tail()
		g.order.Remove(oldest)
		g.keys.Remove(oldest)
	}
	g.order.PushFront(g.keys.Insert(key, struct{}{}))
}

func (g *ghost[Key]) len() int { return g.order.Len() }

func (g *ghost[Key]) reset() {
	g.keys.Reset()
	g.order.Reset()
}
