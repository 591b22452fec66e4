package evict

import (
	"container/heap"

	"github.com/djdv/go-evict/internal/arena"
)

type (
	// lrukPolicy ranks entries by their K-th most recent access tick.
	// Entries with fewer than K recorded accesses rank below any
	// entry with a full history, tie-broken by insertion order, so a
	// single-touch scan key is always evicted before a warm one —
	// including a key inserted by the very put that is evicting.
	//
	// Victim lookup is O(log n) via a min-heap over derived ranks.
	// Heap entries are invalidated lazily (each access bumps the
	// entry's generation and pushes a fresh rank) and compacted once
	// stale entries dominate, keeping access recording O(1) amortized.
	lrukPolicy[Key comparable] struct {
		ranks    rankHeap
		states   []lrukState
		clock    uint64
		live     int
		k        int
		capacity int
	}
	lrukState struct {
		history  []uint64 // ring of the last k access ticks
		head     int      // next write position; oldest tick when full
		count    int      // recorded accesses, capped at k
		inserted uint64
		gen      uint64
		live     bool
	}
	rankEntry struct {
		rank   uint64 // k-th access tick when full; insertion tick otherwise
		gen    uint64
		handle arena.Handle
		full   bool
	}
	rankHeap []rankEntry
)

func newLRUK[Key comparable](capacity, k int) *lrukPolicy[Key] {
	return &lrukPolicy[Key]{
		ranks:    make(rankHeap, 0, capacity),
		states:   make([]lrukState, 0, capacity),
		k:        k,
		capacity: capacity,
	}
}

func (p *lrukPolicy[Key]) onMiss(Key) {}

func (p *lrukPolicy[Key]) onInsert(handle arena.Handle) {
	for arena.Handle(len(p.states)) <= handle {
		p.states = append(p.states, lrukState{})
	}
	state := &p.states[handle]
	if state.history == nil {
		state.history = make([]uint64, p.k)
	}
	state.head = 0
	state.count = 0
	state.live = true
	state.inserted = p.clock + 1 // tick assigned by touch below
	p.live++
	p.touch(handle)
}

func (p *lrukPolicy[Key]) onHit(handle arena.Handle) {
	p.touch(handle)
}

// touch appends the current tick to the handle's access history,
// dropping the oldest of the last k, and queues its new rank.
func (p *lrukPolicy[Key]) touch(handle arena.Handle) {
	var (
		state = &p.states[handle]
		tick  = p.clock + 1
	)
	p.clock = tick
	state.history[state.head] = tick
	state.head = (state.head + 1) % p.k
	if state.count < p.k {
		state.count++
	}
	state.gen++
	heap.Push(&p.ranks, p.rankOf(state, handle))
	p.maybeCompact()
}

func (p *lrukPolicy[Key]) rankOf(state *lrukState, handle arena.Handle) rankEntry {
	entry := rankEntry{gen: state.gen, handle: handle}
	if full := state.count == p.k; full {
		entry.full = true
		entry.rank = state.history[state.head]
	} else {
		entry.rank = state.inserted
	}
	return entry
}

func (p *lrukPolicy[Key]) victim(arena.Handle) (arena.Handle, bool) {
	if p.live <= p.capacity {
		return arena.None, false
	}
	for len(p.ranks) > 0 {
		var (
			top   = p.ranks[0]
			state = &p.states[top.handle]
		)
		if state.live && state.gen == top.gen {
			return top.handle, true
		}
		heap.Pop(&p.ranks) // stale
	}
	if debugging {
		assert(false, "rank heap exhausted with residents present")
	}
	return arena.None, false
}

func (p *lrukPolicy[Key]) onEvict(handle arena.Handle)  { p.drop(handle) }
func (p *lrukPolicy[Key]) onRemove(handle arena.Handle) { p.drop(handle) }

func (p *lrukPolicy[Key]) drop(handle arena.Handle) {
	state := &p.states[handle]
	state.live = false
	state.gen++ // invalidates queued ranks
	p.live--
}

// maybeCompact rebuilds the heap from live states
// once stale entries dominate it.
func (p *lrukPolicy[Key]) maybeCompact() {
	const (
		slack = 4
		floor = 64
	)
	if len(p.ranks) <= floor || len(p.ranks) <= slack*p.live {
		return
	}
	rebuilt := make(rankHeap, 0, p.live)
	for handle := range p.states {
		state := &p.states[handle]
		if !state.live {
			continue
		}
		rebuilt = append(rebuilt, p.rankOf(state, arena.Handle(handle)))
	}
	heap.Init(&rebuilt)
	p.ranks = rebuilt
}

func (p *lrukPolicy[Key]) reset() {
	p.ranks = p.ranks[:0]
	p.states = p.states[:0]
	p.live = 0
}

func (h rankHeap) Len() int { return len(h) }

func (h rankHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.full != b.full {
		return !a.full // short histories evict first
	}
	return a.rank < b.rank
}

func (h rankHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *rankHeap) Push(x any) { *h = append(*h, x.(rankEntry)) }

func (h *rankHeap) Pop() any {
	var (
		old   = *h
		n     = len(old) - 1
		entry = old[n]
	)
	*h = old[:n]
	return entry
}
