package arena

type (
	// List is a doubly-linked recency order over store handles.
	// Links are held in a flat slice indexed by handle, so insertion,
	// promotion, and removal are O(1) with no node allocation and no
	// pointer aliasing. Constructed by [NewList].
	//
	// A handle may sit in at most one List at a time; membership is
	// the caller's contract and is not checked here.
	List struct {
		links      []link
		head, tail Handle
		length     int
	}
	link struct {
		prev, next Handle
	}
)

// NewList creates a [List] with room for capacity handles.
// Lists grow on demand; capacity is only a hint.
func NewList(capacity int) List {
	return List{
		links: make([]link, 0, capacity),
		head:  None,
		tail:  None,
	}
}

// PushFront links handle at the front (most recent position).
// The handle must not currently be in the list.
func (l *List) PushFront(handle Handle) {
	l.grow(handle)
	l.links[handle] = link{prev: None, next: l.head}
	if l.head != None {
		l.links[l.head].prev = handle
	} else {
		l.tail = handle
	}
	l.head = handle
	l.length++
}

// MoveToFront relinks handle as the most recent position.
// The handle must currently be in the list.
func (l *List) MoveToFront(handle Handle) {
	if l.head == handle {
		return
	}
	l.Remove(handle)
	l.PushFront(handle)
}

// Remove unlinks handle from the list.
// The handle must currently be in the list.
func (l *List) Remove(handle Handle) {
	unlinked := l.links[handle]
	if unlinked.prev != None {
		l.links[unlinked.prev].next = unlinked.next
	} else {
		l.head = unlinked.next
	}
	if unlinked.next != None {
		l.links[unlinked.next].prev = unlinked.prev
	} else {
		l.tail = unlinked.prev
	}
	l.links[handle] = link{prev: None, next: None}
	l.length--
}

// Tail returns the least recent handle, or [None] when empty.
func (l *List) Tail() Handle {
	if l.length == 0 {
		return None
	}
	return l.tail
}

// Len returns the number of linked handles.
func (l *List) Len() int {
	return l.length
}

// Reset unlinks everything.
func (l *List) Reset() {
	l.links = l.links[:0]
	l.head = None
	l.tail = None
	l.length = 0
}

func (l *List) grow(handle Handle) {
	for Handle(len(l.links)) <= handle {
		l.links = append(l.links, link{prev: None, next: None})
	}
}
