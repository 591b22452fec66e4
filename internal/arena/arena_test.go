package arena

import (
	"slices"
	"testing"
)

func TestStore(t *testing.T) {
	t.Run("insert and lookup", storeInsertLookup)
	t.Run("remove drops index", storeRemoveDropsIndex)
	t.Run("handle reuse", storeHandleReuse)
	t.Run("reset", storeReset)
}

func storeInsertLookup(t *testing.T) {
	t.Parallel()
	store := NewStore[string, int](4)
	handle := store.Insert("a", 1)
	got, ok := store.Lookup("a")
	if !ok || got != handle {
		t.Fatalf("expected lookup to return the inserted handle"+
			"\n\tgot: %v %t"+
			"\n\twant: %v true",
			got, ok, handle)
	}
	if key := store.Key(handle); key != "a" {
		t.Fatalf("expected key `a`, got: %q", key)
	}
	if value := store.Value(handle); value != 1 {
		t.Fatalf("expected value 1, got: %d", value)
	}
	store.Update(handle, 2)
	if value := store.Value(handle); value != 2 {
		t.Fatalf("expected updated value 2, got: %d", value)
	}
	if length := store.Len(); length != 1 {
		t.Fatalf("expected 1 live entry, got: %d", length)
	}
}

func storeRemoveDropsIndex(t *testing.T) {
	t.Parallel()
	store := NewStore[string, int](4)
	handle := store.Insert("a", 1)
	if value := store.Remove(handle); value != 1 {
		t.Fatalf("expected Remove to return the stored value, got: %d", value)
	}
	if _, ok := store.Lookup("a"); ok {
		t.Fatal("expected the index binding to be dropped with the entry")
	}
	if length := store.Len(); length != 0 {
		t.Fatalf("expected an empty store, got: %d", length)
	}
}

func storeHandleReuse(t *testing.T) {
	t.Parallel()
	store := NewStore[string, int](4)
	first := store.Insert("a", 1)
	store.Remove(first)
	second := store.Insert("b", 2)
	if first != second {
		t.Fatalf(
			"expected the freed slot to be reused"+
				"\n\tgot: %v"+
				"\n\twant: %v",
			second, first)
	}
	if key := store.Key(second); key != "b" {
		t.Fatalf("expected the reused slot to hold the new key, got: %q", key)
	}
}

func storeReset(t *testing.T) {
	t.Parallel()
	store := NewStore[string, int](4)
	store.Insert("a", 1)
	store.Insert("b", 2)
	store.Reset()
	if length := store.Len(); length != 0 {
		t.Fatalf("expected an empty store after reset, got: %d", length)
	}
	var keys []string
	store.Keys(func(key string) bool {
		keys = append(keys, key)
		return true
	})
	if len(keys) != 0 {
		t.Fatalf("expected no keys after reset, got: %v", keys)
	}
}

func TestList(t *testing.T) {
	t.Run("push and tail", listPushTail)
	t.Run("move to front", listMoveToFront)
	t.Run("remove", listRemove)
	t.Run("reset", listReset)
}

// collect returns handles from most to least recent.
func collect(list *List) []Handle {
	var (
		handles []Handle
		seen    = make(map[Handle]bool)
	)
	for handle := list.Tail(); handle != None; {
		if seen[handle] { // cycle; corrupt links
			return nil
		}
		seen[handle] = true
		handles = append(handles, handle)
		handle = list.links[handle].prev
	}
	slices.Reverse(handles)
	return handles
}

func listPushTail(t *testing.T) {
	t.Parallel()
	list := NewList(4)
	for handle := Handle(0); handle < 3; handle++ {
		list.PushFront(handle)
	}
	if length := list.Len(); length != 3 {
		t.Fatalf("expected 3 linked handles, got: %d", length)
	}
	if tail := list.Tail(); tail != 0 {
		t.Fatalf("expected the first pushed handle at the tail, got: %v", tail)
	}
	want := []Handle{2, 1, 0}
	if got := collect(&list); !slices.Equal(got, want) {
		t.Fatalf(
			"unexpected order"+
				"\n\tgot: %v"+
				"\n\twant: %v",
			got, want)
	}
}

func listMoveToFront(t *testing.T) {
	t.Parallel()
	list := NewList(4)
	for handle := Handle(0); handle < 3; handle++ {
		list.PushFront(handle)
	}
	list.MoveToFront(0)
	want := []Handle{0, 2, 1}
	if got := collect(&list); !slices.Equal(got, want) {
		t.Fatalf(
			"unexpected order after promotion"+
				"\n\tgot: %v"+
				"\n\twant: %v",
			got, want)
	}
	list.MoveToFront(0) // promoting the front is a no-op
	if got := collect(&list); !slices.Equal(got, want) {
		t.Fatalf(
			"unexpected order after re-promotion"+
				"\n\tgot: %v"+
				"\n\twant: %v",
			got, want)
	}
}

func listRemove(t *testing.T) {
	t.Parallel()
	list := NewList(4)
	for handle := Handle(0); handle < 3; handle++ {
		list.PushFront(handle)
	}
	list.Remove(1) // middle
	want := []Handle{2, 0}
	if got := collect(&list); !slices.Equal(got, want) {
		t.Fatalf(
			"unexpected order after removal"+
				"\n\tgot: %v"+
				"\n\twant: %v",
			got, want)
	}
	list.Remove(0) // tail
	if tail := list.Tail(); tail != 2 {
		t.Fatalf("expected the remaining handle at the tail, got: %v", tail)
	}
	list.Remove(2) // last
	if length := list.Len(); length != 0 {
		t.Fatalf("expected an empty list, got: %d", length)
	}
	if tail := list.Tail(); tail != None {
		t.Fatalf("expected None from an empty list, got: %v", tail)
	}
}

func listReset(t *testing.T) {
	t.Parallel()
	list := NewList(4)
	list.PushFront(0)
	list.PushFront(1)
	list.Reset()
	if length := list.Len(); length != 0 {
		t.Fatalf("expected an empty list after reset, got: %d", length)
	}
	list.PushFront(2) // usable after reset
	if tail := list.Tail(); tail != 2 {
		t.Fatalf("expected the pushed handle at the tail, got: %v", tail)
	}
}
