// Package handles implements a generation-checked handle table. Callers
// receive opaque uint64 handles instead of pointers; a handle encodes a slot
// index and a generation counter, so lookups against destroyed or fabricated
// handles fail detectably instead of dereferencing freed state.
package handles

import "sync"

// Handle is an opaque reference into a Table. The zero Handle is never
// valid.
type Handle uint64

// None is the invalid zero handle.
const None Handle = 0

type slot[T any] struct {
	gen   uint32
	live  bool
	value T
}

// Table maps handles to values of type T. Slots are recycled after Remove;
// each reuse bumps the slot generation so stale handles keep failing.
type Table[T any] struct {
	mu    sync.RWMutex
	slots []slot[T]
	free  []uint32
}

func pack(index, gen uint32) Handle {
	// index is stored off by one so the zero Handle stays invalid.
	return Handle(uint64(gen)<<32 | uint64(index+1))
}

func unpack(h Handle) (index, gen uint32, ok bool) {
	low := uint32(h)
	if low == 0 {
		return 0, 0, false
	}
	return low - 1, uint32(h >> 32), true
}

// Put stores v and returns its handle.
func (t *Table[T]) Put(v T) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	var index uint32
	if n := len(t.free); n > 0 {
		index = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		index = uint32(len(t.slots))
		t.slots = append(t.slots, slot[T]{})
	}

	s := &t.slots[index]
	s.gen++
	s.live = true
	s.value = v
	return pack(index, s.gen)
}

// Get returns the value for h, or false if h is zero, stale, or was never
// issued by this table.
func (t *Table[T]) Get(h Handle) (T, bool) {
	var zero T
	index, gen, ok := unpack(h)
	if !ok {
		return zero, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if int(index) >= len(t.slots) {
		return zero, false
	}
	s := &t.slots[index]
	if !s.live || s.gen != gen {
		return zero, false
	}
	return s.value, true
}

// Remove invalidates h and returns its value. A second Remove with the same
// handle, or a Remove with a stale handle, returns false and changes
// nothing.
func (t *Table[T]) Remove(h Handle) (T, bool) {
	var zero T
	index, gen, ok := unpack(h)
	if !ok {
		return zero, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if int(index) >= len(t.slots) {
		return zero, false
	}
	s := &t.slots[index]
	if !s.live || s.gen != gen {
		return zero, false
	}
	v := s.value
	s.live = false
	s.value = zero
	t.free = append(t.free, index)
	return v, true
}

// Len reports the number of live entries.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.slots) - len(t.free)
}
