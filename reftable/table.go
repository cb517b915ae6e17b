package reftable

import (
	"errors"
	"sync"
)

var (
	ErrClosed = errors.New("reference table closed")
	ErrPinned = errors.New("cannot remove pinned reference")
)

// Table is an in-memory handle table with pin tracking.
// It is safe for concurrent use.
type Table[T any] struct {
	entries   []entry[T]
	freeList  []Handle
	observers []Observer[T]
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

type entry[T any] struct {
	value T
	pins  uint32
	valid bool
}

// New creates an empty table.
func New[T any]() *Table[T] {
	return &Table[T]{
		entries:  make([]entry[T], 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Insert stores a value and returns its handle.
func (t *Table[T]) Insert(value T) (Handle, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0, ErrClosed
	}

	e := entry[T]{value: value, valid: true}

	var handle Handle
	if n := len(t.freeList); n > 0 {
		handle = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[handle-1] = e
	} else {
		t.entries = append(t.entries, e)
		handle = Handle(len(t.entries))
	}
	t.mu.Unlock()

	t.notify(Event[T]{Type: EventInserted, Handle: handle, Value: value})
	return handle, nil
}

// Get retrieves a value by handle.
func (t *Table[T]) Get(handle Handle) (T, bool) {
	var zero T
	if handle == 0 {
		return zero, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return zero, false
	}
	e := t.entries[idx]
	if !e.valid {
		return zero, false
	}
	return e.value, true
}

// Remove drops an entry and returns (value, true) if it was live and unpinned.
func (t *Table[T]) Remove(handle Handle) (T, bool) {
	var zero T
	if handle == 0 {
		return zero, false
	}

	t.mu.Lock()
	idx := handle - 1
	if int(idx) >= len(t.entries) {
		t.mu.Unlock()
		return zero, false
	}
	e := &t.entries[idx]
	if !e.valid || e.pins > 0 {
		t.mu.Unlock()
		return zero, false
	}
	value := e.value
	e.value = zero
	e.valid = false
	t.freeList = append(t.freeList, handle)
	t.mu.Unlock()

	t.notify(Event[T]{Type: EventRemoved, Handle: handle, Value: value})
	return value, true
}

// Pin prevents an entry from being removed until a matching Unpin.
func (t *Table[T]) Pin(handle Handle) bool {
	return t.adjustPins(handle, 1)
}

// Unpin releases one Pin.
func (t *Table[T]) Unpin(handle Handle) bool {
	return t.adjustPins(handle, -1)
}

func (t *Table[T]) adjustPins(handle Handle, delta int) bool {
	if handle == 0 {
		return false
	}

	t.mu.Lock()
	idx := handle - 1
	if int(idx) >= len(t.entries) {
		t.mu.Unlock()
		return false
	}
	e := &t.entries[idx]
	if !e.valid || (delta < 0 && e.pins == 0) {
		t.mu.Unlock()
		return false
	}
	e.pins = uint32(int(e.pins) + delta)
	value := e.value
	t.mu.Unlock()

	typ := EventPinned
	if delta < 0 {
		typ = EventUnpinned
	}
	t.notify(Event[T]{Type: typ, Handle: handle, Value: value})
	return true
}

// Pinned reports whether the entry is live and pinned.
func (t *Table[T]) Pinned(handle Handle) bool {
	if handle == 0 {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return false
	}
	e := t.entries[idx]
	return e.valid && e.pins > 0
}

// Len returns the number of live entries.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, e := range t.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Each iterates over all live entries until fn returns false.
func (t *Table[T]) Each(fn func(Handle, T) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, e := range t.entries {
		if e.valid {
			if !fn(Handle(i+1), e.value) {
				break
			}
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table[T]) Subscribe(o Observer[T]) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Close drops every entry and rejects further inserts.
func (t *Table[T]) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	t.entries = nil
	t.freeList = nil
	return nil
}

func (t *Table[T]) notify(e Event[T]) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnRefEvent(e)
	}
}
