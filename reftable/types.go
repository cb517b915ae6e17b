package reftable

// Handle is an opaque reference to an entry in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType identifies a table lifecycle event.
type EventType uint8

const (
	EventInserted EventType = iota
	EventRemoved
	EventPinned
	EventUnpinned
)

func (t EventType) String() string {
	switch t {
	case EventInserted:
		return "inserted"
	case EventRemoved:
		return "removed"
	case EventPinned:
		return "pinned"
	case EventUnpinned:
		return "unpinned"
	default:
		return "unknown"
	}
}

// Event represents a table lifecycle event.
type Event[T any] struct {
	Value  T
	Handle Handle
	Type   EventType
}

// Observer receives notifications about table lifecycle events.
type Observer[T any] interface {
	OnRefEvent(Event[T])
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc[T any] func(Event[T])

// OnRefEvent calls f(e).
func (f ObserverFunc[T]) OnRefEvent(e Event[T]) { f(e) }
