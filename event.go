package signalz

import "fmt"

// EventKind enumerates the four kinds of Event.
type EventKind int

const (
	// EventValue carries a value. It is the only non-terminating kind.
	EventValue EventKind = iota

	// EventFailed terminates the stream with an error.
	EventFailed

	// EventCompleted terminates the stream successfully.
	EventCompleted

	// EventInterrupted terminates the stream because it was cancelled
	// before it could complete or fail.
	EventInterrupted
)

// String returns the kind name.
func (k EventKind) String() string {
	switch k {
	case EventValue:
		return "value"
	case EventFailed:
		return "failed"
	case EventCompleted:
		return "completed"
	case EventInterrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a single occurrence on a stream. A well-formed stream sends any
// number of value events followed by at most one terminating event, and
// nothing after it.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type Event[T any] struct {
	// Value is set for EventValue.
	Value T

	// Err is set for EventFailed.
	Err error

	Kind EventKind
}

// ValueEvent creates a value event.
func ValueEvent[T any](value T) Event[T] {
	return Event[T]{Kind: EventValue, Value: value}
}

// FailedEvent creates a failed event.
func FailedEvent[T any](err error) Event[T] {
	return Event[T]{Kind: EventFailed, Err: err}
}

// CompletedEvent creates a completed event.
func CompletedEvent[T any]() Event[T] {
	return Event[T]{Kind: EventCompleted}
}

// InterruptedEvent creates an interrupted event.
func InterruptedEvent[T any]() Event[T] {
	return Event[T]{Kind: EventInterrupted}
}

// IsTerminating reports whether the event ends the stream.
func (e Event[T]) IsTerminating() bool {
	return e.Kind != EventValue
}

// String returns a human-readable representation of the event.
func (e Event[T]) String() string {
	switch e.Kind {
	case EventValue:
		return fmt.Sprintf("value(%v)", e.Value)
	case EventFailed:
		return fmt.Sprintf("failed(%v)", e.Err)
	default:
		return e.Kind.String()
	}
}

// MapEvent transforms the value of a value event. Terminating events are
// carried over unchanged.
func MapEvent[T, U any](e Event[T], transform func(T) U) Event[U] {
	if e.Kind == EventValue {
		return ValueEvent(transform(e.Value))
	}
	return terminalAs[U](e)
}

// terminalAs re-types a terminating event.
func terminalAs[U, T any](e Event[T]) Event[U] {
	return Event[U]{Kind: e.Kind, Err: e.Err}
}
