package signalz

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder captures the events delivered to its observer.
type recorder[T any] struct {
	events []Event[T]
	mu     sync.Mutex
}

func newRecorder[T any]() *recorder[T] {
	return &recorder[T]{}
}

func (r *recorder[T]) observer() *Observer[T] {
	return NewObserver(func(e Event[T]) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, e)
	})
}

func (r *recorder[T]) all() []Event[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event[T](nil), r.events...)
}

func (r *recorder[T]) values() []T {
	values := []T{}
	for _, e := range r.all() {
		if e.Kind == EventValue {
			values = append(values, e.Value)
		}
	}
	return values
}

// terminal returns the terminating event, if any.
func (r *recorder[T]) terminal() (Event[T], bool) {
	for _, e := range r.all() {
		if e.IsTerminating() {
			return e, true
		}
	}
	return Event[T]{}, false
}

func (r *recorder[T]) requireKind(t *testing.T, kind EventKind) Event[T] {
	t.Helper()
	e, ok := r.terminal()
	require.True(t, ok, "expected a terminating event")
	require.Equal(t, kind, e.Kind)
	return e
}

func (r *recorder[T]) requireLive(t *testing.T) {
	t.Helper()
	_, ok := r.terminal()
	require.False(t, ok, "expected no terminating event")
}

// requireGrammar checks that at most one terminating event was recorded,
// and that it came last.
func requireGrammar[T any](t *testing.T, events []Event[T]) {
	t.Helper()
	for i, e := range events {
		if e.IsTerminating() {
			require.Equal(t, len(events)-1, i, "terminating event must be last")
		}
	}
}
