// Package testing provides test utilities for signalz.
package testing

import (
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/signalz"
)

// Recorder captures every event sent to its observer. It is safe for
// concurrent use, so it can observe signals fed from other goroutines.
type Recorder[T any] struct {
	events     []signalz.Event[T]
	terminated chan struct{}
	mu         sync.Mutex
}

// NewRecorder creates an empty Recorder.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{terminated: make(chan struct{})}
}

// Observer returns an observer that records into r.
func (r *Recorder[T]) Observer() *signalz.Observer[T] {
	return signalz.NewObserver(func(e signalz.Event[T]) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, e)
		if e.IsTerminating() {
			select {
			case <-r.terminated:
			default:
				close(r.terminated)
			}
		}
	})
}

// Events returns a copy of the recorded events.
func (r *Recorder[T]) Events() []signalz.Event[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]signalz.Event[T](nil), r.events...)
}

// Values returns the recorded values in order.
func (r *Recorder[T]) Values() []T {
	events := r.Events()
	values := make([]T, 0, len(events))
	for _, e := range events {
		if e.Kind == signalz.EventValue {
			values = append(values, e.Value)
		}
	}
	return values
}

// Terminal returns the recorded terminating event, if any.
func (r *Recorder[T]) Terminal() (signalz.Event[T], bool) {
	for _, e := range r.Events() {
		if e.IsTerminating() {
			return e, true
		}
	}
	return signalz.Event[T]{}, false
}

// WaitForTerminal blocks until a terminating event is recorded or timeout
// elapses, in which case the test fails.
func (r *Recorder[T]) WaitForTerminal(t *testing.T, timeout time.Duration) signalz.Event[T] {
	t.Helper()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-r.terminated:
	case <-timer.C:
		t.Fatalf("no terminating event within %v", timeout)
	}
	e, _ := r.Terminal()
	return e
}

// CollectEvents starts producer and returns its events once it terminates.
// The run is interrupted if it does not terminate within timeout.
func CollectEvents[T any](t *testing.T, producer *signalz.SignalProducer[T], timeout time.Duration) []signalz.Event[T] {
	t.Helper()

	r := NewRecorder[T]()
	disposable := producer.Start(r.Observer())

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-r.terminated:
	case <-timer.C:
		disposable.Dispose()
	}
	return r.Events()
}

// CollectValues starts producer and returns its values once it terminates.
// Terminating events are ignored.
func CollectValues[T any](t *testing.T, producer *signalz.SignalProducer[T], timeout time.Duration) []T {
	t.Helper()

	events := CollectEvents(t, producer, timeout)
	values := make([]T, 0, len(events))
	for _, e := range events {
		if e.Kind == signalz.EventValue {
			values = append(values, e.Value)
		}
	}
	return values
}

// SendValues sends values to observer and completes it.
func SendValues[T any](observer *signalz.Observer[T], values ...T) {
	for _, v := range values {
		observer.SendValue(v)
	}
	observer.SendCompleted()
}

// AssertValues verifies the recorded values.
func AssertValues[T comparable](t *testing.T, r *Recorder[T], expected ...T) {
	t.Helper()

	values := r.Values()
	if len(values) != len(expected) {
		t.Errorf("expected %d values, got %d: %v", len(expected), len(values), values)
		return
	}
	for i := range expected {
		if values[i] != expected[i] {
			t.Errorf("value %d: expected %v, got %v", i, expected[i], values[i])
		}
	}
}

// AssertTerminated verifies that r recorded a terminating event of kind.
func AssertTerminated[T any](t *testing.T, r *Recorder[T], kind signalz.EventKind) {
	t.Helper()

	e, ok := r.Terminal()
	if !ok {
		t.Errorf("expected a %s event, stream is still live", kind)
		return
	}
	if e.Kind != kind {
		t.Errorf("expected a %s event, got %s", kind, e)
	}
}

// AssertLive verifies that r recorded no terminating event.
func AssertLive[T any](t *testing.T, r *Recorder[T]) {
	t.Helper()

	if e, ok := r.Terminal(); ok {
		t.Errorf("expected a live stream, got %s", e)
	}
}

// AssertGrammar verifies that at most one terminating event was recorded
// and that nothing followed it.
func AssertGrammar[T any](t *testing.T, r *Recorder[T]) {
	t.Helper()

	events := r.Events()
	for i, e := range events {
		if e.IsTerminating() && i != len(events)-1 {
			t.Errorf("event %d (%s) terminated the stream but %d events followed", i, e, len(events)-1-i)
			return
		}
	}
}
