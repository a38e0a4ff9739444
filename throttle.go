package signalz

import (
	"sync"
	"time"
)

// Throttle lets at most one value through per interval. A value arriving
// after the interval has elapsed since the last forwarded one is sent
// immediately. Values arriving sooner replace each other, and the latest
// is sent once the interval has elapsed. On completion a pending value is
// sent before completing; failures and interruptions discard it.
//
// When to use:
//   - Rate limiting expensive reactions to bursty input
//   - Limiting UI refreshes to a fixed frame rate
//   - Reporting progress without flooding the reader
//
// Example:
//
//	// Redraw at most ten times per second.
//	frames := positions.Throttle(100*time.Millisecond, ui)
func (s *Signal[T]) Throttle(interval time.Duration, scheduler DateScheduler) *Signal[T] {
	return newSignal(func(out *Observer[T]) Disposable {
		t := &throttleState[T]{out: out, scheduler: scheduler, interval: interval}
		t.scheduled = NewSerialDisposable()
		subscription := s.Observe(NewObserver(t.handle))
		return NewCompositeDisposable(subscription, t.scheduled)
	}, true)
}

type throttleState[T any] struct {
	previous   time.Time
	scheduler  DateScheduler
	out        *Observer[T]
	scheduled  *SerialDisposable
	pending    T
	interval   time.Duration
	mu         sync.Mutex
	sent       bool
	hasPending bool
}

func (t *throttleState[T]) handle(e Event[T]) {
	switch e.Kind {
	case EventValue:
		t.mu.Lock()
		now := t.scheduler.Now()
		if !t.hasPending && (!t.sent || now.Sub(t.previous) >= t.interval) {
			t.previous, t.sent = now, true
			t.mu.Unlock()
			t.out.SendValue(e.Value)
			return
		}
		schedule := !t.hasPending
		t.pending, t.hasPending = e.Value, true
		at := t.previous.Add(t.interval)
		t.mu.Unlock()

		if schedule {
			t.scheduled.SetInner(t.scheduler.ScheduleAfter(at, t.flush))
		}
	case EventCompleted:
		t.flush()
		t.out.SendCompleted()
	default:
		t.mu.Lock()
		var zero T
		t.pending, t.hasPending = zero, false
		t.mu.Unlock()
		t.out.Send(e)
	}
}

func (t *throttleState[T]) flush() {
	t.mu.Lock()
	if !t.hasPending {
		t.mu.Unlock()
		return
	}
	value := t.pending
	var zero T
	t.pending, t.hasPending = zero, false
	t.previous, t.sent = t.scheduler.Now(), true
	t.mu.Unlock()

	t.out.SendValue(value)
}

// Throttle applies Signal.Throttle to every run of p.
func (p *SignalProducer[T]) Throttle(interval time.Duration, scheduler DateScheduler) *SignalProducer[T] {
	return Lift(p, func(s *Signal[T]) *Signal[T] { return s.Throttle(interval, scheduler) })
}
