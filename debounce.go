package signalz

import (
	"sync"
	"time"
)

// Debounce sends a value only after interval has passed without another
// value arriving. Each new value restarts the wait. A value still waiting
// when s terminates is discarded.
//
// When to use:
//   - Search-as-you-type, waiting for the user to pause
//   - Saving a document after edits settle
//   - Reacting to window resizes once they stop
//
// Example:
//
//	queries := signalz.Map(keystrokes, textOf).Debounce(300*time.Millisecond, ui)
func (s *Signal[T]) Debounce(interval time.Duration, scheduler DateScheduler) *Signal[T] {
	return newSignal(func(out *Observer[T]) Disposable {
		var (
			mu         sync.Mutex
			generation uint64
		)
		scheduled := NewSerialDisposable()

		subscription := s.Observe(NewObserver(func(e Event[T]) {
			mu.Lock()
			generation++
			current := generation
			mu.Unlock()

			if e.IsTerminating() {
				scheduled.Dispose()
				out.Send(e)
				return
			}

			value := e.Value
			scheduled.SetInner(scheduler.ScheduleAfter(scheduler.Now().Add(interval), func() {
				mu.Lock()
				stale := current != generation
				mu.Unlock()
				if !stale {
					out.SendValue(value)
				}
			}))
		}))
		return NewCompositeDisposable(subscription, scheduled)
	}, true)
}

// Debounce applies Signal.Debounce to every run of p.
func (p *SignalProducer[T]) Debounce(interval time.Duration, scheduler DateScheduler) *SignalProducer[T] {
	return Lift(p, func(s *Signal[T]) *Signal[T] { return s.Debounce(interval, scheduler) })
}
