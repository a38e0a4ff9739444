package signalz

import "time"

// ObserveOn forwards every event of s through scheduler. Events keep their
// order when the scheduler runs actions in order. Events still waiting on
// the scheduler are dropped once the resulting signal is disposed.
func (s *Signal[T]) ObserveOn(scheduler Scheduler) *Signal[T] {
	return newSignal(func(out *Observer[T]) Disposable {
		cancelled := NewSimpleDisposable()
		subscription := s.Observe(NewObserver(func(e Event[T]) {
			scheduler.Schedule(func() {
				if !cancelled.IsDisposed() {
					out.Send(e)
				}
			})
		}))
		return NewCompositeDisposable(subscription, cancelled)
	}, true)
}

// Delay forwards values and completion interval later on scheduler.
// Failures and interruptions are forwarded immediately.
//
// Example:
//
//	hidden := shown.Delay(3*time.Second, ui)
func (s *Signal[T]) Delay(interval time.Duration, scheduler DateScheduler) *Signal[T] {
	return newSignal(func(out *Observer[T]) Disposable {
		cancelled := NewSimpleDisposable()
		subscription := s.Observe(NewObserver(func(e Event[T]) {
			if e.Kind == EventFailed || e.Kind == EventInterrupted {
				out.Send(e)
				return
			}
			scheduler.ScheduleAfter(scheduler.Now().Add(interval), func() {
				if !cancelled.IsDisposed() {
					out.Send(e)
				}
			})
		}))
		return NewCompositeDisposable(subscription, cancelled)
	}, true)
}

// ObserveOn applies Signal.ObserveOn to every run of p.
func (p *SignalProducer[T]) ObserveOn(scheduler Scheduler) *SignalProducer[T] {
	return Lift(p, func(s *Signal[T]) *Signal[T] { return s.ObserveOn(scheduler) })
}

// Delay applies Signal.Delay to every run of p.
func (p *SignalProducer[T]) Delay(interval time.Duration, scheduler DateScheduler) *SignalProducer[T] {
	return Lift(p, func(s *Signal[T]) *Signal[T] { return s.Delay(interval, scheduler) })
}
