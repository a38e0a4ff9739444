package signalz

import "time"

// Timeout fails with err if s has not terminated within interval, as
// measured by scheduler. A nil err fails with ErrTimeout.
func (s *Signal[T]) Timeout(interval time.Duration, err error, scheduler DateScheduler) *Signal[T] {
	if err == nil {
		err = ErrTimeout
	}
	return newSignal(func(out *Observer[T]) Disposable {
		disposables := NewCompositeDisposable()
		disposables.Add(scheduler.ScheduleAfter(scheduler.Now().Add(interval), func() {
			out.SendFailed(err)
		}))
		disposables.Add(s.Observe(out))
		return disposables
	}, true)
}

// Timeout applies Signal.Timeout to every run of p. The interval starts
// when the run starts.
func (p *SignalProducer[T]) Timeout(interval time.Duration, err error, scheduler DateScheduler) *SignalProducer[T] {
	return Lift(p, func(s *Signal[T]) *Signal[T] { return s.Timeout(interval, err, scheduler) })
}
