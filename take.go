package signalz

import "sync/atomic"

// Take forwards the first count values, then completes. A count of zero
// or less completes immediately.
func (s *Signal[T]) Take(count int) *Signal[T] {
	if count <= 0 {
		return newSignal(func(out *Observer[T]) Disposable {
			out.SendCompleted()
			return nil
		}, true)
	}

	return relay(s, func(out *Observer[T]) *Observer[T] {
		taken := 0
		return NewObserver(func(e Event[T]) {
			if e.Kind != EventValue {
				out.Send(e)
				return
			}
			if taken >= count {
				return
			}
			taken++
			out.Send(e)
			if taken == count {
				out.SendCompleted()
			}
		})
	})
}

// TakeWhile forwards values while predicate holds, and completes on the
// first value for which it does not. That value is not forwarded.
func (s *Signal[T]) TakeWhile(predicate func(T) bool) *Signal[T] {
	return relay(s, func(out *Observer[T]) *Observer[T] {
		return NewObserver(func(e Event[T]) {
			if e.Kind == EventValue && !predicate(e.Value) {
				out.SendCompleted()
				return
			}
			out.Send(e)
		})
	})
}

// TakeLast waits for s to complete, then sends its last count values and
// completes. Failures and interruptions are forwarded without the values.
func (s *Signal[T]) TakeLast(count int) *Signal[T] {
	return relay(s, func(out *Observer[T]) *Observer[T] {
		var last []T
		return NewObserver(func(e Event[T]) {
			switch e.Kind {
			case EventValue:
				if count <= 0 {
					return
				}
				if len(last) == count {
					last = append(last[:0], last[1:]...)
				}
				last = append(last, e.Value)
			case EventCompleted:
				for _, value := range last {
					out.SendValue(value)
				}
				out.SendCompleted()
			default:
				out.Send(e)
			}
		})
	})
}

// TakeUntil forwards the events of s until trigger sends a value or
// completes, at which point the resulting signal completes. A failed or
// interrupted trigger is ignored.
func TakeUntil[T, U any](s *Signal[T], trigger *Signal[U]) *Signal[T] {
	return newSignal(func(out *Observer[T]) Disposable {
		disposables := NewCompositeDisposable()
		disposables.Add(trigger.Observe(takeUntilObserver[T, U](out)))
		disposables.Add(s.Observe(out))
		return disposables
	}, true)
}

func takeUntilObserver[T, U any](out *Observer[T]) *Observer[U] {
	return NewObserver(func(e Event[U]) {
		if e.Kind == EventValue || e.Kind == EventCompleted {
			out.SendCompleted()
		}
	})
}

// TakeUntilReplacement forwards the values of s until replacement sends its
// first event. From then on s is detached and the result mirrors
// replacement, including its terminating event. Completion of s is
// ignored; its failure or interruption is forwarded while s is current.
func (s *Signal[T]) TakeUntilReplacement(replacement *Signal[T]) *Signal[T] {
	return newSignal(func(out *Observer[T]) Disposable {
		var replaced atomic.Bool
		source := s.Observe(NewObserver(func(e Event[T]) {
			if replaced.Load() || e.Kind == EventCompleted {
				return
			}
			out.Send(e)
		}))

		disposables := NewCompositeDisposable()
		disposables.Add(source)
		disposables.Add(replacement.Observe(NewObserver(func(e Event[T]) {
			if !replaced.Swap(true) {
				source.Dispose()
			}
			out.Send(e)
		})))
		return disposables
	}, true)
}

// Take applies Signal.Take to every run of p.
func (p *SignalProducer[T]) Take(count int) *SignalProducer[T] {
	return Lift(p, func(s *Signal[T]) *Signal[T] { return s.Take(count) })
}

// TakeWhile applies Signal.TakeWhile to every run of p.
func (p *SignalProducer[T]) TakeWhile(predicate func(T) bool) *SignalProducer[T] {
	return Lift(p, func(s *Signal[T]) *Signal[T] { return s.TakeWhile(predicate) })
}

// TakeLast applies Signal.TakeLast to every run of p.
func (p *SignalProducer[T]) TakeLast(count int) *SignalProducer[T] {
	return Lift(p, func(s *Signal[T]) *Signal[T] { return s.TakeLast(count) })
}

// TakeUntilProducer applies TakeUntil to every run of p. The trigger is
// observed before p starts, so a trigger that has already fired ends the
// run before p sends anything.
func TakeUntilProducer[T, U any](p *SignalProducer[T], trigger *Signal[U]) *SignalProducer[T] {
	return NewSignalProducer(func(observer *Observer[T], lifetime *CompositeDisposable) {
		lifetime.Add(trigger.Observe(takeUntilObserver[T, U](observer)))
		if lifetime.IsDisposed() {
			return
		}
		lifetime.Add(p.Start(observer))
	})
}

// TakeUntilReplacement applies Signal.TakeUntilReplacement to runs of p and
// replacement. The run of p starts first.
func (p *SignalProducer[T]) TakeUntilReplacement(replacement *SignalProducer[T]) *SignalProducer[T] {
	return Lift2(p, replacement, (*Signal[T]).TakeUntilReplacement)
}
