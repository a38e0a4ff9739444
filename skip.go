package signalz

// Skip drops the first count values.
func (s *Signal[T]) Skip(count int) *Signal[T] {
	return relay(s, func(out *Observer[T]) *Observer[T] {
		skipped := 0
		return NewObserver(func(e Event[T]) {
			if e.Kind == EventValue && skipped < count {
				skipped++
				return
			}
			out.Send(e)
		})
	})
}

// SkipWhile drops values while predicate holds. Once it fails, every later
// value is forwarded.
func (s *Signal[T]) SkipWhile(predicate func(T) bool) *Signal[T] {
	return relay(s, func(out *Observer[T]) *Observer[T] {
		skipping := true
		return NewObserver(func(e Event[T]) {
			if e.Kind == EventValue && skipping {
				if predicate(e.Value) {
					return
				}
				skipping = false
			}
			out.Send(e)
		})
	})
}

// SkipUntil drops values until trigger sends a value. If trigger
// terminates first, values keep being dropped.
func SkipUntil[T, U any](s *Signal[T], trigger *Signal[U]) *Signal[T] {
	return newSignal(func(out *Observer[T]) Disposable {
		var open Atomic[bool]
		disposables := NewCompositeDisposable()
		triggerSubscription := NewSerialDisposable()
		disposables.Add(triggerSubscription)
		triggerSubscription.SetInner(trigger.Observe(NewObserver(func(e Event[U]) {
			if e.Kind == EventValue {
				open.SetValue(true)
				triggerSubscription.Dispose()
			}
		})))
		disposables.Add(s.Observe(NewObserver(func(e Event[T]) {
			if e.Kind == EventValue && !open.Value() {
				return
			}
			out.Send(e)
		})))
		return disposables
	}, true)
}

// Skip applies Signal.Skip to every run of p.
func (p *SignalProducer[T]) Skip(count int) *SignalProducer[T] {
	return Lift(p, func(s *Signal[T]) *Signal[T] { return s.Skip(count) })
}

// SkipWhile applies Signal.SkipWhile to every run of p.
func (p *SignalProducer[T]) SkipWhile(predicate func(T) bool) *SignalProducer[T] {
	return Lift(p, func(s *Signal[T]) *Signal[T] { return s.SkipWhile(predicate) })
}

// SkipUntilProducer applies SkipUntil to every run of p.
func SkipUntilProducer[T, U any](p *SignalProducer[T], trigger *Signal[U]) *SignalProducer[T] {
	return Lift(p, func(s *Signal[T]) *Signal[T] { return SkipUntil(s, trigger) })
}
