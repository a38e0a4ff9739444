package signalz

// Map returns a signal sending f applied to each value of s. Terminating
// events are forwarded unchanged.
//
// Example:
//
//	lengths := signalz.Map(words, func(w string) int { return len(w) })
func Map[T, U any](s *Signal[T], f func(T) U) *Signal[U] {
	return relay(s, func(out *Observer[U]) *Observer[T] {
		return NewObserver(func(e Event[T]) {
			out.Send(MapEvent(e, f))
		})
	})
}

// FilterMap maps each value through f and forwards it only when f reports
// true.
func FilterMap[T, U any](s *Signal[T], f func(T) (U, bool)) *Signal[U] {
	return relay(s, func(out *Observer[U]) *Observer[T] {
		return NewObserver(func(e Event[T]) {
			if e.Kind != EventValue {
				out.Send(terminalAs[U](e))
				return
			}
			if mapped, ok := f(e.Value); ok {
				out.SendValue(mapped)
			}
		})
	})
}

// AttemptMap maps each value through f. The first error returned by f
// fails the resulting signal.
func AttemptMap[T, U any](s *Signal[T], f func(T) (U, error)) *Signal[U] {
	return relay(s, func(out *Observer[U]) *Observer[T] {
		return NewObserver(func(e Event[T]) {
			if e.Kind != EventValue {
				out.Send(terminalAs[U](e))
				return
			}
			mapped, err := f(e.Value)
			if err != nil {
				out.SendFailed(err)
				return
			}
			out.SendValue(mapped)
		})
	})
}

// MapError replaces the error of a failed event with f(err).
func (s *Signal[T]) MapError(f func(error) error) *Signal[T] {
	return relay(s, func(out *Observer[T]) *Observer[T] {
		return NewObserver(func(e Event[T]) {
			if e.Kind == EventFailed {
				out.SendFailed(f(e.Err))
				return
			}
			out.Send(e)
		})
	})
}

// MapProducer applies Map to every run of p.
func MapProducer[T, U any](p *SignalProducer[T], f func(T) U) *SignalProducer[U] {
	return Lift(p, func(s *Signal[T]) *Signal[U] { return Map(s, f) })
}

// FilterMapProducer applies FilterMap to every run of p.
func FilterMapProducer[T, U any](p *SignalProducer[T], f func(T) (U, bool)) *SignalProducer[U] {
	return Lift(p, func(s *Signal[T]) *Signal[U] { return FilterMap(s, f) })
}

// AttemptMapProducer applies AttemptMap to every run of p.
func AttemptMapProducer[T, U any](p *SignalProducer[T], f func(T) (U, error)) *SignalProducer[U] {
	return Lift(p, func(s *Signal[T]) *Signal[U] { return AttemptMap(s, f) })
}

// MapError applies Signal.MapError to every run of p.
func (p *SignalProducer[T]) MapError(f func(error) error) *SignalProducer[T] {
	return Lift(p, func(s *Signal[T]) *Signal[T] { return s.MapError(f) })
}
