package signalz

// Filter forwards only the values for which predicate reports true.
//
// Example:
//
//	errors := entries.Filter(func(e LogEntry) bool { return e.Level == "ERROR" })
func (s *Signal[T]) Filter(predicate func(T) bool) *Signal[T] {
	return relay(s, func(out *Observer[T]) *Observer[T] {
		return NewObserver(func(e Event[T]) {
			if e.Kind == EventValue && !predicate(e.Value) {
				return
			}
			out.Send(e)
		})
	})
}

// Filter applies Signal.Filter to every run of p.
func (p *SignalProducer[T]) Filter(predicate func(T) bool) *SignalProducer[T] {
	return Lift(p, func(s *Signal[T]) *Signal[T] { return s.Filter(predicate) })
}
