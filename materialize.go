package signalz

// Materialize turns every event of s, terminating ones included, into a
// value. The result completes right after forwarding the terminating
// event of s.
func Materialize[T any](s *Signal[T]) *Signal[Event[T]] {
	return relay(s, func(out *Observer[Event[T]]) *Observer[T] {
		return NewObserver(func(e Event[T]) {
			out.SendValue(e)
			if e.IsTerminating() {
				out.SendCompleted()
			}
		})
	})
}

// Dematerialize is the inverse of Materialize: each value is sent as the
// event it carries. A completion of s without a terminating value
// completes the result.
func Dematerialize[T any](s *Signal[Event[T]]) *Signal[T] {
	return relay(s, func(out *Observer[T]) *Observer[Event[T]] {
		return NewObserver(func(e Event[Event[T]]) {
			if e.Kind == EventValue {
				out.Send(e.Value)
				return
			}
			out.Send(terminalAs[T](e))
		})
	})
}

// MaterializeProducer applies Materialize to every run of p.
func MaterializeProducer[T any](p *SignalProducer[T]) *SignalProducer[Event[T]] {
	return Lift(p, Materialize[T])
}

// DematerializeProducer applies Dematerialize to every run of p.
func DematerializeProducer[T any](p *SignalProducer[Event[T]]) *SignalProducer[T] {
	return Lift(p, Dematerialize[T])
}
