package signalz

// Scan sends the running accumulation of the values of s, starting from
// initial. Each value of s produces exactly one accumulated value.
//
// Example:
//
//	totals := signalz.Scan(amounts, 0, func(sum, n int) int { return sum + n })
func Scan[T, A any](s *Signal[T], initial A, next func(A, T) A) *Signal[A] {
	return relay(s, func(out *Observer[A]) *Observer[T] {
		accumulator := initial
		return NewObserver(func(e Event[T]) {
			if e.Kind != EventValue {
				out.Send(terminalAs[A](e))
				return
			}
			accumulator = next(accumulator, e.Value)
			out.SendValue(accumulator)
		})
	})
}

// Reduce accumulates the values of s and sends the final result once s
// completes. An empty signal sends initial.
func Reduce[T, A any](s *Signal[T], initial A, next func(A, T) A) *Signal[A] {
	return relay(s, func(out *Observer[A]) *Observer[T] {
		accumulator := initial
		return NewObserver(func(e Event[T]) {
			switch e.Kind {
			case EventValue:
				accumulator = next(accumulator, e.Value)
			case EventCompleted:
				out.SendValue(accumulator)
				out.SendCompleted()
			default:
				out.Send(terminalAs[A](e))
			}
		})
	})
}

// CombinePrevious pairs every value with the one before it. The first
// value is paired with initial.
func CombinePrevious[T any](s *Signal[T], initial T) *Signal[Pair[T, T]] {
	return relay(s, func(out *Observer[Pair[T, T]]) *Observer[T] {
		previous := initial
		return NewObserver(func(e Event[T]) {
			if e.Kind != EventValue {
				out.Send(terminalAs[Pair[T, T]](e))
				return
			}
			pair := NewPair(previous, e.Value)
			previous = e.Value
			out.SendValue(pair)
		})
	})
}

// ScanProducer applies Scan to every run of p. Each run starts again from
// initial.
func ScanProducer[T, A any](p *SignalProducer[T], initial A, next func(A, T) A) *SignalProducer[A] {
	return Lift(p, func(s *Signal[T]) *Signal[A] { return Scan(s, initial, next) })
}

// ReduceProducer applies Reduce to every run of p.
func ReduceProducer[T, A any](p *SignalProducer[T], initial A, next func(A, T) A) *SignalProducer[A] {
	return Lift(p, func(s *Signal[T]) *Signal[A] { return Reduce(s, initial, next) })
}

// CombinePreviousProducer applies CombinePrevious to every run of p.
func CombinePreviousProducer[T any](p *SignalProducer[T], initial T) *SignalProducer[Pair[T, T]] {
	return Lift(p, func(s *Signal[T]) *Signal[Pair[T, T]] { return CombinePrevious(s, initial) })
}
