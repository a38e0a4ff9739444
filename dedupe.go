package signalz

// SkipRepeats drops values equal to the value forwarded immediately
// before them, as decided by equal.
//
// When to use:
//   - Suppress redundant UI updates when a model republishes its state
//   - Collapse noisy sensor readings that hover on the same value
//   - Avoid re-running expensive work for an unchanged input
//
// Example:
//
//	names := signalz.Map(users, func(u User) string { return u.Name }).
//		SkipRepeats(func(a, b string) bool { return a == b })
func (s *Signal[T]) SkipRepeats(equal func(a, b T) bool) *Signal[T] {
	return relay(s, func(out *Observer[T]) *Observer[T] {
		var previous T
		seen := false
		return NewObserver(func(e Event[T]) {
			if e.Kind == EventValue {
				if seen && equal(previous, e.Value) {
					return
				}
				previous, seen = e.Value, true
			}
			out.Send(e)
		})
	})
}

// SkipRepeatsComparable is SkipRepeats using ==.
func SkipRepeatsComparable[T comparable](s *Signal[T]) *Signal[T] {
	return s.SkipRepeats(func(a, b T) bool { return a == b })
}

// UniqueValues forwards each distinct value only the first time it is
// seen. Every forwarded value is remembered for the life of the signal.
func UniqueValues[T comparable](s *Signal[T]) *Signal[T] {
	return UniqueValuesBy(s, func(v T) T { return v })
}

// UniqueValuesBy forwards a value only if its key has not been seen.
func UniqueValuesBy[T any, K comparable](s *Signal[T], key func(T) K) *Signal[T] {
	return relay(s, func(out *Observer[T]) *Observer[T] {
		seen := make(map[K]struct{})
		return NewObserver(func(e Event[T]) {
			if e.Kind == EventValue {
				k := key(e.Value)
				if _, ok := seen[k]; ok {
					return
				}
				seen[k] = struct{}{}
			}
			out.Send(e)
		})
	})
}

// SkipRepeats applies Signal.SkipRepeats to every run of p.
func (p *SignalProducer[T]) SkipRepeats(equal func(a, b T) bool) *SignalProducer[T] {
	return Lift(p, func(s *Signal[T]) *Signal[T] { return s.SkipRepeats(equal) })
}

// SkipRepeatsComparableProducer applies SkipRepeatsComparable to every run of p.
func SkipRepeatsComparableProducer[T comparable](p *SignalProducer[T]) *SignalProducer[T] {
	return Lift(p, SkipRepeatsComparable[T])
}

// UniqueValuesProducer applies UniqueValues to every run of p.
func UniqueValuesProducer[T comparable](p *SignalProducer[T]) *SignalProducer[T] {
	return Lift(p, UniqueValues[T])
}
