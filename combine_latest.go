package signalz

import "sync"

// CombineLatest combines the latest values of a and b. Nothing is sent
// until both have sent at least one value; after that every value from
// either side sends a new pair with the other side's latest value. The
// result completes once both sides have completed, and fails or is
// interrupted as soon as either side is.
//
// Example:
//
//	credentials := signalz.CombineLatest(usernames, passwords)
//	valid := credentials.Filter(func(p signalz.Pair[string, string]) bool {
//		return p.First != "" && len(p.Second) >= 8
//	})
func CombineLatest[A, B any](a *Signal[A], b *Signal[B]) *Signal[Pair[A, B]] {
	return newSignal(func(out *Observer[Pair[A, B]]) Disposable {
		state := &combineLatestState[A, B]{out: out}
		disposables := NewCompositeDisposable()
		disposables.Add(a.Observe(NewObserver(func(e Event[A]) {
			state.handle(terminalAs[Pair[A, B]](e), func() { state.a, state.hasA = e.Value, true }, &state.completedA)
		})))
		disposables.Add(b.Observe(NewObserver(func(e Event[B]) {
			state.handle(terminalAs[Pair[A, B]](e), func() { state.b, state.hasB = e.Value, true }, &state.completedB)
		})))
		return disposables
	}, true)
}

type combineLatestState[A, B any] struct {
	out        *Observer[Pair[A, B]]
	a          A
	b          B
	mu         sync.Mutex
	sendMu     sync.Mutex
	hasA       bool
	hasB       bool
	completedA bool
	completedB bool
}

// handle processes one event from either side. For value events store
// records the value; event is only meaningful when it terminates.
func (c *combineLatestState[A, B]) handle(event Event[Pair[A, B]], store func(), completed *bool) {
	switch event.Kind {
	case EventValue:
		c.sendMu.Lock()
		defer c.sendMu.Unlock()
		c.mu.Lock()
		store()
		ready := c.hasA && c.hasB
		pair := NewPair(c.a, c.b)
		c.mu.Unlock()
		if ready {
			c.out.SendValue(pair)
		}
	case EventCompleted:
		c.mu.Lock()
		*completed = true
		done := c.completedA && c.completedB
		c.mu.Unlock()
		if done {
			c.out.SendCompleted()
		}
	default:
		c.out.Send(event)
	}
}

// CombineLatestAll combines the latest values of every signal into a
// slice ordered like signals. An empty list completes immediately.
func CombineLatestAll[T any](signals []*Signal[T]) *Signal[[]T] {
	if len(signals) == 0 {
		return newSignal(func(out *Observer[[]T]) Disposable {
			out.SendCompleted()
			return nil
		}, true)
	}

	return newSignal(func(out *Observer[[]T]) Disposable {
		var mu, sendMu sync.Mutex
		latest := make([]T, len(signals))
		has := make([]bool, len(signals))
		missing := len(signals)
		active := len(signals)

		disposables := NewCompositeDisposable()
		for i, signal := range signals {
			disposables.Add(signal.Observe(NewObserver(func(e Event[T]) {
				switch e.Kind {
				case EventValue:
					sendMu.Lock()
					defer sendMu.Unlock()
					mu.Lock()
					if !has[i] {
						has[i] = true
						missing--
					}
					latest[i] = e.Value
					var snapshot []T
					if missing == 0 {
						snapshot = append([]T(nil), latest...)
					}
					mu.Unlock()
					if snapshot != nil {
						out.SendValue(snapshot)
					}
				case EventCompleted:
					mu.Lock()
					active--
					done := active == 0
					mu.Unlock()
					if done {
						out.SendCompleted()
					}
				default:
					out.Send(terminalAs[[]T](e))
				}
			})))
		}
		return disposables
	}, true)
}

// CombineLatestProducers applies CombineLatest to runs of a and b.
func CombineLatestProducers[A, B any](a *SignalProducer[A], b *SignalProducer[B]) *SignalProducer[Pair[A, B]] {
	return Lift2(a, b, CombineLatest[A, B])
}

// CombineLatestAllProducers applies CombineLatestAll to runs of every
// producer.
func CombineLatestAllProducers[T any](producers []*SignalProducer[T]) *SignalProducer[[]T] {
	return liftAll(producers, CombineLatestAll[T])
}
