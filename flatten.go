package signalz

import (
	"sync"
	"sync/atomic"
)

// Flatten turns a signal of producers into a signal of their values,
// starting each producer as it arrives according to strategy:
//
//   - FlattenMerge starts every producer immediately and completes once
//     the outer signal and every started producer have completed.
//   - FlattenConcat starts producers one at a time in arrival order,
//     queueing the rest, and completes once the outer signal has
//     completed and the queue is drained.
//   - FlattenLatest only forwards the most recent producer, interrupting
//     the previous run whenever a new producer arrives. It completes once
//     the outer signal and the latest run have completed.
//
// A failure or interruption of the outer signal or of any forwarded run
// terminates the result immediately.
//
// Example:
//
//	results := signalz.Flatten(signalz.Map(queries, search), signalz.FlattenLatest)
func Flatten[T any](s *Signal[*SignalProducer[T]], strategy FlattenStrategy) *Signal[T] {
	switch strategy {
	case FlattenConcat:
		return flattenConcat(s)
	case FlattenLatest:
		return flattenLatest(s)
	default:
		return flattenMerge(s)
	}
}

func flattenMerge[T any](s *Signal[*SignalProducer[T]]) *Signal[T] {
	return newSignal(func(out *Observer[T]) Disposable {
		disposables := NewCompositeDisposable()

		// The outer signal counts as one.
		var inFlight atomic.Int64
		inFlight.Store(1)
		decrement := func() {
			if inFlight.Add(-1) == 0 {
				out.SendCompleted()
			}
		}

		disposables.Add(s.Observe(NewObserver(func(e Event[*SignalProducer[T]]) {
			switch e.Kind {
			case EventValue:
				inFlight.Add(1)
				e.Value.StartWithSignal(func(inner *Signal[T], interrupter Disposable) {
					handle := disposables.Add(interrupter)
					inner.Observe(NewObserver(func(ie Event[T]) {
						if ie.Kind == EventCompleted {
							handle.Dispose()
							decrement()
							return
						}
						out.Send(ie)
					}))
				})
			case EventCompleted:
				decrement()
			default:
				out.Send(terminalAs[T](e))
			}
		})))
		return disposables
	}, true)
}

func flattenConcat[T any](s *Signal[*SignalProducer[T]]) *Signal[T] {
	return newSignal(func(out *Observer[T]) Disposable {
		var (
			mu        sync.Mutex
			queue     []*SignalProducer[T]
			active    bool
			outerDone bool
		)
		current := NewSerialDisposable()
		disposables := NewCompositeDisposable(current)

		var startNext func()
		startNext = func() {
			mu.Lock()
			if len(queue) == 0 {
				active = false
				done := outerDone
				mu.Unlock()
				if done {
					out.SendCompleted()
				}
				return
			}
			next := queue[0]
			queue = queue[1:]
			mu.Unlock()

			next.StartWithSignal(func(inner *Signal[T], interrupter Disposable) {
				current.SetInner(interrupter)
				inner.Observe(NewObserver(func(ie Event[T]) {
					if ie.Kind == EventCompleted {
						startNext()
						return
					}
					out.Send(ie)
				}))
			})
		}

		disposables.Add(s.Observe(NewObserver(func(e Event[*SignalProducer[T]]) {
			switch e.Kind {
			case EventValue:
				mu.Lock()
				queue = append(queue, e.Value)
				idle := !active
				active = true
				mu.Unlock()
				if idle {
					startNext()
				}
			case EventCompleted:
				mu.Lock()
				outerDone = true
				idle := !active
				mu.Unlock()
				if idle {
					out.SendCompleted()
				}
			default:
				out.Send(terminalAs[T](e))
			}
		})))
		return disposables
	}, true)
}

// FlattenSignals flattens a signal of signals. Inner signals are observed
// from the moment the strategy starts them, so FlattenConcat misses the
// values a queued signal sends while it waits.
func FlattenSignals[T any](s *Signal[*Signal[T]], strategy FlattenStrategy) *Signal[T] {
	return Flatten(Map(s, ProducerFromSignal[T]), strategy)
}

// FlatMap maps each value to a producer and flattens the result.
//
// Example:
//
//	profiles := signalz.FlatMap(userIDs, signalz.FlattenMerge, func(id string) *signalz.SignalProducer[Profile] {
//		return fetchProfile(id)
//	})
func FlatMap[T, U any](s *Signal[T], strategy FlattenStrategy, transform func(T) *SignalProducer[U]) *Signal[U] {
	return Flatten(Map(s, transform), strategy)
}

// FlattenProducer applies Flatten to every run of p.
func FlattenProducer[T any](p *SignalProducer[*SignalProducer[T]], strategy FlattenStrategy) *SignalProducer[T] {
	return Lift(p, func(s *Signal[*SignalProducer[T]]) *Signal[T] { return Flatten(s, strategy) })
}

// FlatMapProducer applies FlatMap to every run of p.
func FlatMapProducer[T, U any](p *SignalProducer[T], strategy FlattenStrategy, transform func(T) *SignalProducer[U]) *SignalProducer[U] {
	return FlattenProducer(MapProducer(p, transform), strategy)
}

// ConcatProducers runs the producers one after another.
func ConcatProducers[T any](producers ...*SignalProducer[T]) *SignalProducer[T] {
	return FlattenProducer(ProducerOf(producers...), FlattenConcat)
}
