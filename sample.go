package signalz

import "sync"

// SampleWith sends the latest value of s paired with the value of sampler
// every time sampler sends a value. If sampler fires before s has sent
// anything, nothing is sent. The result completes once both inputs have
// completed.
func SampleWith[T, U any](s *Signal[T], sampler *Signal[U]) *Signal[Pair[T, U]] {
	return newSignal(func(out *Observer[Pair[T, U]]) Disposable {
		var (
			mu               sync.Mutex
			latest           T
			hasLatest        bool
			signalCompleted  bool
			samplerCompleted bool
		)
		complete := func(mark *bool) {
			mu.Lock()
			*mark = true
			done := signalCompleted && samplerCompleted
			mu.Unlock()
			if done {
				out.SendCompleted()
			}
		}

		disposables := NewCompositeDisposable()
		disposables.Add(s.Observe(NewObserver(func(e Event[T]) {
			switch e.Kind {
			case EventValue:
				mu.Lock()
				latest, hasLatest = e.Value, true
				mu.Unlock()
			case EventCompleted:
				complete(&signalCompleted)
			default:
				out.Send(terminalAs[Pair[T, U]](e))
			}
		})))
		disposables.Add(sampler.Observe(NewObserver(func(e Event[U]) {
			switch e.Kind {
			case EventValue:
				mu.Lock()
				value, ok := latest, hasLatest
				mu.Unlock()
				if ok {
					out.SendValue(NewPair(value, e.Value))
				}
			case EventCompleted:
				complete(&samplerCompleted)
			default:
				out.Send(terminalAs[Pair[T, U]](e))
			}
		})))
		return disposables
	}, true)
}

// SampleOn sends the latest value of s every time sampler sends a value.
//
// Example:
//
//	// Report the most recent position once per second.
//	reports := signalz.SampleOn(positions, ticks)
func SampleOn[T, U any](s *Signal[T], sampler *Signal[U]) *Signal[T] {
	return Map(SampleWith(s, sampler), func(p Pair[T, U]) T { return p.First })
}

// SampleWithProducers applies SampleWith to runs of p and sampler.
func SampleWithProducers[T, U any](p *SignalProducer[T], sampler *SignalProducer[U]) *SignalProducer[Pair[T, U]] {
	return Lift2(p, sampler, SampleWith[T, U])
}

// SampleOnProducers applies SampleOn to runs of p and sampler.
func SampleOnProducers[T, U any](p *SignalProducer[T], sampler *SignalProducer[U]) *SignalProducer[T] {
	return Lift2(p, sampler, SampleOn[T, U])
}
