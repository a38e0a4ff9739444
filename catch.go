package signalz

// FlatMapError replaces a failure of s with the run of the producer
// returned by handler. Values, completion and interruption of s pass
// through unchanged.
//
// Example:
//
//	prices := live.FlatMapError(func(err error) *signalz.SignalProducer[Price] {
//		return cachedPrices()
//	})
func (s *Signal[T]) FlatMapError(handler func(error) *SignalProducer[T]) *Signal[T] {
	return newSignal(func(out *Observer[T]) Disposable {
		disposables := NewCompositeDisposable()
		disposables.Add(s.Observe(NewObserver(func(e Event[T]) {
			if e.Kind != EventFailed {
				out.Send(e)
				return
			}
			handler(e.Err).StartWithSignal(func(recovery *Signal[T], interrupter Disposable) {
				disposables.Add(interrupter)
				recovery.Observe(out)
			})
		})))
		return disposables
	}, true)
}

// FlatMapError applies Signal.FlatMapError to every run of p.
func (p *SignalProducer[T]) FlatMapError(handler func(error) *SignalProducer[T]) *SignalProducer[T] {
	return Lift(p, func(s *Signal[T]) *Signal[T] { return s.FlatMapError(handler) })
}

// FlatMapErrorProducer is an alias for SignalProducer.FlatMapError.
func FlatMapErrorProducer[T any](p *SignalProducer[T], handler func(error) *SignalProducer[T]) *SignalProducer[T] {
	return p.FlatMapError(handler)
}
