package signalz

// Repeat runs p count times in total, starting each run when the previous
// one completes. Values of every run are forwarded and the result
// completes after the last run. A failure or interruption of any run ends
// the repetition. A count of zero or less completes immediately without
// starting p.
func (p *SignalProducer[T]) Repeat(count int) *SignalProducer[T] {
	if count <= 0 {
		return EmptyProducer[T]()
	}
	return NewSignalProducer(func(observer *Observer[T], lifetime *CompositeDisposable) {
		p.repeatRun(observer, lifetime, count)
	})
}

func (p *SignalProducer[T]) repeatRun(observer *Observer[T], lifetime *CompositeDisposable, remaining int) {
	if lifetime.IsDisposed() {
		return
	}
	lifetime.Add(p.Start(NewObserver(func(e Event[T]) {
		if e.Kind == EventCompleted && remaining > 1 {
			p.repeatRun(observer, lifetime, remaining-1)
			return
		}
		observer.Send(e)
	})))
}
