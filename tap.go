package signalz

// SignalHooks holds side-effect callbacks for On. Nil callbacks are
// skipped. Event runs first for every event, then the kind-specific
// callback, then Terminated for terminating events. Disposed runs once when
// the hooked signal releases its upstream subscription.
//
// A hook that panics is recovered and logged; the event is still
// forwarded.
type SignalHooks[T any] struct {
	Event       func(Event[T])
	Value       func(T)
	Failed      func(error)
	Completed   func()
	Interrupted func()
	Terminated  func()
	Disposed    func()
}

// ProducerHooks extends SignalHooks with the lifecycle of each run.
// Starting runs before the start handler, Started after it returns.
type ProducerHooks[T any] struct {
	SignalHooks[T]
	Starting func()
	Started  func()
}

// On returns a signal forwarding every event of s unchanged after running
// the matching hooks.
//
// Example:
//
//	var received atomic.Int64
//	counted := signal.On(signalz.SignalHooks[Order]{
//		Value:      func(Order) { received.Add(1) },
//		Terminated: func() { log.Println("orders done") },
//	})
func (s *Signal[T]) On(hooks SignalHooks[T]) *Signal[T] {
	return newSignal(func(out *Observer[T]) Disposable {
		subscription := s.Observe(NewObserver(func(e Event[T]) {
			hooks.run(e)
			out.Send(e)
		}))
		return NewCompositeDisposable(subscription, NewActionDisposable(func() {
			runHook("disposed", hooks.Disposed)
		}))
	}, true)
}

// On returns a producer running hooks around every run of p.
func (p *SignalProducer[T]) On(hooks ProducerHooks[T]) *SignalProducer[T] {
	return NewSignalProducer(func(observer *Observer[T], lifetime *CompositeDisposable) {
		runHook("starting", hooks.Starting)
		p.StartWithSignal(func(signal *Signal[T], interrupter Disposable) {
			lifetime.Add(interrupter)
			lifetime.Add(signal.On(hooks.SignalHooks).Observe(observer))
		})
		runHook("started", hooks.Started)
	})
}

func (h SignalHooks[T]) run(e Event[T]) {
	if h.Event != nil {
		runHook("event", func() { h.Event(e) })
	}
	switch e.Kind {
	case EventValue:
		if h.Value != nil {
			runHook("value", func() { h.Value(e.Value) })
		}
	case EventFailed:
		if h.Failed != nil {
			runHook("failed", func() { h.Failed(e.Err) })
		}
	case EventCompleted:
		runHook("completed", h.Completed)
	case EventInterrupted:
		runHook("interrupted", h.Interrupted)
	}
	if e.IsTerminating() {
		runHook("terminated", h.Terminated)
	}
}

func runHook(name string, hook func()) {
	if hook == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			Logger().Error().Str("hook", name).Interface("panic", r).Msg("signalz: hook panicked")
		}
	}()
	hook()
}
