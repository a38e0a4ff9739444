package signalz

// Observer is the sink end of a stream: it receives events and forwards
// them to a single action. Observers are also the injection point for
// external event sources, which call the Send methods whenever something
// happens.
//
// Callers must respect the stream grammar: once SendFailed, SendCompleted
// or SendInterrupted has been called, no further events may be sent.
type Observer[T any] struct {
	action func(Event[T])
}

// NewObserver creates an observer forwarding every event to action.
func NewObserver[T any](action func(Event[T])) *Observer[T] {
	return &Observer[T]{action: action}
}

// ObserverFuncs holds per-kind callbacks. Nil callbacks are skipped.
type ObserverFuncs[T any] struct {
	Value       func(T)
	Failed      func(error)
	Completed   func()
	Interrupted func()
}

// NewObserverFuncs creates an observer dispatching each event kind to the
// matching callback.
func NewObserverFuncs[T any](funcs ObserverFuncs[T]) *Observer[T] {
	return NewObserver(func(e Event[T]) {
		switch e.Kind {
		case EventValue:
			if funcs.Value != nil {
				funcs.Value(e.Value)
			}
		case EventFailed:
			if funcs.Failed != nil {
				funcs.Failed(e.Err)
			}
		case EventCompleted:
			if funcs.Completed != nil {
				funcs.Completed()
			}
		case EventInterrupted:
			if funcs.Interrupted != nil {
				funcs.Interrupted()
			}
		}
	})
}

// Send delivers e.
func (o *Observer[T]) Send(e Event[T]) {
	if o != nil && o.action != nil {
		o.action(e)
	}
}

// SendValue delivers a value event.
func (o *Observer[T]) SendValue(value T) {
	o.Send(ValueEvent(value))
}

// SendFailed delivers a failed event.
func (o *Observer[T]) SendFailed(err error) {
	o.Send(FailedEvent[T](err))
}

// SendCompleted delivers a completed event.
func (o *Observer[T]) SendCompleted() {
	o.Send(CompletedEvent[T]())
}

// SendInterrupted delivers an interrupted event.
func (o *Observer[T]) SendInterrupted() {
	o.Send(InterruptedEvent[T]())
}
