package signalz

import (
	"sync"
	"sync/atomic"
)

// Action represents a repeatable unit of work, such as a network request
// triggered by a button. Starting it with Apply runs the work producer for
// the given input, provided the action is enabled and not already
// executing. Only one execution runs at a time.
//
// The outcome of every execution is also broadcast through Values, Errors,
// Events and Completed, so observers need not hold on to individual runs.
//
// Example:
//
//	login := signalz.NewActionEnabledIf(form.IsValid(), func(c Credentials) *signalz.SignalProducer[Session] {
//		return api.Login(c)
//	}).WithName("login")
//
//	login.Errors().ObserveValues(func(err error) { banner.Show(err) })
//	login.Apply(credentials).Start(nil)
type Action[In, Out any] struct {
	name        string
	state       Atomic[actionState[In, Out]]
	isEnabled   *MutableProperty[bool]
	isExecuting *MutableProperty[bool]
	events      *Signal[Event[Out]]
	eventsInput *Observer[Event[Out]]
	lifetime    *Lifetime
	token       *LifetimeToken
	disposables *CompositeDisposable
	publishMu   sync.Mutex
	dirty       atomic.Bool
}

type actionState[In, Out any] struct {
	work        func(In) *SignalProducer[Out]
	userEnabled bool
	executing   bool
}

// NewAction creates an action that is enabled whenever it is not
// executing.
func NewAction[In, Out any](execute func(In) *SignalProducer[Out]) *Action[In, Out] {
	return NewActionWithState(
		NewConstantProperty(struct{}{}),
		func(struct{}) bool { return true },
		func(_ struct{}, input In) *SignalProducer[Out] { return execute(input) },
	)
}

// NewActionEnabledIf creates an action that is enabled while enabledIf
// holds true and the action is not executing.
func NewActionEnabledIf[In, Out any](enabledIf *Property[bool], execute func(In) *SignalProducer[Out]) *Action[In, Out] {
	return NewActionWithState(
		enabledIf,
		func(enabled bool) bool { return enabled },
		func(_ bool, input In) *SignalProducer[Out] { return execute(input) },
	)
}

// NewActionWithState creates an action whose availability and work depend
// on the current value of state. isEnabled decides whether a state allows
// starting; execute receives the state current at the time of Apply.
func NewActionWithState[S, In, Out any](state *Property[S], isEnabled func(S) bool, execute func(S, In) *SignalProducer[Out]) *Action[In, Out] {
	events, eventsInput := Pipe[Event[Out]]()
	lifetime, token := NewLifetime()
	a := &Action[In, Out]{
		name:        "action",
		isEnabled:   NewMutableProperty(false),
		isExecuting: NewMutableProperty(false),
		events:      events,
		eventsInput: eventsInput,
		lifetime:    lifetime,
		token:       token,
		disposables: NewCompositeDisposable(),
	}

	a.disposables.Add(state.Producer().StartWithValues(func(s S) {
		a.state.Modify(func(st actionState[In, Out]) actionState[In, Out] {
			st.userEnabled = isEnabled(s)
			st.work = func(input In) *SignalProducer[Out] { return execute(s, input) }
			return st
		})
		a.publish()
	}))

	return a
}

// WithName sets the name reported in ActionError and logs. Defaults to
// "action".
func (a *Action[In, Out]) WithName(name string) *Action[In, Out] {
	a.name = name
	return a
}

// Name returns the action name.
func (a *Action[In, Out]) Name() string {
	return a.name
}

// IsEnabled reports whether the action can be started.
func (a *Action[In, Out]) IsEnabled() *Property[bool] {
	return PropertyOf(a.isEnabled)
}

// IsExecuting reports whether an execution is in progress.
func (a *Action[In, Out]) IsExecuting() *Property[bool] {
	return PropertyOf(a.isExecuting)
}

// Events sends every event of every execution as a value.
func (a *Action[In, Out]) Events() *Signal[Event[Out]] {
	return a.events
}

// Values sends the values of every execution.
func (a *Action[In, Out]) Values() *Signal[Out] {
	return FilterMap(a.events, func(e Event[Out]) (Out, bool) {
		return e.Value, e.Kind == EventValue
	})
}

// Errors sends the failure of every failed execution, as *ActionError.
func (a *Action[In, Out]) Errors() *Signal[error] {
	return FilterMap(a.events, func(e Event[Out]) (error, bool) {
		return e.Err, e.Kind == EventFailed
	})
}

// Completed sends once for every execution that completes.
func (a *Action[In, Out]) Completed() *Signal[struct{}] {
	return FilterMap(a.events, func(e Event[Out]) (struct{}, bool) {
		return struct{}{}, e.Kind == EventCompleted
	})
}

// Lifetime ends when the action is disposed.
func (a *Action[In, Out]) Lifetime() *Lifetime {
	return a.lifetime
}

// Apply returns a producer that runs the action's work for input each time
// it is started. A start while the action is disabled or executing fails
// synchronously with ErrActionNotEnabled without running the work. A
// failure of the work is sent as *ActionError. The action is no longer
// executing when the terminating event of a run is delivered, so it can be
// applied again from a Completed or Failed callback.
func (a *Action[In, Out]) Apply(input In) *SignalProducer[Out] {
	return NewSignalProducer(func(observer *Observer[Out], lifetime *CompositeDisposable) {
		_, work := ModifyAtomic(&a.state, func(st actionState[In, Out]) (actionState[In, Out], func(In) *SignalProducer[Out]) {
			if !st.userEnabled || st.executing || st.work == nil {
				return st, nil
			}
			st.executing = true
			return st, st.work
		})
		if work == nil {
			Logger().Debug().Str("action", a.name).Msg("signalz: action is not enabled")
			observer.SendFailed(ErrActionNotEnabled)
			return
		}
		a.publish()

		var finished atomic.Bool
		finish := func() {
			if !finished.CompareAndSwap(false, true) {
				return
			}
			a.state.Modify(func(st actionState[In, Out]) actionState[In, Out] {
				st.executing = false
				return st
			})
			a.publish()
		}
		lifetime.AddFunc(finish)

		work(input).StartWithSignal(func(signal *Signal[Out], interrupter Disposable) {
			lifetime.Add(interrupter)
			signal.Observe(NewObserver(func(e Event[Out]) {
				if e.Kind == EventFailed {
					e = FailedEvent[Out](NewActionError(e.Err, a.name))
				}
				// The action is idle again by the time anyone sees the terminal.
				if e.IsTerminating() {
					finish()
				}
				a.eventsInput.SendValue(e)
				observer.Send(e)
			}))
		})
	})
}

// Dispose ends the action's lifetime and completes its signals and
// properties.
func (a *Action[In, Out]) Dispose() {
	a.disposables.Dispose()
	a.token.Dispose()
	a.eventsInput.SendCompleted()
	a.isEnabled.Dispose()
	a.isExecuting.Dispose()
}

// publish copies the state into the observable properties. A caller that
// finds another publish in progress, including one further up its own
// stack, leaves the work to it.
func (a *Action[In, Out]) publish() {
	a.dirty.Store(true)
	for a.dirty.Load() {
		if !a.publishMu.TryLock() {
			return
		}
		a.dirty.Store(false)
		st := a.state.Value()
		setIfChanged(a.isExecuting, st.executing)
		setIfChanged(a.isEnabled, st.userEnabled && !st.executing)
		a.publishMu.Unlock()
	}
}

func setIfChanged[T comparable](p *MutableProperty[T], value T) {
	if p.Value() != value {
		p.SetValue(value)
	}
}
