package signalz

import "time"

// SignalProducer describes how to create a Signal. It is cold: nothing
// happens until Start is called, and every call to Start creates a new,
// independent run with its own Signal and its own Disposable.
//
// The start handler receives the observer of the run and a
// CompositeDisposable representing the run's lifetime. Resources added to
// the lifetime are released when the run terminates or is disposed.
// Handlers that send values in a loop should stop once the lifetime is
// disposed.
//
// Example:
//
//	lines := signalz.NewSignalProducer(func(observer *signalz.Observer[string], lifetime *signalz.CompositeDisposable) {
//		file, err := os.Open(path)
//		if err != nil {
//			observer.SendFailed(err)
//			return
//		}
//		lifetime.Add(signalz.NewCloserDisposable(file))
//
//		scanner := bufio.NewScanner(file)
//		for scanner.Scan() && !lifetime.IsDisposed() {
//			observer.SendValue(scanner.Text())
//		}
//		if err := scanner.Err(); err != nil {
//			observer.SendFailed(err)
//			return
//		}
//		observer.SendCompleted()
//	})
type SignalProducer[T any] struct {
	startHandler func(observer *Observer[T], lifetime *CompositeDisposable)
}

// NewSignalProducer creates a producer from a start handler.
func NewSignalProducer[T any](startHandler func(observer *Observer[T], lifetime *CompositeDisposable)) *SignalProducer[T] {
	return &SignalProducer[T]{startHandler: startHandler}
}

// ProducerOf creates a producer that sends the given values, then completes.
func ProducerOf[T any](values ...T) *SignalProducer[T] {
	return NewSignalProducer(func(observer *Observer[T], lifetime *CompositeDisposable) {
		for _, value := range values {
			if lifetime.IsDisposed() {
				return
			}
			observer.SendValue(value)
		}
		observer.SendCompleted()
	})
}

// ProducerValue creates a producer that sends value, then completes.
func ProducerValue[T any](value T) *SignalProducer[T] {
	return ProducerOf(value)
}

// ProducerError creates a producer that fails immediately with err.
func ProducerError[T any](err error) *SignalProducer[T] {
	return NewSignalProducer(func(observer *Observer[T], _ *CompositeDisposable) {
		observer.SendFailed(err)
	})
}

// ProducerAttempt creates a producer that calls f on every start and sends
// its result, or fails with its error.
func ProducerAttempt[T any](f func() (T, error)) *SignalProducer[T] {
	return NewSignalProducer(func(observer *Observer[T], _ *CompositeDisposable) {
		value, err := f()
		if err != nil {
			observer.SendFailed(err)
			return
		}
		observer.SendValue(value)
		observer.SendCompleted()
	})
}

// EmptyProducer creates a producer that completes immediately.
func EmptyProducer[T any]() *SignalProducer[T] {
	return NewSignalProducer(func(observer *Observer[T], _ *CompositeDisposable) {
		observer.SendCompleted()
	})
}

// NeverProducer creates a producer that never sends any event.
func NeverProducer[T any]() *SignalProducer[T] {
	return NewSignalProducer(func(*Observer[T], *CompositeDisposable) {})
}

// ProducerFromSignal creates a producer that observes signal on every
// start. Each run only sees the events sent after it started.
func ProducerFromSignal[T any](signal *Signal[T]) *SignalProducer[T] {
	return NewSignalProducer(func(observer *Observer[T], lifetime *CompositeDisposable) {
		lifetime.Add(signal.Observe(observer))
	})
}

// ProducerTimer creates a producer that sends the scheduler's current time
// every interval, starting one interval after it is started. It never
// terminates on its own.
func ProducerTimer(interval time.Duration, scheduler DateScheduler) *SignalProducer[time.Time] {
	return NewSignalProducer(func(observer *Observer[time.Time], lifetime *CompositeDisposable) {
		lifetime.Add(scheduler.ScheduleInterval(scheduler.Now().Add(interval), interval, 0, func() {
			observer.SendValue(scheduler.Now())
		}))
	})
}

// prepare creates the Signal of a new run without starting it. Calling
// start runs the start handler unless the run was already interrupted.
func (p *SignalProducer[T]) prepare() (signal *Signal[T], interrupter Disposable, start func()) {
	lifetime := NewCompositeDisposable()
	var input *Observer[T]
	signal = NewSignal(func(observer *Observer[T]) Disposable {
		input = observer
		return lifetime
	})
	interrupter = NewActionDisposable(input.SendInterrupted)
	start = func() {
		if !lifetime.IsDisposed() {
			p.startHandler(input, lifetime)
		}
	}
	return signal, interrupter, start
}

// StartWithSignal creates a run, passes its Signal and the Disposable that
// interrupts it to setup, then starts it. Observers attached inside setup
// see every event of the run.
func (p *SignalProducer[T]) StartWithSignal(setup func(signal *Signal[T], interrupter Disposable)) {
	signal, interrupter, start := p.prepare()
	setup(signal, interrupter)
	start()
}

// Start creates a run delivering its events to observer. Disposing the
// returned Disposable interrupts this run only: observer receives an
// interrupted event and the run's resources are released.
func (p *SignalProducer[T]) Start(observer *Observer[T]) Disposable {
	var disposable Disposable
	p.StartWithSignal(func(signal *Signal[T], interrupter Disposable) {
		signal.Observe(observer)
		disposable = interrupter
	})
	return disposable
}

// StartWithFuncs starts a run with per-kind callbacks.
func (p *SignalProducer[T]) StartWithFuncs(funcs ObserverFuncs[T]) Disposable {
	return p.Start(NewObserverFuncs(funcs))
}

// StartWithValues starts a run, calling action for each value.
func (p *SignalProducer[T]) StartWithValues(action func(T)) Disposable {
	return p.StartWithFuncs(ObserverFuncs[T]{Value: action})
}

// StartWithFailed starts a run, calling action if it fails.
func (p *SignalProducer[T]) StartWithFailed(action func(error)) Disposable {
	return p.StartWithFuncs(ObserverFuncs[T]{Failed: action})
}

// StartWithCompleted starts a run, calling action if it completes.
func (p *SignalProducer[T]) StartWithCompleted(action func()) Disposable {
	return p.StartWithFuncs(ObserverFuncs[T]{Completed: action})
}

// StartWithInterrupted starts a run, calling action if it is interrupted.
func (p *SignalProducer[T]) StartWithInterrupted(action func()) Disposable {
	return p.StartWithFuncs(ObserverFuncs[T]{Interrupted: action})
}

// Lift applies a Signal operator to every run of p.
//
// Example:
//
//	labels := signalz.Lift(numbers, func(s *signalz.Signal[int]) *signalz.Signal[string] {
//		return signalz.Map(s, strconv.Itoa)
//	})
func Lift[T, U any](p *SignalProducer[T], transform func(*Signal[T]) *Signal[U]) *SignalProducer[U] {
	return NewSignalProducer(func(observer *Observer[U], lifetime *CompositeDisposable) {
		p.StartWithSignal(func(signal *Signal[T], interrupter Disposable) {
			lifetime.Add(interrupter)
			lifetime.Add(transform(signal).Observe(observer))
		})
	})
}

// Lift2 applies a binary Signal operator to runs of a and b. Both runs are
// set up before either starts, and a starts first.
func Lift2[A, B, C any](a *SignalProducer[A], b *SignalProducer[B], transform func(*Signal[A], *Signal[B]) *Signal[C]) *SignalProducer[C] {
	return NewSignalProducer(func(observer *Observer[C], lifetime *CompositeDisposable) {
		signalA, interruptA, startA := a.prepare()
		signalB, interruptB, startB := b.prepare()
		lifetime.Add(interruptA)
		lifetime.Add(interruptB)
		lifetime.Add(transform(signalA, signalB).Observe(observer))
		startA()
		startB()
	})
}

// liftAll applies an n-ary Signal operator to runs of every producer.
func liftAll[T, U any](producers []*SignalProducer[T], transform func([]*Signal[T]) *Signal[U]) *SignalProducer[U] {
	return NewSignalProducer(func(observer *Observer[U], lifetime *CompositeDisposable) {
		signals := make([]*Signal[T], len(producers))
		starts := make([]func(), len(producers))
		for i, producer := range producers {
			signal, interrupter, start := producer.prepare()
			lifetime.Add(interrupter)
			signals[i] = signal
			starts[i] = start
		}
		lifetime.Add(transform(signals).Observe(observer))
		for _, start := range starts {
			start()
		}
	})
}

// StartOn starts every run on scheduler instead of the caller's goroutine.
// Events are still delivered wherever the underlying producer sends them.
func (p *SignalProducer[T]) StartOn(scheduler Scheduler) *SignalProducer[T] {
	return NewSignalProducer(func(observer *Observer[T], lifetime *CompositeDisposable) {
		lifetime.Add(scheduler.Schedule(func() {
			lifetime.Add(p.Start(observer))
		}))
	})
}

// ThenProducer waits for p to complete, ignoring its values, then starts
// next. Failures and interruptions of p are forwarded.
func ThenProducer[T, U any](p *SignalProducer[T], next *SignalProducer[U]) *SignalProducer[U] {
	return NewSignalProducer(func(observer *Observer[U], lifetime *CompositeDisposable) {
		lifetime.Add(p.Start(NewObserver(func(e Event[T]) {
			switch e.Kind {
			case EventValue:
			case EventCompleted:
				lifetime.Add(next.Start(observer))
			default:
				observer.Send(terminalAs[U](e))
			}
		})))
	})
}
