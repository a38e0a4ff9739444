package signalz

import (
	"sync"
	"sync/atomic"
)

// Signal is a live, multicast, push-driven stream of events.
//
// A Signal is created with a generator that runs exactly once, synchronously,
// when the Signal is constructed. Events sent through the generator's
// observer are delivered to every observer attached at that moment; nothing
// is buffered, so observers attaching later miss earlier values.
//
// Delivery is serialized per Signal: even if several goroutines send
// concurrently, each observer sees the events one at a time and in a single
// order. Once a terminating event is delivered, the observers are released
// and the generator's disposable is disposed exactly once. Observers that
// attach after termination synchronously receive the stored terminating
// event and get back an already-disposed handle.
//
// Signals returned by operators additionally end themselves, recording an
// interrupted event, when their last observer detaches; this releases their
// upstream subscriptions.
//
// Sending into a Signal from one of its own observers on the same goroutine
// deadlocks. Terminating events are the exception: they are handed to the
// goroutine currently delivering and committed once it finishes.
type Signal[T any] struct {
	generator *SerialDisposable
	pending   *Event[T]
	terminal  *Event[T]
	observers Bag[*subscription[T]]
	mu        sync.Mutex
	sendMu    sync.Mutex

	disposeWhenUnobserved bool
}

type subscription[T any] struct {
	observer *Observer[T]
	disposed atomic.Bool
}

func (s *subscription[T]) deliver(event Event[T]) {
	if !s.disposed.Load() {
		s.observer.Send(event)
	}
}

// NewSignal creates a Signal and runs generator immediately. The generator
// receives the observer that feeds the Signal and may return a Disposable,
// which is disposed when the Signal terminates.
//
// Example:
//
//	ticks := signalz.NewSignal(func(observer *signalz.Observer[time.Time]) signalz.Disposable {
//		ticker := time.NewTicker(time.Second)
//		done := make(chan struct{})
//		go func() {
//			for {
//				select {
//				case t := <-ticker.C:
//					observer.SendValue(t)
//				case <-done:
//					return
//				}
//			}
//		}()
//		return signalz.NewActionDisposable(func() {
//			ticker.Stop()
//			close(done)
//		})
//	})
func NewSignal[T any](generator func(observer *Observer[T]) Disposable) *Signal[T] {
	return newSignal(generator, false)
}

func newSignal[T any](generator func(observer *Observer[T]) Disposable, disposeWhenUnobserved bool) *Signal[T] {
	s := &Signal[T]{
		generator:             NewSerialDisposable(),
		disposeWhenUnobserved: disposeWhenUnobserved,
	}
	if generator != nil {
		s.generator.SetInner(generator(NewObserver(s.send)))
	}
	return s
}

// relay creates an operator signal that observes s through the observer
// built by makeObserver.
func relay[T, U any](s *Signal[T], makeObserver func(out *Observer[U]) *Observer[T]) *Signal[U] {
	return newSignal(func(out *Observer[U]) Disposable {
		return s.Observe(makeObserver(out))
	}, true)
}

// Pipe creates a Signal together with the observer that feeds it.
func Pipe[T any]() (*Signal[T], *Observer[T]) {
	var input *Observer[T]
	signal := NewSignal(func(observer *Observer[T]) Disposable {
		input = observer
		return nil
	})
	return signal, input
}

// NeverSignal returns a Signal that never sends any event.
func NeverSignal[T any]() *Signal[T] {
	return NewSignal[T](nil)
}

// EmptySignal returns a Signal that has already completed.
func EmptySignal[T any]() *Signal[T] {
	return NewSignal(func(observer *Observer[T]) Disposable {
		observer.SendCompleted()
		return nil
	})
}

func (s *Signal[T]) send(event Event[T]) {
	if event.IsTerminating() {
		s.mu.Lock()
		if s.terminal != nil || s.pending != nil {
			s.mu.Unlock()
			return
		}
		s.pending = &event
		s.mu.Unlock()

		s.commitTermination()
		return
	}

	s.sendMu.Lock()
	s.mu.Lock()
	if s.terminal != nil || s.pending != nil {
		s.mu.Unlock()
		s.sendMu.Unlock()
		Logger().Debug().Str("event", event.String()).Msg("signalz: value sent after termination was dropped")
		// The terminating sender may have failed to take sendMu from us.
		s.commitTermination()
		return
	}
	subscriptions := s.observers.Values()
	s.mu.Unlock()

	for _, sub := range subscriptions {
		sub.deliver(event)
	}
	s.sendMu.Unlock()

	// A terminating event may have been handed over while delivering.
	s.commitTermination()
}

// commitTermination delivers a pending terminating event if no other
// goroutine is delivering. Otherwise that goroutine commits it when done.
func (s *Signal[T]) commitTermination() {
	s.mu.Lock()
	pending := s.pending != nil
	s.mu.Unlock()
	if !pending || !s.sendMu.TryLock() {
		return
	}

	s.mu.Lock()
	if s.pending == nil {
		s.mu.Unlock()
		s.sendMu.Unlock()
		return
	}
	event := *s.pending
	s.pending = nil
	s.terminal = &event
	subscriptions := s.observers.Drain()
	s.mu.Unlock()

	for _, sub := range subscriptions {
		sub.deliver(event)
	}
	s.sendMu.Unlock()

	s.generator.Dispose()
}

func (s *Signal[T]) removeObserver(token BagToken) {
	s.mu.Lock()
	if s.terminal != nil {
		s.mu.Unlock()
		return
	}
	s.observers.Remove(token)
	teardown := s.disposeWhenUnobserved && s.pending == nil && s.observers.Len() == 0
	if teardown {
		interrupted := InterruptedEvent[T]()
		s.terminal = &interrupted
	}
	s.mu.Unlock()

	if teardown {
		s.generator.Dispose()
	}
}

func (s *Signal[T]) isTerminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminal != nil || s.pending != nil
}

// Observe attaches observer and returns a Disposable that detaches exactly
// this registration. If the Signal has already terminated, observer
// receives the terminating event before Observe returns and the returned
// Disposable is already disposed.
func (s *Signal[T]) Observe(observer *Observer[T]) Disposable {
	s.mu.Lock()
	if s.terminal != nil {
		terminal := *s.terminal
		s.mu.Unlock()
		observer.Send(terminal)
		return disposedDisposable()
	}
	sub := &subscription[T]{observer: observer}
	token := s.observers.Insert(sub)
	s.mu.Unlock()

	return NewActionDisposable(func() {
		sub.disposed.Store(true)
		s.removeObserver(token)
	})
}

// ObserveFuncs attaches an observer built from per-kind callbacks.
func (s *Signal[T]) ObserveFuncs(funcs ObserverFuncs[T]) Disposable {
	return s.Observe(NewObserverFuncs(funcs))
}

// ObserveValues attaches a callback for value events only.
func (s *Signal[T]) ObserveValues(action func(T)) Disposable {
	return s.ObserveFuncs(ObserverFuncs[T]{Value: action})
}

// ObserveFailed attaches a callback for the failed event only.
func (s *Signal[T]) ObserveFailed(action func(error)) Disposable {
	return s.ObserveFuncs(ObserverFuncs[T]{Failed: action})
}

// ObserveCompleted attaches a callback for the completed event only.
func (s *Signal[T]) ObserveCompleted(action func()) Disposable {
	return s.ObserveFuncs(ObserverFuncs[T]{Completed: action})
}

// ObserveInterrupted attaches a callback for the interrupted event only.
func (s *Signal[T]) ObserveInterrupted(action func()) Disposable {
	return s.ObserveFuncs(ObserverFuncs[T]{Interrupted: action})
}

// ObserveTerminated attaches a callback run once for whichever terminating
// event arrives.
func (s *Signal[T]) ObserveTerminated(action func()) Disposable {
	return s.Observe(NewObserver(func(e Event[T]) {
		if e.IsTerminating() {
			action()
		}
	}))
}
