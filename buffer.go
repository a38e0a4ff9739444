package signalz

import "sync"

// NewBuffer creates a producer backed by a replay buffer together with the
// observer that fills it. The buffer keeps the capacity most recent values,
// evicting the oldest first, plus the terminating event once one arrives.
// Every run of the producer synchronously receives the retained values and
// terminating event when it starts, then live events. After a terminating
// event has been buffered, further input is dropped.
//
// Observers of the producer must not send into the buffer's observer from
// their callbacks on the same goroutine.
//
// Example:
//
//	producer, observer := signalz.NewBuffer[string](2)
//	observer.SendValue("a")
//	observer.SendValue("b")
//	observer.SendValue("c")
//	producer.StartWithValues(func(s string) { fmt.Println(s) }) // b, c
func NewBuffer[T any](capacity int) (*SignalProducer[T], *Observer[T]) {
	if capacity < 0 {
		capacity = 0
	}
	b := &replayBuffer[T]{capacity: capacity}
	return NewSignalProducer(b.start), NewObserver(b.put)
}

type replayBuffer[T any] struct {
	terminal  *Event[T]
	values    []T
	observers Bag[*subscription[T]]
	capacity  int
	mu        sync.Mutex
	sendMu    sync.Mutex
}

func (b *replayBuffer[T]) put(e Event[T]) {
	b.sendMu.Lock()
	defer b.sendMu.Unlock()

	b.mu.Lock()
	if b.terminal != nil {
		b.mu.Unlock()
		Logger().Debug().Str("event", e.String()).Msg("signalz: event sent to a terminated buffer was dropped")
		return
	}

	var subscriptions []*subscription[T]
	if e.IsTerminating() {
		b.terminal = &e
		subscriptions = b.observers.Drain()
	} else {
		if b.capacity > 0 {
			if len(b.values) == b.capacity {
				b.values = append(b.values[:0], b.values[1:]...)
			}
			b.values = append(b.values, e.Value)
		}
		subscriptions = b.observers.Values()
	}
	b.mu.Unlock()

	for _, sub := range subscriptions {
		sub.deliver(e)
	}
}

func (b *replayBuffer[T]) start(observer *Observer[T], lifetime *CompositeDisposable) {
	b.sendMu.Lock()

	b.mu.Lock()
	values := append([]T(nil), b.values...)
	var terminal *Event[T]
	if b.terminal != nil {
		t := *b.terminal
		terminal = &t
	}
	sub := &subscription[T]{observer: observer}
	var token BagToken
	if terminal == nil {
		token = b.observers.Insert(sub)
	}
	b.mu.Unlock()

	for _, value := range values {
		observer.SendValue(value)
	}
	if terminal != nil {
		observer.Send(*terminal)
	}
	b.sendMu.Unlock()

	if terminal == nil {
		lifetime.AddFunc(func() {
			sub.disposed.Store(true)
			b.mu.Lock()
			b.observers.Remove(token)
			b.mu.Unlock()
		})
	}
}

// ReplayLazily multicasts p through a buffer of the given capacity. p is
// started once, when the returned producer is first started; every run
// then receives the retained values followed by live events. The shared
// run of p is not interrupted when runs of the returned producer are
// disposed; it lives until it terminates.
func (p *SignalProducer[T]) ReplayLazily(capacity int) *SignalProducer[T] {
	buffered, input := NewBuffer[T](capacity)
	var once sync.Once
	return NewSignalProducer(func(observer *Observer[T], lifetime *CompositeDisposable) {
		lifetime.Add(buffered.Start(observer))
		once.Do(func() { p.Start(input) })
	})
}
