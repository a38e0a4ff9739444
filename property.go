package signalz

import (
	"sync"
	"sync/atomic"
)

// MutableProperty is an observable, thread-safe value cell. Setting a
// value stores it first and then sends it synchronously to the observers
// of the change signal, so an observer reading Value sees the new value.
//
// Observers must not set the same property from their callbacks on the
// same goroutine.
//
// Example:
//
//	username := signalz.NewMutableProperty("")
//	username.Producer().StartWithValues(func(name string) {
//		fmt.Println("username:", name)
//	}) // prints the current value right away
//	username.SetValue("ada")
type MutableProperty[T any] struct {
	changes  *Signal[T]
	input    *Observer[T]
	lifetime *Lifetime
	token    *LifetimeToken
	value    Atomic[T]
	writeMu  sync.Mutex
}

// NewMutableProperty creates a property holding initial.
func NewMutableProperty[T any](initial T) *MutableProperty[T] {
	changes, input := Pipe[T]()
	lifetime, token := NewLifetime()
	p := &MutableProperty[T]{
		changes:  changes,
		input:    input,
		lifetime: lifetime,
		token:    token,
	}
	p.value.SetValue(initial)
	return p
}

// Value returns the current value.
func (p *MutableProperty[T]) Value() T {
	return p.value.Value()
}

// SetValue stores value and sends it to observers.
func (p *MutableProperty[T]) SetValue(value T) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	p.value.SetValue(value)
	p.input.SendValue(value)
}

// Swap stores value, sends it to observers and returns the previous value.
func (p *MutableProperty[T]) Swap(value T) T {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	old := p.value.Swap(value)
	p.input.SendValue(value)
	return old
}

// Modify updates the value in place and sends the result to observers.
func (p *MutableProperty[T]) Modify(f func(value *T)) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	value := p.value.Value()
	f(&value)
	p.value.SetValue(value)
	p.input.SendValue(value)
}

// Signal returns the changes made after observation starts. It completes
// when the property is disposed.
func (p *MutableProperty[T]) Signal() *Signal[T] {
	return p.changes
}

// Producer returns a producer that sends the current value when started,
// then every later change.
func (p *MutableProperty[T]) Producer() *SignalProducer[T] {
	return NewSignalProducer(func(observer *Observer[T], lifetime *CompositeDisposable) {
		p.writeMu.Lock()
		defer p.writeMu.Unlock()
		observer.SendValue(p.value.Value())
		lifetime.Add(p.changes.Observe(observer))
	})
}

// Lifetime returns the lifetime of the property, which ends on Dispose.
func (p *MutableProperty[T]) Lifetime() *Lifetime {
	return p.lifetime
}

// BindingTarget returns a target that sets the property. Bindings to it
// stop when the property is disposed.
func (p *MutableProperty[T]) BindingTarget() *BindingTarget[T] {
	return NewBindingTarget(p.lifetime, p.SetValue)
}

// Dispose ends the property's lifetime and completes its change signal.
// The value can still be read.
func (p *MutableProperty[T]) Dispose() {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	p.token.Dispose()
	p.input.SendCompleted()
}

// Property is a read-only view of an observable value.
type Property[T any] struct {
	box *MutableProperty[T]
}

// PropertyOf returns a read-only view of p.
func PropertyOf[T any](p *MutableProperty[T]) *Property[T] {
	return &Property[T]{box: p}
}

// NewConstantProperty creates a property that always holds value. Its
// producer sends value and completes.
func NewConstantProperty[T any](value T) *Property[T] {
	box := NewMutableProperty(value)
	box.Dispose()
	return &Property[T]{box: box}
}

// NewProperty creates a property holding initial and then every value of
// changes. The property stays attached to changes for as long as changes
// is live; its lifetime ends, and its signals complete, when changes
// terminates.
func NewProperty[T any](initial T, changes *Signal[T]) *Property[T] {
	box := NewMutableProperty(initial)
	subscription := changes.Observe(NewObserver(func(e Event[T]) {
		if e.Kind == EventValue {
			box.SetValue(e.Value)
			return
		}
		box.Dispose()
	}))
	box.Lifetime().Add(subscription)
	return &Property[T]{box: box}
}

// derivedProperty creates a property from a producer that sends its first
// value synchronously when started.
func derivedProperty[T any](producer *SignalProducer[T]) *Property[T] {
	var box atomic.Pointer[MutableProperty[T]]
	producer.Start(NewObserver(func(e Event[T]) {
		current := box.Load()
		switch {
		case e.Kind != EventValue:
			if current != nil {
				current.Dispose()
			}
		case current == nil:
			box.Store(NewMutableProperty(e.Value))
		default:
			current.SetValue(e.Value)
		}
	}))

	current := box.Load()
	if current == nil {
		panic("signalz: derived property did not receive an initial value")
	}
	return &Property[T]{box: current}
}

// MapProperty creates a property holding f applied to the value of p.
//
// Example:
//
//	greeting := signalz.MapProperty(name, func(n string) string { return "Hello, " + n })
func MapProperty[T, U any](p *Property[T], f func(T) U) *Property[U] {
	return derivedProperty(MapProducer(p.Producer(), f))
}

// CombineLatestProperties creates a property holding the pair of the
// current values of a and b.
func CombineLatestProperties[A, B any](a *Property[A], b *Property[B]) *Property[Pair[A, B]] {
	return derivedProperty(CombineLatestProducers(a.Producer(), b.Producer()))
}

// Value returns the current value.
func (p *Property[T]) Value() T {
	return p.box.Value()
}

// Producer sends the current value when started, then every later change.
func (p *Property[T]) Producer() *SignalProducer[T] {
	return p.box.Producer()
}

// Signal returns the changes made after observation starts.
func (p *Property[T]) Signal() *Signal[T] {
	return p.box.Signal()
}

// Lifetime returns the lifetime of the underlying property.
func (p *Property[T]) Lifetime() *Lifetime {
	return p.box.Lifetime()
}
