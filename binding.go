package signalz

// BindingTarget is a sink that values can be bound to. It pairs the
// action applying each value with the lifetime of whatever owns it.
// Bindings stop as soon as that lifetime ends.
type BindingTarget[T any] struct {
	lifetime *Lifetime
	action   func(T)
}

// NewBindingTarget creates a target applying values with action until
// lifetime ends.
func NewBindingTarget[T any](lifetime *Lifetime, action func(T)) *BindingTarget[T] {
	return &BindingTarget[T]{lifetime: lifetime, action: action}
}

// NewBindingTargetOn creates a target whose action runs on scheduler.
//
// Example:
//
//	title := signalz.NewBindingTargetOn(ui, window.Lifetime(), window.SetTitle)
func NewBindingTargetOn[T any](scheduler Scheduler, lifetime *Lifetime, action func(T)) *BindingTarget[T] {
	return NewBindingTarget(lifetime, func(value T) {
		scheduler.Schedule(func() { action(value) })
	})
}

// NewKeyedBindingTarget creates a target that applies values to owner
// with setter. Only the target refers to owner, so the binding source does
// not keep owner alive once the binding stops.
func NewKeyedBindingTarget[Owner, T any](owner Owner, lifetime *Lifetime, setter func(Owner, T)) *BindingTarget[T] {
	return NewBindingTarget(lifetime, func(value T) { setter(owner, value) })
}

// Lifetime returns the lifetime bindings to the target are tied to.
func (t *BindingTarget[T]) Lifetime() *Lifetime {
	return t.lifetime
}

// Consume applies value to the target.
func (t *BindingTarget[T]) Consume(value T) {
	t.action(value)
}

// Bind starts producer and applies its values to target until either the
// producer terminates or the target's lifetime ends. Disposing the
// returned Disposable stops the binding early.
//
// Example:
//
//	signalz.Bind(submitEnabled.BindingTarget(), signalz.MapProducer(form.Producer(), isValid))
func Bind[T any](target *BindingTarget[T], producer *SignalProducer[T]) Disposable {
	if target.lifetime.HasEnded() {
		return disposedDisposable()
	}
	return TakeUntilProducer(producer, target.lifetime.Ended()).StartWithValues(target.Consume)
}

// BindSignal applies the values of signal to target until either the
// signal terminates or the target's lifetime ends.
func BindSignal[T any](target *BindingTarget[T], signal *Signal[T]) Disposable {
	return Bind(target, ProducerFromSignal(signal))
}

// BindProperty applies the current value of property to target, then
// every change, until either the property is disposed or the target's
// lifetime ends.
func BindProperty[T any](target *BindingTarget[T], property *Property[T]) Disposable {
	return Bind(target, property.Producer())
}
