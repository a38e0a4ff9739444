package signalz

import "sync/atomic"

// Lifetime represents the lifetime of an object, such as a view or a
// property. It ends exactly once, when its LifetimeToken is disposed, and
// its Ended signal completes at that moment.
type Lifetime struct {
	ended *Signal[struct{}]
}

// LifetimeToken is held by the owner of a Lifetime. Disposing it ends the
// lifetime.
type LifetimeToken struct {
	input    *Observer[struct{}]
	disposed atomic.Bool
}

// NewLifetime creates a lifetime and the token that ends it.
//
// Example:
//
//	lifetime, token := signalz.NewLifetime()
//	target := signalz.NewBindingTarget(lifetime, label.SetText)
//	signalz.BindSignal(target, titles)
//	defer token.Dispose()
func NewLifetime() (*Lifetime, *LifetimeToken) {
	ended, input := Pipe[struct{}]()
	return &Lifetime{ended: ended}, &LifetimeToken{input: input}
}

var permanent = &Lifetime{ended: NeverSignal[struct{}]()}

// PermanentLifetime returns a lifetime that never ends.
func PermanentLifetime() *Lifetime {
	return permanent
}

// Dispose ends the lifetime. Later calls do nothing.
func (t *LifetimeToken) Dispose() {
	if t.disposed.CompareAndSwap(false, true) {
		t.input.SendCompleted()
	}
}

// IsDisposed reports whether the lifetime has been ended.
func (t *LifetimeToken) IsDisposed() bool {
	return t.disposed.Load()
}

// Ended returns a signal that completes when the lifetime ends. Observing
// it after the lifetime ended completes immediately.
func (l *Lifetime) Ended() *Signal[struct{}] {
	return l.ended
}

// HasEnded reports whether the lifetime has ended.
func (l *Lifetime) HasEnded() bool {
	return l.ended.isTerminated()
}

// ObserveEnded runs action when the lifetime ends, or immediately if it
// already has. Disposing the returned Disposable cancels the callback.
func (l *Lifetime) ObserveEnded(action func()) Disposable {
	return l.ended.ObserveTerminated(action)
}

// Add disposes d when the lifetime ends.
func (l *Lifetime) Add(d Disposable) Disposable {
	if d == nil {
		return disposedDisposable()
	}
	return l.ObserveEnded(d.Dispose)
}
