package signalz

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
)

// SimpleDisposable is a disposed flag with no side effects.
type SimpleDisposable struct {
	disposed atomic.Bool
}

// NewSimpleDisposable creates a live SimpleDisposable.
func NewSimpleDisposable() *SimpleDisposable {
	return &SimpleDisposable{}
}

// Dispose marks the disposable as disposed.
func (d *SimpleDisposable) Dispose() {
	d.disposed.Store(true)
}

// IsDisposed reports whether Dispose has been called.
func (d *SimpleDisposable) IsDisposed() bool {
	return d.disposed.Load()
}

func disposedDisposable() Disposable {
	d := &SimpleDisposable{}
	d.disposed.Store(true)
	return d
}

// ActionDisposable runs an action the first time it is disposed.
type ActionDisposable struct {
	action   func()
	disposed atomic.Bool
}

// NewActionDisposable creates a disposable that runs action exactly once,
// on the first call to Dispose. A nil action is allowed.
func NewActionDisposable(action func()) *ActionDisposable {
	return &ActionDisposable{action: action}
}

// Dispose runs the action if this is the first call.
func (d *ActionDisposable) Dispose() {
	if d.disposed.CompareAndSwap(false, true) && d.action != nil {
		d.action()
	}
}

// IsDisposed reports whether Dispose has been called.
func (d *ActionDisposable) IsDisposed() bool {
	return d.disposed.Load()
}

// CompositeDisposable owns a dynamic set of disposables and disposes all of
// them, in insertion order, when it is disposed itself.
//
// Disposables are matched by identity in Remove, so they must be comparable;
// every disposable in this package is a pointer.
type CompositeDisposable struct {
	mu       sync.Mutex
	children Bag[Disposable]
	disposed bool
}

// NewCompositeDisposable creates a composite holding the given disposables.
// Nil entries are skipped.
func NewCompositeDisposable(disposables ...Disposable) *CompositeDisposable {
	c := &CompositeDisposable{}
	for _, d := range disposables {
		if d != nil {
			c.children.Insert(d)
		}
	}
	return c
}

// Add stores d and returns a handle that removes it again without
// disposing it. If the composite is already disposed, d is disposed
// immediately instead of being stored. Adding nil is a no-op.
func (c *CompositeDisposable) Add(d Disposable) Disposable {
	if d == nil {
		return disposedDisposable()
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		d.Dispose()
		return disposedDisposable()
	}
	token := c.children.Insert(d)
	c.mu.Unlock()

	return NewActionDisposable(func() {
		c.mu.Lock()
		if !c.disposed {
			c.children.Remove(token)
		}
		c.mu.Unlock()
	})
}

// AddFunc adds an ActionDisposable running action.
func (c *CompositeDisposable) AddFunc(action func()) Disposable {
	return c.Add(NewActionDisposable(action))
}

// Remove forgets d without disposing it.
func (c *CompositeDisposable) Remove(d Disposable) {
	if d == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.disposed {
		c.children.RemoveFirst(func(child Disposable) bool { return child == d })
	}
}

// Dispose disposes every stored disposable. Later calls do nothing.
func (c *CompositeDisposable) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	children := c.children.Drain()
	c.mu.Unlock()

	for _, child := range children {
		child.Dispose()
	}
}

// IsDisposed reports whether Dispose has been called.
func (c *CompositeDisposable) IsDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// SerialDisposable holds at most one inner disposable. Replacing the inner
// disposable disposes the outgoing one.
type SerialDisposable struct {
	inner    Disposable
	mu       sync.Mutex
	disposed bool
}

// NewSerialDisposable creates an empty SerialDisposable.
func NewSerialDisposable() *SerialDisposable {
	return &SerialDisposable{}
}

// Inner returns the current inner disposable, or nil.
func (s *SerialDisposable) Inner() Disposable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner
}

// SetInner replaces the inner disposable and disposes the previous one.
// If s is already disposed, d is disposed immediately.
func (s *SerialDisposable) SetInner(d Disposable) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		if d != nil {
			d.Dispose()
		}
		return
	}
	old := s.inner
	s.inner = d
	s.mu.Unlock()

	if old != nil {
		old.Dispose()
	}
}

// Dispose disposes the current inner disposable. Later calls do nothing.
func (s *SerialDisposable) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	old := s.inner
	s.inner = nil
	s.mu.Unlock()

	if old != nil {
		old.Dispose()
	}
}

// IsDisposed reports whether Dispose has been called.
func (s *SerialDisposable) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// ScopedDisposable ties an inner disposable to the lifetime of its owner:
// the inner disposable is disposed when the owner's lifetime ends, or
// earlier if the scoped disposable is disposed directly.
type ScopedDisposable struct {
	inner    Disposable
	hook     *SerialDisposable
	disposed atomic.Bool
}

// NewScopedDisposable scopes inner to owner.
func NewScopedDisposable(owner *Lifetime, inner Disposable) *ScopedDisposable {
	s := &ScopedDisposable{inner: inner, hook: NewSerialDisposable()}
	s.hook.SetInner(owner.ObserveEnded(s.Dispose))
	return s
}

// Inner returns the scoped disposable.
func (s *ScopedDisposable) Inner() Disposable {
	return s.inner
}

// Dispose disposes the inner disposable and detaches from the owner.
func (s *ScopedDisposable) Dispose() {
	if !s.disposed.CompareAndSwap(false, true) {
		return
	}
	s.hook.Dispose()
	if s.inner != nil {
		s.inner.Dispose()
	}
}

// IsDisposed reports whether the scope has ended.
func (s *ScopedDisposable) IsDisposed() bool {
	return s.disposed.Load()
}

// CloserDisposable releases io.Closer resources, in reverse order, the first
// time it is disposed. Close failures are collected and reported by Err.
type CloserDisposable struct {
	err      error
	closers  []io.Closer
	mu       sync.Mutex
	disposed atomic.Bool
}

// NewCloserDisposable creates a disposable that closes the given resources.
func NewCloserDisposable(closers ...io.Closer) *CloserDisposable {
	return &CloserDisposable{closers: closers}
}

// Dispose closes every resource once.
func (d *CloserDisposable) Dispose() {
	if !d.disposed.CompareAndSwap(false, true) {
		return
	}

	var result *multierror.Error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if d.closers[i] == nil {
			continue
		}
		if err := d.closers[i].Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	d.mu.Lock()
	d.err = result.ErrorOrNil()
	d.mu.Unlock()
}

// IsDisposed reports whether Dispose has been called.
func (d *CloserDisposable) IsDisposed() bool {
	return d.disposed.Load()
}

// Err returns the combined Close errors, or nil if every Close succeeded or
// the disposable has not finished disposing yet.
func (d *CloserDisposable) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}
