package signalz

import "sync"

// Atomic is a mutex-protected cell. Every read and write goes through the
// same lock, so compound updates made with Modify are never interleaved.
// The zero value holds the zero value of T and is ready to use.
//
// Callbacks passed to Modify and WithValue run while the lock is held; they
// must be short and must not touch the same cell again.
type Atomic[T any] struct {
	mu    sync.Mutex
	value T
}

// NewAtomic creates a cell holding value.
func NewAtomic[T any](value T) *Atomic[T] {
	return &Atomic[T]{value: value}
}

// Value returns the current value.
func (a *Atomic[T]) Value() T {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value
}

// SetValue replaces the current value.
func (a *Atomic[T]) SetValue(value T) {
	a.mu.Lock()
	a.value = value
	a.mu.Unlock()
}

// Swap replaces the current value and returns the previous one.
func (a *Atomic[T]) Swap(value T) T {
	a.mu.Lock()
	defer a.mu.Unlock()
	old := a.value
	a.value = value
	return old
}

// Modify atomically replaces the value with f(old) and returns old.
func (a *Atomic[T]) Modify(f func(T) T) T {
	a.mu.Lock()
	defer a.mu.Unlock()
	old := a.value
	a.value = f(old)
	return old
}

// WithValue runs f with the current value while holding the lock.
func (a *Atomic[T]) WithValue(f func(T)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f(a.value)
}

// ModifyAtomic atomically replaces the value of a with the first result of
// f and returns the old value together with f's second result.
func ModifyAtomic[T, U any](a *Atomic[T], f func(T) (T, U)) (T, U) {
	a.mu.Lock()
	defer a.mu.Unlock()
	old := a.value
	next, result := f(old)
	a.value = next
	return old, result
}
