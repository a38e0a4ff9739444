package signalz

import (
	"context"

	"github.com/pkg/errors"
)

// await starts p and blocks until the run terminates or ctx is done. If
// ctx is done first the run is interrupted and a wrapped ctx.Err() is
// returned.
func (p *SignalProducer[T]) await(ctx context.Context, onValue func(T)) (Event[T], error) {
	done := make(chan Event[T], 1)
	disposable := p.Start(NewObserver(func(e Event[T]) {
		if e.Kind == EventValue {
			if onValue != nil {
				onValue(e.Value)
			}
			return
		}
		done <- e
	}))

	select {
	case terminal := <-done:
		return terminal, nil
	case <-ctx.Done():
		disposable.Dispose()
		return Event[T]{}, errors.Wrap(ctx.Err(), "signalz: waiting for producer")
	}
}

// terminalError converts a terminating event into the error returned by
// the blocking helpers.
func terminalError[T any](e Event[T]) error {
	switch e.Kind {
	case EventFailed:
		return e.Err
	case EventInterrupted:
		return ErrInterrupted
	default:
		return nil
	}
}

// First starts p and blocks until it sends its first value, then
// interrupts it. It returns ErrNoValue if p completes without a value and
// ErrInterrupted if it is interrupted.
func (p *SignalProducer[T]) First(ctx context.Context) (T, error) {
	var (
		first T
		found bool
	)
	terminal, err := p.Take(1).await(ctx, func(value T) {
		first, found = value, true
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if err := terminalError(terminal); err != nil {
		var zero T
		return zero, err
	}
	if !found {
		return first, ErrNoValue
	}
	return first, nil
}

// Last starts p and blocks until it terminates, returning the last value.
func (p *SignalProducer[T]) Last(ctx context.Context) (T, error) {
	var (
		last  T
		found bool
	)
	terminal, err := p.await(ctx, func(value T) {
		last, found = value, true
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if err := terminalError(terminal); err != nil {
		var zero T
		return zero, err
	}
	if !found {
		return last, ErrNoValue
	}
	return last, nil
}

// Single starts p and expects exactly one value. It returns
// ErrTooManyValues as soon as a second value arrives.
func (p *SignalProducer[T]) Single(ctx context.Context) (T, error) {
	var (
		values []T
		zero   T
	)
	terminal, err := p.Take(2).await(ctx, func(value T) {
		values = append(values, value)
	})
	if err != nil {
		return zero, err
	}
	if err := terminalError(terminal); err != nil {
		return zero, err
	}
	switch len(values) {
	case 0:
		return zero, ErrNoValue
	case 1:
		return values[0], nil
	default:
		return zero, ErrTooManyValues
	}
}

// Wait starts p, discards its values and blocks until it terminates. It
// returns nil if p completed.
func (p *SignalProducer[T]) Wait(ctx context.Context) error {
	terminal, err := p.await(ctx, nil)
	if err != nil {
		return err
	}
	return terminalError(terminal)
}

// CollectAll starts p and blocks until it completes, returning every value
// it sent. On failure the values received so far are returned with the
// error.
func (p *SignalProducer[T]) CollectAll(ctx context.Context) ([]T, error) {
	values := []T{}
	terminal, err := p.await(ctx, func(value T) {
		values = append(values, value)
	})
	if err != nil {
		return nil, err
	}
	return values, terminalError(terminal)
}
