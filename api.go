// Package signalz provides type-safe, composable reactive streams for Go:
// push-based multicast Signals, cold restartable SignalProducers, explicit
// resource management through Disposables, and Schedulers that decide where
// and when events are delivered.
//
// The core abstraction is the Signal, a live stream of Events. A Signal
// delivers zero or more values followed by at most one terminating event
// (failed, completed or interrupted). Signals never buffer: observers that
// attach late only see what is sent after they attach, except for the
// terminating event, which is replayed to anyone who observes a finished
// Signal.
//
// Basic usage:
//
//	signal, input := signalz.Pipe[int]()
//
//	evens := signal.Filter(func(n int) bool { return n%2 == 0 })
//	labels := signalz.Map(evens, func(n int) string { return fmt.Sprintf("#%d", n) })
//
//	labels.ObserveValues(func(label string) {
//		fmt.Println(label)
//	})
//
//	input.SendValue(1)
//	input.SendValue(2) // prints "#2"
//	input.SendCompleted()
//
// A SignalProducer describes how to create a Signal. Every call to Start
// creates an independent run with its own Signal and its own Disposable:
//
//	producer := signalz.ProducerOf(1, 2, 3).Take(2)
//	disposable := producer.StartWithValues(func(n int) { fmt.Println(n) })
//	defer disposable.Dispose()
//
// On top of these the package provides:
//   - Disposables: simple, action, composite, serial, scoped and closer
//   - Schedulers: immediate, main-loop (UI), queue-backed and virtual time
//   - Operators: mapping, filtering, slicing, combining, flattening, timing
//   - Properties: observable cells that replay their current value
//   - Bindings: unidirectional feeds from producers into BindingTargets
//   - Actions: serialized, enablement-gated units of asynchronous work
package signalz

import "time"

// Disposable represents work or resources that can be cancelled or released.
// Dispose is idempotent and safe for concurrent use; once IsDisposed reports
// true it never reports false again.
type Disposable interface {
	Dispose()
	IsDisposed() bool
}

// FlattenStrategy selects how a stream of streams is flattened.
type FlattenStrategy int

const (
	// FlattenMerge observes every inner stream as soon as it arrives and
	// forwards their values interleaved.
	FlattenMerge FlattenStrategy = iota

	// FlattenConcat observes inner streams one at a time, in arrival order.
	FlattenConcat

	// FlattenLatest only forwards the most recent inner stream, disposing
	// the previous one whenever a new one arrives.
	FlattenLatest
)

// String returns the strategy name.
func (s FlattenStrategy) String() string {
	switch s {
	case FlattenMerge:
		return "merge"
	case FlattenConcat:
		return "concat"
	case FlattenLatest:
		return "latest"
	default:
		return "unknown"
	}
}

// RetryConfig configures RetryWithBackoff.
type RetryConfig struct {
	// ShouldRetry decides whether a failure is retried. The attempt number
	// starts at 1 for the first failure. If nil, every failure is retried.
	ShouldRetry func(err error, attempt int) bool

	// MaxAttempts is the total number of runs, including the first one.
	// Values below 1 are treated as 1.
	MaxAttempts int

	// BaseDelay is the delay before the first retry. Subsequent delays
	// double until they reach MaxDelay.
	BaseDelay time.Duration

	// MaxDelay caps the backoff delay. Zero means no cap.
	MaxDelay time.Duration

	// Jitter randomizes each delay to between 50% and 100% of its value.
	Jitter bool
}
