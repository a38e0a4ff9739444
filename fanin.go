package signalz

import "sync/atomic"

// Merge forwards the events of every signal into one signal. Values are
// interleaved in arrival order. The result completes once every input has
// completed, and fails or is interrupted as soon as any input is.
//
// When to use:
//   - Aggregating events from multiple sources
//   - Collecting results from parallel workers
//   - Combining user input from several controls into one stream
//
// Example:
//
//	clicks := signalz.Merge(saveButton, saveShortcut, autosave)
//	clicks.ObserveValues(func(struct{}) { document.Save() })
func Merge[T any](signals ...*Signal[T]) *Signal[T] {
	return newSignal(func(out *Observer[T]) Disposable {
		var active atomic.Int64
		active.Store(int64(len(signals)))
		if len(signals) == 0 {
			out.SendCompleted()
			return nil
		}

		disposables := NewCompositeDisposable()
		for _, signal := range signals {
			disposables.Add(signal.Observe(NewObserver(func(e Event[T]) {
				if e.Kind == EventCompleted {
					if active.Add(-1) == 0 {
						out.SendCompleted()
					}
					return
				}
				out.Send(e)
			})))
		}
		return disposables
	}, true)
}

// MergeProducers starts every producer, in order, and merges their runs.
func MergeProducers[T any](producers ...*SignalProducer[T]) *SignalProducer[T] {
	return FlattenProducer(ProducerOf(producers...), FlattenMerge)
}
