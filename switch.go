package signalz

import "sync"

func flattenLatest[T any](s *Signal[*SignalProducer[T]]) *Signal[T] {
	return newSignal(func(out *Observer[T]) Disposable {
		var (
			mu          sync.Mutex
			latest      uint64
			innerActive bool
			outerDone   bool
		)
		current := NewSerialDisposable()
		disposables := NewCompositeDisposable(current)

		disposables.Add(s.Observe(NewObserver(func(e Event[*SignalProducer[T]]) {
			switch e.Kind {
			case EventValue:
				mu.Lock()
				latest++
				id := latest
				innerActive = true
				mu.Unlock()

				e.Value.StartWithSignal(func(inner *Signal[T], interrupter Disposable) {
					current.SetInner(interrupter)
					inner.Observe(NewObserver(func(ie Event[T]) {
						mu.Lock()
						if id != latest {
							mu.Unlock()
							return
						}
						done := false
						if ie.Kind == EventCompleted {
							innerActive = false
							done = outerDone
						}
						mu.Unlock()

						switch {
						case ie.Kind != EventCompleted:
							out.Send(ie)
						case done:
							out.SendCompleted()
						}
					}))
				})
			case EventCompleted:
				mu.Lock()
				outerDone = true
				done := !innerActive
				mu.Unlock()
				if done {
					out.SendCompleted()
				}
			default:
				out.Send(terminalAs[T](e))
			}
		})))
		return disposables
	}, true)
}

// SwitchToLatest forwards only the most recent producer sent by s. See
// Flatten with FlattenLatest.
//
// When to use:
//   - Search-as-you-type, where a new query makes older results stale
//   - Reloading data whenever a selection changes
//   - Restarting a timer or poller on every configuration change
func SwitchToLatest[T any](s *Signal[*SignalProducer[T]]) *Signal[T] {
	return Flatten(s, FlattenLatest)
}

// SwitchToLatestSignals forwards only the most recent signal sent by s.
func SwitchToLatestSignals[T any](s *Signal[*Signal[T]]) *Signal[T] {
	return FlattenSignals(s, FlattenLatest)
}

// SwitchToLatestProducer applies SwitchToLatest to every run of p.
func SwitchToLatestProducer[T any](p *SignalProducer[*SignalProducer[T]]) *SignalProducer[T] {
	return FlattenProducer(p, FlattenLatest)
}
