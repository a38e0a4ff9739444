package signalz

import "sync"

// Zip pairs the values of a and b by position: the first value of a with
// the first value of b, and so on. Values waiting for a partner are
// buffered per side. The result completes once a side has completed and
// every value it sent has been paired; unmatched values buffered on the
// other side are discarded. A failure or interruption on either side is
// forwarded immediately.
func Zip[A, B any](a *Signal[A], b *Signal[B]) *Signal[Pair[A, B]] {
	return newSignal(func(out *Observer[Pair[A, B]]) Disposable {
		z := &zipState[A, B]{out: out}
		disposables := NewCompositeDisposable()
		disposables.Add(a.Observe(NewObserver(func(e Event[A]) {
			switch e.Kind {
			case EventValue:
				z.push(func() { z.as = append(z.as, e.Value) })
			case EventCompleted:
				z.complete(func() { z.completedA = true })
			default:
				out.Send(terminalAs[Pair[A, B]](e))
			}
		})))
		disposables.Add(b.Observe(NewObserver(func(e Event[B]) {
			switch e.Kind {
			case EventValue:
				z.push(func() { z.bs = append(z.bs, e.Value) })
			case EventCompleted:
				z.complete(func() { z.completedB = true })
			default:
				out.Send(terminalAs[Pair[A, B]](e))
			}
		})))
		return disposables
	}, true)
}

type zipState[A, B any] struct {
	out        *Observer[Pair[A, B]]
	as         []A
	bs         []B
	mu         sync.Mutex
	sendMu     sync.Mutex
	completedA bool
	completedB bool
}

func (z *zipState[A, B]) push(store func()) {
	z.sendMu.Lock()
	defer z.sendMu.Unlock()

	z.mu.Lock()
	store()
	var pairs []Pair[A, B]
	for len(z.as) > 0 && len(z.bs) > 0 {
		pairs = append(pairs, NewPair(z.as[0], z.bs[0]))
		z.as = z.as[1:]
		z.bs = z.bs[1:]
	}
	done := z.exhausted()
	z.mu.Unlock()

	for _, pair := range pairs {
		z.out.SendValue(pair)
	}
	if done {
		z.out.SendCompleted()
	}
}

// complete waits for any push that is still sending its pairs.
func (z *zipState[A, B]) complete(mark func()) {
	z.sendMu.Lock()
	defer z.sendMu.Unlock()

	z.mu.Lock()
	mark()
	done := z.exhausted()
	z.mu.Unlock()

	if done {
		z.out.SendCompleted()
	}
}

// exhausted reports whether no further pair can be produced.
func (z *zipState[A, B]) exhausted() bool {
	return (z.completedA && len(z.as) == 0) || (z.completedB && len(z.bs) == 0)
}

// ZipProducers applies Zip to runs of a and b.
func ZipProducers[A, B any](a *SignalProducer[A], b *SignalProducer[B]) *SignalProducer[Pair[A, B]] {
	return Lift2(a, b, Zip[A, B])
}
