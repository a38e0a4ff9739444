package signalz

// Collect gathers every value of s and sends them as one slice when s
// completes. An empty signal sends an empty, non-nil slice.
func Collect[T any](s *Signal[T]) *Signal[[]T] {
	return relay(s, func(out *Observer[[]T]) *Observer[T] {
		values := []T{}
		return NewObserver(func(e Event[T]) {
			switch e.Kind {
			case EventValue:
				values = append(values, e.Value)
			case EventCompleted:
				out.SendValue(values)
				out.SendCompleted()
			default:
				out.Send(terminalAs[[]T](e))
			}
		})
	})
}

// CollectCount groups values into slices of count. On completion any
// partial batch is sent before completing. A count below 1 is treated
// as 1.
//
// Example:
//
//	batches := signalz.CollectCount(rows, 100)
//	batches.ObserveValues(func(batch []Row) { db.InsertAll(batch) })
func CollectCount[T any](s *Signal[T], count int) *Signal[[]T] {
	if count < 1 {
		count = 1
	}
	return relay(s, func(out *Observer[[]T]) *Observer[T] {
		batch := make([]T, 0, count)
		return NewObserver(func(e Event[T]) {
			switch e.Kind {
			case EventValue:
				batch = append(batch, e.Value)
				if len(batch) == count {
					full := batch
					batch = make([]T, 0, count)
					out.SendValue(full)
				}
			case EventCompleted:
				if len(batch) > 0 {
					out.SendValue(batch)
				}
				out.SendCompleted()
			default:
				out.Send(terminalAs[[]T](e))
			}
		})
	})
}

// CollectProducer applies Collect to every run of p.
func CollectProducer[T any](p *SignalProducer[T]) *SignalProducer[[]T] {
	return Lift(p, Collect[T])
}

// CollectCountProducer applies CollectCount to every run of p.
func CollectCountProducer[T any](p *SignalProducer[T], count int) *SignalProducer[[]T] {
	return Lift(p, func(s *Signal[T]) *Signal[[]T] { return CollectCount(s, count) })
}
