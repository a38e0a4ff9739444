package signalz

import (
	"sync"
	"time"
)

// QueueScheduler runs actions one at a time, in the order they were
// scheduled, on a background goroutine that is started on demand and exits
// when the queue is empty. Timed actions use the scheduler's Clock, so
// tests can drive it with a fake clock.
//
// Example:
//
//	background := signalz.NewQueueScheduler(signalz.RealClock).WithName("io")
//	producer.StartOn(background).StartWithValues(handle)
type QueueScheduler struct {
	clock   Clock
	name    string
	queue   []func()
	mu      sync.Mutex
	running bool
}

// NewQueueScheduler creates a scheduler whose timed actions use clock.
func NewQueueScheduler(clock Clock) *QueueScheduler {
	return &QueueScheduler{
		clock: clock,
		name:  "queue",
	}
}

// WithName sets a name for debugging. Defaults to "queue".
func (q *QueueScheduler) WithName(name string) *QueueScheduler {
	q.name = name
	return q
}

// Name returns the scheduler name.
func (q *QueueScheduler) Name() string {
	return q.name
}

// Now returns the clock's current time.
func (q *QueueScheduler) Now() time.Time {
	return q.clock.Now()
}

// Schedule enqueues action.
func (q *QueueScheduler) Schedule(action func()) Disposable {
	disposable := NewSimpleDisposable()
	q.enqueue(func() {
		if !disposable.IsDisposed() {
			action()
		}
	})
	return disposable
}

// ScheduleAfter enqueues action once the clock reaches date.
func (q *QueueScheduler) ScheduleAfter(date time.Time, action func()) Disposable {
	disposable := &timerDisposable{}
	run := func() {
		if !disposable.IsDisposed() {
			action()
		}
	}

	delay := date.Sub(q.clock.Now())
	if delay <= 0 {
		q.enqueue(run)
		return disposable
	}

	timer := q.clock.AfterFunc(delay, func() { q.enqueue(run) })
	disposable.setTimer(timer)
	return disposable
}

// ScheduleInterval runs action at date and then every interval. Leeway is
// ignored. It panics if interval is not positive.
func (q *QueueScheduler) ScheduleInterval(date time.Time, interval, _ time.Duration, action func()) Disposable {
	if interval <= 0 {
		panic("signalz: QueueScheduler.ScheduleInterval requires a positive interval")
	}

	serial := NewSerialDisposable()
	var schedule func(at time.Time)
	schedule = func(at time.Time) {
		serial.SetInner(q.ScheduleAfter(at, func() {
			action()
			schedule(at.Add(interval))
		}))
	}
	schedule(date)
	return serial
}

func (q *QueueScheduler) enqueue(action func()) {
	q.mu.Lock()
	q.queue = append(q.queue, action)
	start := !q.running
	q.running = true
	q.mu.Unlock()

	if start {
		go q.drain()
	}
}

func (q *QueueScheduler) drain() {
	for {
		q.mu.Lock()
		if len(q.queue) == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		action := q.queue[0]
		q.queue[0] = nil
		q.queue = q.queue[1:]
		q.mu.Unlock()

		action()
	}
}

// timerDisposable cancels a timed action, stopping its timer if one was
// started.
type timerDisposable struct {
	timer    Timer
	mu       sync.Mutex
	disposed bool
}

func (d *timerDisposable) setTimer(timer Timer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		timer.Stop()
		return
	}
	d.timer = timer
}

func (d *timerDisposable) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		return
	}
	d.disposed = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *timerDisposable) IsDisposed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disposed
}
