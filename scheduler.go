package signalz

import "time"

// Scheduler runs actions. Schedule may return nil when the action already
// ran or cannot be cancelled; otherwise disposing the returned Disposable
// before the action starts prevents it from running.
type Scheduler interface {
	Schedule(action func()) Disposable
}

// DateScheduler is a Scheduler that can also run actions at a point in
// time and report its notion of the current time.
type DateScheduler interface {
	Scheduler

	// Now returns the scheduler's current time.
	Now() time.Time

	// ScheduleAfter runs action at or after date.
	ScheduleAfter(date time.Time, action func()) Disposable

	// ScheduleInterval runs action at date and then every interval until
	// the returned Disposable is disposed. Leeway is a hint for how much
	// each run may be delayed.
	ScheduleInterval(date time.Time, interval, leeway time.Duration, action func()) Disposable
}

// ImmediateScheduler runs every action synchronously on the calling
// goroutine.
type ImmediateScheduler struct{}

// Immediate is the shared ImmediateScheduler.
var Immediate Scheduler = ImmediateScheduler{}

// Schedule runs action immediately and returns nil.
func (ImmediateScheduler) Schedule(action func()) Disposable {
	action()
	return nil
}
