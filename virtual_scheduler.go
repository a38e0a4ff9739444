package signalz

import (
	"sort"
	"sync"
	"time"
)

// DistantFuture is a time later than any date a test will schedule for.
var DistantFuture = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// TestScheduler is a DateScheduler on a virtual clock. Nothing runs until
// the clock is moved with Advance, AdvanceBy, AdvanceTo or Run; pending
// actions then run in order of their date, ties broken by the order they
// were scheduled, on the goroutine moving the clock.
//
// Example:
//
//	scheduler := signalz.NewTestScheduler()
//	debounced := input.Debounce(time.Second, scheduler)
//	observer.SendValue("a")
//	scheduler.AdvanceBy(time.Second) // "a" is sent now
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type TestScheduler struct {
	now     time.Time
	actions []scheduledAction
	mu      sync.Mutex
}

type scheduledAction struct {
	date       time.Time
	action     func()
	disposable *SimpleDisposable
}

// NewTestScheduler creates a TestScheduler whose clock starts at
// 2001-01-01 00:00:00 UTC.
func NewTestScheduler() *TestScheduler {
	return NewTestSchedulerAt(time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC))
}

// NewTestSchedulerAt creates a TestScheduler whose clock starts at start.
func NewTestSchedulerAt(start time.Time) *TestScheduler {
	return &TestScheduler{now: start}
}

// Now returns the virtual time.
func (s *TestScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Schedule queues action at the current virtual time.
func (s *TestScheduler) Schedule(action func()) Disposable {
	return s.ScheduleAfter(s.Now(), action)
}

// ScheduleAfterDelay queues action delay after the current virtual time.
func (s *TestScheduler) ScheduleAfterDelay(delay time.Duration, action func()) Disposable {
	return s.ScheduleAfter(s.Now().Add(delay), action)
}

// ScheduleAfter queues action at date.
func (s *TestScheduler) ScheduleAfter(date time.Time, action func()) Disposable {
	disposable := NewSimpleDisposable()

	s.mu.Lock()
	defer s.mu.Unlock()
	scheduled := scheduledAction{
		date:       date,
		action:     action,
		disposable: disposable,
	}
	i := sort.Search(len(s.actions), func(i int) bool {
		return s.actions[i].date.After(date)
	})
	s.actions = append(s.actions, scheduledAction{})
	copy(s.actions[i+1:], s.actions[i:])
	s.actions[i] = scheduled

	return disposable
}

// ScheduleInterval queues action at date and then every interval after
// it. It panics if interval is not positive.
func (s *TestScheduler) ScheduleInterval(date time.Time, interval, _ time.Duration, action func()) Disposable {
	if interval <= 0 {
		panic("signalz: TestScheduler.ScheduleInterval requires a positive interval")
	}

	serial := NewSerialDisposable()
	var schedule func(at time.Time)
	schedule = func(at time.Time) {
		serial.SetInner(s.ScheduleAfter(at, func() {
			action()
			schedule(at.Add(interval))
		}))
	}
	schedule(date)
	return serial
}

// Advance runs every action due at the current virtual time.
func (s *TestScheduler) Advance() {
	s.AdvanceTo(s.Now())
}

// AdvanceBy moves the clock forward by interval, running every action due
// on the way.
func (s *TestScheduler) AdvanceBy(interval time.Duration) {
	s.AdvanceTo(s.Now().Add(interval))
}

// AdvanceTo moves the clock to date, running every action due on the way.
// The clock is set to each action's date before it runs. Actions run
// without the scheduler lock held, so they may schedule more work; work
// scheduled at or before date also runs. It panics if date is before the
// current virtual time.
func (s *TestScheduler) AdvanceTo(date time.Time) {
	s.mu.Lock()
	if date.Before(s.now) {
		s.mu.Unlock()
		panic("signalz: TestScheduler cannot advance backwards in time")
	}

	for len(s.actions) > 0 && !s.actions[0].date.After(date) {
		next := s.actions[0]
		s.actions[0] = scheduledAction{}
		s.actions = s.actions[1:]
		if next.date.After(s.now) {
			s.now = next.date
		}
		s.mu.Unlock()

		if !next.disposable.IsDisposed() {
			next.action()
		}

		s.mu.Lock()
	}
	s.now = date
	s.mu.Unlock()
}

// Run runs every pending action, including ones scheduled while running,
// and leaves the clock at DistantFuture.
func (s *TestScheduler) Run() {
	s.AdvanceTo(DistantFuture)
}

// Rewind moves the clock back by interval without running anything. It
// panics if interval is negative.
func (s *TestScheduler) Rewind(interval time.Duration) {
	if interval < 0 {
		panic("signalz: TestScheduler cannot rewind by a negative interval")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(-interval)
}

// Pending returns the number of queued actions, disposed ones included.
func (s *TestScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions)
}
