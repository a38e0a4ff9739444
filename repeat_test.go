package signalz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRepeat(t *testing.T) {
	runs := 0
	r := newRecorder[int]()
	flaky(0, &runs).Repeat(3).Start(r.observer())

	assert.Equal(t, []int{1, 2, 3}, r.values())
	assert.Equal(t, 3, runs)
	r.requireKind(t, EventCompleted)
}

func TestRepeat_Once(t *testing.T) {
	r := newRecorder[int]()
	ProducerOf(1, 2).Repeat(1).Start(r.observer())

	assert.Equal(t, []int{1, 2}, r.values())
	r.requireKind(t, EventCompleted)
}

func TestRepeat_Zero(t *testing.T) {
	runs := 0
	r := newRecorder[int]()
	flaky(0, &runs).Repeat(0).Start(r.observer())

	assert.Empty(t, r.values())
	assert.Zero(t, runs)
	r.requireKind(t, EventCompleted)
}

func TestRepeat_FailureEndsRepetition(t *testing.T) {
	runs := 0
	r := newRecorder[int]()
	flaky(2, &runs).Repeat(5).Start(r.observer())

	assert.Equal(t, []int{1}, r.values())
	assert.Equal(t, 1, runs)
	terminal := r.requireKind(t, EventFailed)
	assert.EqualError(t, terminal.Err, "flaky")
}

func TestRepeat_DisposeStopsRepetition(t *testing.T) {
	scheduler := NewTestScheduler()
	runs := 0
	tick := NewSignalProducer(func(observer *Observer[int], lifetime *CompositeDisposable) {
		runs++
		lifetime.Add(scheduler.ScheduleAfterDelay(time.Second, func() {
			observer.SendValue(runs)
			observer.SendCompleted()
		}))
	})

	r := newRecorder[int]()
	disposable := tick.Repeat(3).Start(r.observer())

	scheduler.AdvanceBy(time.Second)
	assert.Equal(t, []int{1}, r.values())
	assert.Equal(t, 2, runs)

	disposable.Dispose()
	scheduler.Run()

	assert.Equal(t, []int{1}, r.values())
	assert.Equal(t, 2, runs)
	r.requireKind(t, EventInterrupted)
}
