package signalz

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
)

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for scheduled action")
	}
}

func TestQueueScheduler_RunsInOrder(t *testing.T) {
	q := NewQueueScheduler(RealClock)

	var mu sync.Mutex
	var order []int
	done := make(chan struct{})
	for i := 0; i < 100; i++ {
		q.Schedule(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			if i == 99 {
				close(done)
			}
		})
	}
	waitFor(t, done)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, 100)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestQueueScheduler_RunsOneAtATime(t *testing.T) {
	q := NewQueueScheduler(RealClock)

	var running, maxRunning atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go q.Schedule(func() {
			defer wg.Done()
			n := running.Add(1)
			if n > maxRunning.Load() {
				maxRunning.Store(n)
			}
			time.Sleep(time.Millisecond)
			running.Add(-1)
		})
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxRunning.Load())
}

func TestQueueScheduler_DisposeSkipsAction(t *testing.T) {
	q := NewQueueScheduler(RealClock)
	gate := make(chan struct{})
	done := make(chan struct{})

	q.Schedule(func() { <-gate })
	var ran atomic.Bool
	q.Schedule(func() { ran.Store(true) }).Dispose()
	q.Schedule(func() { close(done) })

	close(gate)
	waitFor(t, done)
	assert.False(t, ran.Load())
}

func TestQueueScheduler_ScheduleAfter(t *testing.T) {
	clock := clockz.NewFakeClock()
	q := NewQueueScheduler(clock)

	fired := make(chan struct{})
	q.ScheduleAfter(clock.Now().Add(time.Second), func() { close(fired) })

	clock.Advance(500 * time.Millisecond)
	clock.BlockUntilReady()
	select {
	case <-fired:
		t.Fatal("action ran before its date")
	default:
	}

	clock.Advance(500 * time.Millisecond)
	clock.BlockUntilReady()
	waitFor(t, fired)
}

func TestQueueScheduler_ScheduleAfterPastDate(t *testing.T) {
	clock := clockz.NewFakeClock()
	q := NewQueueScheduler(clock)

	fired := make(chan struct{})
	q.ScheduleAfter(clock.Now().Add(-time.Second), func() { close(fired) })

	waitFor(t, fired)
}

func TestQueueScheduler_ScheduleAfterDisposed(t *testing.T) {
	clock := clockz.NewFakeClock()
	q := NewQueueScheduler(clock)

	var ran atomic.Bool
	disposable := q.ScheduleAfter(clock.Now().Add(time.Second), func() { ran.Store(true) })
	disposable.Dispose()
	assert.True(t, disposable.IsDisposed())

	clock.Advance(2 * time.Second)
	clock.BlockUntilReady()

	done := make(chan struct{})
	q.Schedule(func() { close(done) })
	waitFor(t, done)
	assert.False(t, ran.Load())
}

func TestQueueScheduler_ScheduleInterval(t *testing.T) {
	clock := clockz.NewFakeClock()
	q := NewQueueScheduler(clock)

	ticks := make(chan struct{}, 10)
	disposable := q.ScheduleInterval(clock.Now().Add(time.Second), time.Second, 0, func() {
		ticks <- struct{}{}
	})

	for i := 0; i < 3; i++ {
		clock.Advance(time.Second)
		clock.BlockUntilReady()
		waitFor(t, ticks)
	}

	disposable.Dispose()
	clock.Advance(5 * time.Second)
	clock.BlockUntilReady()

	done := make(chan struct{})
	q.Schedule(func() { close(done) })
	waitFor(t, done)
	assert.Empty(t, ticks)
}

func TestQueueScheduler_ScheduleIntervalPanics(t *testing.T) {
	q := NewQueueScheduler(RealClock)
	assert.Panics(t, func() {
		q.ScheduleInterval(q.Now(), 0, 0, func() {})
	})
}

func TestQueueScheduler_Name(t *testing.T) {
	assert.Equal(t, "queue", NewQueueScheduler(RealClock).Name())
	assert.Equal(t, "io", NewQueueScheduler(RealClock).WithName("io").Name())
}

func TestQueueScheduler_Now(t *testing.T) {
	clock := clockz.NewFakeClock()
	q := NewQueueScheduler(clock)
	assert.Equal(t, clock.Now(), q.Now())
}
