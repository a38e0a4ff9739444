package signalz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebounce(t *testing.T) {
	scheduler := NewTestScheduler()
	signal, input := Pipe[string]()

	r := newRecorder[string]()
	signal.Debounce(time.Second, scheduler).Observe(r.observer())

	input.SendValue("a")
	scheduler.AdvanceBy(500 * time.Millisecond)
	input.SendValue("ab")
	scheduler.AdvanceBy(500 * time.Millisecond)
	assert.Empty(t, r.values(), "each value restarts the wait")

	scheduler.AdvanceBy(500 * time.Millisecond)
	assert.Equal(t, []string{"ab"}, r.values())
}

func TestDebounce_TerminationDiscardsPending(t *testing.T) {
	scheduler := NewTestScheduler()
	signal, input := Pipe[int]()

	r := newRecorder[int]()
	signal.Debounce(time.Second, scheduler).Observe(r.observer())

	input.SendValue(1)
	input.SendCompleted()
	scheduler.Run()

	assert.Empty(t, r.values())
	r.requireKind(t, EventCompleted)
}

func TestDebounce_Producer(t *testing.T) {
	scheduler := NewTestScheduler()
	signal, input := Pipe[int]()

	r := newRecorder[int]()
	ProducerFromSignal(signal).Debounce(time.Second, scheduler).Start(r.observer())

	for i := 0; i < 10; i++ {
		input.SendValue(i)
		scheduler.AdvanceBy(100 * time.Millisecond)
	}
	scheduler.AdvanceBy(time.Second)

	assert.Equal(t, []int{9}, r.values())
	r.requireLive(t)
}
