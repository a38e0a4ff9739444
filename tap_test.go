package signalz

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOn_RunsHooksInOrder(t *testing.T) {
	signal, input := Pipe[int]()
	var calls []string
	hooked := signal.On(SignalHooks[int]{
		Event:      func(e Event[int]) { calls = append(calls, "event:"+e.Kind.String()) },
		Value:      func(int) { calls = append(calls, "value") },
		Completed:  func() { calls = append(calls, "completed") },
		Terminated: func() { calls = append(calls, "terminated") },
		Disposed:   func() { calls = append(calls, "disposed") },
	})

	r := newRecorder[int]()
	hooked.Observe(r.observer())
	input.SendValue(1)
	input.SendCompleted()

	assert.Equal(t, []string{
		"event:value", "value",
		"event:completed", "completed", "terminated",
		"disposed",
	}, calls)
	assert.Equal(t, []int{1}, r.values())
}

func TestOn_PanickingHookIsRecovered(t *testing.T) {
	signal, input := Pipe[int]()
	hooked := signal.On(SignalHooks[int]{
		Value: func(int) { panic("hook exploded") },
	})

	r := newRecorder[int]()
	hooked.Observe(r.observer())

	assert.NotPanics(t, func() { input.SendValue(1) })
	assert.Equal(t, []int{1}, r.values())
}

func TestOn_FailedAndInterrupted(t *testing.T) {
	var failed, interrupted atomic.Bool
	hooks := SignalHooks[int]{
		Failed:      func(error) { failed.Store(true) },
		Interrupted: func() { interrupted.Store(true) },
	}

	ProducerError[int](errors.New("boom")).On(ProducerHooks[int]{SignalHooks: hooks}).Start(nil)
	assert.True(t, failed.Load())

	NeverProducer[int]().On(ProducerHooks[int]{SignalHooks: hooks}).Start(nil).Dispose()
	assert.True(t, interrupted.Load())
}

func TestProducerOn_Lifecycle(t *testing.T) {
	var calls []string
	producer := NewSignalProducer(func(observer *Observer[int], _ *CompositeDisposable) {
		calls = append(calls, "handler")
		observer.SendValue(1)
	}).On(ProducerHooks[int]{
		Starting:    func() { calls = append(calls, "starting") },
		Started:     func() { calls = append(calls, "started") },
		SignalHooks: SignalHooks[int]{Value: func(int) { calls = append(calls, "value") }},
	})

	assert.Empty(t, calls)
	producer.Start(nil)
	assert.Equal(t, []string{"starting", "handler", "value", "started"}, calls)
}
