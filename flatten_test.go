package signalz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten_Merge(t *testing.T) {
	outer, sendOuter := Pipe[*SignalProducer[int]]()
	first, sendFirst := Pipe[int]()
	second, sendSecond := Pipe[int]()

	r := newRecorder[int]()
	Flatten(outer, FlattenMerge).Observe(r.observer())

	sendOuter.SendValue(ProducerFromSignal(first))
	sendOuter.SendValue(ProducerFromSignal(second))
	sendFirst.SendValue(1)
	sendSecond.SendValue(2)
	sendFirst.SendValue(3)

	sendOuter.SendCompleted()
	sendFirst.SendCompleted()
	r.requireLive(t)
	sendSecond.SendCompleted()

	assert.Equal(t, []int{1, 2, 3}, r.values())
	r.requireKind(t, EventCompleted)
}

func TestFlatten_MergeWaitsForOuter(t *testing.T) {
	outer, sendOuter := Pipe[*SignalProducer[int]]()

	r := newRecorder[int]()
	Flatten(outer, FlattenMerge).Observe(r.observer())

	sendOuter.SendValue(ProducerOf(1))
	r.requireLive(t)
	sendOuter.SendCompleted()

	assert.Equal(t, []int{1}, r.values())
	r.requireKind(t, EventCompleted)
}

func TestFlatten_InnerFailureShortCircuits(t *testing.T) {
	outer, sendOuter := Pipe[*SignalProducer[int]]()
	var interrupted bool
	other := NeverProducer[int]().On(ProducerHooks[int]{
		SignalHooks: SignalHooks[int]{Interrupted: func() { interrupted = true }},
	})

	r := newRecorder[int]()
	Flatten(outer, FlattenMerge).Observe(r.observer())

	sendOuter.SendValue(other)
	sendOuter.SendValue(ProducerError[int](errors.New("boom")))

	r.requireKind(t, EventFailed)
	assert.True(t, interrupted, "remaining inner runs are interrupted")
}

func TestFlatten_Concat(t *testing.T) {
	outer, sendOuter := Pipe[*SignalProducer[int]]()
	first, sendFirst := Pipe[int]()

	r := newRecorder[int]()
	Flatten(outer, FlattenConcat).Observe(r.observer())

	sendOuter.SendValue(ProducerFromSignal(first))
	sendOuter.SendValue(ProducerOf(10, 20))
	sendOuter.SendCompleted()

	sendFirst.SendValue(1)
	assert.Equal(t, []int{1}, r.values(), "queued producer does not start early")

	sendFirst.SendCompleted()
	assert.Equal(t, []int{1, 10, 20}, r.values())
	r.requireKind(t, EventCompleted)
}

func TestConcatProducers(t *testing.T) {
	r := newRecorder[int]()
	ConcatProducers(ProducerOf(1, 2), EmptyProducer[int](), ProducerOf(3)).Start(r.observer())

	assert.Equal(t, []int{1, 2, 3}, r.values())
	r.requireKind(t, EventCompleted)
}

func TestConcatProducers_ManySynchronous(t *testing.T) {
	producers := make([]*SignalProducer[int], 500)
	for i := range producers {
		producers[i] = ProducerValue(i)
	}

	r := newRecorder[int]()
	ConcatProducers(producers...).Start(r.observer())

	assert.Len(t, r.values(), 500)
	assert.Equal(t, 499, r.values()[499])
}

func TestFlatMap(t *testing.T) {
	r := newRecorder[int]()
	FlatMapProducer(ProducerOf(1, 2), FlattenConcat, func(n int) *SignalProducer[int] {
		return ProducerOf(n, n*10)
	}).Start(r.observer())

	assert.Equal(t, []int{1, 10, 2, 20}, r.values())
}

func TestFlatMap_Signal(t *testing.T) {
	signal, input := Pipe[string]()
	r := newRecorder[string]()
	FlatMap(signal, FlattenMerge, func(s string) *SignalProducer[string] {
		return ProducerOf(s, s+s)
	}).Observe(r.observer())

	input.SendValue("a")
	input.SendCompleted()

	assert.Equal(t, []string{"a", "aa"}, r.values())
	r.requireKind(t, EventCompleted)
}

func TestFlattenSignals(t *testing.T) {
	outer, sendOuter := Pipe[*Signal[int]]()
	inner, sendInner := Pipe[int]()

	r := newRecorder[int]()
	FlattenSignals(outer, FlattenMerge).Observe(r.observer())

	sendOuter.SendValue(inner)
	sendInner.SendValue(5)
	sendOuter.SendCompleted()
	sendInner.SendCompleted()

	assert.Equal(t, []int{5}, r.values())
	r.requireKind(t, EventCompleted)
}

func TestFlattenStrategy_String(t *testing.T) {
	assert.Equal(t, "merge", FlattenMerge.String())
	assert.Equal(t, "concat", FlattenConcat.String())
	assert.Equal(t, "latest", FlattenLatest.String())
	assert.Equal(t, "unknown", FlattenStrategy(7).String())
}
