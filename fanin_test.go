package signalz

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	a, sendA := Pipe[int]()
	b, sendB := Pipe[int]()

	r := newRecorder[int]()
	Merge(a, b).Observe(r.observer())

	sendA.SendValue(1)
	sendB.SendValue(2)
	sendA.SendCompleted()
	r.requireLive(t)
	sendB.SendValue(3)
	sendB.SendCompleted()

	assert.Equal(t, []int{1, 2, 3}, r.values())
	r.requireKind(t, EventCompleted)
}

func TestMerge_FailureShortCircuits(t *testing.T) {
	a, sendA := Pipe[int]()
	b, sendB := Pipe[int]()

	r := newRecorder[int]()
	Merge(a, b).Observe(r.observer())

	sendA.SendFailed(errors.New("boom"))
	sendB.SendValue(1)

	assert.Empty(t, r.values())
	r.requireKind(t, EventFailed)
}

func TestMerge_NoSignals(t *testing.T) {
	r := newRecorder[int]()
	Merge[int]().Observe(r.observer())
	r.requireKind(t, EventCompleted)
}

func TestMerge_ConcurrentSources(t *testing.T) {
	const sources, perSource = 4, 250

	signals := make([]*Signal[int], sources)
	inputs := make([]*Observer[int], sources)
	for i := range signals {
		signals[i], inputs[i] = Pipe[int]()
	}

	r := newRecorder[int]()
	Merge(signals...).Observe(r.observer())

	var wg sync.WaitGroup
	for _, input := range inputs {
		wg.Add(1)
		go func(input *Observer[int]) {
			defer wg.Done()
			for i := 0; i < perSource; i++ {
				input.SendValue(i)
			}
			input.SendCompleted()
		}(input)
	}
	wg.Wait()

	assert.Len(t, r.values(), sources*perSource)
	r.requireKind(t, EventCompleted)
	requireGrammar(t, r.all())
}

func TestMergeProducers(t *testing.T) {
	r := newRecorder[int]()
	MergeProducers(ProducerOf(1, 2), ProducerOf(3)).Start(r.observer())

	assert.Equal(t, []int{1, 2, 3}, r.values())
	r.requireKind(t, EventCompleted)
}
