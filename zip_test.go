package signalz

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZip_PairsByPosition(t *testing.T) {
	a, sendA := Pipe[int]()
	b, sendB := Pipe[int]()

	r := newRecorder[Pair[int, int]]()
	Zip(a, b).Observe(r.observer())

	sendA.SendValue(1)
	sendA.SendValue(2)
	sendA.SendValue(3)
	sendB.SendValue(10)
	sendB.SendValue(20)
	sendB.SendCompleted()

	assert.Equal(t, []Pair[int, int]{NewPair(1, 10), NewPair(2, 20)}, r.values())
	r.requireKind(t, EventCompleted)
}

func TestZip_CompletedSideWithPendingValues(t *testing.T) {
	a, sendA := Pipe[int]()
	b, sendB := Pipe[string]()

	r := newRecorder[Pair[int, string]]()
	Zip(a, b).Observe(r.observer())

	sendA.SendValue(1)
	sendA.SendValue(2)
	sendA.SendCompleted()
	r.requireLive(t)

	sendB.SendValue("a")
	r.requireLive(t)
	sendB.SendValue("b")

	assert.Equal(t, []Pair[int, string]{NewPair(1, "a"), NewPair(2, "b")}, r.values())
	r.requireKind(t, EventCompleted)
}

func TestZip_FailureShortCircuits(t *testing.T) {
	a, sendA := Pipe[int]()
	b, sendB := Pipe[int]()

	r := newRecorder[Pair[int, int]]()
	Zip(a, b).Observe(r.observer())

	sendA.SendValue(1)
	sendB.SendFailed(errors.New("boom"))

	assert.Empty(t, r.values())
	r.requireKind(t, EventFailed)
}

func TestZip_CompletionWaitsForPairInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	r := newRecorder[Pair[int, int]]()
	record := r.observer()
	z := &zipState[int, int]{
		as: []int{1},
		out: NewObserver(func(e Event[Pair[int, int]]) {
			if e.Kind == EventValue {
				close(entered)
				<-release
			}
			record.Send(e)
		}),
	}

	pushed := make(chan struct{})
	go func() {
		defer close(pushed)
		z.push(func() { z.bs = append(z.bs, 10) })
	}()
	<-entered

	completed := make(chan struct{})
	go func() {
		defer close(completed)
		z.complete(func() { z.completedA = true })
	}()
	assert.Never(t, func() bool {
		select {
		case <-completed:
			return true
		default:
			return false
		}
	}, 50*time.Millisecond, 5*time.Millisecond)

	close(release)
	<-pushed
	<-completed

	assert.Equal(t, []Pair[int, int]{NewPair(1, 10)}, r.values())
	r.requireKind(t, EventCompleted)
	requireGrammar(t, r.all())
}

func TestZip_ConcurrentSides(t *testing.T) {
	const n = 200
	a, inA := Pipe[int]()
	b, inB := Pipe[int]()
	r := newRecorder[Pair[int, int]]()
	Zip(a, b).Observe(r.observer())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			inA.SendValue(i)
		}
		inA.SendCompleted()
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			inB.SendValue(i * 10)
		}
	}()
	wg.Wait()

	values := r.values()
	require.Len(t, values, n)
	for i, pair := range values {
		assert.Equal(t, NewPair(i, i*10), pair)
	}
	r.requireKind(t, EventCompleted)
	requireGrammar(t, r.all())
}

func TestZipProducers(t *testing.T) {
	r := newRecorder[Pair[int, int]]()
	ZipProducers(ProducerOf(1, 2, 3), ProducerOf(10, 20)).Start(r.observer())

	assert.Equal(t, []Pair[int, int]{NewPair(1, 10), NewPair(2, 20)}, r.values())
	r.requireKind(t, EventCompleted)
}
