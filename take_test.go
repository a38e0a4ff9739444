package signalz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTake(t *testing.T) {
	r := newRecorder[int]()
	ProducerOf(1, 2, 3, 4).Take(2).Start(r.observer())

	assert.Equal(t, []int{1, 2}, r.values())
	r.requireKind(t, EventCompleted)
	requireGrammar(t, r.all())
}

func TestTake_StopsUpstream(t *testing.T) {
	var sent []int
	producer := NewSignalProducer(func(observer *Observer[int], lifetime *CompositeDisposable) {
		for i := 1; i <= 100 && !lifetime.IsDisposed(); i++ {
			sent = append(sent, i)
			observer.SendValue(i)
		}
	})

	r := newRecorder[int]()
	producer.Take(3).Start(r.observer())

	assert.Equal(t, []int{1, 2, 3}, r.values())
	assert.Equal(t, []int{1, 2, 3}, sent)
}

func TestTake_Zero(t *testing.T) {
	r := newRecorder[int]()
	ProducerOf(1, 2).Take(0).Start(r.observer())

	assert.Empty(t, r.values())
	r.requireKind(t, EventCompleted)
}

func TestTakeWhile(t *testing.T) {
	r := newRecorder[int]()
	ProducerOf(1, 2, 5, 3).TakeWhile(func(n int) bool { return n < 4 }).Start(r.observer())

	assert.Equal(t, []int{1, 2}, r.values())
	r.requireKind(t, EventCompleted)
}

func TestTakeLast(t *testing.T) {
	r := newRecorder[int]()
	ProducerOf(1, 2, 3, 4, 5).TakeLast(2).Start(r.observer())

	assert.Equal(t, []int{4, 5}, r.values())
	r.requireKind(t, EventCompleted)
}

func TestTakeLast_FailureDiscardsValues(t *testing.T) {
	producer := ConcatProducers(ProducerOf(1, 2), ProducerError[int](errors.New("boom")))

	r := newRecorder[int]()
	producer.TakeLast(2).Start(r.observer())

	assert.Empty(t, r.values())
	r.requireKind(t, EventFailed)
}

func TestTakeUntil(t *testing.T) {
	signal, input := Pipe[int]()
	trigger, fire := Pipe[struct{}]()

	r := newRecorder[int]()
	TakeUntil(signal, trigger).Observe(r.observer())

	input.SendValue(1)
	fire.SendValue(struct{}{})
	input.SendValue(2)

	assert.Equal(t, []int{1}, r.values())
	r.requireKind(t, EventCompleted)
}

func TestTakeUntil_TriggerCompletion(t *testing.T) {
	signal, input := Pipe[int]()
	trigger, fire := Pipe[struct{}]()

	r := newRecorder[int]()
	TakeUntil(signal, trigger).Observe(r.observer())

	fire.SendCompleted()
	input.SendValue(1)

	assert.Empty(t, r.values())
	r.requireKind(t, EventCompleted)
}

func TestTakeUntilProducer_TriggerAlreadyFired(t *testing.T) {
	lifetime, token := NewLifetime()
	token.Dispose()

	started := false
	producer := NewSignalProducer(func(observer *Observer[int], _ *CompositeDisposable) {
		started = true
		observer.SendValue(1)
	})

	r := newRecorder[int]()
	TakeUntilProducer(producer, lifetime.Ended()).Start(r.observer())

	assert.False(t, started)
	assert.Empty(t, r.values())
	r.requireKind(t, EventCompleted)
}

func TestTakeUntilReplacement(t *testing.T) {
	signal, input := Pipe[int]()
	replacement, replace := Pipe[int]()

	r := newRecorder[int]()
	signal.TakeUntilReplacement(replacement).Observe(r.observer())

	input.SendValue(1)
	input.SendValue(2)
	replace.SendValue(10)
	input.SendValue(3)
	replace.SendValue(11)
	replace.SendCompleted()

	assert.Equal(t, []int{1, 2, 10, 11}, r.values())
	r.requireKind(t, EventCompleted)
}

func TestTakeUntilReplacement_SourceCompletionIgnored(t *testing.T) {
	signal, input := Pipe[int]()
	replacement, replace := Pipe[int]()

	r := newRecorder[int]()
	signal.TakeUntilReplacement(replacement).Observe(r.observer())

	input.SendValue(1)
	input.SendCompleted()
	r.requireLive(t)

	replace.SendValue(5)
	replace.SendCompleted()

	assert.Equal(t, []int{1, 5}, r.values())
	r.requireKind(t, EventCompleted)
}

func TestTakeUntilReplacement_SourceFailure(t *testing.T) {
	signal, input := Pipe[int]()
	replacement, replace := Pipe[int]()

	r := newRecorder[int]()
	signal.TakeUntilReplacement(replacement).Observe(r.observer())

	input.SendFailed(errors.New("boom"))
	replace.SendValue(5)

	assert.Empty(t, r.values())
	terminal := r.requireKind(t, EventFailed)
	assert.EqualError(t, terminal.Err, "boom")
}

func TestTakeUntilReplacement_ReplacementTerminalEndsResult(t *testing.T) {
	signal, input := Pipe[int]()
	replacement, replace := Pipe[int]()

	r := newRecorder[int]()
	signal.TakeUntilReplacement(replacement).Observe(r.observer())

	input.SendValue(1)
	replace.SendFailed(errors.New("replaced"))
	input.SendValue(2)

	assert.Equal(t, []int{1}, r.values())
	terminal := r.requireKind(t, EventFailed)
	assert.EqualError(t, terminal.Err, "replaced")
}

func TestTakeUntilReplacementProducer(t *testing.T) {
	r := newRecorder[int]()
	ProducerOf(1, 2).TakeUntilReplacement(ProducerOf(9)).Start(r.observer())

	assert.Equal(t, []int{1, 2, 9}, r.values())
	r.requireKind(t, EventCompleted)
}
