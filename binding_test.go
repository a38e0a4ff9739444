package signalz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindSignal(t *testing.T) {
	lifetime, token := NewLifetime()
	var applied []string
	target := NewBindingTarget(lifetime, func(v string) { applied = append(applied, v) })

	source, input := Pipe[string]()
	BindSignal(target, source)

	input.SendValue("a")
	input.SendValue("b")
	token.Dispose()
	input.SendValue("c")

	assert.Equal(t, []string{"a", "b"}, applied)
}

func TestBind_StopsWhenSourceTerminates(t *testing.T) {
	lifetime, _ := NewLifetime()
	var applied []int
	target := NewBindingTarget(lifetime, func(v int) { applied = append(applied, v) })

	Bind(target, ProducerOf(1, 2, 3))

	assert.Equal(t, []int{1, 2, 3}, applied)
	assert.False(t, lifetime.HasEnded())
}

func TestBind_EndedLifetime(t *testing.T) {
	lifetime, token := NewLifetime()
	token.Dispose()

	applied := false
	target := NewBindingTarget(lifetime, func(int) { applied = true })

	disposable := Bind(target, ProducerValue(1))
	assert.False(t, applied)
	assert.True(t, disposable.IsDisposed())
}

func TestBind_Dispose(t *testing.T) {
	var applied []int
	target := NewBindingTarget(PermanentLifetime(), func(v int) { applied = append(applied, v) })

	source, input := Pipe[int]()
	disposable := BindSignal(target, source)
	input.SendValue(1)
	disposable.Dispose()
	input.SendValue(2)

	assert.Equal(t, []int{1}, applied)
}

func TestBindProperty(t *testing.T) {
	source := NewMutableProperty("initial")
	destination := NewMutableProperty("")

	BindProperty(destination.BindingTarget(), PropertyOf(source))
	assert.Equal(t, "initial", destination.Value())

	source.SetValue("changed")
	assert.Equal(t, "changed", destination.Value())
}

func TestNewBindingTargetOn(t *testing.T) {
	scheduler := NewTestScheduler()
	var applied []int
	target := NewBindingTargetOn(scheduler, PermanentLifetime(), func(v int) { applied = append(applied, v) })

	Bind(target, ProducerOf(1, 2))
	assert.Empty(t, applied)

	scheduler.Advance()
	assert.Equal(t, []int{1, 2}, applied)
}

type label struct {
	text string
}

func TestNewKeyedBindingTarget(t *testing.T) {
	l := &label{}
	lifetime, _ := NewLifetime()
	target := NewKeyedBindingTarget(l, lifetime, func(l *label, text string) { l.text = text })

	Bind(target, ProducerValue("hello"))
	assert.Equal(t, "hello", l.text)
	assert.Same(t, lifetime, target.Lifetime())
}
