package signalz

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	logger.Store(&nop)
}

// SetLogger replaces the package logger. The default discards everything.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}

// Logger returns the package logger.
func Logger() *zerolog.Logger {
	return logger.Load()
}

// LogEvents logs every event passing through the signal at info level,
// tagged with the given identifier.
//
// Example:
//
//	signalz.SetLogger(zerolog.New(os.Stderr))
//	searches := queries.LogEvents("search").Debounce(300*time.Millisecond, scheduler)
func (s *Signal[T]) LogEvents(identifier string) *Signal[T] {
	return s.On(SignalHooks[T]{
		Event: func(event Event[T]) { logEvent(identifier, event) },
		Disposed: func() {
			Logger().Info().Str("signal", identifier).Str("event", "disposed").Msg("signal event")
		},
	})
}

// LogEvents logs the lifecycle and every event of each run at info level,
// tagged with the given identifier.
func (p *SignalProducer[T]) LogEvents(identifier string) *SignalProducer[T] {
	return p.On(ProducerHooks[T]{
		Starting: func() {
			Logger().Info().Str("producer", identifier).Str("event", "starting").Msg("producer event")
		},
		Started: func() {
			Logger().Info().Str("producer", identifier).Str("event", "started").Msg("producer event")
		},
		SignalHooks: SignalHooks[T]{
			Event: func(event Event[T]) { logEvent(identifier, event) },
			Disposed: func() {
				Logger().Info().Str("producer", identifier).Str("event", "disposed").Msg("producer event")
			},
		},
	})
}

func logEvent[T any](identifier string, event Event[T]) {
	entry := Logger().Info().Str("signal", identifier).Str("event", event.Kind.String())
	switch event.Kind {
	case EventValue:
		entry = entry.Interface("value", event.Value)
	case EventFailed:
		entry = entry.Err(event.Err)
	}
	entry.Msg("signal event")
}
