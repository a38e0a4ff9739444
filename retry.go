package signalz

import (
	crand "crypto/rand"
	"math"
	"math/big"
	"time"
)

// Retry restarts p up to count times after it fails. Values of failed runs
// are forwarded. Once the retries are used up the last failure is
// forwarded.
func (p *SignalProducer[T]) Retry(count int) *SignalProducer[T] {
	if count <= 0 {
		return p
	}
	return p.FlatMapError(func(error) *SignalProducer[T] {
		return p.Retry(count - 1)
	})
}

// RetryWithBackoff restarts p after failures, waiting an exponentially
// growing delay on scheduler before each restart.
//
// Key features:
//   - Exponential backoff with configurable base and max delays
//   - Optional jitter to avoid synchronized retries
//   - ShouldRetry to stop early on permanent failures
//
// Example:
//
//	fetch := request.RetryWithBackoff(signalz.RetryConfig{
//		MaxAttempts: 5,
//		BaseDelay:   100 * time.Millisecond,
//		MaxDelay:    5 * time.Second,
//		Jitter:      true,
//		ShouldRetry: func(err error, _ int) bool { return !errors.Is(err, ErrNotFound) },
//	}, scheduler)
func (p *SignalProducer[T]) RetryWithBackoff(config RetryConfig, scheduler DateScheduler) *SignalProducer[T] {
	return p.retryAttempt(config, scheduler, 1)
}

func (p *SignalProducer[T]) retryAttempt(config RetryConfig, scheduler DateScheduler, attempt int) *SignalProducer[T] {
	return p.FlatMapError(func(err error) *SignalProducer[T] {
		if attempt >= config.MaxAttempts {
			return ProducerError[T](err)
		}
		if config.ShouldRetry != nil && !config.ShouldRetry(err, attempt) {
			return ProducerError[T](err)
		}
		Logger().Debug().Err(err).Int("attempt", attempt).Msg("signalz: retrying after failure")
		return ThenProducer(afterDelay(config.delay(attempt), scheduler), p.retryAttempt(config, scheduler, attempt+1))
	})
}

// delay computes the wait before retry number attempt.
func (c RetryConfig) delay(attempt int) time.Duration {
	// BaseDelay * 2^(attempt-1).
	delay := float64(c.BaseDelay) * math.Pow(2, float64(attempt-1))
	if c.MaxDelay > 0 && time.Duration(delay) > c.MaxDelay {
		delay = float64(c.MaxDelay)
	}

	if c.Jitter {
		n, err := crand.Int(crand.Reader, big.NewInt(500))
		if err != nil {
			n = big.NewInt(250)
		}
		delay *= 0.5 + float64(n.Int64())/1000.0
	}

	return time.Duration(delay)
}

// afterDelay completes once delay has passed on scheduler.
func afterDelay(delay time.Duration, scheduler DateScheduler) *SignalProducer[struct{}] {
	return NewSignalProducer(func(observer *Observer[struct{}], lifetime *CompositeDisposable) {
		lifetime.Add(scheduler.ScheduleAfter(scheduler.Now().Add(delay), observer.SendCompleted))
	})
}
