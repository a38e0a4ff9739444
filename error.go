package signalz

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrActionNotEnabled is sent, synchronously and without starting any
	// work, when an Action is applied while disabled or already executing.
	ErrActionNotEnabled = errors.New("signalz: action is not enabled")

	// ErrInterrupted is returned by the blocking helpers when the run they
	// are waiting on is interrupted.
	ErrInterrupted = errors.New("signalz: producer was interrupted")

	// ErrNoValue is returned by First, Last and Single when the producer
	// completes without sending a value.
	ErrNoValue = errors.New("signalz: producer completed without a value")

	// ErrTooManyValues is returned by Single when more than one value is sent.
	ErrTooManyValues = errors.New("signalz: producer sent more than one value")

	// ErrTimeout is the failure sent by Timeout when no error is supplied.
	ErrTimeout = errors.New("signalz: timed out")

	// ErrLoopRunning is returned by MainLoop.Run if the loop is already running.
	ErrLoopRunning = errors.New("signalz: main loop is already running")
)

// ActionError reports a failure of the work started by an Action.
// It captures the action name and the time of the failure alongside the
// underlying error.
//
//nolint:govet // fieldalignment: struct layout optimized for readability over memory
type ActionError struct {
	// Err is the failure sent by the action's work producer.
	Err error

	// Action is the name of the action that failed.
	Action string

	// Timestamp records when the failure was observed.
	Timestamp time.Time
}

// NewActionError creates a new ActionError with the current timestamp.
func NewActionError(err error, action string) *ActionError {
	return &ActionError{
		Err:       err,
		Action:    action,
		Timestamp: time.Now(),
	}
}

// String returns a human-readable representation of the error.
func (ae *ActionError) String() string {
	return fmt.Sprintf("ActionError[%s]: %v (time: %s)",
		ae.Action, ae.Err, ae.Timestamp.Format(time.RFC3339))
}

// Unwrap returns the underlying error, enabling error wrapping chains.
func (ae *ActionError) Unwrap() error {
	return ae.Err
}

// Error implements the error interface.
func (ae *ActionError) Error() string {
	return ae.String()
}
