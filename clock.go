package signalz

import "github.com/zoobzio/clockz"

// Clock provides time operations for schedulers backed by real timers.
// Tests substitute clockz.NewFakeClock() to drive them deterministically.
type Clock = clockz.Clock

// Timer represents a single event timer.
type Timer = clockz.Timer

// RealClock is the default Clock using standard time.
var RealClock Clock = clockz.RealClock
