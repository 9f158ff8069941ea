// Package ai drives entities frame by frame: target acquisition, chasing,
// attacking, hit recovery and queued AI power casts.
package ai

import "sync/atomic"

// Intention is what a controller is currently trying to do.
type Intention int32

const (
	IntentionIdle Intention = iota
	IntentionChase
	IntentionAttack
)

// String returns human-readable intention name
func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "IDLE"
	case IntentionChase:
		return "CHASE"
	case IntentionAttack:
		return "ATTACK"
	default:
		return "UNKNOWN"
	}
}

// Controller drives one entity.
type Controller interface {
	// Start enables the controller; a stopped controller ignores Tick.
	Start()
	Stop()

	Intention() Intention

	// Tick runs one game frame.
	Tick()
}

// traceEnabled gates per-frame debug logs.
var traceEnabled atomic.Bool

// EnableTrace turns per-frame AI debug logging on or off.
// Call once at startup, after the log level is known.
func EnableTrace(enabled bool) {
	traceEnabled.Store(enabled)
}

// TraceEnabled reports whether per-frame AI debug logging is on.
func TraceEnabled() bool {
	return traceEnabled.Load()
}
