package gallery

import "time"

// Timer is a pending callback scheduled by a Clock.
type Timer interface {
	// Stop prevents the callback from running. Returns false if the
	// callback already ran or was already stopped.
	Stop() bool
}

// Clock schedules deferred callbacks.
type Clock interface {
	// AfterFunc calls f in its own goroutine after d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}
