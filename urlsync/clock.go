package urlsync

import (
	"time"

	"github.com/fwojciec/gallery"
)

var _ gallery.Clock = SystemClock{}

// SystemClock schedules callbacks with time.AfterFunc.
type SystemClock struct{}

// AfterFunc implements gallery.Clock.
func (SystemClock) AfterFunc(d time.Duration, f func()) gallery.Timer {
	return time.AfterFunc(d, f)
}
