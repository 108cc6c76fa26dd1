package mock

import (
	"sort"
	"sync"
	"time"

	"github.com/fwojciec/gallery"
)

var _ gallery.Clock = (*Clock)(nil)

// Clock is a manually advanced gallery.Clock. Callbacks run synchronously
// on the goroutine that calls Advance, in the order they fall due.
type Clock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*Timer
}

// NewClock returns a clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// AfterFunc schedules f to run once the clock has advanced by d.
func (c *Clock) AfterFunc(d time.Duration, f func()) gallery.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &Timer{clock: c, when: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d and runs every callback that falls due.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due, rest []*Timer
	for _, t := range c.timers {
		if t.when <= c.now {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	c.timers = rest
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].when != due[j].when {
			return due[i].when < due[j].when
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.f()
	}
}

// Pending returns the number of scheduled callbacks that have not run or
// been stopped.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Timer is a callback scheduled on a mock Clock.
type Timer struct {
	clock *Clock
	when  time.Duration
	seq   int
	f     func()
}

// Stop removes the timer from its clock.
func (t *Timer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}
