package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/Veraticus/biblio/internal/workflow"
)

// FakeClock is a manually advanced workflow.Clock. Callbacks run
// synchronously inside Advance, in deadline order.
type FakeClock struct {
	timers []*FakeTimer
	now    time.Duration
	mu     sync.Mutex
}

// FakeTimer is a callback scheduled on a FakeClock.
type FakeTimer struct {
	clock   *FakeClock
	fn      func()
	at      time.Duration
	stopped bool
	fired   bool
}

// NewFakeClock returns a clock at time zero.
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// AfterFunc schedules f to run once d has elapsed.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) workflow.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &FakeTimer{clock: c, fn: f, at: c.now + d}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward and runs every callback that became due.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*FakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}

// Pending counts timers that have neither fired nor been stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Stop cancels the timer. It reports whether the call prevented the callback.
func (t *FakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
