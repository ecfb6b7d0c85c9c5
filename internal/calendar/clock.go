package calendar

import (
	"sync"
	"time"
)

// Clock supplies "today" as a calendar date. Nothing in the core caches it.
type Clock interface {
	Today() Date
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	loc *time.Location
	now func() time.Time
}

// NewSystemClock returns a clock for loc; nil means time.Local.
func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return &SystemClock{loc: loc, now: time.Now}
}

// Today returns the current date in the clock's location.
func (c *SystemClock) Today() Date {
	return FromTime(c.now().In(c.loc))
}

// FixedClock always reports the same date until Set is called.
//
// Thread-safety: safe for concurrent use.
type FixedClock struct {
	mu    sync.Mutex
	today Date
}

// NewFixedClock creates a clock pinned to today.
func NewFixedClock(today Date) *FixedClock {
	return &FixedClock{today: today}
}

// Today returns the pinned date.
func (c *FixedClock) Today() Date {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.today
}

// Set moves the pinned date.
func (c *FixedClock) Set(today Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = today
}
