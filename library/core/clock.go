package core

import (
	"sync"
	"time"
)

// Clock hands out the timestamps commands are built with.
type Clock interface {
	Now() time.Time
}

// MonotonicClock returns OccurredAt timestamps that are strictly increasing for the lifetime of the clock.
// Two reservations placed back-to-back through the same clock never share a timestamp,
// so the queue order never depends on the tie-break by id.
type MonotonicClock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

// NewMonotonicClock creates a MonotonicClock based on the wall clock.
func NewMonotonicClock() *MonotonicClock {
	return NewMonotonicClockFrom(time.Now)
}

// NewMonotonicClockFrom creates a MonotonicClock based on an arbitrary time source.
func NewMonotonicClockFrom(now func() time.Time) *MonotonicClock {
	return &MonotonicClock{now: now}
}

// Now returns the current time of the time source, or one microsecond after the
// previously returned time if the source did not advance far enough.
func (c *MonotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := ToOccurredAt(c.now())
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}

	c.last = t

	return t
}
