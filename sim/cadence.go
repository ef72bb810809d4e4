package sim

import "time"

// Cadence turns a frame callback running at its own rate into steps at a
// fixed interval. An interval of 0 steps on every call.
type Cadence struct {
	interval    time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewCadence constructs a Cadence that is due immediately on the first call.
func NewCadence(interval time.Duration) *Cadence {
	if interval < 0 {
		interval = 0
	}
	return &Cadence{interval: interval, accumulator: interval, now: time.Now}
}

// ShouldStep reports whether the simulation should advance by one tick.
func (c *Cadence) ShouldStep() bool {
	if c.interval == 0 {
		return true
	}
	now := c.now()
	if c.last.IsZero() {
		c.last = now
	}
	c.accumulator += now.Sub(c.last)
	c.last = now
	if c.accumulator >= c.interval {
		c.accumulator -= c.interval
		// don't let a long stall turn into a burst of catch-up steps
		c.accumulator = min(c.accumulator, c.interval)
		return true
	}
	return false
}
