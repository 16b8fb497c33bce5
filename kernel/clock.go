// Package kernel implements a cooperative round-robin scheduler for
// embedded-style applications: a virtual tick clock, a fixed-pool timer
// service, a task registry, and a bounded event loop. All storage is
// allocated up front; nothing in this package blocks.
package kernel

import "sync/atomic"

// TimePoint is a position on a Clock's tick line.
type TimePoint uint32

// Duration is a distance between two TimePoints, in ticks.
type Duration uint32

// Sub returns the distance from start to t. The subtraction is modulo the
// counter width, so it stays correct across counter wraparound as long as
// the true elapsed distance is below half of the representable range
// (2^31 ticks). Longer distances alias back into range; callers that need
// to measure them must use a wider clock.
func (t TimePoint) Sub(start TimePoint) Duration {
	return Duration(t - start)
}

// Add returns the TimePoint d ticks after t.
func (t TimePoint) Add(d Duration) TimePoint {
	return t + TimePoint(d)
}

// DurationFrom pairs a start point with an interval, describing a span that
// can later be checked for expiry.
type DurationFrom struct {
	Start    TimePoint
	Interval Duration
}

// A Clock is a virtual, monotonically advancing tick counter. It is
// advanced explicitly by the embedding application, typically from a
// periodic interrupt or a test harness. Increment is safe to call from a
// goroutine other than the one driving the scheduler; all other scheduler
// state is single-goroutine by contract.
type Clock struct {
	ticks atomic.Uint32
}

// NewClock creates a Clock starting at tick zero.
func NewClock() *Clock {
	return &Clock{}
}

// Increment advances the clock by one tick. The counter wraps to zero on
// overflow.
func (c *Clock) Increment() {
	c.ticks.Add(1)
}

// Set moves the clock to an absolute tick count. Intended for tests and
// initialization.
func (c *Clock) Set(ticks uint32) {
	c.ticks.Store(ticks)
}

// Reset moves the clock back to tick zero.
func (c *Clock) Reset() {
	c.ticks.Store(0)
}

// Ticks returns the raw tick count.
func (c *Clock) Ticks() uint32 {
	return c.ticks.Load()
}

// Now returns the current tick as a TimePoint.
func (c *Clock) Now() TimePoint {
	return TimePoint(c.ticks.Load())
}

// DurationFromNow anchors interval at the current tick.
func (c *Clock) DurationFromNow(interval Duration) DurationFrom {
	return DurationFrom{Start: c.Now(), Interval: interval}
}

// HasPassed reports whether at least interval ticks have elapsed since
// start. The wraparound constraint of TimePoint.Sub applies.
func (c *Clock) HasPassed(start TimePoint, interval Duration) bool {
	return c.Now().Sub(start) >= interval
}

// HasPassedSince reports whether the span described by d has expired.
func (c *Clock) HasPassedSince(d DurationFrom) bool {
	return c.HasPassed(d.Start, d.Interval)
}
