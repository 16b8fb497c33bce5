package kernel

// A DeadlineTimer tracks a single absolute point in the future. Unlike
// ElapsedTimer it answers "is the deadline behind us" rather than "how long
// since we started".
type DeadlineTimer struct {
	clock    *Clock
	deadline TimePoint
}

// MakeDeadlineTimer creates a DeadlineTimer expiring d ticks from now.
func MakeDeadlineTimer(c *Clock, d Duration) DeadlineTimer {
	return DeadlineTimer{
		clock:    c,
		deadline: c.Now().Add(d),
	}
}

// SetDeadline moves the deadline to d ticks from now.
func (t *DeadlineTimer) SetDeadline(d Duration) {
	t.deadline = t.clock.Now().Add(d)
}

// Expired reports whether the deadline has been reached. The comparison is
// wraparound-safe under the same half-range constraint as TimePoint.Sub.
func (t *DeadlineTimer) Expired() bool {
	return int32(t.clock.Now()-t.deadline) >= 0
}

// Remaining returns the number of ticks until the deadline, or zero if it
// has already expired.
func (t *DeadlineTimer) Remaining() Duration {
	if t.Expired() {
		return 0
	}

	return t.deadline.Sub(t.clock.Now())
}
