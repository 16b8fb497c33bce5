package kernel

// An ElapsedTimer measures how many ticks have passed since it was started.
// The zero value is inert; use MakeElapsedTimer to bind it to a clock.
type ElapsedTimer struct {
	clock  *Clock
	start  TimePoint
	active bool
}

// MakeElapsedTimer creates an ElapsedTimer reading from c.
func MakeElapsedTimer(c *Clock) ElapsedTimer {
	return ElapsedTimer{clock: c}
}

// Active returns true between Start and Stop.
func (t *ElapsedTimer) Active() bool {
	return t.active
}

// Start marks the timer active and records the current tick as its start
// point.
func (t *ElapsedTimer) Start() {
	t.active = true
	t.start = t.clock.Now()
}

// Stop marks the timer inactive and clears its start point.
func (t *ElapsedTimer) Stop() {
	t.active = false
	t.start = 0
}

// Reset moves the start point to the current tick without changing the
// active flag.
func (t *ElapsedTimer) Reset() {
	t.start = t.clock.Now()
}

// Elapsed returns the number of ticks since the start point.
func (t *ElapsedTimer) Elapsed() Duration {
	return t.clock.Now().Sub(t.start)
}

// ElapsedAtLeast reports whether at least d ticks have passed since the
// start point.
func (t *ElapsedTimer) ElapsedAtLeast(d Duration) bool {
	return t.Elapsed() >= d
}
