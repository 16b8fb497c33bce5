package tracing

// A BusyTracer accumulates the ticks each runner type spends in its Run
// body. Because the clock only advances when the embedding application
// drives it, a runner accrues busy ticks only if the clock moves during its
// run (for example, via a hardware-tick goroutine).
type BusyTracer struct {
	busyTicks map[string]uint64
}

// NewBusyTracer creates a BusyTracer.
func NewBusyTracer() *BusyTracer {
	return &BusyTracer{
		busyTicks: make(map[string]uint64),
	}
}

// Trace accumulates one task record.
func (t *BusyTracer) Trace(r Record) {
	if r.Kind != KindTask {
		return
	}

	t.busyTicks[r.Where] += uint64(r.EndTick - r.StartTick)
}

// BusyTicks returns the ticks accumulated for one runner type.
func (t *BusyTracer) BusyTicks(where string) uint64 {
	return t.busyTicks[where]
}

// TotalBusyTicks returns the ticks accumulated across all runner types.
func (t *BusyTracer) TotalBusyTicks() uint64 {
	var total uint64
	for _, ticks := range t.busyTicks {
		total += ticks
	}

	return total
}
