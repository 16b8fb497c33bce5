package kernel

// TimerID identifies a slot in a scheduler's timer pool.
type TimerID uint32

// EmptyTimerID marks a Timer handle that does not own a slot.
const EmptyTimerID = TimerID(^uint32(0))

type timerSlot struct {
	registered bool
	active     bool
	singleShot bool
	interval   Duration
	elapsed    ElapsedTimer
	callback   func()
}

// A Timer is a handle owning one slot of a scheduler's timer pool. The
// handle is the capability to start, stop, and rebind the timer; dropping
// it without calling Unregister leaks the slot until UnregisterTimers.
//
// Exactly one live handle owns a slot. Use Detach to transfer ownership.
type Timer struct {
	scheduler *Scheduler
	id        TimerID
}

// timerAt returns the slot for id. Out-of-range ids, including
// EmptyTimerID, yield a scratch slot that reads as unregistered, so
// operations through an invalid handle are safe no-ops.
func (s *Scheduler) timerAt(id TimerID) *timerSlot {
	if uint32(id) >= uint32(len(s.timers)) {
		s.invalidTimer = timerSlot{elapsed: MakeElapsedTimer(s.clock)}
		return &s.invalidTimer
	}

	return &s.timers[id]
}

func (s *Scheduler) registerTimerSlot(
	interval Duration,
	callback func(),
	singleShot bool,
) TimerID {
	for i := range s.timers {
		slot := &s.timers[i]
		if slot.registered {
			continue
		}

		slot.callback = callback
		slot.interval = interval
		slot.singleShot = singleShot
		slot.registered = true

		return TimerID(i)
	}

	s.reportError(
		"kernel: timer pool exhausted; " +
			"increase the scheduler's timer capacity")

	return EmptyTimerID
}

// RegisterTimer allocates a timer slot with the given interval and
// callback. The timer is not running yet; call Start on the returned
// handle. On pool exhaustion the error handler is invoked and the returned
// handle is invalid.
func (s *Scheduler) RegisterTimer(interval Duration, callback func()) *Timer {
	id := s.registerTimerSlot(interval, callback, false)

	return &Timer{scheduler: s, id: id}
}

// SingleShot allocates a timer that fires once after interval ticks and
// then frees its slot. It returns false if the pool is exhausted.
func (s *Scheduler) SingleShot(interval Duration, callback func()) bool {
	id := s.registerTimerSlot(interval, callback, true)
	if id == EmptyTimerID {
		return false
	}

	slot := s.timerAt(id)
	slot.active = true
	slot.elapsed.Start()

	return true
}

// ProcessTimers fires at most one due timer. The scan starts from a cursor
// that persists across calls, wraps around the pool, and stops after one
// full revolution if nothing is due. Firing a timer invokes its callback
// exactly once and restarts its elapsed tracker; a single-shot timer frees
// its slot instead.
func (s *Scheduler) ProcessTimers() {
	initialIndex := s.timerCursor

	for {
		slot := &s.timers[s.timerCursor]
		id := TimerID(s.timerCursor)

		// advance the cursor
		s.timerCursor++
		if s.timerCursor >= len(s.timers) {
			s.timerCursor = 0
		}

		if slot.registered &&
			slot.active &&
			slot.callback != nil &&
			slot.elapsed.ElapsedAtLeast(slot.interval) {
			s.InvokeHook(HookCtx{
				Domain: s,
				Pos:    HookPosTimerFire,
				Item:   id,
			})

			slot.callback()
			slot.elapsed.Reset()

			if slot.singleShot {
				slot.registered = false
				slot.active = false
			}

			return
		}

		if s.timerCursor == initialIndex {
			return
		}
	}
}

// UnregisterTimers resets every slot in the timer pool. Handles that were
// pointing at freed slots become inert.
func (s *Scheduler) UnregisterTimers() {
	for i := range s.timers {
		s.freeTimerSlot(TimerID(i))
	}
}

// unregisterTimer frees one slot. Out-of-range ids are ignored.
func (s *Scheduler) unregisterTimer(id TimerID) {
	if uint32(id) >= uint32(len(s.timers)) {
		return
	}

	s.freeTimerSlot(id)
}

func (s *Scheduler) freeTimerSlot(id TimerID) {
	s.timers[id] = timerSlot{elapsed: MakeElapsedTimer(s.clock)}
}

// TimerInfo describes one registered slot of the timer pool.
type TimerInfo struct {
	ID         TimerID  `json:"id"`
	Interval   Duration `json:"interval"`
	Active     bool     `json:"active"`
	SingleShot bool     `json:"single_shot"`
}

// TimerInfos returns a snapshot of all registered timer slots.
func (s *Scheduler) TimerInfos() []TimerInfo {
	infos := make([]TimerInfo, 0, len(s.timers))
	for i := range s.timers {
		slot := &s.timers[i]
		if !slot.registered {
			continue
		}

		infos = append(infos, TimerInfo{
			ID:         TimerID(i),
			Interval:   slot.interval,
			Active:     slot.active,
			SingleShot: slot.singleShot,
		})
	}

	return infos
}

// ID returns the slot id the handle owns, or EmptyTimerID.
func (t *Timer) ID() TimerID {
	return t.id
}

// Valid reports whether the handle owns a registered slot.
func (t *Timer) Valid() bool {
	if t.id == EmptyTimerID {
		return false
	}

	return t.scheduler.timerAt(t.id).registered
}

// SetInterval replaces the timer's interval. The new interval is measured
// from the elapsed tracker's current start point.
func (t *Timer) SetInterval(interval Duration) {
	t.scheduler.timerAt(t.id).interval = interval
}

// Interval returns the timer's interval.
func (t *Timer) Interval() Duration {
	return t.scheduler.timerAt(t.id).interval
}

// SetCallback replaces the timer's callback in place. A timer whose
// callback is swapped before it next fires invokes the new callback.
func (t *Timer) SetCallback(callback func()) {
	if t.Valid() {
		t.scheduler.timerAt(t.id).callback = callback
	}
}

// Start marks the timer active and starts its elapsed tracker.
func (t *Timer) Start() {
	slot := t.scheduler.timerAt(t.id)
	slot.active = true
	slot.elapsed.Start()
}

// Stop marks the timer inactive. The elapsed tracker is retained; Start
// restarts it from the current tick.
func (t *Timer) Stop() {
	t.scheduler.timerAt(t.id).active = false
}

// Running reports whether the timer is registered and active.
func (t *Timer) Running() bool {
	if t.Valid() {
		return t.scheduler.timerAt(t.id).active
	}

	return false
}

// Unregister frees the timer's slot and invalidates the handle. Safe to
// call on an already-invalid handle.
func (t *Timer) Unregister() {
	if t.id != EmptyTimerID {
		t.scheduler.unregisterTimer(t.id)
	}

	t.id = EmptyTimerID
}

// Detach transfers slot ownership to a new handle and leaves the receiver
// invalid. The timer itself keeps running undisturbed.
func (t *Timer) Detach() *Timer {
	detached := &Timer{scheduler: t.scheduler, id: t.id}
	t.id = EmptyTimerID

	return detached
}
