package kernel

import (
	"github.com/rs/xid"
)

// A Scheduler owns the task table, the timer pool, and the clock that
// drives them. It distributes execution time across registered tasks with a
// cooperative round-robin policy: each ProcessTasks call runs exactly one
// task slice.
//
// All scheduler state except Clock.Increment must be driven from a single
// goroutine. This is a caller obligation, not an enforced invariant.
type Scheduler struct {
	HookableBase

	id    string
	clock *Clock

	tasks      []Runner
	taskCursor int

	timers       []timerSlot
	timerCursor  int
	invalidTimer timerSlot

	maxEventsPerCall int

	onError ErrorHandler
}

// SchedulerBuilder can build Schedulers.
type SchedulerBuilder struct {
	maxTasks         int
	maxTimers        int
	maxEventsPerCall int
	clock            *Clock
	onError          ErrorHandler
}

// MakeSchedulerBuilder creates a builder with the default capacities.
func MakeSchedulerBuilder() SchedulerBuilder {
	return SchedulerBuilder{
		maxTasks:         DefaultMaxTasks,
		maxTimers:        DefaultMaxTimers,
		maxEventsPerCall: DefaultMaxEventsPerCall,
	}
}

// WithMaxTasks sets the size of the task table. Event loops occupy slots in
// the same table.
func (b SchedulerBuilder) WithMaxTasks(n int) SchedulerBuilder {
	b.maxTasks = n
	return b
}

// WithMaxTimers sets the size of the timer pool.
func (b SchedulerBuilder) WithMaxTimers(n int) SchedulerBuilder {
	b.maxTimers = n
	return b
}

// WithMaxEventsPerCall sets the upper bound on events a single event loop
// may dispatch per scheduling turn.
func (b SchedulerBuilder) WithMaxEventsPerCall(n int) SchedulerBuilder {
	b.maxEventsPerCall = n
	return b
}

// WithClock makes the scheduler read time from c instead of a fresh clock.
func (b SchedulerBuilder) WithClock(c *Clock) SchedulerBuilder {
	b.clock = c
	return b
}

// WithErrorHandler replaces the handler invoked on contract violations.
func (b SchedulerBuilder) WithErrorHandler(h ErrorHandler) SchedulerBuilder {
	b.onError = h
	return b
}

// Build builds a Scheduler. All pools are allocated here; the scheduler
// performs no allocation afterwards.
func (b SchedulerBuilder) Build() *Scheduler {
	if b.maxTasks < 1 || b.maxTimers < 1 || b.maxEventsPerCall < 1 {
		panic("scheduler capacities must be positive")
	}

	s := &Scheduler{
		id:               xid.New().String(),
		clock:            b.clock,
		tasks:            make([]Runner, b.maxTasks),
		timers:           make([]timerSlot, b.maxTimers),
		maxEventsPerCall: b.maxEventsPerCall,
		onError:          b.onError,
	}

	if s.clock == nil {
		s.clock = NewClock()
	}

	if s.onError == nil {
		s.onError = DefaultErrorHandler
	}

	for i := range s.timers {
		s.timers[i].elapsed = MakeElapsedTimer(s.clock)
	}

	return s
}

// NewScheduler creates a Scheduler with the default configuration.
func NewScheduler() *Scheduler {
	return MakeSchedulerBuilder().Build()
}

// ID returns the unique identifier of this scheduler instance.
func (s *Scheduler) ID() string {
	return s.id
}

// Clock returns the clock that drives this scheduler.
func (s *Scheduler) Clock() *Clock {
	return s.clock
}

// MaxEventsPerCall returns the global cap on events dispatched per event
// loop turn.
func (s *Scheduler) MaxEventsPerCall() int {
	return s.maxEventsPerCall
}

// TaskMaxNum returns the capacity of the task table.
func (s *Scheduler) TaskMaxNum() int {
	return len(s.tasks)
}

// RegisterTask places r in the first free slot of the task table. It
// returns true on success, and also when r is already registered. It
// returns false if the table is full.
func (s *Scheduler) RegisterTask(r Runner) bool {
	free := -1
	for i, slot := range s.tasks {
		if slot == r {
			return true
		}

		if slot == nil && free < 0 {
			free = i
		}
	}

	if free < 0 {
		return false
	}

	s.tasks[free] = r

	return true
}

// UnregisterTask clears the slot holding r. It is a no-op if r is not
// registered. r will not be dispatched again, but a Run call already in
// progress completes normally.
func (s *Scheduler) UnregisterTask(r Runner) {
	for i, slot := range s.tasks {
		if slot == r {
			s.tasks[i] = nil
			return
		}
	}
}

// Tasks returns a snapshot of the currently registered runners, in table
// order.
func (s *Scheduler) Tasks() []Runner {
	tasks := make([]Runner, 0, len(s.tasks))
	for _, slot := range s.tasks {
		if slot != nil {
			tasks = append(tasks, slot)
		}
	}

	return tasks
}

// ProcessTasks runs the next registered task in the round-robin sequence.
// The scan cursor persists across calls, so repeated calls visit every
// registered task once per full revolution. If no task is registered, the
// call returns after one revolution with no side effects.
func (s *Scheduler) ProcessTasks() {
	initialIndex := s.taskCursor

	for {
		task := s.tasks[s.taskCursor]

		// advance the cursor
		s.taskCursor++
		if s.taskCursor >= len(s.tasks) {
			s.taskCursor = 0
		}

		if task != nil {
			ctx := HookCtx{
				Domain: s,
				Pos:    HookPosBeforeTaskRun,
				Item:   task,
			}
			s.InvokeHook(ctx)

			task.Run()

			ctx.Pos = HookPosAfterTaskRun
			s.InvokeHook(ctx)

			return
		}

		if s.taskCursor == initialIndex {
			return
		}
	}
}

// ProcessAll is the master driver. It should be called continuously in the
// application's main loop. It first processes due timers, then runs exactly
// one task slice, so timers get attention on every driver tick.
func (s *Scheduler) ProcessAll() {
	s.ProcessTimers()
	s.ProcessTasks()
}
