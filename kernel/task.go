package kernel

// A Runner is an executable unit in the system.
//
// Run must be non-blocking. Only one Run body executes per driver call, so
// any delay here stalls the entire system.
type Runner interface {
	Run()
}

// RunnerFunc adapts a plain function into a Runner. Each call returns a
// distinct Runner identity, so the result can be registered and
// unregistered like any other task.
func RunnerFunc(fn func()) Runner {
	return &runnerFunc{fn: fn}
}

type runnerFunc struct {
	fn func()
}

func (r *runnerFunc) Run() {
	r.fn()
}

// A Task ties a Runner's registry membership to the lifetime of an object:
// NewTask registers the runner and Close unregisters it. If the table is
// full, the scheduler's error handler is invoked and the runner is simply
// never dispatched.
type Task struct {
	scheduler *Scheduler
	runner    Runner
}

// NewTask registers runner with s and returns the owning wrapper.
func NewTask(s *Scheduler, runner Runner) *Task {
	t := &Task{scheduler: s, runner: runner}

	if !s.RegisterTask(runner) {
		s.reportError(
			"kernel: unable to register task; " +
				"increase the scheduler's task capacity")
	}

	return t
}

// Runner returns the wrapped runner.
func (t *Task) Runner() Runner {
	return t.runner
}

// Close unregisters the runner. It is safe to call more than once.
func (t *Task) Close() {
	t.scheduler.UnregisterTask(t.runner)
}

// A ManualTask is a Task variant that does not register on construction.
// It must be explicitly started and stopped. Useful for transient tasks or
// tasks that should not run immediately at startup.
type ManualTask struct {
	scheduler *Scheduler
	runner    Runner
}

// NewManualTask creates an inert wrapper for runner. Call Start to begin
// scheduling it.
func NewManualTask(s *Scheduler, runner Runner) *ManualTask {
	return &ManualTask{scheduler: s, runner: runner}
}

// Runner returns the wrapped runner.
func (t *ManualTask) Runner() Runner {
	return t.runner
}

// Start registers the runner with the scheduler. It returns true on
// success, including when the runner is already registered, and false if
// the task table is full.
func (t *ManualTask) Start() bool {
	return t.scheduler.RegisterTask(t.runner)
}

// Stop unregisters the runner. Safe to call when not registered.
func (t *ManualTask) Stop() {
	t.scheduler.UnregisterTask(t.runner)
}

// A Processor is any polling object exposing a Process method.
type Processor interface {
	Process()
}

// A GenericTask adapts a Processor into the scheduler without the
// processor implementing Runner itself.
type GenericTask struct {
	ManualTask

	handler Processor
}

// NewGenericTask creates the adapter task. If autoStart is true the task is
// started immediately; a full task table then escalates to the error
// handler.
func NewGenericTask(s *Scheduler, handler Processor, autoStart bool) *GenericTask {
	t := &GenericTask{handler: handler}
	t.scheduler = s
	t.runner = t

	if autoStart {
		if !t.Start() {
			s.reportError(
				"kernel: unable to start generic task; " +
					"increase the scheduler's task capacity")
		}
	}

	return t
}

// Run forwards the scheduling turn to the wrapped processor.
func (t *GenericTask) Run() {
	t.handler.Process()
}
