package kernel

// Default pool capacities. A scheduler built with MakeSchedulerBuilder uses
// these unless overridden through the builder.
const (
	// DefaultMaxTasks is the default size of the task table. Event loops
	// register in the same table.
	DefaultMaxTasks = 8

	// DefaultMaxTimers is the default size of the timer pool.
	DefaultMaxTimers = 10

	// DefaultMaxEventsPerCall caps how many events a single event loop may
	// dispatch in one scheduling turn.
	DefaultMaxEventsPerCall = 8
)
