package kernel

import (
	"github.com/embedlab/coop/queueing"
)

// An EventLoop is a schedulable consumer of a bounded event queue. Producers
// push typed events from application logic; on its scheduling turn, the
// loop dequeues and dispatches up to its per-call limit.
//
// An EventLoop registers in the scheduler's task table on construction and
// competes for turns like any other task.
type EventLoop[E any] struct {
	scheduler *Scheduler

	events           *queueing.Ring[E]
	handler          func(E)
	maxEventsPerCall int
}

// NewEventLoop creates an EventLoop with a queue of the given capacity and
// registers it with s. The handler starts as a no-op; the per-call limit
// starts at one event. A full task table escalates to the error handler.
func NewEventLoop[E any](s *Scheduler, capacity int) *EventLoop[E] {
	l := &EventLoop[E]{
		scheduler:        s,
		events:           queueing.NewRing[E](capacity),
		handler:          func(E) {},
		maxEventsPerCall: 1,
	}

	if !s.RegisterTask(l) {
		s.reportError(
			"kernel: unable to register event loop; " +
				"increase the scheduler's task capacity")
	}

	return l
}

// SetHandler replaces the dispatch callback. A nil handler is replaced by a
// no-op so that Run never dereferences an empty target.
func (l *EventLoop[E]) SetHandler(handler func(E)) {
	if handler == nil {
		handler = func(E) {}
	}

	l.handler = handler
}

// SetMaxEventsPerCall sets how many events one scheduling turn may
// dispatch. The value is clamped into [1, the scheduler's global cap].
func (l *EventLoop[E]) SetMaxEventsPerCall(n int) {
	if n < 1 {
		n = 1
	}

	if limit := l.scheduler.MaxEventsPerCall(); n > limit {
		n = limit
	}

	l.maxEventsPerCall = n
}

// MaxEventsPerCall returns the current per-call dispatch limit.
func (l *EventLoop[E]) MaxEventsPerCall() int {
	return l.maxEventsPerCall
}

// Push enqueues an event. It returns false if the queue is full, leaving
// the queue unchanged.
func (l *EventLoop[E]) Push(e E) bool {
	return l.events.Push(e)
}

// PushOver enqueues an event, evicting the oldest pending event if the
// queue is full.
func (l *EventLoop[E]) PushOver(e E) {
	l.events.PushOver(e)
}

// Size returns the number of pending events.
func (l *EventLoop[E]) Size() int {
	return l.events.Size()
}

// Capacity returns the queue capacity.
func (l *EventLoop[E]) Capacity() int {
	return l.events.Capacity()
}

// Clear drops all pending events.
func (l *EventLoop[E]) Clear() {
	l.events.Clear()
}

// Run dispatches up to the per-call limit of pending events, stopping early
// when the queue empties. Each event is dequeued before its handler is
// invoked, so the handler may push new events without corrupting the
// iteration.
func (l *EventLoop[E]) Run() {
	for count := l.maxEventsPerCall; count > 0; count-- {
		e, ok := l.events.Pop()
		if !ok {
			return
		}

		l.scheduler.InvokeHook(HookCtx{
			Domain: l.scheduler,
			Pos:    HookPosEventDispatch,
			Item:   e,
		})

		l.handler(e)
	}
}

// Close unregisters the loop from the scheduler. Pending events stay in the
// queue but are no longer dispatched.
func (l *EventLoop[E]) Close() {
	l.scheduler.UnregisterTask(l)
}
