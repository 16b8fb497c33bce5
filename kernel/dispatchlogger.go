package kernel

import (
	"log"
	"reflect"
)

// DispatchLogger is a hook that prints every task dispatch and timer firing.
type DispatchLogger struct {
	LogHookBase
}

// NewDispatchLogger returns a DispatchLogger that writes into the logger.
func NewDispatchLogger(logger *log.Logger) *DispatchLogger {
	h := new(DispatchLogger)
	h.Logger = logger
	return h
}

// Func writes the dispatch information into the logger.
func (h *DispatchLogger) Func(ctx HookCtx) {
	s, ok := ctx.Domain.(*Scheduler)
	if !ok {
		return
	}

	switch ctx.Pos {
	case HookPosBeforeTaskRun:
		h.Printf("%d, run, %s", s.Clock().Ticks(), reflect.TypeOf(ctx.Item))
	case HookPosTimerFire:
		h.Printf("%d, timer %v fired", s.Clock().Ticks(), ctx.Item)
	case HookPosEventDispatch:
		h.Printf("%d, event, %s", s.Clock().Ticks(), reflect.TypeOf(ctx.Item))
	}
}
