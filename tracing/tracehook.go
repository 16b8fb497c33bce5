package tracing

import (
	"fmt"
	"reflect"

	"github.com/rs/xid"

	"github.com/embedlab/coop/kernel"
)

// CollectTraces attaches a tracer to the scheduler. Every task dispatch,
// timer firing, and event dispatch from then on produces one Record.
func CollectTraces(s *kernel.Scheduler, tracer Tracer) {
	s.AcceptHook(&traceHook{
		scheduler: s,
		tracer:    tracer,
	})
}

type traceHook struct {
	scheduler *kernel.Scheduler
	tracer    Tracer

	taskID    string
	startTick uint32
}

func (h *traceHook) Func(ctx kernel.HookCtx) {
	now := h.scheduler.Clock().Ticks()

	switch ctx.Pos {
	case kernel.HookPosBeforeTaskRun:
		h.taskID = xid.New().String()
		h.startTick = now
	case kernel.HookPosAfterTaskRun:
		h.tracer.Trace(Record{
			ID:        h.taskID,
			Kind:      KindTask,
			What:      "run",
			Where:     reflect.TypeOf(ctx.Item).String(),
			StartTick: h.startTick,
			EndTick:   now,
		})
	case kernel.HookPosTimerFire:
		h.tracer.Trace(Record{
			ID:        xid.New().String(),
			Kind:      KindTimer,
			What:      fmt.Sprintf("fire %v", ctx.Item),
			Where:     "timer",
			StartTick: now,
			EndTick:   now,
		})
	case kernel.HookPosEventDispatch:
		h.tracer.Trace(Record{
			ID:        xid.New().String(),
			Kind:      KindEvent,
			What:      "dispatch",
			Where:     reflect.TypeOf(ctx.Item).String(),
			StartTick: now,
			EndTick:   now,
		})
	}
}
