package kernel

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// HookPosBeforeTaskRun triggers before a task's Run body executes.
var HookPosBeforeTaskRun = &HookPos{Name: "BeforeTaskRun"}

// HookPosAfterTaskRun triggers after a task's Run body returns.
var HookPosAfterTaskRun = &HookPos{Name: "AfterTaskRun"}

// HookPosTimerFire triggers when a timer callback is about to be invoked.
var HookPosTimerFire = &HookPos{Name: "TimerFire"}

// HookPosEventDispatch triggers when an event loop dispatches one event.
var HookPosEventDispatch = &HookPos{Name: "EventDispatch"}

// HookCtx is the context that holds all the information about the site that
// a hook is triggered.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable defines an object that accepts Hooks.
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// Hook is a short piece of program that can be invoked by a hookable
// object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other types that
// implement the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// InvokeHook triggers the registered Hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
