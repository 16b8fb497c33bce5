// Package tracing collects records of scheduler activity (task dispatches,
// timer firings, event dispatches) through the kernel's hook system and
// forwards them to pluggable writers.
package tracing

// Record kinds.
const (
	KindTask  = "task"
	KindTimer = "timer"
	KindEvent = "event"
)

// A Record describes one unit of scheduler activity.
type Record struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	What      string `json:"what"`
	Where     string `json:"where"`
	StartTick uint32 `json:"start_tick"`
	EndTick   uint32 `json:"end_tick"`
}
