package kernel

import (
	"log"
	"runtime"
)

// An ErrorHandler receives contract violations such as pool exhaustion.
// file and line identify the site inside the kernel where the violation was
// detected. The default handler aborts; embedders running on real hardware
// are expected to substitute a handler that transitions to a safe state.
type ErrorHandler func(file string, line int, msg string)

// DefaultErrorHandler logs the violation and panics.
func DefaultErrorHandler(file string, line int, msg string) {
	log.Panicf("%s:%d: %s", file, line, msg)
}

// reportError forwards a contract violation to the scheduler's error
// handler, tagging it with the caller's position.
func (s *Scheduler) reportError(msg string) {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "unknown", 0
	}

	s.onError(file, line, msg)
}
