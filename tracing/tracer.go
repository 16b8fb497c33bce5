package tracing

// A Tracer consumes records of scheduler activity.
type Tracer interface {
	Trace(r Record)
}
