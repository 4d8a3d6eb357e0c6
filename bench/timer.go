// Package bench is the benchmark execution core: a wall-clock timer, the
// fixed catalogue of timed operations, a synthetic transaction builder for
// the signature verification workload, and a concurrent runner that gathers
// results in completion order.
package bench

import "time"

// Timer captures a wall-clock start timestamp. Each timed region, including
// each concurrent solve, owns its own Timer; it is never shared.
type Timer struct {
	start time.Time
}

// StartTimer records the current wall-clock time. Round(0) drops the
// monotonic reading so Stop reflects system clock semantics, adjustments
// included.
func StartTimer() Timer {
	return Timer{start: time.Now().Round(0)}
}

// Stop returns the elapsed seconds since start with microsecond precision,
// computed from the second and microsecond components of the two
// timestamps.
func (t Timer) Stop() float64 {
	end := time.Now().Round(0)
	return float64(end.Unix()-t.start.Unix()) +
		float64(end.Nanosecond()/1000-t.start.Nanosecond()/1000)/1e6
}
