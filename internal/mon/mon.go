// Package mon records cheap operation statistics: invocation counts and a
// ring of recently observed durations.
package mon

import (
	"sync/atomic"
	"time"
)

const (
	ringShift = 8 // 256 elements
	ringElems = 1 << ringShift
	ringMask  = ringElems - 1
)

// Op tracks invocations of a single operation. The zero value is ready to
// use.
type Op struct {
	total int64
	durs  [ringElems]int64
}

// Timer is an in-flight measurement started by Op.Start.
type Timer struct {
	op    *Op
	begin time.Time
}

// Start begins timing one invocation. The usual shape is
//
//	defer op.Start().Stop()
//
// or an explicit Stop around the single call being measured.
func (o *Op) Start() Timer {
	return Timer{op: o, begin: time.Now()}
}

// Stop records the elapsed duration and bumps the invocation count.
func (t Timer) Stop() {
	n := atomic.AddInt64(&t.op.total, 1)
	atomic.StoreInt64(&t.op.durs[(n-1)&ringMask], int64(time.Since(t.begin)))
}

// Count returns how many invocations have completed.
func (o *Op) Count() int64 { return atomic.LoadInt64(&o.total) }

// Durations returns a copy of the most recently recorded durations, oldest
// entries dropping out once the ring wraps.
func (o *Op) Durations() []time.Duration {
	n := atomic.LoadInt64(&o.total)
	if n > ringElems {
		n = ringElems
	}
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = time.Duration(atomic.LoadInt64(&o.durs[i]))
	}
	return out
}
