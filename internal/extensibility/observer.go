// Package extensibility provides composable transientx.Observer building blocks:
// fan-out to several observers, filtering by event kind, and in-memory counting.
package extensibility

import (
	"slices"
	"sync/atomic"

	"github.com/comalice/transientx"
)

// Fanout forwards every event to each of its observers in order.
type Fanout []transientx.Observer

// NewFanout returns a Fanout over the non-nil observers given.
func NewFanout(observers ...transientx.Observer) Fanout {
	return slices.DeleteFunc(observers, func(o transientx.Observer) bool { return o == nil })
}

// Observe delivers e to every observer.
func (f Fanout) Observe(e transientx.Event) {
	for _, o := range f {
		o.Observe(e)
	}
}

// FilterObserver forwards only events of the selected kinds.
type FilterObserver struct {
	inner transientx.Observer
	kinds uint32
}

// NewFilterObserver wraps inner so that it only sees events of the given kinds.
func NewFilterObserver(inner transientx.Observer, kinds ...transientx.EventKind) *FilterObserver {
	f := &FilterObserver{inner: inner}
	for _, k := range kinds {
		f.kinds |= 1 << uint(k)
	}
	return f
}

// Observe forwards e if its kind was selected.
func (f *FilterObserver) Observe(e transientx.Event) {
	if f.kinds&(1<<uint(e.Kind)) != 0 {
		f.inner.Observe(e)
	}
}

// CountingObserver tallies events by kind. Safe for concurrent use.
type CountingObserver struct {
	counts [transientx.EventViolation + 1]atomic.Uint64
}

// NewCountingObserver returns a CountingObserver with all counts at zero.
func NewCountingObserver() *CountingObserver {
	return &CountingObserver{}
}

// Observe increments the counter for e.Kind. Unknown kinds are ignored.
func (c *CountingObserver) Observe(e transientx.Event) {
	if e.Kind >= 0 && int(e.Kind) < len(c.counts) {
		c.counts[e.Kind].Add(1)
	}
}

// Count returns the number of events of kind k seen so far.
func (c *CountingObserver) Count(k transientx.EventKind) uint64 {
	if k < 0 || int(k) >= len(c.counts) {
		return 0
	}
	return c.counts[k].Load()
}

// Snapshot returns the non-zero counts keyed by kind name.
func (c *CountingObserver) Snapshot() map[string]uint64 {
	snap := map[string]uint64{}
	for k := range c.counts {
		if n := c.counts[k].Load(); n > 0 {
			snap[transientx.EventKind(k).String()] = n
		}
	}
	return snap
}
