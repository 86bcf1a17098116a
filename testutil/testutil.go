// Package testutil provides testify-based helpers for tests of persistent
// structures built on transientx.
package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comalice/transientx"
)

// Origin names a way a structure can be born, so one suite can run against
// structures created frozen and created inside an open batch.
type Origin struct {
	Name       string
	Preference transientx.Preference
}

// Origins returns the frozen and mutable origins.
func Origins() []Origin {
	return []Origin{
		{Name: "Frozen", Preference: transientx.Immutable},
		{Name: "Mutable", Preference: transientx.Mutable},
	}
}

// AssertSealed asserts that every owner is immutable.
func AssertSealed(t testing.TB, owners ...transientx.Owner) bool {
	t.Helper()
	ok := true
	for i, o := range owners {
		ok = assert.Truef(t, transientx.IsImmutable(o), "owner %d (%T) is still mutable: %s", i, o, o.MutationContext()) && ok
	}
	return ok
}

// AssertOpen asserts that every owner is mutable.
func AssertOpen(t testing.TB, owners ...transientx.Owner) bool {
	t.Helper()
	ok := true
	for i, o := range owners {
		ok = assert.Truef(t, transientx.IsMutable(o), "owner %d (%T) is sealed", i, o) && ok
	}
	return ok
}

// AssertSameBatch asserts that every other owner is related to first.
func AssertSameBatch(t testing.TB, first transientx.Owner, others ...transientx.Owner) bool {
	t.Helper()
	ok := true
	for i, o := range others {
		ok = assert.Truef(t, transientx.Related(first, o), "owner %d (%T) is not in the batch of %T", i, o, first) && ok
	}
	return ok
}

// AssertNotSameBatch asserts that a and b belong to different batches.
func AssertNotSameBatch(t testing.TB, a, b transientx.Owner) bool {
	t.Helper()
	return assert.Falsef(t, transientx.Related(a, b), "%T and %T unexpectedly share a batch", a, b)
}

// Recorder is an Observer that keeps every event it sees.
type Recorder struct {
	mu     sync.Mutex
	events []transientx.Event
}

// RecordEvents installs a Recorder as the protocol observer for the rest of the
// test and restores the previous observer on cleanup.
func RecordEvents(t testing.TB) *Recorder {
	t.Helper()
	r := &Recorder{}
	prev := transientx.SetObserver(r)
	t.Cleanup(func() { transientx.SetObserver(prev) })
	return r
}

func (r *Recorder) Observe(e transientx.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []transientx.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]transientx.Event(nil), r.events...)
}

// Count returns how many events of kind k were recorded.
func (r *Recorder) Count(k transientx.EventKind) int {
	n := 0
	for _, e := range r.Events() {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Reset discards the recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
