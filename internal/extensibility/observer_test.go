package extensibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comalice/transientx"
)

func TestFanoutSkipsNil(t *testing.T) {
	a, b := NewCountingObserver(), NewCountingObserver()
	f := NewFanout(a, nil, b)
	assert.Len(t, f, 2)

	f.Observe(transientx.Event{Kind: transientx.EventSeal})
	assert.Equal(t, uint64(1), a.Count(transientx.EventSeal))
	assert.Equal(t, uint64(1), b.Count(transientx.EventSeal))
}

func TestFilterObserver(t *testing.T) {
	c := NewCountingObserver()
	f := NewFilterObserver(c, transientx.EventSeal, transientx.EventViolation)

	for _, k := range []transientx.EventKind{
		transientx.EventClone, transientx.EventSeal, transientx.EventScopeEnter, transientx.EventViolation, transientx.EventSeal,
	} {
		f.Observe(transientx.Event{Kind: k})
	}

	assert.Equal(t, map[string]uint64{"seal": 2, "violation": 1}, c.Snapshot())
}

func TestCountingObserverWithProtocol(t *testing.T) {
	c := NewCountingObserver()
	prev := transientx.SetObserver(c)
	t.Cleanup(func() { transientx.SetObserver(prev) })

	ctx := transientx.NewMutableContext()
	transientx.CommitContext(ctx)
	transientx.CommitContext(ctx)

	assert.Equal(t, uint64(1), c.Count(transientx.EventSeal), "sealing twice reports once")
	assert.Equal(t, uint64(0), c.Count(transientx.EventKind(42)))
}
