package records_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/comalice/transientx"
	"github.com/comalice/transientx/internal/records"
	"github.com/comalice/transientx/testutil"
)

func TestNew(t *testing.T) {
	for _, origin := range testutil.Origins() {
		t.Run(origin.Name, func(t *testing.T) {
			r := records.New("r", origin.Preference)
			assert.Equal(t, "r", r.Name())
			assert.Zero(t, r.Count())
			assert.Nil(t, r.Child())
			testutil.AssertSameBatch(t, r, r.Counter())
			assert.True(t, r.Counter().MutationContext().IsSubordinate())
		})
	}
}

func TestPersistentEdits(t *testing.T) {
	r := records.New("r", transientx.Immutable)
	hit := r.Hit()
	renamed := hit.Rename("s")

	assert.Zero(t, r.Count())
	assert.Equal(t, 1, hit.Count())
	assert.Equal(t, "r", hit.Name())
	assert.Equal(t, "s", renamed.Name())
	assert.Equal(t, 1, renamed.Count())
	testutil.AssertSealed(t, r, hit, renamed, hit.Counter())
	testutil.AssertNotSameBatch(t, r, hit)
}

func TestBatchClonesOncePerStructure(t *testing.T) {
	rec := testutil.RecordEvents(t)
	r := records.New("r", transientx.Immutable).WithChild(records.New("c", transientx.Immutable))
	rec.Reset()

	m := transientx.Modify(r)
	m.Hit().Hit().Hit()
	m.EditChild(func(c *records.Record) { c.Hit() })
	m.EditChild(func(c *records.Record) { c.Hit() })
	out := transientx.Commit(m)

	// The record, its counter, the child and the child's counter.
	assert.Equal(t, 4, rec.Count(transientx.EventClone))
	assert.Equal(t, 1, rec.Count(transientx.EventSeal))
	assert.Equal(t, 3, out.Count())
	assert.Equal(t, 2, out.Child().Count())
	assert.Zero(t, r.Count())
	assert.Zero(t, r.Child().Count())
	testutil.AssertSealed(t, out, out.Counter(), out.Child(), out.Child().Counter())
	testutil.AssertSameBatch(t, out, out.Counter(), out.Child(), out.Child().Counter())
}

func TestChildFieldDrivesModifyField(t *testing.T) {
	r := records.New("r", transientx.Immutable).WithChild(records.New("c", transientx.Immutable))
	m := transientx.Modify(r)
	first, err := transientx.ModifyField(m, m.ChildField())
	require.NoError(t, err)
	second, err := transientx.ModifyField(m, m.ChildField())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Same(t, first, m.Child())
	transientx.Commit(m)

	_, err = transientx.ModifyField(m, m.ChildField())
	assert.ErrorIs(t, err, transientx.ErrImmutableMutationAttempt)
}

func TestTagsDoNotShareStorage(t *testing.T) {
	base := records.New("r", transientx.Immutable).Tag("x").Tag("y")
	p := base.Tag("p")
	q := base.Tag("q")
	assert.Equal(t, []string{"x", "y"}, base.Tags())
	assert.Equal(t, []string{"x", "y", "p"}, p.Tags())
	assert.Equal(t, []string{"x", "y", "q"}, q.Tags())
}

func TestCellSet(t *testing.T) {
	c := records.NewCell("a", transientx.Immutable)
	d := c.Set("b")
	assert.Equal(t, "a", c.Get())
	assert.Equal(t, "b", d.Get())
	assert.True(t, c.Equals(records.NewCell("a", transientx.Mutable)))
	assert.False(t, c.Equals(d))

	m := records.NewCell(1, transientx.Mutable)
	assert.Same(t, m, m.Set(2))
	assert.Equal(t, 2, m.Get())
}

func TestSealIsVisibleToConcurrentReaders(t *testing.T) {
	m := transientx.Modify(records.New("r", transientx.Immutable))
	m.Hit()
	sub := m.Counter()
	testutil.AssertSameBatch(t, m, sub)

	start := make(chan struct{})
	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			<-start
			for transientx.IsMutable(sub) {
			}
			return nil
		})
	}
	close(start)
	transientx.Commit(m)
	require.NoError(t, g.Wait())
	testutil.AssertSealed(t, m, sub)
}

func TestCellUnwrapsBoxedStructures(t *testing.T) {
	boxed := records.NewCell(records.New("inner", transientx.Immutable).Hit(), transientx.Immutable)
	assert.Equal(t, map[string]any{"name": "inner", "tags": nil, "count": 1}, boxed.Unwrap())
	assert.Equal(t, 7, records.NewCell(7, transientx.Immutable).Unwrap())
}
