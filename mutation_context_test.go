package transientx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/transientx"
)

func TestNewMutableContext(t *testing.T) {
	c := transientx.NewMutableContext()
	assert.True(t, c.IsMutable())
	assert.True(t, c.IsPrimary())
	assert.False(t, c.IsSubordinate())
	assert.Equal(t, 0, c.Scope())
	assert.False(t, c.Related(transientx.NewMutableContext()), "fresh contexts must not share a token")
}

func TestFrozenIsSharedSingleton(t *testing.T) {
	a, b := transientx.Frozen(), transientx.Frozen()
	require.Same(t, a, b)
	assert.True(t, a.IsImmutable())
	assert.True(t, a.IsSubordinate())
	assert.Equal(t, -1, a.Scope())
}

func TestSubordinate(t *testing.T) {
	primary := transientx.NewMutableContext()
	sub := primary.Subordinate()

	require.NotSame(t, primary, sub)
	assert.True(t, sub.IsSubordinate())
	assert.True(t, sub.Related(primary))
	assert.Same(t, sub, sub.Subordinate(), "a subordinate context is shared as-is")
	assert.Same(t, transientx.Frozen(), transientx.Frozen().Subordinate())
}

func TestSingleSealFreezesBatch(t *testing.T) {
	primary := transientx.NewMutableContext()
	subs := []*transientx.Context{primary.Subordinate(), primary.Subordinate(), primary.Subordinate().Subordinate()}

	n := newNode(primary, 1)
	transientx.Commit(n)

	assert.False(t, primary.IsMutable())
	for i, s := range subs {
		assert.False(t, s.IsMutable(), "subordinate %d still mutable after seal", i)
	}
}

func TestCommitContextIgnoresScope(t *testing.T) {
	c := transientx.NewMutableContext()
	n := newNode(c, 1)
	transientx.Modify(n)
	transientx.Modify(n)
	require.Equal(t, 2, c.Scope())

	transientx.CommitContext(c.Subordinate())
	assert.True(t, c.IsMutable(), "subordinate cannot seal")

	transientx.CommitContext(c)
	assert.False(t, c.IsMutable())
}

func TestContextString(t *testing.T) {
	c := transientx.NewMutableContext()
	assert.Equal(t, "primary(open,scope=0)", c.String())
	assert.Equal(t, "subordinate(open)", c.Subordinate().String())
	assert.Equal(t, "subordinate(sealed)", transientx.Frozen().String())
}

func TestSelectContext(t *testing.T) {
	owner := newNode(transientx.NewMutableContext(), 0)
	explicit := transientx.NewMutableContext()

	assert.Same(t, transientx.Frozen(), transientx.SelectContext(transientx.Immutable))
	assert.Same(t, transientx.Frozen(), transientx.SelectContext(transientx.Preference{}))
	assert.Same(t, explicit, transientx.SelectContext(transientx.InContext(explicit)))

	m := transientx.SelectContext(transientx.Mutable)
	assert.True(t, m.IsMutable())
	assert.True(t, m.IsPrimary())

	s := transientx.SelectContext(transientx.SubordinateTo(owner))
	assert.True(t, s.IsSubordinate())
	assert.True(t, transientx.HasRelatedContext(s, owner))
}
