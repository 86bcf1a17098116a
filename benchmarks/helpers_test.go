package benchmarks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comalice/transientx"
	"github.com/comalice/transientx/testutil"
)

func TestGenChain(t *testing.T) {
	r := GenChain(3)
	depth := 0
	for n := r; n.Child() != nil; n = n.Child() {
		depth++
	}
	assert.Equal(t, 3, depth)
	testutil.AssertSealed(t, r)
}

func TestEditPath(t *testing.T) {
	r := GenChain(2)
	out := transientx.Update(EditPath, r)
	for n := out; n != nil; n = n.Child() {
		assert.Equal(t, 1, n.Count(), n.Name())
	}
	for n := r; n != nil; n = n.Child() {
		assert.Zero(t, n.Count(), n.Name())
	}
	assert.Len(t, GenTagged(5).Tags(), 5)
}
