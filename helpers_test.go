package transientx_test

import "github.com/comalice/transientx"

// node is a minimal persistent structure with one owned child.
type node struct {
	mctx   *transientx.Context
	val    int
	child  *node
	clones *int
}

func newNode(mctx *transientx.Context, val int) *node {
	return &node{mctx: mctx, val: val, clones: new(int)}
}

func (n *node) MutationContext() *transientx.Context { return n.mctx }

func (n *node) CloneWithContext(mctx *transientx.Context) *node {
	*n.clones++
	cp := *n
	cp.mctx = mctx
	return &cp
}
