package transientx_test

import (
	"fmt"

	"github.com/comalice/transientx"
)

type doc struct {
	mctx  *transientx.Context
	title string
	meta  *doc
}

func (d *doc) MutationContext() *transientx.Context { return d.mctx }

func (d *doc) CloneWithContext(c *transientx.Context) *doc {
	cp := *d
	cp.mctx = c
	return &cp
}

func ExampleUpdate() {
	v1 := &doc{mctx: transientx.Frozen(), title: "draft", meta: &doc{mctx: transientx.Frozen(), title: "meta"}}

	v2 := transientx.Update(func(d *doc) {
		d.title = "final"
		transientx.MustModifyField(d, &d.meta).title = "meta v2"
	}, v1)

	fmt.Println(v1.title, v1.meta.title)
	fmt.Println(v2.title, v2.meta.title)
	fmt.Println(transientx.IsMutable(v2), transientx.IsMutable(v2.meta))
	// Output:
	// draft meta
	// final meta v2
	// false false
}

func ExampleModify() {
	v1 := &doc{mctx: transientx.Frozen(), title: "a"}

	m := transientx.Modify(v1)
	m.title = "b"
	again := transientx.Modify(m) // re-entrant: same handle, deeper scope
	again.title = "c"
	transientx.Commit(again)
	fmt.Println(transientx.IsMutable(m), m.MutationContext())
	transientx.Commit(m)
	fmt.Println(transientx.IsMutable(m), m.title, v1.title)
	// Output:
	// true primary(open,scope=0)
	// false c a
}
