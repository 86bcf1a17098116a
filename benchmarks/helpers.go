// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"github.com/comalice/transientx"
	"github.com/comalice/transientx/internal/records"
)

// GenChain creates a frozen record with depth frozen descendants.
func GenChain(depth int) *records.Record {
	var r *records.Record
	for d := depth; d >= 0; d-- {
		n := records.New(fmt.Sprintf("n%d", d), transientx.Immutable)
		if r != nil {
			n = n.WithChild(r)
		}
		r = n
	}
	return r
}

// GenTagged creates a frozen record carrying n tags.
func GenTagged(n int) *records.Record {
	return transientx.Update(func(m *records.Record) {
		for i := 0; i < n; i++ {
			m.Tag(fmt.Sprintf("t%d", i))
		}
	}, records.New("tagged", transientx.Immutable))
}

// EditPath hits every record along r's child chain. r must be mutable.
func EditPath(r *records.Record) {
	r.Hit()
	if r.Child() != nil {
		r.EditChild(EditPath)
	}
}
