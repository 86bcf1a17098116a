package main

import (
	"fmt"

	"github.com/comalice/transientx"
	"github.com/comalice/transientx/internal/config"
	"github.com/comalice/transientx/internal/records"
)

// buildChain returns a frozen record named name with depth frozen descendants.
func buildChain(name string, depth int) *records.Record {
	var child *records.Record
	for d := depth; d > 0; d-- {
		n := records.New(fmt.Sprintf("%s/%d", name, d), transientx.Immutable)
		if child != nil {
			n = n.WithChild(child)
		}
		child = n
	}
	root := records.New(name, transientx.Immutable)
	if child != nil {
		root = root.WithChild(child)
	}
	return root
}

// editBatch edits r and its whole chain of descendants inside one mutation
// batch, re-entering the batch nested times before sealing it.
func editBatch(r *records.Record, nested int) *records.Record {
	m := transientx.Modify(r)
	for i := 0; i < nested; i++ {
		m = transientx.Modify(m)
		m.Tag(fmt.Sprintf("pass-%d", i)).Hit()
	}
	editDescendants(m)
	for i := 0; i < nested; i++ {
		transientx.Commit(m)
	}
	return transientx.Commit(m)
}

func editDescendants(m *records.Record) {
	if m.Child() == nil {
		return
	}
	m.EditChild(func(c *records.Record) {
		c.Hit()
		editDescendants(c)
	})
}

// runWorkload builds and edits the configured number of records. It returns
// the original frozen records and their sealed edited versions.
func runWorkload(cfg config.DemoConfig) (before, after []*records.Record) {
	for i := range cfg.Records {
		r := buildChain(fmt.Sprintf("record-%d", i), cfg.Depth)
		before = append(before, r)
		after = append(after, editBatch(r, cfg.NestedModify))
	}
	return before, after
}
