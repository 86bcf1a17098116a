package production

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/comalice/transientx"
	"github.com/comalice/transientx/internal/primitives"
)

// Walkable is a structure that exposes its owned substructures as named edges.
type Walkable interface {
	transientx.Owner
	Edges() iter.Seq2[string, transientx.Owner]
}

// BatchVisualizer renders a structure graph as Graphviz DOT, grouping nodes that
// share a mutation batch into one cluster.
type BatchVisualizer struct{}

type vizNode struct {
	id    string
	owner transientx.Owner
	batch int
}

type vizEdge struct {
	from, to string
	label    string
}

// ExportDOT walks root through Walkable edges and returns DOT source. Shared
// substructures are rendered once.
func (v *BatchVisualizer) ExportDOT(root transientx.Owner) string {
	var (
		nodes   []*vizNode
		edges   []vizEdge
		batches []transientx.Owner // one representative per batch
		seen    = map[primitives.Identity]*vizNode{}
	)

	var visit func(o transientx.Owner) *vizNode
	visit = func(o transientx.Owner) *vizNode {
		id, ok := primitives.IdentityOf(o)
		if ok {
			if n, ok := seen[id]; ok {
				return n
			}
		}
		n := &vizNode{id: fmt.Sprintf("n%d", len(nodes)), owner: o, batch: -1}
		for i, rep := range batches {
			if transientx.Related(rep, o) {
				n.batch = i
				break
			}
		}
		if n.batch < 0 {
			n.batch = len(batches)
			batches = append(batches, o)
		}
		nodes = append(nodes, n)
		if ok {
			seen[id] = n
		}
		if w, ok := o.(Walkable); ok {
			for label, child := range w.Edges() {
				c := visit(child)
				edges = append(edges, vizEdge{from: n.id, to: c.id, label: label})
			}
		}
		return n
	}
	visit(root)

	var buf bytes.Buffer
	buf.WriteString(`digraph Batches {
  rankdir=LR;
  node [shape=box, fontsize=10, style="rounded,filled"];
  edge [fontsize=9];
`)
	for i, rep := range batches {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", batchLabel(i, rep.MutationContext()))
		for _, n := range nodes {
			if n.batch != i {
				continue
			}
			mctx := n.owner.MutationContext()
			color := "lightgrey"
			if mctx.IsMutable() {
				color = "lightgreen"
			}
			label := fmt.Sprintf("%s\n%s", nodeLabel(n.owner), mctx)
			fmt.Fprintf(&buf, "    %q [label=%q fillcolor=%s];\n", n.id, label, color)
		}
		buf.WriteString("  }\n")
	}
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.from, e.to, e.label)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func batchLabel(i int, mctx *transientx.Context) string {
	switch {
	case mctx.Related(transientx.Frozen()):
		return "frozen"
	case mctx.IsMutable():
		return fmt.Sprintf("batch %d (open)", i)
	default:
		return fmt.Sprintf("batch %d (sealed)", i)
	}
}

func nodeLabel(o transientx.Owner) string {
	if s, ok := o.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", o)
}
