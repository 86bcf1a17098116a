package records

import (
	"cmp"
	"iter"
	"slices"

	"github.com/comalice/transientx"
	"github.com/comalice/transientx/equality"
	"github.com/comalice/transientx/hashing"
	"github.com/comalice/transientx/unwrap"
)

// Record is a persistent named node with tags, a hit counter and an optional
// child. Child and Counter are owned substructures brought into a batch on demand.
type Record struct {
	mctx    *transientx.Context
	name    string
	tags    []string
	counter *Cell[int]
	child   *Record
}

// New returns a record with the mutability selected by p. The counter joins the
// record's batch as a subordinate.
func New(name string, p transientx.Preference) *Record {
	mctx := transientx.SelectContext(p)
	return &Record{
		mctx:    mctx,
		name:    name,
		counter: NewCell(0, transientx.SubordinateTo(mctx)),
	}
}

func (r *Record) MutationContext() *transientx.Context { return r.mctx }

// CloneWithContext copies r shallowly. The tag slice is clipped so appends on the
// clone never write into storage shared with r.
func (r *Record) CloneWithContext(mctx *transientx.Context) *Record {
	cp := *r
	cp.mctx = mctx
	cp.tags = slices.Clip(r.tags)
	return &cp
}

func (r *Record) Name() string        { return r.name }
func (r *Record) Tags() []string      { return slices.Clone(r.tags) }
func (r *Record) Count() int          { return r.counter.Get() }
func (r *Record) Child() *Record      { return r.child }
func (r *Record) Counter() *Cell[int] { return r.counter }

// All yields the record's name followed by its tags.
func (r *Record) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		if !yield(r.name) {
			return
		}
		for _, t := range r.tags {
			if !yield(t) {
				return
			}
		}
	}
}

// Edges yields the record's owned substructures.
func (r *Record) Edges() iter.Seq2[string, transientx.Owner] {
	return func(yield func(string, transientx.Owner) bool) {
		if !yield("counter", r.counter) {
			return
		}
		if r.child != nil {
			yield("child", r.child)
		}
	}
}

func (r *Record) String() string { return "Record " + r.name }

// Rename returns r with a new name.
func (r *Record) Rename(name string) *Record {
	return transientx.Update(func(m *Record) { m.name = name }, r)
}

// Tag returns r with tag appended.
func (r *Record) Tag(tag string) *Record {
	return transientx.Update(func(m *Record) { m.tags = append(m.tags, tag) }, r)
}

// Hit returns r with its counter incremented. The counter is cloned into r's
// batch the first time it is touched within that batch.
func (r *Record) Hit() *Record {
	return transientx.Update(func(m *Record) {
		c := transientx.MustModifyField(m, &m.counter)
		c.value++
	}, r)
}

// WithChild returns r with child attached as-is.
func (r *Record) WithChild(child *Record) *Record {
	return transientx.Update(func(m *Record) { m.child = child }, r)
}

// EditChild returns r with edit applied to a mutable handle of its child.
// r must have a child.
func (r *Record) EditChild(edit func(*Record)) *Record {
	return transientx.Update(func(m *Record) {
		edit(transientx.MustModifyField(m, &m.child))
	}, r)
}

// ChildField exposes the child slot for callers driving ModifyField directly.
func (r *Record) ChildField() **Record { return &r.child }

func (r *Record) HashCode() uint32 { return r.HashWith(hashing.NewHasher()) }

// HashWith hashes r with the children sharing hs, so a record reachable from
// itself hashes in finite time.
func (r *Record) HashWith(hs *hashing.Hasher) uint32 {
	return hs.HashArgs(r.name, r.tags, r.counter.Get(), r.child)
}

func (r *Record) Equals(other any) bool {
	o, ok := other.(*Record)
	if !ok || o == nil {
		return false
	}
	return r.name == o.name &&
		slices.Equal(r.tags, o.tags) &&
		r.counter.Get() == o.counter.Get() &&
		equality.Equal(r.child, o.child)
}

// Compare orders records by name, then by counter.
func (r *Record) Compare(other *Record) int {
	return cmp.Or(cmp.Compare(r.name, other.name), cmp.Compare(r.Count(), other.Count()))
}

func (r *Record) Unwrap() any { return unwrap.Unwrap(r) }

func (r *Record) NewUnwrapTarget() any { return map[string]any{} }

func (r *Record) UnwrapInto(target any, s *unwrap.Session) any {
	m := target.(map[string]any)
	m["name"] = r.name
	m["tags"] = s.Unwrap(r.tags)
	m["count"] = r.counter.Get()
	if r.child != nil {
		m["child"] = s.Unwrap(r.child)
	}
	return m
}
