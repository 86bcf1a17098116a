package records

import (
	"github.com/comalice/transientx"
	"github.com/comalice/transientx/equality"
	"github.com/comalice/transientx/hashing"
	"github.com/comalice/transientx/unwrap"
)

// Cell is a persistent box around a single value.
type Cell[T any] struct {
	mctx  *transientx.Context
	value T
}

// NewCell returns a cell holding v with the mutability selected by p.
func NewCell[T any](v T, p transientx.Preference) *Cell[T] {
	return &Cell[T]{mctx: transientx.SelectContext(p), value: v}
}

func (c *Cell[T]) MutationContext() *transientx.Context { return c.mctx }

func (c *Cell[T]) CloneWithContext(mctx *transientx.Context) *Cell[T] {
	return &Cell[T]{mctx: mctx, value: c.value}
}

// Get returns the boxed value.
func (c *Cell[T]) Get() T { return c.value }

// Set returns a cell holding v. A mutable cell is changed in place and returned;
// an immutable one yields a sealed copy.
func (c *Cell[T]) Set(v T) *Cell[T] {
	return transientx.Update(func(m *Cell[T]) { m.value = v }, c)
}

// Unwrap returns the plain form of the boxed value.
func (c *Cell[T]) Unwrap() any { return unwrap.Unwrap(c.value) }

func (c *Cell[T]) HashCode() uint32 { return hashing.Hash(c.value) }

func (c *Cell[T]) HashWith(hs *hashing.Hasher) uint32 { return hs.Hash(c.value) }

func (c *Cell[T]) Equals(other any) bool {
	o, ok := other.(*Cell[T])
	return ok && equality.Equal(c.value, o.value)
}
