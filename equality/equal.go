// Package equality provides deep equality for persistent structures.
//
// A type opts in by implementing Equatable. Values that do not are compared by
// identity, or, when both are sequences (slices, arrays, iter.Seq[any], or types
// with an All() iter.Seq[any] method), by walking them in lock-step.
package equality

import (
	"iter"
	"reflect"
)

// Equatable is implemented by types that decide equality themselves. other may be
// of any type.
type Equatable interface {
	Equals(other any) bool
}

type sequence interface {
	All() iter.Seq[any]
}

// Equal reports whether a and b hold equivalent data.
//
// Identical values are equal. nil only equals nil. If either side is Equatable,
// its Equals decides. Two sequences are equal when they have the same length and
// pairwise Equal elements; two maps when they have the same keys with Equal
// values. Anything else is unequal.
func Equal(a, b any) bool {
	if identical(a, b) {
		return true
	}
	na, nb := isNothing(a), isNothing(b)
	if na || nb {
		return na == nb
	}
	if ea, ok := a.(Equatable); ok {
		return ea.Equals(b)
	}
	if eb, ok := b.(Equatable); ok {
		return eb.Equals(a)
	}
	if sa, ok := sequenceOf(a); ok {
		if sb, ok := sequenceOf(b); ok {
			return EqualSequences(sa, sb)
		}
		return false
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Map && rb.Kind() == reflect.Map {
		return equalMaps(ra, rb)
	}
	return false
}

// EqualSequences walks a and b in lock-step. Both must end at the same time.
func EqualSequences(a, b iter.Seq[any]) bool {
	nextA, stopA := iter.Pull(a)
	defer stopA()
	nextB, stopB := iter.Pull(b)
	defer stopB()
	for {
		va, okA := nextA()
		vb, okB := nextB()
		if okA != okB {
			return false
		}
		if !okA {
			return true
		}
		if !Equal(va, vb) {
			return false
		}
	}
}

func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	return ra.Type() == rb.Type() && ra.Comparable() && a == b
}

func isNothing(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

func sequenceOf(v any) (iter.Seq[any], bool) {
	switch x := v.(type) {
	case iter.Seq[any]:
		return x, true
	case sequence:
		return x.All(), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return func(yield func(any) bool) {
			for i := 0; i < rv.Len(); i++ {
				if !yield(rv.Index(i).Interface()) {
					return
				}
			}
		}, true
	}
	return nil, false
}

func equalMaps(a, b reflect.Value) bool {
	if a.Len() != b.Len() || a.Type().Key() != b.Type().Key() {
		return false
	}
	it := a.MapRange()
	for it.Next() {
		vb := b.MapIndex(it.Key())
		if !vb.IsValid() || !Equal(it.Value().Interface(), vb.Interface()) {
			return false
		}
	}
	return true
}
