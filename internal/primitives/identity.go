package primitives

import "reflect"

// Identity is a comparable key naming one reference value (pointer, map, slice
// backing array, func, chan or unsafe pointer). Two keys are equal only when they
// were taken from the same reference with the same dynamic type.
type Identity struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// IdentityOf returns the identity key of v. ok is false for values that have no
// reference identity (nil, scalars, strings, structs held by value, empty slices).
func IdentityOf(v any) (id Identity, ok bool) {
	if v == nil {
		return Identity{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return Identity{}, false
		}
		return Identity{typ: rv.Type(), ptr: rv.Pointer()}, true
	case reflect.Slice:
		if rv.IsNil() || rv.Len() == 0 {
			return Identity{}, false
		}
		// Slices sharing a backing array but differing in length are distinct values.
		return Identity{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}, true
	default:
		return Identity{}, false
	}
}
