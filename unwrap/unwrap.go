// Package unwrap converts persistent structures into plain Go values: maps,
// slices and scalars suitable for encoding.
//
// A type opts in by implementing Unwrapper. Types whose children are unwrapped as
// well implement RecursiveUnwrapper, which lets a Session hand out the partially
// built target when a structure refers back to itself, so self-referential
// structures unwrap without infinite recursion.
package unwrap

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/comalice/transientx"
	"github.com/comalice/transientx/internal/primitives"
)

// Unwrapper is implemented by types that convert themselves to a plain value.
type Unwrapper interface {
	Unwrap() any
}

// RecursiveUnwrapper is implemented by types whose plain form contains the plain
// forms of their children.
//
// NewUnwrapTarget allocates the empty plain value. UnwrapInto fills target, using
// s to unwrap children, and returns the finished value.
type RecursiveUnwrapper interface {
	Unwrapper
	NewUnwrapTarget() any
	UnwrapInto(target any, s *Session) any
}

// Session tracks the targets of the structures currently being unwrapped. It is
// scoped to one top-level Unwrap call.
type Session struct {
	inProgress map[primitives.Identity]any
	force      bool
}

// NewSession returns a session. When force is true, plain structs that are not
// persistent structures are unwrapped field by field as well.
func NewSession(force bool) *Session {
	return &Session{inProgress: make(map[primitives.Identity]any), force: force}
}

// Unwrap returns the plain form of v.
//
// Scalars and values that are neither Unwrappers nor persistent structures are
// returned as-is. Slices and arrays unwrap element-wise into []any. Persistent
// structures that do not implement Unwrapper unwrap into a map of their exported
// fields.
func Unwrap(v any) any {
	return NewSession(false).Unwrap(v)
}

// UnwrapForce is Unwrap, but any struct is unwrapped into a map of its exported
// fields.
func UnwrapForce(v any) any {
	return NewSession(true).Unwrap(v)
}

// Key returns a string suitable as a map key for v: strings unwrap to themselves,
// other scalars to their fmt form and composite values to JSON.
func Key(v any) (string, error) {
	value := Unwrap(v)
	switch x := value.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
		data, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("json marshal key: %w", err)
		}
		return string(data), nil
	}
	return fmt.Sprint(value), nil
}

// Unwrap returns the plain form of v within this session.
func (s *Session) Unwrap(v any) any {
	if v == nil {
		return nil
	}
	if _, ok := v.([]byte); ok {
		return v
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = s.Unwrap(rv.Index(i).Interface())
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
	}

	source, ok := v.(Unwrapper)
	if !ok {
		if !s.wantsFields(v, rv) {
			return v
		}
		source = fieldUnwrapper{v: rv}
	}

	id, identified := primitives.IdentityOf(v)
	if identified {
		if target, ok := s.inProgress[id]; ok {
			return target
		}
	}

	rec, ok := source.(RecursiveUnwrapper)
	if !ok {
		return source.Unwrap()
	}
	target := rec.NewUnwrapTarget()
	if identified {
		s.inProgress[id] = target
		defer delete(s.inProgress, id)
	}
	return rec.UnwrapInto(target, s)
}

func (s *Session) wantsFields(v any, rv reflect.Value) bool {
	if reflect.Indirect(rv).Kind() != reflect.Struct {
		return false
	}
	if _, ok := v.(transientx.Owner); ok {
		return true
	}
	return s.force
}

// fieldUnwrapper unwraps a struct into a map of its exported fields. A field
// tagged `unwrap:"-"` is skipped; `unwrap:"name"` renames it.
type fieldUnwrapper struct {
	v reflect.Value
}

func (f fieldUnwrapper) Unwrap() any {
	return NewSession(false).Unwrap(f)
}

func (f fieldUnwrapper) NewUnwrapTarget() any {
	return map[string]any{}
}

func (f fieldUnwrapper) UnwrapInto(target any, s *Session) any {
	out := target.(map[string]any)
	sv := reflect.Indirect(f.v)
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("unwrap"); ok {
			tag, _, _ = strings.Cut(tag, ",")
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		out[name] = s.Unwrap(sv.Field(i).Interface())
	}
	return out
}
