package hashing

import (
	"encoding/binary"
	"iter"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/comalice/transientx"
	"github.com/comalice/transientx/internal/primitives"
)

const (
	seedArgs     = 5381
	seedSequence = 6151
)

// Hashable is implemented by types that compute their own hash.
type Hashable interface {
	HashCode() uint32
}

// HasherHashable is implemented by types that hash their children through the
// Hasher of the enclosing call, sharing its memo and its cycle tracking. It is
// preferred over Hashable when both are present.
type HasherHashable interface {
	HashWith(hs *Hasher) uint32
}

type sequence interface {
	All() iter.Seq[any]
}

// Hasher hashes values with an identity-keyed memo. A Hasher is meant for one
// top-level hashing job; create a new one rather than keeping it around, since
// memoized hashes of values that change later would go stale.
// A Hasher is not safe for concurrent use.
type Hasher struct {
	cache map[primitives.Identity]uint32
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{cache: make(map[primitives.Identity]uint32)}
}

// Hash hashes v with a fresh Hasher.
func Hash(v any) uint32 {
	return NewHasher().Hash(v)
}

// HashArgs hashes its arguments in order as a single composite value.
func HashArgs(args ...any) uint32 {
	return NewHasher().HashArgs(args...)
}

// HashArgs is the package-level HashArgs sharing this Hasher's memo.
func (hs *Hasher) HashArgs(args ...any) uint32 {
	var h uint32 = seedArgs
	for _, a := range args {
		h = combine(h, hs.Hash(a))
	}
	return opt(h)
}

// Combine mixes hash b into hash a.
func Combine(a, b uint32) uint32 {
	return opt(combine(a, b))
}

// HashString hashes a string.
func HashString(s string) uint32 {
	return opt(hashString(s))
}

// HashNumber hashes any integer or floating point value.
func HashNumber[N ~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr | ~float32 | ~float64](n N) uint32 {
	return opt(hashFloat(float64(n)))
}

// HashSlice hashes the elements of xs by position.
func HashSlice[E any](xs []E) uint32 {
	return opt(NewHasher().hashArray(reflect.ValueOf(xs)))
}

// HashSequence hashes the values of seq in iteration order.
func HashSequence(seq iter.Seq[any]) uint32 {
	return opt(NewHasher().hashSequence(seq))
}

// Hash hashes v, consulting and filling the Hasher's memo.
func (hs *Hasher) Hash(v any) uint32 {
	return opt(hs.hash(v))
}

func (hs *Hasher) hash(v any) uint32 {
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		return hashString(x)
	case []byte:
		return fold(xxhash.Sum64(x))
	case int:
		return hashInt(int64(x))
	case int64:
		return hashInt(x)
	case uint64:
		return fold(x)
	case float64:
		return hashFloat(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return 1
		}
		return 0
	case reflect.String:
		return hashString(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return hashInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fold(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return hashFloat(rv.Float())
	case reflect.Pointer, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return 0
		}
	}

	id, identified := primitives.IdentityOf(v)
	if identified {
		if h, ok := hs.cache[id]; ok {
			return h
		}
		// A reference reached again while its own hash is in progress resolves to
		// its identity hash, so cyclic values terminate.
		hs.cache[id] = hashIdentity(rv)
	}
	h := hs.hashComposite(v, rv, identified)
	if identified {
		if cacheable(v) {
			hs.cache[id] = h
		} else {
			delete(hs.cache, id)
		}
	}
	return h
}

func (hs *Hasher) hashComposite(v any, rv reflect.Value, identified bool) uint32 {
	switch x := v.(type) {
	case HasherHashable:
		return x.HashWith(hs)
	case Hashable:
		return x.HashCode()
	case iter.Seq[any]:
		return hs.hashSequence(x)
	case sequence:
		return hs.hashSequence(x.All())
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return hs.hashArray(rv)
	case reflect.Map, reflect.Struct:
		return hs.hashPlain(rv)
	case reflect.Pointer:
		if rv.Elem().Kind() == reflect.Struct {
			return hs.hashPlain(rv)
		}
	}
	if identified {
		return hashIdentity(rv)
	}
	return 0
}

func (hs *Hasher) hashArray(rv reflect.Value) uint32 {
	var h uint32 = seedSequence
	for i := 0; i < rv.Len(); i++ {
		h ^= combine(hashInt(int64(i)), hs.hash(rv.Index(i).Interface()))
	}
	return h
}

func (hs *Hasher) hashSequence(seq iter.Seq[any]) uint32 {
	var h uint32 = seedSequence
	for v := range seq {
		h = combine(h, hs.Hash(v))
	}
	return h
}

func (hs *Hasher) hashPlain(rv reflect.Value) uint32 {
	sv := reflect.Indirect(rv)
	switch sv.Kind() {
	case reflect.Map:
		return hs.hashMap(sv)
	case reflect.Struct:
		if !hasExportedFields(sv.Type()) || isLeaf(sv.Type()) {
			sum, err := hashstructure.Hash(sv.Interface(), hashstructure.FormatV2, nil)
			if err == nil {
				return fold(sum)
			}
		}
		return hs.hashStruct(sv)
	}
	return 0
}

// hashMap combines entries without regard to iteration order.
func (hs *Hasher) hashMap(mv reflect.Value) uint32 {
	var h uint32 = seedSequence
	it := mv.MapRange()
	for it.Next() {
		h ^= combine(hs.hash(it.Key().Interface()), hs.hash(it.Value().Interface()))
	}
	return h
}

// hashStruct folds exported fields in declaration order.
func (hs *Hasher) hashStruct(sv reflect.Value) uint32 {
	var h uint32 = seedSequence
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.IsExported() {
			continue
		}
		h = combine(h, combine(hashString(f.Name), hs.hash(sv.Field(i).Interface())))
	}
	return h
}

func hasExportedFields(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			return true
		}
	}
	return false
}

// isLeaf reports whether values of t hold no references, so hashstructure can
// hash them by content without walking into other structures.
func isLeaf(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return isLeaf(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !isLeaf(t.Field(i).Type) {
				return false
			}
		}
		return true
	}
	return false
}

// cacheable reports whether a computed hash may be memoized. Structures in an
// open batch can still change, so they are always recomputed.
func cacheable(v any) bool {
	if o, ok := v.(transientx.Owner); ok {
		return o.MutationContext().IsImmutable()
	}
	return true
}

func combine(a, b uint32) uint32 {
	return (a * 53) ^ b
}

func hashString(s string) uint32 {
	return fold(xxhash.Sum64String(s))
}

func hashInt(n int64) uint32 {
	return uint32(n) ^ uint32(n>>32)
}

func hashFloat(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if i := int64(f); float64(i) == f {
		return hashInt(i)
	}
	return fold(math.Float64bits(f))
}

func hashIdentity(rv reflect.Value) uint32 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(rv.Pointer()))
	d := xxhash.New()
	_, _ = d.WriteString(rv.Type().String())
	_, _ = d.Write(buf[:])
	return fold(d.Sum64())
}

func fold(x uint64) uint32 {
	return uint32(x) ^ uint32(x>>32)
}

// opt folds bit 31 of n into bit 30.
func opt(n uint32) uint32 {
	return (n & 0xbfffffff) | ((n >> 1) & 0x40000000)
}
