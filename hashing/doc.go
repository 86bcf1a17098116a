// Package hashing provides the hash combinator used by persistent structures.
//
// A type opts in by implementing Hashable, or HasherHashable to hash its children
// within the caller's Hasher. Everything else is hashed by shape:
//
//   - nil, false and nil pointers hash to 0; true hashes to 1
//   - integers and floats hash by value, so 3 and 3.0 agree
//   - strings and byte slices use xxhash folded to 32 bits
//   - slices and arrays are hashed element by element with their indices
//   - sequences (iter.Seq[any], or any type with an All() iter.Seq[any] method)
//     are folded in iteration order
//   - maps hash their entries order-independently and plain structs their
//     exported fields, each through the same rules; structs holding no
//     references are hashed by hashstructure
//   - opaque references (funcs, chans, pointers to non-structs) hash their identity
//
// Results for values with reference identity are memoized for the lifetime of a
// Hasher, except for structures that are still mutable: their content can change
// before the batch is sealed, so their hash is never cached. A reference met again
// while it is still being hashed contributes its identity hash, so cyclic values
// terminate.
//
// Hash values are internal to this module. No compatibility with other
// implementations of the same scheme is promised.
package hashing
