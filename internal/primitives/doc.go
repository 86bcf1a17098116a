// Package primitives provides the foundational, zero-dependency building blocks
// for the mutation protocol.
//
// This package uses ONLY the Go standard library. It holds the pieces that every
// other tier relies on and that carry no policy of their own:
//   - Token: the shared open/sealed cell of one mutation batch
//   - Identity: pointer-identity keys for identity-keyed caches
//
// Core invariants:
//   - A Token only ever moves from open to sealed, never back
//   - Identity keys compare equal only for the same underlying reference
package primitives
