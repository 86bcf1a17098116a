// Package transientx implements the mutation-context protocol behind transient
// batches of persistent data structures.
//
// A persistent structure is immutable by default and derives new versions by
// structural sharing. transientx lets such structures be mutated in place for the
// duration of a batch without breaking the illusion of immutability for anyone
// holding an older reference. Every node embeds a *Context; the protocol decides
// whether a node may be written directly or must be cloned first.
//
// # Contexts
//
// A Context pairs a shared ownership token with a scope counter:
//
//   - primary (scope >= 0): owns the batch and may seal it; scope counts
//     re-entrant Modify calls
//   - subordinate (scope == -1): participates in the batch but cannot seal it
//
// All contexts of one batch share the same token, so sealing the primary freezes
// every participant with a single write. Frozen() is the shared context of
// structures that belong to no batch.
//
// # Example Usage
//
//	type Record struct {
//		mctx  *transientx.Context
//		Name  string
//		Child *Record
//	}
//
//	func (r *Record) MutationContext() *transientx.Context { return r.mctx }
//	func (r *Record) CloneWithContext(c *transientx.Context) *Record {
//		cp := *r
//		cp.mctx = c
//		return &cp
//	}
//
//	next := transientx.Update(func(r *Record) {
//		r.Name = "renamed"
//		child := transientx.MustModifyField(r, &r.Child)
//		child.Name = "also renamed"
//	}, prev)
//
// prev is untouched; next and its new child are sealed when Update returns.
//
// # Concurrency
//
// The protocol is synchronous bookkeeping and performs no locking. The token is
// an atomic cell, so a seal is observed by readers on any goroutine, but a single
// batch must only be mutated from one goroutine at a time.
//
// Structural protocols (hashing, equality, ordering, unwrapping) live in the
// sibling packages and are independent of the mutation protocol.
package transientx
