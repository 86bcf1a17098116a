// Token provides the shared ownership cell of a mutation batch.
//
// Every mutation context that belongs to one batch holds the same *Token. Sealing
// is a single store to that cell, so every structure referencing the token becomes
// immutable at once, with no traversal of the structures involved.
//
// # Linearizability
//
// The cell is an atomic.Bool. Once Seal returns, every subsequent IsOpen call on
// any goroutine reports false.
package primitives

import "sync/atomic"

// Token is the shared open/sealed flag of one mutation batch.
// The zero value is a sealed token.
type Token struct {
	open atomic.Bool
}

// NewToken returns a fresh open token.
func NewToken() *Token {
	t := &Token{}
	t.open.Store(true)
	return t
}

// IsOpen reports whether the batch is still accepting in-place mutations.
func (t *Token) IsOpen() bool {
	return t.open.Load()
}

// Seal closes the batch. Sealing an already sealed token is a no-op.
// Seal reports whether this call performed the transition.
func (t *Token) Seal() bool {
	return t.open.CompareAndSwap(true, false)
}
