package transientx

import (
	"fmt"

	"github.com/comalice/transientx/internal/primitives"
)

const subordinateScope = -1

// Context is the mutation context of a persistent structure.
//
// A structure's Context is assigned once at construction and never reassigned.
// Callers never change its fields directly; the protocol functions do.
type Context struct {
	token *primitives.Token
	scope int
}

var frozen = &Context{token: &primitives.Token{}, scope: subordinateScope}

// NewMutableContext returns a fresh primary context for a new batch.
func NewMutableContext() *Context {
	return &Context{token: primitives.NewToken(), scope: 0}
}

// Frozen returns the shared immutable context. It never allocates.
func Frozen() *Context {
	return frozen
}

// MutationContext returns c itself, so a bare context can stand in for an Owner.
func (c *Context) MutationContext() *Context {
	return c
}

// IsMutable reports whether the context's batch is still open.
func (c *Context) IsMutable() bool {
	return c.token.IsOpen()
}

// IsImmutable reports whether the context's batch has been sealed.
func (c *Context) IsImmutable() bool {
	return !c.token.IsOpen()
}

// IsPrimary reports whether the context owns its batch and may seal it.
func (c *Context) IsPrimary() bool {
	return c.scope >= 0
}

// IsSubordinate reports whether the context only participates in its batch.
func (c *Context) IsSubordinate() bool {
	return c.scope == subordinateScope
}

// Scope returns the re-entrant Modify depth of a primary context, or -1.
func (c *Context) Scope() int {
	return c.scope
}

// Subordinate returns a context that shares c's token without sealing rights.
// A subordinate context is returned as-is; subordinates carry no hierarchy.
func (c *Context) Subordinate() *Context {
	if c.scope >= 0 {
		return &Context{token: c.token, scope: subordinateScope}
	}
	return c
}

// Related reports whether c and other belong to the same batch.
// Relatedness is token identity, never value equality.
func (c *Context) Related(other *Context) bool {
	return c.token == other.token
}

func (c *Context) String() string {
	state := "sealed"
	if c.IsMutable() {
		state = "open"
	}
	if c.IsPrimary() {
		return fmt.Sprintf("primary(%s,scope=%d)", state, c.scope)
	}
	return fmt.Sprintf("subordinate(%s)", state)
}

// CommitContext seals the batch of a primary context regardless of its scope.
// Subordinate contexts are left untouched.
func CommitContext(c *Context) {
	if c.IsPrimary() && c.token.Seal() {
		notify(Event{Kind: EventSeal, Op: "CommitContext", Scope: c.scope})
	}
}
