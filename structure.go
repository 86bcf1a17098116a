package transientx

// Owner is anything that carries a mutation context: a structure, or a bare
// *Context.
type Owner interface {
	MutationContext() *Context
}

// Structure is the capability every persistent type implements to take part in
// mutation batches.
//
// CloneWithContext returns a shallow copy of the receiver tagged with ctx. It must
// not clone owned substructures; those are brought into the batch on demand with
// ModifyField or the Join functions.
type Structure[T any] interface {
	Owner
	CloneWithContext(ctx *Context) T
}

// Preference names the mutability a caller wants a value to end up with.
// The zero value is Immutable.
type Preference struct {
	kind  preferenceKind
	ctx   *Context
	owner Owner
}

type preferenceKind int

const (
	preferImmutable preferenceKind = iota
	preferMutable
	preferContext
	preferSubordinate
)

var (
	// Immutable prefers the shared frozen context.
	Immutable = Preference{kind: preferImmutable}
	// Mutable prefers a fresh primary context.
	Mutable = Preference{kind: preferMutable}
)

// InContext prefers exactly the given context.
func InContext(ctx *Context) Preference {
	return Preference{kind: preferContext, ctx: ctx}
}

// SubordinateTo prefers a subordinate of owner's batch.
func SubordinateTo(owner Owner) Preference {
	return Preference{kind: preferSubordinate, owner: owner}
}

// SelectContext returns the context matching p. Immutable yields Frozen(),
// Mutable a new primary context, InContext the given context and SubordinateTo
// the owner's subordinate context.
func SelectContext(p Preference) *Context {
	switch p.kind {
	case preferMutable:
		return NewMutableContext()
	case preferContext:
		return p.ctx
	case preferSubordinate:
		return p.owner.MutationContext().Subordinate()
	default:
		return frozen
	}
}
