package transientx

// IsMutable reports whether v may be mutated in place.
func IsMutable(v Owner) bool {
	return v.MutationContext().IsMutable()
}

// IsImmutable reports whether v must be cloned before it can be changed.
func IsImmutable(v Owner) bool {
	return v.MutationContext().IsImmutable()
}

// IsContextOwner reports whether v holds the primary context of its batch.
func IsContextOwner(v Owner) bool {
	return v.MutationContext().IsPrimary()
}

// Related reports whether a and b belong to the same mutation batch, so that
// sealing the batch owner freezes both. Two frozen structures are related only if
// they share a token, which holds for everything created with Frozen().
//
// After a batch is sealed, Related still tells a parent whether a private child
// was produced in the same batch and can absorb later changes in place, or
// must be cloned and replaced first.
func Related(a, b Owner) bool {
	return a.MutationContext().Related(b.MutationContext())
}

// HasRelatedContext reports whether v belongs to the batch of ctx.
func HasRelatedContext(ctx *Context, v Owner) bool {
	return ctx.Related(v.MutationContext())
}
