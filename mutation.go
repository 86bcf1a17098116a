package transientx

// Modify returns a handle to v that may be mutated in place.
//
// A mutable subordinate is returned unchanged. A mutable primary is returned
// unchanged with its scope incremented, so nested operations can Modify and
// Commit the same structure safely. An immutable value is cloned into a brand-new
// primary context.
func Modify[T Structure[T]](v T) T {
	mc := v.MutationContext()
	if mc.IsMutable() {
		if mc.IsPrimary() {
			mc.scope++
			notify(Event{Kind: EventScopeEnter, Op: "Modify", Scope: mc.scope})
		}
		return v
	}
	return cloneInto("Modify", v, NewMutableContext())
}

// Commit ends one Modify scope on v. When the outermost scope of a primary
// context ends, its batch is sealed. Commit on a subordinate does nothing; only
// the batch owner can seal.
func Commit[T Structure[T]](v T) T {
	mc := v.MutationContext()
	if !mc.IsPrimary() {
		return v
	}
	if mc.scope == 0 {
		if mc.token.Seal() {
			notify(Event{Kind: EventSeal, Op: "Commit", Scope: 0})
		}
		return v
	}
	mc.scope--
	notify(Event{Kind: EventScopeExit, Op: "Commit", Scope: mc.scope})
	return v
}

// Update applies mutate to a mutable handle of v and returns the committed result.
// If v was immutable, mutate receives a clone that is sealed before it is
// returned; if v was already mutable, mutate receives v itself.
func Update[T Structure[T]](mutate func(T), v T) T {
	v = Modify(v)
	mutate(v)
	return Commit(v)
}

// UpdateE is Update for mutation functions that can fail. The handle is committed
// even when mutate returns an error, keeping scopes balanced.
func UpdateE[T Structure[T]](mutate func(T) error, v T) (T, error) {
	v = Modify(v)
	err := mutate(v)
	return Commit(v), err
}

// Clone returns a shallow copy of v tagged with the context selected by p.
func Clone[T Structure[T]](v T, p Preference) T {
	return cloneInto("Clone", v, SelectContext(p))
}

// WithMutability returns v, or a clone of v, whose mutability matches p.
//
//   - Immutable: v if already immutable, otherwise a frozen clone
//   - Mutable: v if already mutable, otherwise a clone in a new batch
//   - InContext(c): v if related to c, otherwise a clone tagged with c
//   - SubordinateTo(o): v if related to o, otherwise a clone subordinate to o
func WithMutability[T Structure[T]](p Preference, v T) T {
	mc := v.MutationContext()
	var target *Context
	switch p.kind {
	case preferMutable:
		if mc.IsMutable() {
			return v
		}
		target = NewMutableContext()
	case preferContext:
		if p.ctx.Related(mc) {
			return v
		}
		target = p.ctx
	case preferSubordinate:
		oc := p.owner.MutationContext()
		if oc.Related(mc) {
			return v
		}
		target = oc.Subordinate()
	default:
		if mc.IsImmutable() {
			return v
		}
		target = frozen
	}
	return cloneInto("WithMutability", v, target)
}

// EnsureContext returns v if it already carries exactly ctx, otherwise a clone of
// v tagged with ctx. Only the context pointer is compared; mutability and
// relatedness are not consulted.
func EnsureContext[T Structure[T]](ctx *Context, v T) T {
	if v.MutationContext() == ctx {
		return v
	}
	return cloneInto("EnsureContext", v, ctx)
}

func cloneInto[T Structure[T]](op string, v T, ctx *Context) T {
	c := v.CloneWithContext(ctx)
	notify(Event{Kind: EventClone, Op: op, Scope: ctx.scope})
	return c
}
