package transientx

import "fmt"

// JoinAsSubordinate returns child as a mutable subordinate of parent's batch.
// A child that is already a related subordinate is returned unchanged; any other
// child is cloned with the parent's subordinate context. The parent must be
// mutable.
func JoinAsSubordinate[T Structure[T]](parent Owner, child T) (T, error) {
	pc := parent.MutationContext()
	if !pc.IsMutable() {
		return child, violation("JoinAsSubordinate", ErrInvalidMutationTarget)
	}
	cc := child.MutationContext()
	if cc.Related(pc) && cc.IsSubordinate() {
		return child, nil
	}
	return cloneInto("JoinAsSubordinate", child, pc.Subordinate()), nil
}

// JoinAsEqual returns child as a mutable equal of parent. When the parent is
// subordinate the child joins as a subordinate too. When the parent is primary, a
// related child that is itself primary is left as a co-owner; otherwise the child
// is cloned with the parent's own context. The parent must be mutable.
func JoinAsEqual[T Structure[T]](parent Owner, child T) (T, error) {
	pc := parent.MutationContext()
	if !pc.IsMutable() {
		return child, violation("JoinAsEqual", ErrInvalidMutationTarget)
	}
	cc := child.MutationContext()
	if cc.Related(pc) && (pc.IsSubordinate() || cc.IsPrimary()) {
		return child, nil
	}
	return cloneInto("JoinAsEqual", child, pc), nil
}

// ModifyField makes the child stored at field a member of owner's batch and
// returns it. field must point into owner and hold a non-nil structure.
//
// A related child is returned as-is. Otherwise the child is cloned as a
// subordinate of owner, written back through field, and the clone is returned.
// Calling ModifyField again before the batch is sealed returns the same child.
func ModifyField[C Structure[C]](owner Owner, field *C) (C, error) {
	oc := owner.MutationContext()
	if oc.IsImmutable() {
		return *field, violation("ModifyField", ErrImmutableMutationAttempt)
	}
	child := *field
	if child.MutationContext().Related(oc) {
		return child, nil
	}
	child = cloneInto("ModifyField", child, oc.Subordinate())
	*field = child
	return child, nil
}

// MustJoinAsSubordinate is like JoinAsSubordinate but panics on a contract
// violation.
func MustJoinAsSubordinate[T Structure[T]](parent Owner, child T) T {
	v, err := JoinAsSubordinate(parent, child)
	if err != nil {
		panic(err)
	}
	return v
}

// MustJoinAsEqual is like JoinAsEqual but panics on a contract violation.
func MustJoinAsEqual[T Structure[T]](parent Owner, child T) T {
	v, err := JoinAsEqual(parent, child)
	if err != nil {
		panic(err)
	}
	return v
}

// MustModifyField is like ModifyField but panics on a contract violation.
func MustModifyField[C Structure[C]](owner Owner, field *C) C {
	v, err := ModifyField(owner, field)
	if err != nil {
		panic(err)
	}
	return v
}

func violation(op string, sentinel error) error {
	err := fmt.Errorf("%s: %w", op, sentinel)
	notify(Event{Kind: EventViolation, Op: op, Scope: subordinateScope, Err: err})
	return err
}
