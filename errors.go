package transientx

import "errors"

// Contract violations. Both are programmer errors: fix the call order rather than
// handling them at runtime.
var (
	// ErrInvalidMutationTarget is returned when a structure is joined to a parent
	// whose batch is not open.
	ErrInvalidMutationTarget = errors.New("parent must refer to a mutable structure or mutation context")
	// ErrImmutableMutationAttempt is returned when a field of a sealed structure is
	// requested for mutation.
	ErrImmutableMutationAttempt = errors.New("cannot modify fields of an immutable structure")
)
