// Package records provides small persistent structures built on the mutation
// protocol. They are used by the command line demo, the production adapters and
// tests across the module, and implement every structural protocol: hashing,
// equality, ordering and unwrapping.
package records
