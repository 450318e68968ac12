package enumerate

import "errors"

// Sentinel errors for package enumerate. Callers branch with errors.Is.
var (
	// ErrEnumerationTimeout indicates the LRA decider (or the context
	// deadline) expired mid-search (spec taxonomy: EnumerationTimeout).
	ErrEnumerationTimeout = errors.New("enumerate: enumeration deadline exceeded")

	// ErrInternalInconsistency indicates every atom was assigned but the
	// residual formula never reduced to a Boolean constant — a bug in
	// the IR's simplification invariants, not a user error.
	ErrInternalInconsistency = errors.New("enumerate: residual formula not determined after full assignment")

	// ErrNotStarted indicates Next was called before Start.
	ErrNotStarted = errors.New("enumerate: enumerator has not been started")

	// ErrAlreadyStarted indicates Start was called more than once on
	// the same enumerator instance.
	ErrAlreadyStarted = errors.New("enumerate: enumerator already started")
)
