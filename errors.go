package wmi

import (
	"errors"

	"github.com/katalvlaran/wmi/decompose"
	"github.com/katalvlaran/wmi/enumerate"
)

// Sentinel errors for package wmi, matching the taxonomy each
// Solver.Compute/ComputeMany call promises callers (UnsupportedWeight,
// EnumerationTimeout, NoEnumerator/NoIntegrator, LeafUnderdetermined,
// InternalInconsistency, Cancelled; PartialResult is not an error but
// the Result.Partial flag). Where a lower
// package already owns the condition, Compute returns that package's
// sentinel unchanged (ErrUnsupportedWeight, ErrLeafUnderdetermined,
// ErrInternalInconsistency are aliases, not wrappers, so errors.Is
// against either the wmi or the originating package's variable
// succeeds) rather than recovering from it — these are bugs or user
// errors the caller must see, not conditions the solver papers over.
var (
	// ErrUnsupportedWeight is decompose.ErrUnsupportedWeight: the
	// weight term has a leaf that is not polynomial/ITE.
	ErrUnsupportedWeight = decompose.ErrUnsupportedWeight

	// ErrLeafUnderdetermined is decompose.ErrLeafUnderdetermined: an
	// emitted assignment left a condition label unassigned. A bug in
	// the enumerator or decomposer, never a user error.
	ErrLeafUnderdetermined = decompose.ErrLeafUnderdetermined

	// ErrInternalInconsistency is enumerate.ErrInternalInconsistency:
	// every atom was assigned but the residual formula did not reduce
	// to ⊤ or ⊥. A bug, not a user error.
	ErrInternalInconsistency = enumerate.ErrInternalInconsistency

	// ErrEnumerationTimeout indicates a context deadline expired during
	// the query: the one set by WithDeadline or one carried by the
	// caller's ctx.
	ErrEnumerationTimeout = errors.New("wmi: enumeration deadline exceeded")

	// ErrNoEnumerator indicates WmiSolver was constructed with a nil
	// enumerator factory.
	ErrNoEnumerator = errors.New("wmi: no enumerator configured")

	// ErrNoIntegrator indicates WmiSolver was constructed with a nil
	// integrator.
	ErrNoIntegrator = errors.New("wmi: no integrator configured")

	// ErrCancelled indicates the context passed to Compute/ComputeMany
	// was cancelled externally (not by the query's own deadline).
	ErrCancelled = errors.New("wmi: cancelled")
)
