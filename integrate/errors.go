package integrate

import "errors"

// Sentinel errors for package integrate. Callers branch with errors.Is.
var (
	// ErrNotAxisAligned indicates AxisAlignedExact was handed a
	// polytope that is not a product of per-variable intervals; the
	// caller should fall back to a sampling (or other pluggable) base
	// integrator.
	ErrNotAxisAligned = errors.New("integrate: polytope is not axis-aligned")

	// ErrBoundsRequired indicates RejectionSampler was asked to
	// integrate over a non-axis-aligned polytope without a configured
	// enclosing bounding box: deriving one automatically from an
	// arbitrary H-representation is the general LP the spec treats as
	// an out-of-scope black-box oracle, so callers must supply bounds
	// via the Bounds field for the general case. AxisAlignedExact and
	// RejectionSampler also return it when a box axis lacks a lower or
	// upper bound.
	ErrBoundsRequired = errors.New("integrate: bounding box required for non-axis-aligned sampling")

	// ErrNoBaseIntegrator indicates a Dispatcher was constructed
	// without a base Integrator (spec taxonomy: NoIntegrator).
	ErrNoBaseIntegrator = errors.New("integrate: no base integrator configured")
)
