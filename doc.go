// Package wmi computes the Weighted Model Integral of a mixed
// Boolean/linear-real-arithmetic formula against a piecewise-polynomial
// weight function:
//
//	WMI(χ∧φ, w) = Σ_{μ⊨χ∧φ} ∫_μ w(x) dx
//
// summed over the models μ of the Boolean skeleton χ∧φ, each
// contributing the integral of w over the linear-arithmetic polytope
// that μ's literals cut out.
//
// A query is built from an env.Environment (the interning pool, logger
// and fresh-label source for one computation), decomposed into a
// label-parametrized Boolean skeleton plus polynomial leaves by
// package decompose, enumerated by a pluggable enumerate.Enumerator,
// and integrated per model-cell by a pluggable integrate.Integrator
// behind a caching, single-flight, worker-pooled integrate.Dispatcher.
// Solver is the orchestrator that wires the three stages together; see
// WmiSolver and Solver.Compute.
package wmi
