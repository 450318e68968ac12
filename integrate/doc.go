// Package integrate computes ∫_polytope p dx for each (polytope,
// polynomial) cell. The 2^k multiplier and the sum across cells are
// applied by the caller (package wmi's Solver); Job.K is carried but
// not read here.
//
// Fast paths (empty polytope, zero polynomial, axis-aligned box) are
// tried before any base Integrator is consulted. Dispatcher adds a
// fingerprint cache with single-flight coalescing and a bounded
// worker pool on top of a pluggable Integrator, mirroring the
// teacher's FlowOptions: one options struct normalizing defaults in
// front of interchangeable backend implementations.
package integrate
