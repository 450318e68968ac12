// Package poly represents multivariate polynomials over real variables
// as a sum of monomials with rational coefficients, and provides the
// handful of arithmetic kernels (Add, Scale, Mul) the rest of the
// solver needs to build and combine them.
//
// The kernel shapes mirror lvlath/matrix's linear-algebra facade
// (Add/Sub/Scale/Mul over Dense matrices): strict fail-fast validation
// is replaced here by "there is nothing to validate" (any two
// Polynomials can be added), but the single-purpose, no-hidden-state,
// one-function-per-operation layout is the same.
package poly
