// Package lra decides feasibility of a finite conjunction of canonical
// LRA half-spaces (package ir's Σ aᵢxᵢ ⋈ b, ⋈ ∈ {≤, <}).
//
// The decision procedure is classical Fourier-Motzkin variable
// elimination: repeatedly eliminate one real variable by combining
// every upper/lower bound pair on it into a resolvent over the
// remaining variables, until only variable-free constraints remain,
// then check those for contradiction. It is complete and exact (no
// floating point), at the cost of worst-case doubly-exponential blowup
// in the number of variables — acceptable here because the enumerator
// calls it once per candidate cell on queries with a handful of real
// variables, not as a general-purpose LP solver.
package lra
