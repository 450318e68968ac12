// Package polytope builds the H-representation half-space set implied
// by a truth assignment's LRA atoms, and classifies the common
// axis-aligned-box case the integration dispatcher fast-paths.
//
// The row-per-constraint storage mirrors lvlath/matrix's incidence
// matrix (one row per edge/constraint, one column per vertex/variable)
// generalized from a 0/1 incidence matrix to rational half-space
// coefficients.
package polytope
