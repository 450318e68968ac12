// Package enumerate lazily streams every model of a Boolean+LRA
// formula Δ = χ∧φ∧S as (assignment, k) pairs, where k counts the
// Boolean atoms an assignment leaves deliberately unassigned.
//
// Two implementations share one contract (completeness, disjointness,
// progress, cooperative cancellation): TotalEnumerator assigns every
// atom (k always 0) and is the brute-force reference; Structure
// AwareEnumerator runs a DPLL-style backtracking search that detects
// atoms irrelevant to Δ at the current node and leaves them
// unassigned, shrinking the number of emitted cells.
//
// Disjointness is achieved by construction: the search tree's true and
// false branches at a decision point partition the remaining search
// space, so no blocking-clause store is needed on top of ordinary DFS
// backtracking (see the root DESIGN.md for the argument).
package enumerate
