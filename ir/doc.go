// Package ir provides a hash-consed expression DAG for the mixed
// Boolean/linear-real-arithmetic formulas and terms that the wmi solver
// operates on.
//
// A Pool is the single interning arena for a query: every Formula and
// Term node is built through a smart constructor that looks up a
// structural key first, so structurally identical sub-expressions
// always share one node. Node identity is therefore pointer identity —
// two *Formula values are equal iff they point at the same struct —
// exactly the "hash-consed DAG with structural sharing" design called
// for by the solver's architecture notes.
//
// Boolean atoms, real variables and LRA atoms (canonical linear
// inequalities) are interned separately from formula/term nodes, each
// keyed by a stable string so repeated references resolve to the same
// AtomID/RealID across the lifetime of one Pool.
//
// Every Formula node caches its free-atom and free-real sets, and every
// Term node its free-real set, at construction time, so AtomsOf/RealsOf/
// TermRealsOf copy a cached set rather than walking the subtree.
package ir
