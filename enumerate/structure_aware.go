package enumerate

import (
	"context"

	"github.com/katalvlaran/wmi/ir"
	"github.com/katalvlaran/wmi/lra"
	"github.com/katalvlaran/wmi/polytope"
)

// StructureAwareEnumerator runs a DPLL-style backtracking search over
// Δ's atoms, leaving an atom unassigned whenever both of its
// branches simplify to the identical formula node (detected by
// hash-cons pointer equality after substitution) rather than
// exhaustively assigning every atom like TotalEnumerator. Boolean
// atoms left unassigned this way count toward K; LRA atoms are never
// left unassigned in the emitted cell — an irrelevant LRA atom is
// instead forced to its canonical ⊤ polarity (spec §4.3).
type StructureAwareEnumerator struct {
	base
	Decider lra.Decider
}

// NewStructureAwareEnumerator constructs a StructureAwareEnumerator
// using decider to prune LRA-infeasible branches during the search.
func NewStructureAwareEnumerator(decider lra.Decider) *StructureAwareEnumerator {
	e := &StructureAwareEnumerator{Decider: decider}
	e.base.produce = e.produce
	return e
}

func (e *StructureAwareEnumerator) Start(pool *ir.Pool, delta *ir.Formula) error {
	return e.base.start(pool, delta)
}

func (e *StructureAwareEnumerator) Next(ctx context.Context) (Assignment, bool, error) {
	return e.base.next(ctx)
}

func (e *StructureAwareEnumerator) Cancel()      { e.base.cancel2() }
func (e *StructureAwareEnumerator) State() State { return e.base.stateOf() }

func (e *StructureAwareEnumerator) produce(ctx context.Context, pool *ir.Pool, delta *ir.Formula, emit func(Assignment) bool) error {
	atoms := orderAtoms(pool, ir.AtomsOf(delta))
	trail := make(map[ir.AtomID]bool, len(atoms))
	_, err := e.search(ctx, pool, delta, atoms, 0, trail, 0, emit)
	return err
}

// orderAtoms places plain Boolean atoms before LRA atoms, each group
// sorted by AtomID. This stands in for spec §4.3's necessity/depth
// heuristic, which needs constraint-graph metadata this module does
// not otherwise compute; see the root DESIGN.md for the tradeoff.
func orderAtoms(pool *ir.Pool, ids []ir.AtomID) []ir.AtomID {
	sorted := sortedAtoms(ids)
	var bools, lras []ir.AtomID
	for _, a := range sorted {
		if _, ok := pool.IsLRA(a); ok {
			lras = append(lras, a)
		} else {
			bools = append(bools, a)
		}
	}
	return append(bools, lras...)
}

func (e *StructureAwareEnumerator) search(
	ctx context.Context,
	pool *ir.Pool,
	psi *ir.Formula,
	atoms []ir.AtomID,
	idx int,
	trail map[ir.AtomID]bool,
	skipped int,
	emit func(Assignment) bool,
) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if v, ok := ir.IsDetermined(psi); ok {
		if !v {
			return true, nil
		}
		return e.emitCell(pool, atoms, idx, trail, skipped, emit)
	}
	if idx == len(atoms) {
		return false, ErrInternalInconsistency
	}

	a := atoms[idx]
	psiT := pool.Substitute(psi, map[ir.AtomID]bool{a: true})
	psiF := pool.Substitute(psi, map[ir.AtomID]bool{a: false})
	_, isLRA := pool.IsLRA(a)

	if psiT == psiF {
		// a is irrelevant to Δ at this node: both polarities lead to the
		// structurally identical residual formula.
		if isLRA {
			trail[a] = true
			cont, err := e.search(ctx, pool, psiT, atoms, idx+1, trail, skipped, emit)
			delete(trail, a)
			return cont, err
		}
		return e.search(ctx, pool, psiT, atoms, idx+1, trail, skipped+1, emit)
	}

	for _, branch := range [2]struct {
		val bool
		psi *ir.Formula
	}{{true, psiT}, {false, psiF}} {
		trail[a] = branch.val
		if isLRA {
			pt := polytope.Build(pool, trail, nil)
			feasible, err := e.Decider.Feasible(ctx, pt.Constraints)
			if err != nil {
				delete(trail, a)
				return false, err
			}
			if !feasible {
				delete(trail, a)
				continue
			}
		}
		cont, err := e.search(ctx, pool, branch.psi, atoms, idx+1, trail, skipped, emit)
		delete(trail, a)
		if err != nil {
			return false, err
		}
		if !cont {
			return false, nil
		}
	}
	return true, nil
}

// emitCell builds the final Assignment once psi has reduced to ⊤: any
// atom in atoms[idx:] not already forced into trail is either a
// skipped-irrelevant Boolean atom (counted in k) or an LRA atom that
// never branched because it trivially never appeared (forced to the
// canonical ⊤ polarity so the polytope stays well-defined).
func (e *StructureAwareEnumerator) emitCell(pool *ir.Pool, atoms []ir.AtomID, idx int, trail map[ir.AtomID]bool, skipped int, emit func(Assignment) bool) (bool, error) {
	out := copyTrail(trail)
	k := skipped
	for _, a := range atoms[idx:] {
		if _, already := out[a]; already {
			continue
		}
		if _, isLRA := pool.IsLRA(a); isLRA {
			out[a] = true
		} else {
			k++
		}
	}
	if !emit(Assignment{Values: out, K: k}) {
		return false, nil
	}
	return true, nil
}
