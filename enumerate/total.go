package enumerate

import (
	"context"
	"sort"

	"github.com/katalvlaran/wmi/ir"
	"github.com/katalvlaran/wmi/lra"
	"github.com/katalvlaran/wmi/polytope"
)

// TotalEnumerator assigns every atom free in Δ (k is always 0) via
// brute-force backtracking, filtering to assignments that both make Δ
// true at the Boolean level and are LRA-feasible. It is the reference
// implementation every StructureAwareEnumerator result is checked
// against (spec §8 property 5).
type TotalEnumerator struct {
	base
	Decider lra.Decider
}

// NewTotalEnumerator constructs a TotalEnumerator using decider to
// filter LRA-infeasible combinations. decider must not be nil.
func NewTotalEnumerator(decider lra.Decider) *TotalEnumerator {
	e := &TotalEnumerator{Decider: decider}
	e.base.produce = e.produce
	return e
}

func (e *TotalEnumerator) Start(pool *ir.Pool, delta *ir.Formula) error {
	return e.base.start(pool, delta)
}

func (e *TotalEnumerator) Next(ctx context.Context) (Assignment, bool, error) {
	return e.base.next(ctx)
}

func (e *TotalEnumerator) Cancel()      { e.base.cancel2() }
func (e *TotalEnumerator) State() State { return e.base.stateOf() }

func (e *TotalEnumerator) produce(ctx context.Context, pool *ir.Pool, delta *ir.Formula, emit func(Assignment) bool) error {
	atoms := sortedAtoms(ir.AtomsOf(delta))
	trail := make(map[ir.AtomID]bool, len(atoms))
	cont, err := e.search(ctx, pool, delta, atoms, 0, trail, emit)
	_ = cont
	return err
}

func (e *TotalEnumerator) search(ctx context.Context, pool *ir.Pool, psi *ir.Formula, atoms []ir.AtomID, idx int, trail map[ir.AtomID]bool, emit func(Assignment) bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if idx == len(atoms) {
		v, ok := ir.IsDetermined(psi)
		if !ok {
			return false, ErrInternalInconsistency
		}
		if !v {
			return true, nil
		}
		pt := polytope.Build(pool, trail, nil)
		feasible, err := e.Decider.Feasible(ctx, pt.Constraints)
		if err != nil {
			return false, err
		}
		if !feasible {
			return true, nil
		}
		if !emit(Assignment{Values: copyTrail(trail), K: 0}) {
			return false, nil
		}
		return true, nil
	}

	a := atoms[idx]
	for _, val := range [2]bool{true, false} {
		psi2 := pool.Substitute(psi, map[ir.AtomID]bool{a: val})
		if v, ok := ir.IsDetermined(psi2); ok && !v {
			continue
		}
		trail[a] = val
		cont, err := e.search(ctx, pool, psi2, atoms, idx+1, trail, emit)
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

func sortedAtoms(ids []ir.AtomID) []ir.AtomID {
	out := append([]ir.AtomID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func copyTrail(m map[ir.AtomID]bool) map[ir.AtomID]bool {
	out := make(map[ir.AtomID]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
