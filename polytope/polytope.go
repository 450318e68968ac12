package polytope

import (
	"sort"

	"github.com/katalvlaran/wmi/ir"
)

// Polytope is a finite H-representation ⋂ᵢ{x : aᵢ·x ⋈ᵢ bᵢ} over Order,
// the fixed variable ordering shared with the integrator for a given
// query (spec.md §4.4).
type Polytope struct {
	Constraints []*ir.LRAAtom
	Order       []ir.RealID
}

// Build collects every LRA atom decided in assignment, asserting it
// as-is when true and as its Negate() when false, then de-duplicates
// identical half-spaces. Non-LRA entries of assignment (plain Boolean
// atoms and condition labels) are ignored: they carry no half-space.
func Build(pool *ir.Pool, assignment map[ir.AtomID]bool, order []ir.RealID) *Polytope {
	seen := make(map[string]bool)
	var cs []*ir.LRAAtom
	// Iterate in a deterministic order (sorted AtomID) so repeated
	// Build calls over the same assignment produce an identical slice,
	// which matters for the integration cache's fingerprint.
	ids := make([]int, 0, len(assignment))
	for id := range assignment {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	for _, iid := range ids {
		id := ir.AtomID(iid)
		atom, ok := pool.IsLRA(id)
		if !ok {
			continue
		}
		h := atom
		if !assignment[id] {
			h = atom.Negate()
		}
		key := h.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		cs = append(cs, h)
	}
	return &Polytope{Constraints: cs, Order: order}
}

// IsEmptyTrivially detects the cheapest class of emptiness: two
// half-spaces on the same variable whose bounds cannot both hold
// (e.g. x<1 ∧ x>2 among axis-aligned constraints), without invoking a
// general LRA decider. It is a fast, incomplete, sound check: it never
// reports empty for a feasible polytope, but a "false" result does not
// guarantee feasibility — callers needing a complete answer use
// package lra.
func (p *Polytope) IsEmptyTrivially() bool {
	box, ok := p.AsBox()
	if !ok {
		return false
	}
	for _, iv := range box {
		if iv.Empty() {
			return true
		}
	}
	return false
}
