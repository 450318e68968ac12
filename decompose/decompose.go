package decompose

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/wmi/ir"
	"github.com/katalvlaran/wmi/poly"
)

// Decomposition is the result of decomposing one weight term: a
// Boolean Skeleton over fresh condition labels, and enough bookkeeping
// to reconstruct the unique polynomial leaf reached by any label
// polarity vector (LeafOf).
type Decomposition struct {
	Skeleton *ir.Formula
	Labels   []ir.AtomID
	CondOf   map[ir.AtomID]*ir.Formula

	pool     *ir.Pool
	residual *ir.Term
}

// Decompose walks w bottom-up, replacing every ITE(c, t, e) node with
// ITE(Lit(label), t', e') for a fresh label ℓ defined by ℓ ↔ c, and
// returns the accumulated skeleton plus the label-free residual term.
// Structurally identical conditions (same *ir.Formula pointer, thanks
// to hash-consing) share one label. ITE nodes whose branches are
// already equal (the same node) collapse without minting a label at
// all, a wider collapse than the IteTerm smart constructor's, which
// only merges equal constant branches.
func Decompose(pool *ir.Pool, w *ir.Term) (*Decomposition, error) {
	d := &Decomposition{
		CondOf: make(map[ir.AtomID]*ir.Formula),
		pool:   pool,
	}
	condLabel := make(map[*ir.Formula]ir.AtomID)
	var clauses []*ir.Formula

	var walk func(t *ir.Term) (*ir.Term, error)
	walk = func(t *ir.Term) (*ir.Term, error) {
		switch t.Kind() {
		case ir.TKConst, ir.TKVar:
			return t, nil
		case ir.TKPlus:
			args, err := walkArgs(walk, t.Args())
			if err != nil {
				return nil, err
			}
			return pool.Plus(args...), nil
		case ir.TKTimes:
			args, err := walkArgs(walk, t.Args())
			if err != nil {
				return nil, err
			}
			return pool.Times(args...), nil
		case ir.TKMinus:
			a, err := walk(t.Args()[0])
			if err != nil {
				return nil, err
			}
			b, err := walk(t.Args()[1])
			if err != nil {
				return nil, err
			}
			return pool.Minus(a, b), nil
		case ir.TKIte:
			thenT, err := walk(t.Then())
			if err != nil {
				return nil, err
			}
			elseT, err := walk(t.Else())
			if err != nil {
				return nil, err
			}
			if thenT == elseT {
				return thenT, nil
			}
			cond := t.Cond()
			label, ok := condLabel[cond]
			if !ok {
				name := fmt.Sprintf("wmi.label.%s", uuid.NewString())
				var mintErr error
				label, mintErr = pool.FreshBoolAtom(name)
				if mintErr != nil {
					return nil, mintErr
				}
				condLabel[cond] = label
				d.CondOf[label] = cond
				d.Labels = append(d.Labels, label)
				clauses = append(clauses, pool.Iff(pool.Lit(label, false), cond))
			}
			return pool.IteTerm(pool.Lit(label, false), thenT, elseT), nil
		default:
			return nil, ErrUnsupportedWeight
		}
	}

	residual, err := walk(w)
	if err != nil {
		return nil, err
	}
	d.residual = residual
	if len(clauses) == 0 {
		d.Skeleton = pool.True()
	} else {
		d.Skeleton = pool.And(clauses...)
	}
	return d, nil
}

func walkArgs(walk func(*ir.Term) (*ir.Term, error), args []*ir.Term) ([]*ir.Term, error) {
	out := make([]*ir.Term, len(args))
	for i, a := range args {
		w, err := walk(a)
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}

// LeafOf reconstructs the unique polynomial leaf reached by a label
// polarity vector. labelAssignment must assign every label in
// d.Labels; a missing label is ErrLeafUnderdetermined, a fatal
// condition per spec.md §4.4 since the enumerator is guaranteed to
// assign every label appearing in the skeleton.
func (d *Decomposition) LeafOf(labelAssignment map[ir.AtomID]bool) (*poly.Polynomial, error) {
	for _, l := range d.Labels {
		if _, ok := labelAssignment[l]; !ok {
			return nil, ErrLeafUnderdetermined
		}
	}
	substituted := d.pool.SubstituteTerm(d.residual, labelAssignment)
	p, err := poly.FromTerm(substituted)
	if err != nil {
		return nil, fmt.Errorf("decompose: LeafOf: %w", ErrUnsupportedWeight)
	}
	return p, nil
}

// LabelVecFromOriginal evaluates every condition label's underlying
// formula under a total valuation ν of the original atoms (i.e. one
// that does not mention any label), returning the corresponding label
// polarity vector. This is the decomposer round-trip property
// (spec.md §8.6): leafOf(labelVec(ν)) must equal w evaluated under ν.
func (d *Decomposition) LabelVecFromOriginal(valuation map[ir.AtomID]bool) (map[ir.AtomID]bool, error) {
	out := make(map[ir.AtomID]bool, len(d.Labels))
	for _, l := range d.Labels {
		cond := d.CondOf[l]
		sub := d.pool.Substitute(cond, valuation)
		v, ok := ir.IsDetermined(sub)
		if !ok {
			return nil, ErrLeafUnderdetermined
		}
		out[l] = v
	}
	return out, nil
}
