package ir

import "math/big"

// LE returns the literal formula for Σ coeffs·x ≤ bound (or < bound if
// strict), canonicalizing and interning the underlying LRAAtom.
func (p *Pool) LE(coeffs map[RealID]*big.Rat, bound *big.Rat, strict bool) (*Formula, error) {
	id, err := p.InternLRA(coeffs, bound, strict, false)
	if err != nil {
		return nil, err
	}
	return p.Lit(id, false), nil
}

// GE returns the literal formula for Σ coeffs·x ≥ bound (or > bound if
// strict), folded into the ≤/< canonical family at construction time.
func (p *Pool) GE(coeffs map[RealID]*big.Rat, bound *big.Rat, strict bool) (*Formula, error) {
	id, err := p.InternLRA(coeffs, bound, strict, true)
	if err != nil {
		return nil, err
	}
	return p.Lit(id, false), nil
}

// EQ returns Σ coeffs·x = bound, rewritten as (Σ ≤ bound) ∧ (Σ ≥
// bound) per spec.md §3 ("Equalities are rewritten as ≤ ∧ ≥").
func (p *Pool) EQ(coeffs map[RealID]*big.Rat, bound *big.Rat) (*Formula, error) {
	le, err := p.LE(coeffs, bound, false)
	if err != nil {
		return nil, err
	}
	ge, err := p.GE(coeffs, bound, false)
	if err != nil {
		return nil, err
	}
	return p.And(le, ge), nil
}

// LinExpr is a convenience builder for Σ aᵢ xᵢ coefficient maps used
// by LE/GE/EQ, so call sites don't have to hand-build map literals.
type LinExpr struct {
	m map[RealID]*big.Rat
}

// NewLinExpr starts an empty linear expression.
func NewLinExpr() *LinExpr { return &LinExpr{m: make(map[RealID]*big.Rat)} }

// Add accumulates coeff·id into the expression and returns the
// receiver for chaining.
func (e *LinExpr) Add(id RealID, coeff *big.Rat) *LinExpr {
	if cur, ok := e.m[id]; ok {
		e.m[id] = new(big.Rat).Add(cur, coeff)
	} else {
		e.m[id] = new(big.Rat).Set(coeff)
	}
	return e
}

// Coeffs returns the accumulated coefficient map.
func (e *LinExpr) Coeffs() map[RealID]*big.Rat { return e.m }
