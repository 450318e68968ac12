package lra

import (
	"context"
	"math/big"
	"sort"

	"github.com/katalvlaran/wmi/ir"
)

// FourierMotzkin is the zero-value-usable, stateless Decider
// implementation: Feasible holds no state across calls, so one value
// is safely shared by every enumerator worker goroutine.
type FourierMotzkin struct{}

// row is a working copy of an ir.LRAAtom: a map of remaining
// variables to coefficients, a bound, and a strictness flag. Rows are
// never mutated after creation; elimination always builds new rows.
type row struct {
	coeffs map[ir.RealID]*big.Rat
	bound  *big.Rat
	strict bool
}

func cloneRow(a *ir.LRAAtom) row {
	c := make(map[ir.RealID]*big.Rat, len(a.Coeffs))
	for id, v := range a.Coeffs {
		if v.Sign() == 0 {
			continue
		}
		c[id] = new(big.Rat).Set(v)
	}
	return row{coeffs: c, bound: new(big.Rat).Set(a.Bound), strict: a.Strict}
}

// Feasible implements Decider via Fourier-Motzkin elimination.
func (FourierMotzkin) Feasible(ctx context.Context, constraints []*ir.LRAAtom) (bool, error) {
	if len(constraints) == 0 {
		return true, nil
	}

	rows := make([]row, len(constraints))
	varSet := make(map[ir.RealID]bool)
	for i, c := range constraints {
		rows[i] = cloneRow(c)
		for id := range rows[i].coeffs {
			varSet[id] = true
		}
	}

	vars := make([]int, 0, len(varSet))
	for id := range varSet {
		vars = append(vars, int(id))
	}
	sort.Ints(vars)

	for _, iv := range vars {
		if err := ctx.Err(); err != nil {
			return false, ErrCancelled
		}
		v := ir.RealID(iv)
		rows = eliminate(rows, v)
	}

	if err := ctx.Err(); err != nil {
		return false, ErrCancelled
	}

	for _, r := range rows {
		// Every variable is gone; r asserts 0 ⋈ r.bound.
		if r.strict {
			if r.bound.Sign() <= 0 {
				return false, nil
			}
		} else {
			if r.bound.Sign() < 0 {
				return false, nil
			}
		}
	}
	return true, nil
}

// eliminate removes v from every row, replacing the rows that mention
// it with every pairwise upper/lower resolvent plus the rows that
// never mentioned v untouched.
func eliminate(rows []row, v ir.RealID) []row {
	var withoutV, uppers, lowers []row
	for _, r := range rows {
		coeff, ok := r.coeffs[v]
		if !ok {
			withoutV = append(withoutV, r)
			continue
		}
		rest := make(map[ir.RealID]*big.Rat, len(r.coeffs)-1)
		for id, c := range r.coeffs {
			if id == v {
				continue
			}
			rest[id] = c
		}
		// Divide through by coeff: v ⋈' bound/coeff - Σ(c_j/coeff)x_j,
		// where ⋈' is v's original relation if coeff>0 (upper bound on
		// v), or the flipped relation if coeff<0 (lower bound on v).
		inv := new(big.Rat).Inv(coeff)
		normCoeffs := make(map[ir.RealID]*big.Rat, len(rest))
		for id, c := range rest {
			normCoeffs[id] = new(big.Rat).Mul(c, inv)
		}
		normBound := new(big.Rat).Mul(r.bound, inv)
		norm := row{coeffs: normCoeffs, bound: normBound, strict: r.strict}
		if coeff.Sign() > 0 {
			uppers = append(uppers, norm)
		} else {
			lowers = append(lowers, norm)
		}
	}

	out := withoutV
	for _, u := range uppers {
		for _, l := range lowers {
			out = append(out, resolvent(u, l))
		}
	}
	return out
}

// resolvent combines an upper bound "v ⋈ u.bound - Σu.coeffs·x" and a
// lower bound "v ⋈ l.bound - Σl.coeffs·x" (⋈ flipped to ≥/> for l)
// into the variable-free consequence
// Σ(u.coeffs - l.coeffs)·x ≤/< u.bound - l.bound.
func resolvent(u, l row) row {
	coeffs := make(map[ir.RealID]*big.Rat, len(u.coeffs)+len(l.coeffs))
	for id, c := range u.coeffs {
		coeffs[id] = new(big.Rat).Set(c)
	}
	for id, c := range l.coeffs {
		if existing, ok := coeffs[id]; ok {
			existing.Sub(existing, c)
		} else {
			coeffs[id] = new(big.Rat).Neg(c)
		}
	}
	bound := new(big.Rat).Sub(u.bound, l.bound)
	return row{coeffs: coeffs, bound: bound, strict: u.strict || l.strict}
}
