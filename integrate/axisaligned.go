package integrate

import (
	"context"
	"math/big"

	"github.com/katalvlaran/wmi/poly"
	"github.com/katalvlaran/wmi/polytope"
)

// AxisAlignedExact is the default, zero-value-usable exact Integrator.
// It handles every cell whose polytope is a product of per-variable
// intervals (polytope.Polytope.AsBox), computing
//
//	∫_box Σᵢ cᵢ·x^eᵢ dx = Σᵢ cᵢ · ∏ⱼ (hⱼ^(eᵢⱼ+1) - lⱼ^(eᵢⱼ+1)) / (eᵢⱼ+1)
//
// for each monomial and summing, generalizing spec.md §4.5 fast path
// 3 (constant integrand) to arbitrary polynomial degree in closed
// form. Non-axis-aligned polytopes are rejected with
// ErrNotAxisAligned so a Dispatcher can fall back to another backend.
type AxisAlignedExact struct{}

func (AxisAlignedExact) Integrate(_ context.Context, pt *polytope.Polytope, p *poly.Polynomial) (Result, error) {
	if pt.IsEmptyTrivially() {
		return zeroExact(), nil
	}
	if p.IsZero() {
		return zeroExact(), nil
	}
	box, ok := pt.AsBox()
	if !ok {
		return Result{}, ErrNotAxisAligned
	}

	total := big.NewRat(0, 1)
	for _, m := range p.Monomials() {
		term := new(big.Rat).Set(m.Coeff)
		for id := range m.Exps {
			if _, ok := box[id]; !ok {
				return Result{}, ErrBoundsRequired
			}
		}
		for id, iv := range box {
			// Every box axis contributes a factor; an axis absent from the
			// monomial has exponent 0 and contributes its width. An axis
			// without both bounds makes the box unbounded.
			e := m.Exps[id]
			if iv.Lo == nil || iv.Hi == nil {
				return Result{}, ErrBoundsRequired
			}
			if iv.Empty() {
				return zeroExact(), nil
			}
			def := definiteMonomialIntegral(iv.Lo, iv.Hi, e)
			term.Mul(term, def)
		}
		total.Add(total, term)
	}
	return Result{Rat: total, Exact: true}, nil
}

func (a AxisAlignedExact) IntegrateBatch(ctx context.Context, jobs []Job) ([]Result, error) {
	return sequentialBatch(ctx, a, jobs)
}

// definiteMonomialIntegral returns ∫ₗ^h x^e dx = (h^(e+1) - l^(e+1)) / (e+1).
func definiteMonomialIntegral(lo, hi *big.Rat, e int) *big.Rat {
	if e == 0 {
		return new(big.Rat).Sub(hi, lo)
	}
	hp := ratPow(hi, e+1)
	lp := ratPow(lo, e+1)
	num := new(big.Rat).Sub(hp, lp)
	return num.Quo(num, big.NewRat(int64(e+1), 1))
}

func ratPow(base *big.Rat, n int) *big.Rat {
	out := big.NewRat(1, 1)
	for i := 0; i < n; i++ {
		out.Mul(out, base)
	}
	return out
}
