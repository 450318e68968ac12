package polytope

import (
	"math/big"

	"github.com/katalvlaran/wmi/ir"
)

// Interval is a (possibly open-ended) closed or half-open interval on
// one real axis. A nil bound means unbounded on that side.
type Interval struct {
	Lo, Hi         *big.Rat
	LoOpen, HiOpen bool
}

// Empty reports whether the interval, as constrained so far, cannot
// contain any point (Lo > Hi, or Lo == Hi with either side open).
func (iv Interval) Empty() bool {
	if iv.Lo == nil || iv.Hi == nil {
		return false
	}
	c := iv.Lo.Cmp(iv.Hi)
	if c > 0 {
		return true
	}
	if c == 0 && (iv.LoOpen || iv.HiOpen) {
		return true
	}
	return false
}

// Width returns Hi-Lo, or nil if unbounded on either side.
func (iv Interval) Width() *big.Rat {
	if iv.Lo == nil || iv.Hi == nil {
		return nil
	}
	return new(big.Rat).Sub(iv.Hi, iv.Lo)
}

// IsAxisAligned reports whether every half-space involves exactly one
// real variable, i.e. the polytope is a product of per-variable
// intervals (spec.md §4.5 fast path 3).
func (p *Polytope) IsAxisAligned() bool {
	for _, c := range p.Constraints {
		if countNonzero(c.Coeffs) != 1 {
			return false
		}
	}
	return true
}

func countNonzero(coeffs map[ir.RealID]*big.Rat) int {
	n := 0
	for _, c := range coeffs {
		if c.Sign() != 0 {
			n++
		}
	}
	return n
}

// AsBox converts an axis-aligned polytope into one Interval per
// variable appearing in Order, intersecting every constraint that
// bounds it. ok is false if the polytope is not axis-aligned.
func (p *Polytope) AsBox() (map[ir.RealID]Interval, bool) {
	if !p.IsAxisAligned() {
		return nil, false
	}
	box := make(map[ir.RealID]Interval, len(p.Order))
	for _, id := range p.Order {
		box[id] = Interval{}
	}
	for _, c := range p.Constraints {
		var id ir.RealID
		var coeff *big.Rat
		for vid, v := range c.Coeffs {
			if v.Sign() != 0 {
				id, coeff = vid, v
				break
			}
		}
		// c.Coeffs[id]*x ⋈ c.Bound  =>  x ⋈ c.Bound/coeff, flipping the
		// relation direction when coeff is negative.
		bound := new(big.Rat).Quo(c.Bound, coeff)
		iv := box[id]
		upper := coeff.Sign() > 0
		if upper {
			if iv.Hi == nil || bound.Cmp(iv.Hi) < 0 || (bound.Cmp(iv.Hi) == 0 && c.Strict) {
				iv.Hi = bound
				iv.HiOpen = c.Strict
			}
		} else {
			if iv.Lo == nil || bound.Cmp(iv.Lo) > 0 || (bound.Cmp(iv.Lo) == 0 && c.Strict) {
				iv.Lo = bound
				iv.LoOpen = c.Strict
			}
		}
		box[id] = iv
	}
	return box, true
}
