package poly

import (
	"math/big"

	"github.com/katalvlaran/wmi/ir"
)

// Add returns a+b. Time O(|a|+|b|), space O(|a|+|b|).
func Add(a, b *Polynomial) *Polynomial {
	out := Zero()
	for k, m := range a.terms {
		out.terms[k] = m.clone()
	}
	for k, m := range b.terms {
		if cur, ok := out.terms[k]; ok {
			cur.Coeff.Add(cur.Coeff, m.Coeff)
			if cur.Coeff.Sign() == 0 {
				delete(out.terms, k)
			}
		} else {
			out.terms[k] = m.clone()
		}
	}
	return out
}

// Sub returns a-b.
func Sub(a, b *Polynomial) *Polynomial {
	return Add(a, Scale(b, big.NewRat(-1, 1)))
}

// Scale returns c·a.
func Scale(a *Polynomial, c *big.Rat) *Polynomial {
	out := Zero()
	if c.Sign() == 0 {
		return out
	}
	for k, m := range a.terms {
		nm := m.clone()
		nm.Coeff.Mul(nm.Coeff, c)
		out.terms[k] = nm
	}
	return out
}

// Mul returns a·b, distributing every monomial pair and collecting
// like terms. Time O(|a|·|b|).
func Mul(a, b *Polynomial) *Polynomial {
	out := Zero()
	for _, ma := range a.terms {
		for _, mb := range b.terms {
			coeff := new(big.Rat).Mul(ma.Coeff, mb.Coeff)
			if coeff.Sign() == 0 {
				continue
			}
			exps := make(map[ir.RealID]int, len(ma.Exps)+len(mb.Exps))
			for id, e := range ma.Exps {
				exps[id] += e
			}
			for id, e := range mb.Exps {
				exps[id] += e
			}
			for id, e := range exps {
				if e == 0 {
					delete(exps, id)
				}
			}
			m := &Monomial{Coeff: coeff, Exps: exps}
			sig := m.signature()
			if cur, ok := out.terms[sig]; ok {
				cur.Coeff.Add(cur.Coeff, coeff)
				if cur.Coeff.Sign() == 0 {
					delete(out.terms, sig)
				}
			} else {
				out.terms[sig] = m
			}
		}
	}
	return out
}
