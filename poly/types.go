package poly

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/katalvlaran/wmi/ir"
)

// Monomial is one term of a Polynomial: a rational coefficient times a
// product of variable powers. Zero exponents are never stored.
type Monomial struct {
	Coeff *big.Rat
	Exps  map[ir.RealID]int
}

func (m *Monomial) signature() string {
	ids := make([]int, 0, len(m.Exps))
	for id, e := range m.Exps {
		if e != 0 {
			ids = append(ids, int(id))
		}
	}
	sort.Ints(ids)
	sig := ""
	for _, id := range ids {
		sig += fmt.Sprintf("%d^%d,", id, m.Exps[ir.RealID(id)])
	}
	return sig
}

func (m *Monomial) clone() *Monomial {
	exps := make(map[ir.RealID]int, len(m.Exps))
	for id, e := range m.Exps {
		if e != 0 {
			exps[id] = e
		}
	}
	return &Monomial{Coeff: new(big.Rat).Set(m.Coeff), Exps: exps}
}

// Polynomial is a sum of monomials, keyed by exponent signature so
// like terms are always collected.
type Polynomial struct {
	terms map[string]*Monomial
}

// Zero returns the zero polynomial.
func Zero() *Polynomial { return &Polynomial{terms: make(map[string]*Monomial)} }

// Constant returns the constant polynomial c.
func Constant(c *big.Rat) *Polynomial {
	p := Zero()
	if c.Sign() == 0 {
		return p
	}
	m := &Monomial{Coeff: new(big.Rat).Set(c), Exps: map[ir.RealID]int{}}
	p.terms[m.signature()] = m
	return p
}

// Linear returns the polynomial "1·id" for a single real variable.
func Linear(id ir.RealID) *Polynomial {
	p := Zero()
	m := &Monomial{Coeff: big.NewRat(1, 1), Exps: map[ir.RealID]int{id: 1}}
	p.terms[m.signature()] = m
	return p
}

// Monomials returns the polynomial's monomials in a deterministic
// (signature-sorted) order. Zero-coefficient monomials are never
// present: Add/Scale/Mul drop them as soon as they arise.
func (p *Polynomial) Monomials() []*Monomial {
	keys := make([]string, 0, len(p.terms))
	for k := range p.terms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*Monomial, 0, len(keys))
	for _, k := range keys {
		out = append(out, p.terms[k])
	}
	return out
}

// IsZero reports whether p has no nonzero monomials.
func (p *Polynomial) IsZero() bool { return len(p.terms) == 0 }

// AsConstant reports whether p is a degree-0 polynomial and, if so,
// its value.
func (p *Polynomial) AsConstant() (*big.Rat, bool) {
	if len(p.terms) == 0 {
		return big.NewRat(0, 1), true
	}
	if len(p.terms) != 1 {
		return nil, false
	}
	for _, m := range p.terms {
		if len(m.Exps) == 0 {
			return m.Coeff, true
		}
	}
	return nil, false
}

// Vars returns the sorted set of real variables with nonzero exponent
// in some monomial of p.
func (p *Polynomial) Vars() []ir.RealID {
	seen := map[ir.RealID]bool{}
	for _, m := range p.terms {
		for id, e := range m.Exps {
			if e != 0 {
				seen[id] = true
			}
		}
	}
	out := make([]ir.RealID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Eval evaluates p at a full point assignment. Used by tests and by
// the sampling integrator's rejection loop.
func (p *Polynomial) Eval(point map[ir.RealID]*big.Rat) *big.Rat {
	total := big.NewRat(0, 1)
	for _, m := range p.terms {
		term := new(big.Rat).Set(m.Coeff)
		for id, e := range m.Exps {
			v, ok := point[id]
			if !ok {
				panic(fmt.Sprintf("poly: Eval: missing value for real variable %d", id))
			}
			for i := 0; i < e; i++ {
				term.Mul(term, v)
			}
		}
		total.Add(total, term)
	}
	return total
}
