package ir

import (
	"fmt"
	"math/big"
	"sort"
)

// Const returns the term for a rational constant.
func (p *Pool) Const(v *big.Rat) *Term {
	key := "C:" + v.RatString()
	return p.internTerm(key, func(id uint64) *Term {
		return &Term{id: id, kind: TKConst, constVal: new(big.Rat).Set(v)}
	})
}

// ConstInt is a convenience wrapper around Const for integer literals.
func (p *Pool) ConstInt(v int64) *Term {
	return p.Const(new(big.Rat).SetInt64(v))
}

// Var returns the term for a real variable.
func (p *Pool) Var(id RealID) *Term {
	key := fmt.Sprintf("V:%d", id)
	return p.internTerm(key, func(tid uint64) *Term {
		return &Term{id: tid, kind: TKVar, varID: id, freeReals: newRealSet(id)}
	})
}

func newRealSet(ids ...RealID) realSet {
	s := append(realSet(nil), ids...)
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return dedupReals(s)
}

// Plus returns the nary sum of operands, flattening nested sums and
// folding all constant operands into one.
func (p *Pool) Plus(operands ...*Term) *Term {
	return p.naryArith(TKPlus, operands, big.NewRat(0, 1), func(acc, v *big.Rat) { acc.Add(acc, v) })
}

// Times returns the nary product of operands, flattening nested
// products and folding all constant operands into one. A zero
// constant operand short-circuits the whole product to zero.
func (p *Pool) Times(operands ...*Term) *Term {
	for _, t := range operands {
		if t.kind == TKConst && t.constVal.Sign() == 0 {
			return p.Const(big.NewRat(0, 1))
		}
	}
	return p.naryArith(TKTimes, operands, big.NewRat(1, 1), func(acc, v *big.Rat) { acc.Mul(acc, v) })
}

func (p *Pool) naryArith(kind TermKind, operands []*Term, identity *big.Rat, fold func(acc, v *big.Rat)) *Term {
	acc := new(big.Rat).Set(identity)
	var rest []*Term
	for _, t := range operands {
		if t.kind == kind {
			// flatten nested same-kind node: re-run over its own args
			for _, c := range t.args {
				if c.kind == TKConst {
					fold(acc, c.constVal)
				} else {
					rest = append(rest, c)
				}
			}
			continue
		}
		if t.kind == TKConst {
			fold(acc, t.constVal)
			continue
		}
		rest = append(rest, t)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].id < rest[j].id })

	isIdentity := acc.Cmp(identity) == 0
	switch {
	case len(rest) == 0:
		return p.Const(acc)
	case len(rest) == 1 && isIdentity:
		return rest[0]
	}

	args := rest
	if !isIdentity {
		args = append([]*Term{p.Const(acc)}, rest...)
	}
	var b []byte
	if kind == TKPlus {
		b = append(b, "P:"...)
	} else {
		b = append(b, "T:"...)
	}
	reals := make([]realSet, 0, len(args))
	for i, t := range args {
		if i > 0 {
			b = append(b, ',')
		}
		b = fmt.Appendf(b, "%d", t.id)
		reals = append(reals, t.freeReals)
	}
	key := string(b)
	return p.internTerm(key, func(id uint64) *Term {
		return &Term{id: id, kind: kind, args: args, freeReals: unionReals(reals...)}
	})
}

// Minus returns a - b.
func (p *Pool) Minus(a, b *Term) *Term {
	if a.kind == TKConst && b.kind == TKConst {
		return p.Const(new(big.Rat).Sub(a.constVal, b.constVal))
	}
	if b.kind == TKConst && b.constVal.Sign() == 0 {
		return a
	}
	key := fmt.Sprintf("M:%d:%d", a.id, b.id)
	return p.internTerm(key, func(id uint64) *Term {
		return &Term{id: id, kind: TKMinus, args: []*Term{a, b}, freeReals: unionReals(a.freeReals, b.freeReals)}
	})
}

// IteTerm returns ITE(cond, then, els) as a term: then if cond holds,
// els otherwise. A constant condition collapses immediately; this is
// the node kind the weight decomposer (package decompose) walks to
// build the skeleton.
func (p *Pool) IteTerm(cond *Formula, then, els *Term) *Term {
	if cond == p.trueF {
		return then
	}
	if cond == p.falseF {
		return els
	}
	if then.kind == TKConst && els.kind == TKConst && then.constVal.Cmp(els.constVal) == 0 {
		return then
	}
	key := fmt.Sprintf("IT:%d:%d:%d", cond.id, then.id, els.id)
	return p.internTerm(key, func(id uint64) *Term {
		return &Term{
			id:        id,
			kind:      TKIte,
			cond:      cond,
			ifTrue:    then,
			ifFalse:   els,
			freeReals: unionReals(then.freeReals, els.freeReals),
		}
	})
}

// TermRealsOf returns the sorted set of real variables free in t.
func TermRealsOf(t *Term) []RealID { return append([]RealID(nil), t.freeReals...) }
