package ir

import (
	"fmt"
	"sort"
	"strings"
)

// Lit returns the literal formula for atom, negated if neg is true.
func (p *Pool) Lit(atom AtomID, neg bool) *Formula {
	var reals realSet
	if lra, ok := p.IsLRA(atom); ok {
		ids := make([]RealID, 0, len(lra.Coeffs))
		for id := range lra.Coeffs {
			ids = append(ids, id)
		}
		reals = newRealSet(ids...)
	}
	key := fmt.Sprintf("L:%d:%t", atom, neg)
	return p.internFormula(key, func(id uint64) *Formula {
		return &Formula{
			id:        id,
			kind:      FKLit,
			atom:      atom,
			neg:       neg,
			freeAtoms: newAtomSet(atom),
			freeReals: reals,
		}
	})
}

// Not returns the negation of f. Negation is pushed to literals
// immediately (De Morgan / Ite-branch-swap), so the returned formula
// never has a standalone "not a compound" node.
func (p *Pool) Not(f *Formula) *Formula {
	switch f.kind {
	case FKConstTrue:
		return p.falseF
	case FKConstFalse:
		return p.trueF
	case FKLit:
		return p.Lit(f.atom, !f.neg)
	case FKAnd:
		return p.Or(negateAll(p, f.children)...)
	case FKOr:
		return p.And(negateAll(p, f.children)...)
	case FKIff:
		return p.Xor(f.children[0], f.children[1])
	case FKXor:
		return p.Iff(f.children[0], f.children[1])
	case FKImplies:
		// ¬(a→b) = a ∧ ¬b
		return p.And(f.children[0], p.Not(f.children[1]))
	case FKIte:
		return p.IteFormula(f.cond, p.Not(f.ifTrue), p.Not(f.ifFalse))
	}
	panic("ir: Not: unreachable formula kind")
}

func negateAll(p *Pool, fs []*Formula) []*Formula {
	out := make([]*Formula, len(fs))
	for i, f := range fs {
		out[i] = p.Not(f)
	}
	return out
}

// And returns the conjunction of operands, flattening nested And
// nodes, dropping ⊤, short-circuiting to ⊥ if any operand is ⊥, and
// deduplicating/sorting by node id for a canonical nary form.
func (p *Pool) And(operands ...*Formula) *Formula {
	return p.nary(FKAnd, p.falseF, p.trueF, operands)
}

// Or returns the disjunction of operands, dual to And.
func (p *Pool) Or(operands ...*Formula) *Formula {
	return p.nary(FKOr, p.trueF, p.falseF, operands)
}

// nary implements the shared flatten/absorb/short-circuit logic for
// And (kind=FKAnd, identity=⊤, annihilator=⊥) and Or (kind=FKOr,
// identity=⊥, annihilator=⊤).
func (p *Pool) nary(kind FormulaKind, annihilator, identity *Formula, operands []*Formula) *Formula {
	var flat []*Formula
	for _, f := range operands {
		if f == annihilator {
			return annihilator
		}
		if f == identity {
			continue
		}
		if f.kind == kind {
			flat = append(flat, f.children...)
		} else {
			flat = append(flat, f)
		}
	}
	if len(flat) == 0 {
		return identity
	}
	sort.Slice(flat, func(i, j int) bool { return flat[i].id < flat[j].id })
	deduped := flat[:1]
	for _, f := range flat[1:] {
		if f.id != deduped[len(deduped)-1].id {
			deduped = append(deduped, f)
		}
	}
	if len(deduped) == 1 {
		return deduped[0]
	}

	var b strings.Builder
	if kind == FKAnd {
		b.WriteString("A:")
	} else {
		b.WriteString("O:")
	}
	sets := make([]atomSet, 0, len(deduped))
	reals := make([]realSet, 0, len(deduped))
	for i, f := range deduped {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", f.id)
		sets = append(sets, f.freeAtoms)
		reals = append(reals, f.freeReals)
	}
	key := b.String()
	return p.internFormula(key, func(id uint64) *Formula {
		return &Formula{
			id:        id,
			kind:      kind,
			children:  deduped,
			freeAtoms: unionAtoms(sets...),
			freeReals: unionReals(reals...),
		}
	})
}

// Iff returns the biconditional a ↔ b.
func (p *Pool) Iff(a, b *Formula) *Formula {
	if a == b {
		return p.trueF
	}
	if a == p.trueF {
		return b
	}
	if b == p.trueF {
		return a
	}
	if a == p.falseF {
		return p.Not(b)
	}
	if b == p.falseF {
		return p.Not(a)
	}
	return p.binary(FKIff, a, b)
}

// Xor returns the exclusive-or a ⊕ b.
func (p *Pool) Xor(a, b *Formula) *Formula {
	if a == b {
		return p.falseF
	}
	if a == p.falseF {
		return b
	}
	if b == p.falseF {
		return a
	}
	if a == p.trueF {
		return p.Not(b)
	}
	if b == p.trueF {
		return p.Not(a)
	}
	return p.binary(FKXor, a, b)
}

// Implies returns a → b, i.e. ¬a ∨ b, kept as its own node kind
// (rather than eagerly rewritten) so toNNF/toCNF can document the
// rewrite explicitly instead of hiding it in the smart constructor.
func (p *Pool) Implies(a, b *Formula) *Formula {
	if a == p.falseF || b == p.trueF {
		return p.trueF
	}
	if a == p.trueF {
		return b
	}
	if b == p.falseF {
		return p.Not(a)
	}
	return p.binary(FKImplies, a, b)
}

func (p *Pool) binary(kind FormulaKind, a, b *Formula) *Formula {
	key := fmt.Sprintf("%d:%d:%d", kind, a.id, b.id)
	return p.internFormula(key, func(id uint64) *Formula {
		return &Formula{
			id:        id,
			kind:      kind,
			children:  []*Formula{a, b},
			freeAtoms: unionAtoms(a.freeAtoms, b.freeAtoms),
			freeReals: unionReals(a.freeReals, b.freeReals),
		}
	})
}

// IteFormula returns ITE(cond, then, els): then if cond holds, els
// otherwise. Constant conditions collapse immediately.
func (p *Pool) IteFormula(cond, then, els *Formula) *Formula {
	if cond == p.trueF {
		return then
	}
	if cond == p.falseF {
		return els
	}
	if then == els {
		return then
	}
	if then == p.trueF && els == p.falseF {
		return cond
	}
	if then == p.falseF && els == p.trueF {
		return p.Not(cond)
	}
	key := fmt.Sprintf("I:%d:%d:%d", cond.id, then.id, els.id)
	return p.internFormula(key, func(id uint64) *Formula {
		return &Formula{
			id:        id,
			kind:      FKIte,
			cond:      cond,
			ifTrue:    then,
			ifFalse:   els,
			freeAtoms: unionAtoms(cond.freeAtoms, then.freeAtoms, els.freeAtoms),
			freeReals: unionReals(cond.freeReals, then.freeReals, els.freeReals),
		}
	})
}

// AtomsOf returns the sorted, deduplicated set of atoms free in f.
// O(1): every node caches this set at construction time.
func AtomsOf(f *Formula) []AtomID { return append([]AtomID(nil), f.freeAtoms...) }

// RealsOf returns the sorted, deduplicated set of real variables free
// in f.
func RealsOf(f *Formula) []RealID { return append([]RealID(nil), f.freeReals...) }
