package ir

// ToNNF rewrites f into negation-normal form: only ⊤, ⊥, literals, And
// and Or survive; Iff/Implies/Xor/Ite are expanded via their standard
// definitions. Because Not() already pushes negation to literals, the
// only work left here is eliminating the non-NNF connectives.
func (p *Pool) ToNNF(f *Formula) *Formula {
	memo := make(map[*Formula]*Formula)
	var walk func(*Formula) *Formula
	walk = func(n *Formula) *Formula {
		if v, ok := memo[n]; ok {
			return v
		}
		var out *Formula
		switch n.kind {
		case FKConstTrue, FKConstFalse, FKLit:
			out = n
		case FKAnd:
			out = p.And(walkAll(walk, n.children)...)
		case FKOr:
			out = p.Or(walkAll(walk, n.children)...)
		case FKImplies:
			a, b := walk(n.children[0]), walk(n.children[1])
			out = p.Or(p.Not(a), b)
		case FKIff:
			a, b := walk(n.children[0]), walk(n.children[1])
			out = p.Or(p.And(a, b), p.And(p.Not(a), p.Not(b)))
		case FKXor:
			a, b := walk(n.children[0]), walk(n.children[1])
			out = p.Or(p.And(a, p.Not(b)), p.And(p.Not(a), b))
		case FKIte:
			c, t, e := walk(n.cond), walk(n.ifTrue), walk(n.ifFalse)
			out = p.Or(p.And(c, t), p.And(p.Not(c), e))
		default:
			panic("ir: ToNNF: unreachable formula kind")
		}
		memo[n] = out
		return out
	}
	return walk(f)
}

// ToCNF rewrites f into conjunctive normal form by first reducing to
// NNF, then distributing Or over And. This is the textbook algorithm,
// not a Tseitin transform: it preserves logical equivalence exactly
// (no auxiliary variables) at the cost of a worst-case exponential
// blow-up, acceptable here because the enumerator (package enumerate)
// never calls it on the hot path — it exists to satisfy callers that
// need a genuine CNF (e.g. handing a formula to an external DIMACS
// -speaking SAT backend).
func (p *Pool) ToCNF(f *Formula) *Formula {
	nnf := p.ToNNF(f)
	memo := make(map[*Formula]*Formula)
	var walk func(*Formula) *Formula
	walk = func(n *Formula) *Formula {
		if v, ok := memo[n]; ok {
			return v
		}
		var out *Formula
		switch n.kind {
		case FKConstTrue, FKConstFalse, FKLit:
			out = n
		case FKAnd:
			out = p.And(walkAll(walk, n.children)...)
		case FKOr:
			clauses := walkAll(walk, n.children)
			out = p.distributeOr(clauses)
		default:
			panic("ir: ToCNF: non-NNF node after ToNNF")
		}
		memo[n] = out
		return out
	}
	return walk(nnf)
}

// distributeOr combines already-CNF operands of an Or into one CNF
// formula via repeated pairwise distribution:
// (a1∧a2∧...) ∨ (b1∧b2∧...) = ⋀_{i,j} (ai ∨ bj).
func (p *Pool) distributeOr(operands []*Formula) *Formula {
	acc := operands[0]
	for _, next := range operands[1:] {
		acc = p.distributePair(acc, next)
	}
	return acc
}

func (p *Pool) distributePair(a, b *Formula) *Formula {
	aClauses := conjuncts(a)
	bClauses := conjuncts(b)
	out := make([]*Formula, 0, len(aClauses)*len(bClauses))
	for _, ca := range aClauses {
		for _, cb := range bClauses {
			out = append(out, p.Or(ca, cb))
		}
	}
	return p.And(out...)
}

// conjuncts returns f's top-level And operands, or [f] if f is not an
// And node (including literals and constants).
func conjuncts(f *Formula) []*Formula {
	if f.kind == FKAnd {
		return f.children
	}
	return []*Formula{f}
}
