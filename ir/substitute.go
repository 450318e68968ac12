package ir

// Substitute replaces every literal over an atom present in assignment
// with the corresponding ⊤/⊥ constant and rebuilds the formula bottom
// -up through the smart constructors, so constant folding (§4.2
// "Simplification preserves satisfying models exactly") cascades
// automatically. Atoms absent from assignment are left free.
//
// Substitute is pure: f is untouched, a (possibly identical, due to
// hash-consing) node is returned. Memoized per call by node identity
// so a DAG with shared subexpressions is only walked once.
func (p *Pool) Substitute(f *Formula, assignment map[AtomID]bool) *Formula {
	memo := make(map[*Formula]*Formula)
	var walk func(*Formula) *Formula
	walk = func(n *Formula) *Formula {
		if v, ok := memo[n]; ok {
			return v
		}
		var out *Formula
		switch n.kind {
		case FKConstTrue, FKConstFalse:
			out = n
		case FKLit:
			if v, ok := assignment[n.atom]; ok {
				if v != n.neg {
					out = p.trueF
				} else {
					out = p.falseF
				}
			} else {
				out = n
			}
		case FKAnd:
			out = p.And(walkAll(walk, n.children)...)
		case FKOr:
			out = p.Or(walkAll(walk, n.children)...)
		case FKIff:
			out = p.Iff(walk(n.children[0]), walk(n.children[1]))
		case FKXor:
			out = p.Xor(walk(n.children[0]), walk(n.children[1]))
		case FKImplies:
			out = p.Implies(walk(n.children[0]), walk(n.children[1]))
		case FKIte:
			out = p.IteFormula(walk(n.cond), walk(n.ifTrue), walk(n.ifFalse))
		default:
			panic("ir: Substitute: unreachable formula kind")
		}
		memo[n] = out
		return out
	}
	return walk(f)
}

func walkAll(walk func(*Formula) *Formula, fs []*Formula) []*Formula {
	out := make([]*Formula, len(fs))
	for i, f := range fs {
		out[i] = walk(f)
	}
	return out
}

// SubstituteTerm replaces every ITE condition reachable in t with its
// value under assignment, collapsing branches whose condition becomes
// constant, and leaves TKVar/TKConst leaves untouched. This is how the
// weight decomposer's leaf registry (package decompose) turns a label
// polarity vector into a concrete, ITE-free polynomial term.
func (p *Pool) SubstituteTerm(t *Term, assignment map[AtomID]bool) *Term {
	memo := make(map[*Term]*Term)
	var walk func(*Term) *Term
	walk = func(n *Term) *Term {
		if v, ok := memo[n]; ok {
			return v
		}
		var out *Term
		switch n.kind {
		case TKConst, TKVar:
			out = n
		case TKPlus:
			out = p.Plus(walkAllTerms(walk, n.args)...)
		case TKTimes:
			out = p.Times(walkAllTerms(walk, n.args)...)
		case TKMinus:
			out = p.Minus(walk(n.args[0]), walk(n.args[1]))
		case TKIte:
			out = p.IteTerm(p.Substitute(n.cond, assignment), walk(n.ifTrue), walk(n.ifFalse))
		default:
			panic("ir: SubstituteTerm: unreachable term kind")
		}
		memo[n] = out
		return out
	}
	return walk(t)
}

func walkAllTerms(walk func(*Term) *Term, ts []*Term) []*Term {
	out := make([]*Term, len(ts))
	for i, t := range ts {
		out[i] = walk(t)
	}
	return out
}

// Simplify re-interns f through the smart constructors. Because every
// constructor already folds constants and absorbs identities/annihil-
// ators at build time, a node produced by this package is already in
// normal form, so Simplify is the identity function; it exists so the
// IR's public surface matches spec.md §4.2's operation list and so
// callers never need to special-case "did this come from outside the
// pool."
func Simplify(f *Formula) *Formula { return f }

// IsDetermined reports whether f is the constant ⊤ or ⊥ formula, and
// if so, its value. An assignment μ "determines" ψ (§3) iff
// Substitute(ψ, μ) satisfies IsDetermined.
func IsDetermined(f *Formula) (value, ok bool) {
	switch f.kind {
	case FKConstTrue:
		return true, true
	case FKConstFalse:
		return false, true
	default:
		return false, false
	}
}
