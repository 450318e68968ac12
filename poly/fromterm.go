package poly

import "github.com/katalvlaran/wmi/ir"

// FromTerm converts an ITE-free ir.Term into a Polynomial by
// distributing products of sums and collecting like terms. It returns
// ErrNonPolynomialLeaf if t still contains a TKIte node — that can
// only happen if a caller skipped the weight decomposer (package
// decompose), whose whole job is to remove every ITE from a term
// before this function ever sees it.
func FromTerm(t *ir.Term) (*Polynomial, error) {
	switch t.Kind() {
	case ir.TKConst:
		return Constant(t.Const()), nil
	case ir.TKVar:
		return Linear(t.Var()), nil
	case ir.TKPlus:
		acc := Zero()
		for _, a := range t.Args() {
			p, err := FromTerm(a)
			if err != nil {
				return nil, err
			}
			acc = Add(acc, p)
		}
		return acc, nil
	case ir.TKMinus:
		a, err := FromTerm(t.Args()[0])
		if err != nil {
			return nil, err
		}
		b, err := FromTerm(t.Args()[1])
		if err != nil {
			return nil, err
		}
		return Sub(a, b), nil
	case ir.TKTimes:
		acc := Constant(bigOne())
		for _, a := range t.Args() {
			p, err := FromTerm(a)
			if err != nil {
				return nil, err
			}
			acc = Mul(acc, p)
		}
		return acc, nil
	case ir.TKIte:
		return nil, ErrNonPolynomialLeaf
	default:
		return nil, ErrNonPolynomialLeaf
	}
}
