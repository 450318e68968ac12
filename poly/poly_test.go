package poly_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wmi/ir"
	"github.com/katalvlaran/wmi/poly"
)

func TestFromTerm_LinearCombination(t *testing.T) {
	p := ir.NewPool()
	x, _ := p.InternReal("x")
	y, _ := p.InternReal("y")
	// x + 2y
	term := p.Plus(p.Var(x), p.Times(p.ConstInt(2), p.Var(y)))

	pol, err := poly.FromTerm(term)
	require.NoError(t, err)
	point := map[ir.RealID]*big.Rat{x: big.NewRat(3, 1), y: big.NewRat(4, 1)}
	require.Equal(t, big.NewRat(11, 1), pol.Eval(point))
}

func TestFromTerm_RejectsResidualIte(t *testing.T) {
	p := ir.NewPool()
	a, _ := p.InternBoolAtom("A")
	x, _ := p.InternReal("x")
	ite := p.IteTerm(p.Lit(a, false), p.Var(x), p.ConstInt(0))

	_, err := poly.FromTerm(ite)
	require.ErrorIs(t, err, poly.ErrNonPolynomialLeaf)
}

func TestMul_DistributesAndCollectsLikeTerms(t *testing.T) {
	p := ir.NewPool()
	x, _ := p.InternReal("x")
	// (x+1)*(x+1) = x^2 + 2x + 1
	xPlus1, err := poly.FromTerm(p.Plus(p.Var(x), p.ConstInt(1)))
	require.NoError(t, err)
	squared := poly.Mul(xPlus1, xPlus1)

	point := map[ir.RealID]*big.Rat{x: big.NewRat(3, 1)}
	require.Equal(t, big.NewRat(16, 1), squared.Eval(point))
}

func TestAsConstant(t *testing.T) {
	c, ok := poly.Constant(big.NewRat(5, 2)).AsConstant()
	require.True(t, ok)
	require.Equal(t, big.NewRat(5, 2), c)

	x := ir.RealID(0)
	_, ok = poly.Linear(x).AsConstant()
	require.False(t, ok)
}
