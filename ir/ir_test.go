package ir_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wmi/ir"
)

func TestHashConsing_SameStructureSamePointer(t *testing.T) {
	p := ir.NewPool()
	a, err := p.InternBoolAtom("A")
	require.NoError(t, err)
	b, err := p.InternBoolAtom("B")
	require.NoError(t, err)

	f1 := p.And(p.Lit(a, false), p.Lit(b, false))
	f2 := p.And(p.Lit(b, false), p.Lit(a, false)) // reversed order
	require.Same(t, f1, f2, "And must canonicalize operand order")
}

func TestNot_PushedToLiterals(t *testing.T) {
	p := ir.NewPool()
	a, _ := p.InternBoolAtom("A")
	b, _ := p.InternBoolAtom("B")
	conj := p.And(p.Lit(a, false), p.Lit(b, false))
	negated := p.Not(conj)
	require.Equal(t, ir.FKOr, negated.Kind())
	for _, c := range negated.Children() {
		require.Equal(t, ir.FKLit, c.Kind())
	}
}

func TestAnd_ShortCircuitsOnFalse(t *testing.T) {
	p := ir.NewPool()
	a, _ := p.InternBoolAtom("A")
	require.Same(t, p.False(), p.And(p.Lit(a, false), p.False()))
}

func TestSubstitute_FoldsConstants(t *testing.T) {
	p := ir.NewPool()
	a, _ := p.InternBoolAtom("A")
	b, _ := p.InternBoolAtom("B")
	f := p.And(p.Lit(a, false), p.Lit(b, false))

	out := p.Substitute(f, map[ir.AtomID]bool{a: true})
	require.Same(t, p.Lit(b, false), out)

	out2 := p.Substitute(f, map[ir.AtomID]bool{a: false})
	require.Same(t, p.False(), out2)
}

func TestLRA_CanonicalizesGEIntoLEFamily(t *testing.T) {
	p := ir.NewPool()
	x, _ := p.InternReal("x")
	le, err := p.LE(map[ir.RealID]*big.Rat{x: big.NewRat(1, 1)}, big.NewRat(5, 1), false)
	require.NoError(t, err)
	// x >= 5 rewritten as -x <= -5, same canonical atom as "-x <= -5" built directly.
	ge, err := p.GE(map[ir.RealID]*big.Rat{x: big.NewRat(1, 1)}, big.NewRat(5, 1), false)
	require.NoError(t, err)
	leNeg, err := p.LE(map[ir.RealID]*big.Rat{x: big.NewRat(-1, 1)}, big.NewRat(-5, 1), false)
	require.NoError(t, err)
	require.Same(t, leNeg, ge)
	require.NotSame(t, le, ge)
}

func TestEQ_RewritesToConjunction(t *testing.T) {
	p := ir.NewPool()
	x, _ := p.InternReal("x")
	eq, err := p.EQ(map[ir.RealID]*big.Rat{x: big.NewRat(1, 1)}, big.NewRat(2, 1))
	require.NoError(t, err)
	require.Equal(t, ir.FKAnd, eq.Kind())
	require.Len(t, eq.Children(), 2)
}

func TestIteTerm_CollapsesOnConstantCondition(t *testing.T) {
	p := ir.NewPool()
	x, _ := p.InternReal("x")
	vx := p.Var(x)
	two := p.ConstInt(2)
	ite := p.IteTerm(p.True(), vx, two)
	require.Same(t, vx, ite)
}

func TestSubstituteTerm_CollapsesIteUnderAssignment(t *testing.T) {
	p := ir.NewPool()
	a, _ := p.InternBoolAtom("A")
	x, _ := p.InternReal("x")
	vx := p.Var(x)
	two := p.ConstInt(2)
	ite := p.IteTerm(p.Lit(a, false), vx, two)

	out := p.SubstituteTerm(ite, map[ir.AtomID]bool{a: true})
	require.Same(t, vx, out)

	out2 := p.SubstituteTerm(ite, map[ir.AtomID]bool{a: false})
	require.Same(t, two, out2)
}

func TestPlusTimes_FoldConstants(t *testing.T) {
	p := ir.NewPool()
	sum := p.Plus(p.ConstInt(1), p.ConstInt(2), p.ConstInt(3))
	require.Equal(t, ir.TKConst, sum.Kind())
	require.Equal(t, big.NewRat(6, 1), sum.Const())

	prod := p.Times(p.ConstInt(0), p.Var(mustReal(p, "x")))
	require.Equal(t, ir.TKConst, prod.Kind())
	require.Equal(t, int64(0), prod.Const().Num().Int64())
}

func mustReal(p *ir.Pool, name string) ir.RealID {
	id, err := p.InternReal(name)
	if err != nil {
		panic(err)
	}
	return id
}

func TestToCNF_DistributesOrOverAnd(t *testing.T) {
	p := ir.NewPool()
	a, _ := p.InternBoolAtom("A")
	b, _ := p.InternBoolAtom("B")
	c, _ := p.InternBoolAtom("C")
	f := p.Or(p.And(p.Lit(a, false), p.Lit(b, false)), p.Lit(c, false))
	cnf := p.ToCNF(f)
	require.Equal(t, ir.FKAnd, cnf.Kind())
	for _, clause := range cnf.Children() {
		require.Contains(t, []ir.FormulaKind{ir.FKOr, ir.FKLit}, clause.Kind())
	}
}

func TestAtomsOf_And_RealsOf(t *testing.T) {
	p := ir.NewPool()
	a, _ := p.InternBoolAtom("A")
	x, _ := p.InternReal("x")
	le, err := p.LE(map[ir.RealID]*big.Rat{x: big.NewRat(1, 1)}, big.NewRat(0, 1), false)
	require.NoError(t, err)
	lraAtom, _ := le.Atom()
	f := p.And(p.Lit(a, false), le)

	atoms := ir.AtomsOf(f)
	require.ElementsMatch(t, []ir.AtomID{a, lraAtom}, atoms)
	require.ElementsMatch(t, []ir.RealID{x}, ir.RealsOf(f))
}
