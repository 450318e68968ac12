package wmi_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wmi"
	"github.com/katalvlaran/wmi/env"
	"github.com/katalvlaran/wmi/integrate"
	"github.com/katalvlaran/wmi/ir"
)

// Property 1 (spec.md §8): with weight == 1, WMI reduces to the
// Lebesgue volume of the support's feasible region.
func TestProperty_UnweightedReducesToVolume(t *testing.T) {
	e := env.New()
	p := e.Pool()
	x, _ := p.InternReal("x")
	xLo := mustLit(t, p.GE(ir.NewLinExpr().Add(x, rat(1, 1)).Coeffs(), rat(0, 1), false))
	xHi := mustLit(t, p.LE(ir.NewLinExpr().Add(x, rat(1, 1)).Coeffs(), rat(2, 1), false))
	support := p.And(xLo, xHi)
	weight := p.Const(rat(1, 1))

	solver, err := wmi.WmiSolver(totalFactory, integrate.AxisAlignedExact{})
	require.NoError(t, err)
	r, err := solver.Compute(context.Background(), e, support, weight, p.True())
	require.NoError(t, err)
	require.True(t, r.Exact)
	require.Equal(t, rat(2, 1), r.Rat)
}

// Property 2 (spec.md §8): WMI(χ, w, φ1 ∧ φ2) == WMI(χ ∧ φ1, w, φ2);
// conjoining a query into the support rather than passing it
// separately must not change the result.
func TestProperty_QueryConjunctionIsAssociativeWithSupport(t *testing.T) {
	e, support, weight, x := buildScenarioA(t)
	p := e.Pool()

	solver, err := wmi.WmiSolver(totalFactory, integrate.AxisAlignedExact{})
	require.NoError(t, err)

	xGe1_5 := mustLit(t, p.GE(ir.NewLinExpr().Add(x, rat(1, 1)).Coeffs(), rat(3, 2), false))

	direct, err := solver.Compute(context.Background(), e, support, weight, xGe1_5)
	require.NoError(t, err)

	folded, err := solver.Compute(context.Background(), e, p.And(support, xGe1_5), weight, p.True())
	require.NoError(t, err)

	require.Equal(t, direct.Rat, folded.Rat)
}

// Property 3 (spec.md §8): WMI is linear in the weight: scaling every
// leaf of w by a constant c scales the result by c.
func TestProperty_LinearInWeight(t *testing.T) {
	e := env.New()
	p := e.Pool()
	x, _ := p.InternReal("x")
	xLo := mustLit(t, p.GE(ir.NewLinExpr().Add(x, rat(1, 1)).Coeffs(), rat(0, 1), false))
	xHi := mustLit(t, p.LE(ir.NewLinExpr().Add(x, rat(1, 1)).Coeffs(), rat(1, 1), false))
	support := p.And(xLo, xHi)

	solver, err := wmi.WmiSolver(totalFactory, integrate.AxisAlignedExact{})
	require.NoError(t, err)

	base, err := solver.Compute(context.Background(), e, support, p.Var(x), p.True())
	require.NoError(t, err)

	scaled, err := solver.Compute(context.Background(), e, support, p.Times(p.Const(rat(3, 1)), p.Var(x)), p.True())
	require.NoError(t, err)

	want := new(big.Rat).Mul(base.Rat, rat(3, 1))
	require.Equal(t, want, scaled.Rat)
}

// Property 5 (spec.md §8): StructureAwareEnumerator and TotalEnumerator
// must agree exactly on every query, since the former only skips
// atoms the latter would have branched over redundantly.
func TestProperty_StructureAwareAgreesWithTotal(t *testing.T) {
	e := env.New()
	p := e.Pool()
	a, _ := p.InternBoolAtom("A")
	b, _ := p.InternBoolAtom("B")
	x, _ := p.InternReal("x")

	xLo := mustLit(t, p.GE(ir.NewLinExpr().Add(x, rat(1, 1)).Coeffs(), rat(0, 1), false))
	xHi := mustLit(t, p.LE(ir.NewLinExpr().Add(x, rat(1, 1)).Coeffs(), rat(1, 1), false))
	taut := func(atom ir.AtomID) *ir.Formula { return p.Or(p.Lit(atom, false), p.Lit(atom, true)) }
	support := p.And(taut(a), taut(b), xLo, xHi)
	weight := p.IteTerm(p.Lit(a, false), p.Var(x), p.Times(p.Const(rat(2, 1)), p.Var(x)))

	total, err := wmi.WmiSolver(totalFactory, integrate.AxisAlignedExact{})
	require.NoError(t, err)
	structured, err := wmi.WmiSolver(structureAwareFactory, integrate.AxisAlignedExact{})
	require.NoError(t, err)

	rt, err := total.Compute(context.Background(), e, support, weight, p.True())
	require.NoError(t, err)
	rs, err := structured.Compute(context.Background(), e, support, weight, p.True())
	require.NoError(t, err)

	require.Equal(t, rt.Rat, rs.Rat)
}

// Property 7 (spec.md §8): the integration cache is idempotent —
// computing the same query twice through one Solver returns the same
// exact rational both times.
func TestProperty_CacheIdempotence(t *testing.T) {
	e, support, weight, _ := buildScenarioA(t)
	p := e.Pool()

	dispatcher := integrate.NewDispatcher(integrate.AxisAlignedExact{})
	solver, err := wmi.WmiSolver(totalFactory, dispatcher)
	require.NoError(t, err)

	r1, err := solver.Compute(context.Background(), e, support, weight, p.True())
	require.NoError(t, err)
	r2, err := solver.Compute(context.Background(), e, support, weight, p.True())
	require.NoError(t, err)

	require.Equal(t, r1.Rat, r2.Rat)
}
