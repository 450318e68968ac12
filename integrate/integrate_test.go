package integrate_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wmi/integrate"
	"github.com/katalvlaran/wmi/ir"
	"github.com/katalvlaran/wmi/poly"
	"github.com/katalvlaran/wmi/polytope"
)

// unitBox builds the polytope 0<=x<=1 ∧ 0<=y<=1 (spec.md Scenario B).
func unitBox(t *testing.T) (*ir.Pool, *polytope.Polytope, ir.RealID, ir.RealID) {
	t.Helper()
	p := ir.NewPool()
	x, _ := p.InternReal("x")
	y, _ := p.InternReal("y")
	xLo, _ := p.InternLRA(map[ir.RealID]*big.Rat{x: big.NewRat(-1, 1)}, big.NewRat(0, 1), false, false)
	xHi, _ := p.InternLRA(map[ir.RealID]*big.Rat{x: big.NewRat(1, 1)}, big.NewRat(1, 1), false, false)
	yLo, _ := p.InternLRA(map[ir.RealID]*big.Rat{y: big.NewRat(-1, 1)}, big.NewRat(0, 1), false, false)
	yHi, _ := p.InternLRA(map[ir.RealID]*big.Rat{y: big.NewRat(1, 1)}, big.NewRat(1, 1), false, false)
	assignment := map[ir.AtomID]bool{xLo: true, xHi: true, yLo: true, yHi: true}
	pt := polytope.Build(p, assignment, []ir.RealID{x, y})
	return p, pt, x, y
}

func TestAxisAlignedExact_ScenarioB_UnitSquare(t *testing.T) {
	_, pt, _, _ := unitBox(t)
	w := poly.Constant(big.NewRat(1, 1))
	var integ integrate.AxisAlignedExact
	res, err := integ.Integrate(context.Background(), pt, w)
	require.NoError(t, err)
	require.True(t, res.Exact)
	require.Equal(t, big.NewRat(1, 1), res.Rat)
}

func TestAxisAlignedExact_LinearIntegrand(t *testing.T) {
	_, pt, x, _ := unitBox(t)
	w := poly.Linear(x) // ∫₀¹∫₀¹ x dy dx = 1/2
	var integ integrate.AxisAlignedExact
	res, err := integ.Integrate(context.Background(), pt, w)
	require.NoError(t, err)
	require.True(t, res.Exact)
	require.Equal(t, big.NewRat(1, 2), res.Rat)
}

func TestAxisAlignedExact_QuadraticIntegrand(t *testing.T) {
	p := ir.NewPool()
	x, _ := p.InternReal("x")
	lo, _ := p.InternLRA(map[ir.RealID]*big.Rat{x: big.NewRat(-1, 1)}, big.NewRat(0, 1), false, false)
	hi, _ := p.InternLRA(map[ir.RealID]*big.Rat{x: big.NewRat(1, 1)}, big.NewRat(1, 1), false, false)
	pt := polytope.Build(p, map[ir.AtomID]bool{lo: true, hi: true}, []ir.RealID{x})

	w := poly.Mul(poly.Linear(x), poly.Linear(x)) // x^2

	var integ integrate.AxisAlignedExact
	res, err := integ.Integrate(context.Background(), pt, w)
	require.NoError(t, err)
	require.True(t, res.Exact)
	require.Equal(t, big.NewRat(1, 3), res.Rat, "∫₀¹ x² dx = 1/3")
}

func TestAxisAlignedExact_RejectsNonAxisAligned(t *testing.T) {
	p := ir.NewPool()
	x, _ := p.InternReal("x")
	y, _ := p.InternReal("y")
	a, _ := p.InternLRA(map[ir.RealID]*big.Rat{x: big.NewRat(1, 1), y: big.NewRat(-1, 1)}, big.NewRat(0, 1), false, false)
	pt := polytope.Build(p, map[ir.AtomID]bool{a: true}, []ir.RealID{x, y})
	w := poly.Constant(big.NewRat(1, 1))
	var integ integrate.AxisAlignedExact
	_, err := integ.Integrate(context.Background(), pt, w)
	require.ErrorIs(t, err, integrate.ErrNotAxisAligned)
}

func TestDispatcher_ConstantFastPathAvoidsBaseIntegrator(t *testing.T) {
	_, pt, _, _ := unitBox(t)
	w := poly.Constant(big.NewRat(1, 1))
	failing := failingIntegrator{}
	d := integrate.NewDispatcher(failing)
	res, err := d.Integrate(context.Background(), pt, w)
	require.NoError(t, err, "constant-over-box must short-circuit before the base integrator runs")
	require.True(t, res.Exact)
	require.Equal(t, big.NewRat(1, 1), res.Rat)
}

type failingIntegrator struct{}

func (failingIntegrator) Integrate(context.Context, *polytope.Polytope, *poly.Polynomial) (integrate.Result, error) {
	panic("base integrator must not be called for the constant fast path")
}

func TestDispatcher_CachesAcrossIdenticalCells(t *testing.T) {
	_, pt, x, _ := unitBox(t)
	w := poly.Linear(x)
	counting := &countingIntegrator{}
	d := integrate.NewDispatcher(counting)

	r1, err := d.Integrate(context.Background(), pt, w)
	require.NoError(t, err)
	r2, err := d.Integrate(context.Background(), pt, w)
	require.NoError(t, err)
	require.Equal(t, r1, r2)
	require.Equal(t, 1, counting.calls, "second call must be served from cache")
}

type countingIntegrator struct{ calls int }

func (c *countingIntegrator) Integrate(_ context.Context, _ *polytope.Polytope, _ *poly.Polynomial) (integrate.Result, error) {
	c.calls++
	return integrate.Result{Rat: big.NewRat(1, 2), Exact: true}, nil
}

func TestDispatcher_FallsBackWhenBaseRejects(t *testing.T) {
	p := ir.NewPool()
	x, _ := p.InternReal("x")
	y, _ := p.InternReal("y")
	a, _ := p.InternLRA(map[ir.RealID]*big.Rat{x: big.NewRat(1, 1), y: big.NewRat(-1, 1)}, big.NewRat(0, 1), false, false)
	pt := polytope.Build(p, map[ir.AtomID]bool{a: true}, []ir.RealID{x, y})
	w := poly.Linear(x)

	var base integrate.AxisAlignedExact
	fb := &countingIntegrator{}
	d := integrate.NewDispatcher(base, integrate.WithFallback(fb))

	res, err := d.Integrate(context.Background(), pt, w)
	require.NoError(t, err)
	require.Equal(t, 1, fb.calls)
	require.True(t, res.Exact)
}

func TestDispatcher_IntegrateBatchPreservesOrder(t *testing.T) {
	_, pt, x, _ := unitBox(t)
	w1 := poly.Constant(big.NewRat(1, 1))
	w2 := poly.Linear(x)
	d := integrate.NewDispatcher(integrate.AxisAlignedExact{}, integrate.WithWorkers(4))

	jobs := []integrate.Job{{Polytope: pt, Polynomial: w1}, {Polytope: pt, Polynomial: w2}}
	results, err := d.IntegrateBatch(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, big.NewRat(1, 1), results[0].Rat)
	require.Equal(t, big.NewRat(1, 2), results[1].Rat)
}

func TestRejectionSampler_ApproximatesUnitSquareVolume(t *testing.T) {
	_, pt, _, _ := unitBox(t)
	w := poly.Constant(big.NewRat(1, 1))
	s := integrate.NewRejectionSampler(20000, 42)
	res, err := s.Integrate(context.Background(), pt, w)
	require.NoError(t, err)
	require.False(t, res.Exact)
	require.InDelta(t, 1.0, res.AsFloat(), 0.05)
}

func TestRejectionSampler_RequiresBoundsForNonAxisAligned(t *testing.T) {
	p := ir.NewPool()
	x, _ := p.InternReal("x")
	y, _ := p.InternReal("y")
	a, _ := p.InternLRA(map[ir.RealID]*big.Rat{x: big.NewRat(1, 1), y: big.NewRat(-1, 1)}, big.NewRat(0, 1), false, false)
	pt := polytope.Build(p, map[ir.AtomID]bool{a: true}, []ir.RealID{x, y})
	w := poly.Constant(big.NewRat(1, 1))
	s := integrate.NewRejectionSampler(100, 1)
	_, err := s.Integrate(context.Background(), pt, w)
	require.ErrorIs(t, err, integrate.ErrBoundsRequired)
}
