package wmi

import (
	"context"
	"errors"
	"math/big"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/wmi/decompose"
	"github.com/katalvlaran/wmi/env"
	"github.com/katalvlaran/wmi/enumerate"
	"github.com/katalvlaran/wmi/integrate"
	"github.com/katalvlaran/wmi/ir"
	"github.com/katalvlaran/wmi/lra"
	"github.com/katalvlaran/wmi/polytope"
)

// EnumeratorFactory constructs a fresh Enumerator bound to decider,
// one per Compute/ComputeMany call (an Enumerator is single-use:
// Start may only be called once). enumerate.NewTotalEnumerator and
// enumerate.NewStructureAwareEnumerator both have this shape.
type EnumeratorFactory func(decider lra.Decider) enumerate.Enumerator

// Solver is the single orchestrator wiring decompose, enumerate and
// integrate together, grounded on the teacher's BuildGraph pattern: one
// entry point over a validated, explicitly constructed configuration.
type Solver struct {
	newEnumerator  EnumeratorFactory
	integrator     integrate.Integrator
	decider        lra.Decider
	deadline       time.Duration
	perJobDeadline time.Duration
	logger         *zap.SugaredLogger
}

// WmiSolver constructs a Solver. newEnumerator and integrator must not
// be nil (ErrNoEnumerator / ErrNoIntegrator otherwise).
func WmiSolver(newEnumerator EnumeratorFactory, integrator integrate.Integrator, opts ...SolverOption) (*Solver, error) {
	if newEnumerator == nil {
		return nil, ErrNoEnumerator
	}
	if integrator == nil {
		return nil, ErrNoIntegrator
	}
	s := &Solver{
		newEnumerator: newEnumerator,
		integrator:    integrator,
		decider:       lra.FourierMotzkin{},
		logger:        zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Compute returns WMI(support ∧ query, weight).
func (s *Solver) Compute(ctx context.Context, e *env.Environment, support *ir.Formula, weight *ir.Term, query *ir.Formula) (Result, error) {
	out, err := s.ComputeMany(ctx, e, support, weight, []*ir.Formula{query})
	if err != nil {
		return Result{}, err
	}
	return out[0], nil
}

// ComputeMany evaluates several queries against one shared support and
// weight, decomposing the weight exactly once (spec.md §6:
// "Multiple queries reuse the shared support and weight").
func (s *Solver) ComputeMany(ctx context.Context, e *env.Environment, support *ir.Formula, weight *ir.Term, queries []*ir.Formula) ([]Result, error) {
	if s.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.deadline)
		defer cancel()
	}

	pool := e.Pool()
	decomposition, err := decompose.Decompose(pool, weight)
	if err != nil {
		return nil, err
	}
	order := unionRealOrder(ir.TermRealsOf(weight), ir.RealsOf(support))

	out := make([]Result, len(queries))
	for i, q := range queries {
		r, err := s.computeOne(ctx, e, pool, support, decomposition, q, order)
		if err != nil {
			return nil, translateErr(err)
		}
		out[i] = r
	}
	return out, nil
}

func (s *Solver) computeOne(
	ctx context.Context,
	e *env.Environment,
	pool *ir.Pool,
	support *ir.Formula,
	decomposition *decompose.Decomposition,
	query *ir.Formula,
	baseOrder []ir.RealID,
) (Result, error) {
	delta := pool.And(support, query, decomposition.Skeleton)
	order := unionRealOrder(baseOrder, ir.RealsOf(delta))

	enumerator := s.newEnumerator(s.decider)
	if err := enumerator.Start(pool, delta); err != nil {
		return Result{}, err
	}
	defer enumerator.Cancel()

	log := e.With("stage", "enumerate", "state", "start")
	var jobs []integrate.Job
	for {
		a, ok, err := enumerator.Next(ctx)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}
		leaf, err := decomposition.LeafOf(a.Values)
		if err != nil {
			return Result{}, err
		}
		pt := polytope.Build(pool, a.Values, order)
		jobs = append(jobs, integrate.Job{Polytope: pt, Polynomial: leaf, K: a.K})
	}
	log.Debugw("enumeration complete", "cells", len(jobs))

	return s.integrateJobs(ctx, jobs)
}

// batchIntegrator is implemented by integrate.AxisAlignedExact,
// integrate.RejectionSampler and integrate.Dispatcher; a plain
// Integrator that doesn't implement it falls back to a sequential
// loop over Integrate.
type batchIntegrator interface {
	IntegrateBatch(ctx context.Context, jobs []integrate.Job) ([]integrate.Result, error)
}

func (s *Solver) integrateJobs(ctx context.Context, jobs []integrate.Job) (Result, error) {
	if len(jobs) == 0 {
		return Result{Rat: big.NewRat(0, 1), Exact: true}, nil
	}

	if s.perJobDeadline > 0 {
		return s.integrateJobsBestEffort(ctx, jobs)
	}

	var results []integrate.Result
	if bi, ok := s.integrator.(batchIntegrator); ok {
		r, err := bi.IntegrateBatch(ctx, jobs)
		if err != nil {
			return Result{}, err
		}
		results = r
	} else {
		for _, j := range jobs {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			r, err := s.integrator.Integrate(ctx, j.Polytope, j.Polynomial)
			if err != nil {
				return Result{}, err
			}
			results = append(results, r)
		}
	}
	return accumulate(jobs, results, false), nil
}

func (s *Solver) integrateJobsBestEffort(ctx context.Context, jobs []integrate.Job) (Result, error) {
	results := make([]integrate.Result, len(jobs))
	partial := false
	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		jobCtx, cancel := context.WithTimeout(ctx, s.perJobDeadline)
		r, err := s.integrator.Integrate(jobCtx, j.Polytope, j.Polynomial)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				s.logger.Warnw("integration job exceeded per-job deadline, contributing 0", "cell", i)
				results[i] = integrate.Result{Rat: big.NewRat(0, 1), Exact: true}
				partial = true
				continue
			}
			return Result{}, err
		}
		results[i] = r
	}
	return accumulate(jobs, results, partial), nil
}

// accumulate sums 2^k·result over every cell, staying exact (big.Rat)
// as long as every contributing cell was exact, and tracking a
// parallel float64 sum unconditionally so a caller can read Result
// even when Exact degrades to false partway through.
func accumulate(jobs []integrate.Job, results []integrate.Result, partial bool) Result {
	acc := big.NewRat(0, 1)
	var accFloat float64
	exact := true
	for i, r := range results {
		mult := new(big.Int).Lsh(big.NewInt(1), uint(jobs[i].K))
		multRat := new(big.Rat).SetInt(mult)

		if r.Exact {
			term := new(big.Rat).Mul(r.Rat, multRat)
			acc.Add(acc, term)
		} else {
			exact = false
		}
		multF, _ := multRat.Float64()
		accFloat += r.AsFloat() * multF
	}
	return Result{Rat: acc, Float: accFloat, Exact: exact, Partial: partial}
}

// translateErr maps a lower-layer error onto the wmi taxonomy where
// the lower layer only had a context error to report: an expired
// deadline (WithDeadline's or the caller's own) surfaces as
// ErrEnumerationTimeout, a cancellation as ErrCancelled. Every other
// error (ErrUnsupportedWeight,
// ErrLeafUnderdetermined, ErrInternalInconsistency, lra.ErrCancelled,
// integrate's sentinels, ...) passes through unchanged: it is already
// exactly the condition the caller needs to see.
func translateErr(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrEnumerationTimeout
	case errors.Is(err, context.Canceled):
		return ErrCancelled
	default:
		return err
	}
}

func unionRealOrder(a, b []ir.RealID) []ir.RealID {
	seen := make(map[ir.RealID]bool, len(a)+len(b))
	out := make([]ir.RealID, 0, len(a)+len(b))
	for _, ids := range [][]ir.RealID{a, b} {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
