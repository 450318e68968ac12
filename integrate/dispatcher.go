package integrate

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/wmi/ir"
	"github.com/katalvlaran/wmi/poly"
	"github.com/katalvlaran/wmi/polytope"
)

// Dispatcher layers the fast paths, fingerprint cache, single-flight
// coalescing and bounded worker pool of spec.md §4.5 on top of a
// pluggable base Integrator (and an optional Fallback for polytopes
// the base rejects), grounded on the teacher's FlowOptions
// options-struct-with-normalize pattern.
type Dispatcher struct {
	base     Integrator
	fallback Integrator
	workers  int
	logger   *zap.SugaredLogger

	cacheMu sync.RWMutex
	cache   map[string]Result
	group   singleflight.Group
}

// DispatcherOption configures a Dispatcher at construction time.
type DispatcherOption func(*Dispatcher)

// WithFallback sets the backend tried when base returns
// ErrNotAxisAligned (e.g. a RejectionSampler behind an
// AxisAlignedExact base).
func WithFallback(fb Integrator) DispatcherOption {
	return func(d *Dispatcher) { d.fallback = fb }
}

// WithWorkers bounds the concurrency of IntegrateBatch. Default 1
// (sequential).
func WithWorkers(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithLogger attaches a structured logger for cache/fallback
// diagnostics.
func WithLogger(l *zap.SugaredLogger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// NewDispatcher constructs a Dispatcher. base must not be nil
// (ErrNoBaseIntegrator at first Integrate call otherwise).
func NewDispatcher(base Integrator, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		base:    base,
		workers: 1,
		logger:  zap.NewNop().Sugar(),
		cache:   make(map[string]Result),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Integrate applies the fast paths, then the cache, then the base (or
// fallback) backend, storing the result under the cell's fingerprint.
func (d *Dispatcher) Integrate(ctx context.Context, pt *polytope.Polytope, p *poly.Polynomial) (Result, error) {
	if d.base == nil {
		return Result{}, ErrNoBaseIntegrator
	}
	if pt.IsEmptyTrivially() {
		return zeroExact(), nil
	}
	if p.IsZero() {
		return zeroExact(), nil
	}
	if box, ok := pt.AsBox(); ok {
		if c, isConst := p.AsConstant(); isConst {
			return constantOverBox(box, c), nil
		}
	}

	key := fingerprint(pt, p)
	d.cacheMu.RLock()
	if r, ok := d.cache[key]; ok {
		d.cacheMu.RUnlock()
		return r, nil
	}
	d.cacheMu.RUnlock()

	v, err, _ := d.group.Do(key, func() (interface{}, error) {
		r, err := d.integrateVia(ctx, pt, p)
		if err != nil {
			return nil, err
		}
		d.cacheMu.Lock()
		d.cache[key] = r
		d.cacheMu.Unlock()
		return r, nil
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (d *Dispatcher) integrateVia(ctx context.Context, pt *polytope.Polytope, p *poly.Polynomial) (Result, error) {
	r, err := d.base.Integrate(ctx, pt, p)
	if err == nil {
		return r, nil
	}
	if d.fallback == nil || !errors.Is(err, ErrNotAxisAligned) {
		return Result{}, err
	}
	d.logger.Debugw("base integrator declined cell, trying fallback", "err", err)
	return d.fallback.Integrate(ctx, pt, p)
}

// IntegrateBatch integrates every job over a worker pool of size
// Dispatcher.workers, returning results in the same order as jobs.
func (d *Dispatcher) IntegrateBatch(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			r, err := d.Integrate(gctx, j.Polytope, j.Polynomial)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// constantOverBox computes c · ∏ᵢ(hᵢ-lᵢ) directly, the spec's axis
// -aligned constant-integrand fast path (§4.5 #3), bypassing the base
// integrator entirely.
func constantOverBox(box map[ir.RealID]polytope.Interval, c *big.Rat) Result {
	if c.Sign() == 0 {
		return zeroExact()
	}
	total := new(big.Rat).Set(c)
	for _, iv := range box {
		if iv.Lo == nil || iv.Hi == nil {
			continue
		}
		if iv.Empty() {
			return zeroExact()
		}
		w := new(big.Rat).Sub(iv.Hi, iv.Lo)
		total.Mul(total, w)
	}
	return Result{Rat: total, Exact: true}
}
