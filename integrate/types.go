package integrate

import (
	"context"
	"math/big"

	"github.com/katalvlaran/wmi/poly"
	"github.com/katalvlaran/wmi/polytope"
)

// Result is the value produced by integrating one (polytope,
// polynomial) cell: an exact rational from an exact backend, or an
// IEEE-754 approximation with an accompanying error estimate from a
// sampling backend.
type Result struct {
	Rat      *big.Rat
	Float    float64
	Exact    bool
	StdError float64
}

// AsFloat returns the best available float64 view of the result.
func (r Result) AsFloat() float64 {
	if r.Exact {
		f, _ := r.Rat.Float64()
		return f
	}
	return r.Float
}

// zeroExact is the canonical "contributes nothing" result, reused by
// every fast path that short-circuits to 0.
func zeroExact() Result { return Result{Rat: big.NewRat(0, 1), Exact: true} }

// Job is one unit of dispatcher work: a cell's polytope and leaf
// polynomial, paired with the 2^k multiplier its k unassigned Boolean
// atoms imply.
type Job struct {
	Polytope   *polytope.Polytope
	Polynomial *poly.Polynomial
	K          int
}

// Integrator computes ∫_polytope polynomial dx for one cell. Exact
// implementations return Result.Exact == true with a populated Rat;
// sampling implementations return Result.Exact == false with Float
// and StdError populated.
type Integrator interface {
	Integrate(ctx context.Context, pt *polytope.Polytope, p *poly.Polynomial) (Result, error)
}

// sequentialBatch integrates every job in order, the default
// IntegrateBatch behavior for a base Integrator that has no cheaper
// batched strategy of its own; Dispatcher overrides this with a
// bounded worker pool.
func sequentialBatch(ctx context.Context, integrator Integrator, jobs []Job) ([]Result, error) {
	out := make([]Result, len(jobs))
	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := integrator.Integrate(ctx, j.Polytope, j.Polynomial)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}
