package integrate

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/wmi/ir"
	"github.com/katalvlaran/wmi/poly"
	"github.com/katalvlaran/wmi/polytope"
)

// RejectionSampler is the general-purpose base Integrator: it draws
// uniform points from an axis-aligned bounding box enclosing the
// polytope and estimates the integral as
// (accepted fraction) · (box volume) · (mean polynomial value over
// accepted points). It is the fallback for polytopes AxisAlignedExact
// rejects, and the only backend this module ships that handles
// non-axis-aligned H-representations, matching spec.md §4.5's base
// integrator sampling variant.
type RejectionSampler struct {
	// Bounds supplies the enclosing box for polytopes that are not
	// themselves axis-aligned; required in that case (ErrBoundsRequired
	// otherwise). Axis-aligned polytopes use their own box and ignore
	// this field.
	Bounds map[ir.RealID]polytope.Interval

	// NSamples is the number of points drawn per Integrate call.
	NSamples int

	// Seed seeds the deterministic PRNG stream for one Integrate call,
	// so repeated calls with the same seed reproduce the same estimate
	// (spec.md §5 "reproducible only... with a fixed seed").
	Seed uint64
}

// NewRejectionSampler returns a sampler with the given sample count
// and seed and no configured bounding box; set Bounds for
// non-axis-aligned polytopes.
func NewRejectionSampler(nSamples int, seed uint64) *RejectionSampler {
	return &RejectionSampler{NSamples: nSamples, Seed: seed}
}

func (s *RejectionSampler) Integrate(ctx context.Context, pt *polytope.Polytope, p *poly.Polynomial) (Result, error) {
	if pt.IsEmptyTrivially() {
		return zeroExact(), nil
	}
	if p.IsZero() {
		return zeroExact(), nil
	}

	box, ok := pt.AsBox()
	if !ok {
		if s.Bounds == nil {
			return Result{}, ErrBoundsRequired
		}
		box = s.Bounds
	}

	order := pt.Order
	if len(order) == 0 {
		order = p.Vars()
	}
	lo := make([]float64, len(order))
	hi := make([]float64, len(order))
	volume := 1.0
	for i, id := range order {
		iv, ok := box[id]
		if !ok || iv.Lo == nil || iv.Hi == nil {
			return Result{}, ErrBoundsRequired
		}
		if iv.Empty() {
			return zeroExact(), nil
		}
		l, _ := iv.Lo.Float64()
		h, _ := iv.Hi.Float64()
		lo[i], hi[i] = l, h
		volume *= h - l
	}

	n := s.NSamples
	if n <= 0 {
		n = 10000
	}
	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))

	idx := make(map[ir.RealID]int, len(order))
	for i, id := range order {
		idx[id] = i
	}
	constraints := floatConstraints(pt.Constraints)
	var accepted int
	var sum, sumSq float64
	point := make([]float64, len(order))
	for i := 0; i < n; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		for j := range order {
			point[j] = lo[j] + rng.Float64()*(hi[j]-lo[j])
		}
		if !insidePolytope(point, idx, constraints) {
			continue
		}
		accepted++
		v := evalFloat(p, idx, point)
		sum += v
		sumSq += v * v
	}

	if accepted == 0 {
		return zeroExact(), nil
	}
	mean := sum / float64(accepted)
	acceptRate := float64(accepted) / float64(n)
	estimate := volume * acceptRate * mean

	variance := sumSq/float64(accepted) - mean*mean
	if variance < 0 {
		variance = 0
	}
	stdErr := volume * acceptRate * math.Sqrt(variance/float64(accepted))

	return Result{Float: estimate, StdError: stdErr, Exact: false}, nil
}

func (s *RejectionSampler) IntegrateBatch(ctx context.Context, jobs []Job) ([]Result, error) {
	return sequentialBatch(ctx, s, jobs)
}

type floatConstraint struct {
	coeffs map[ir.RealID]float64
	bound  float64
	strict bool
}

func floatConstraints(cs []*ir.LRAAtom) []floatConstraint {
	out := make([]floatConstraint, len(cs))
	for i, c := range cs {
		coeffs := make(map[ir.RealID]float64, len(c.Coeffs))
		for id, v := range c.Coeffs {
			f, _ := v.Float64()
			coeffs[id] = f
		}
		b, _ := c.Bound.Float64()
		out[i] = floatConstraint{coeffs: coeffs, bound: b, strict: c.Strict}
	}
	return out
}

func insidePolytope(point []float64, idx map[ir.RealID]int, constraints []floatConstraint) bool {
	for _, c := range constraints {
		sum := 0.0
		for id, coeff := range c.coeffs {
			sum += coeff * point[idx[id]]
		}
		if c.strict {
			if !(sum < c.bound) {
				return false
			}
		} else {
			if !(sum <= c.bound) {
				return false
			}
		}
	}
	return true
}

func evalFloat(p *poly.Polynomial, idx map[ir.RealID]int, point []float64) float64 {
	total := 0.0
	for _, m := range p.Monomials() {
		c, _ := m.Coeff.Float64()
		term := c
		for id, e := range m.Exps {
			x := point[idx[id]]
			for i := 0; i < e; i++ {
				term *= x
			}
		}
		total += term
	}
	return total
}
