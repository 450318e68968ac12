package wmi

import "math/big"

// Result is the value a Compute/ComputeMany call returns for one
// query: an exact rational sum when every contributing cell used an
// exact backend, or an IEEE-754 approximation once any cell fell back
// to a sampling backend.
type Result struct {
	Rat   *big.Rat
	Float float64
	Exact bool

	// Partial reports whether at least one integration cell hit its
	// per-job deadline under WithBestEffort and contributed 0 instead
	// of its true value (spec taxonomy: PartialResult). A Partial
	// result is a sound lower bound, never an overestimate, since
	// every weight is non-negative.
	Partial bool
}

// AsFloat returns the best available float64 view of the result.
func (r Result) AsFloat() float64 {
	if r.Exact {
		f, _ := r.Rat.Float64()
		return f
	}
	return r.Float
}
