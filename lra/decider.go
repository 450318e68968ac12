package lra

import (
	"context"

	"github.com/katalvlaran/wmi/ir"
)

// Decider answers whether a finite set of canonical LRA half-spaces
// has a common solution. Implementations must be safe for concurrent
// use by independent goroutines (no shared mutable state across
// calls), matching the enumerator's one-decider-per-query-shared-across
// workers usage.
type Decider interface {
	// Feasible reports whether constraints has a common real solution.
	// A nil/empty constraints slice is trivially feasible.
	Feasible(ctx context.Context, constraints []*ir.LRAAtom) (bool, error)
}
