package lra

import "errors"

// ErrCancelled indicates the context passed to Feasible was cancelled
// or timed out before the elimination finished.
var ErrCancelled = errors.New("lra: feasibility check cancelled")
