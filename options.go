package wmi

import (
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/wmi/lra"
)

// SolverOption configures a Solver at construction time.
type SolverOption func(*Solver)

// WithDecider overrides the LRA feasibility decider the enumerator
// consults. Default is lra.FourierMotzkin{}.
func WithDecider(d lra.Decider) SolverOption {
	return func(s *Solver) {
		if d != nil {
			s.decider = d
		}
	}
}

// WithDeadline sets a per-query wall-clock deadline. Expiry cancels
// the enumerator and Compute returns ErrEnumerationTimeout. Zero (the
// default) means no deadline beyond whatever the caller's ctx carries.
func WithDeadline(d time.Duration) SolverOption {
	return func(s *Solver) { s.deadline = d }
}

// WithBestEffort enables per-integration-job deadlines: a cell whose
// integration exceeds perJob contributes 0 and the overall Result is
// marked Partial instead of failing the whole query. Disabled (the
// zero value) means every job runs to completion or the whole query
// fails.
func WithBestEffort(perJob time.Duration) SolverOption {
	return func(s *Solver) { s.perJobDeadline = perJob }
}

// WithLogger attaches a structured logger for the Solver's own events
// (best-effort per-job timeouts). Stage events such as enumeration
// completion are still logged through env.Environment's logger.
func WithLogger(l *zap.SugaredLogger) SolverOption {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}
