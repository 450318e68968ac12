package enumerate

import (
	"context"

	"github.com/katalvlaran/wmi/ir"
)

// State is a position in the enumerator's Idle→Preparing→Streaming→
// Done|Errored lifecycle (spec §4.6).
type State uint8

const (
	StateIdle State = iota
	StatePreparing
	StateStreaming
	StateDone
	StateErrored
)

// String renders the state for logs and test failure messages.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePreparing:
		return "Preparing"
	case StateStreaming:
		return "Streaming"
	case StateDone:
		return "Done"
	case StateErrored:
		return "Errored"
	default:
		return "Unknown"
	}
}

// Assignment is one emitted model cell: Values assigns every atom the
// enumerator decided (Boolean atoms it branched on or forced, and
// every LRA atom — LRA atoms are never left unassigned). K is the
// count of Boolean atoms Values deliberately omits because they are
// irrelevant to Δ at this cell; the cell represents 2^K total models.
type Assignment struct {
	Values map[ir.AtomID]bool
	K      int
}

// Enumerator produces a lazy, cancellable stream of Assignment values
// covering every model of a formula exactly once (spec §4.3/§4.6).
//
// Start must be called once before Next; Next blocks until the next
// assignment is ready, the stream is exhausted (ok=false, err=nil), or
// an error occurs. Cancel releases the underlying search goroutine
// without requiring the consumer to drain remaining assignments.
type Enumerator interface {
	Start(pool *ir.Pool, delta *ir.Formula) error
	Next(ctx context.Context) (Assignment, bool, error)
	Cancel()
	State() State
}
