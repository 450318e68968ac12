package enumerate

import (
	"context"
	"sync"

	"github.com/katalvlaran/wmi/ir"
)

// produceFunc runs one enumerator's search algorithm, calling emit for
// every assignment it finds. emit returns false when the consumer has
// stopped reading (Cancel or a dropped context); produceFunc must stop
// promptly when that happens. A non-nil return is a fatal error
// (ErrInternalInconsistency, a decider failure, ...).
type produceFunc func(ctx context.Context, pool *ir.Pool, delta *ir.Formula, emit func(Assignment) bool) error

// base implements the Idle→Preparing→Streaming→Done|Errored state
// machine and the lazy producer-goroutine/channel plumbing shared by
// TotalEnumerator and StructureAwareEnumerator, mirroring the
// teacher's pattern of one shared driver loop behind interchangeable
// algorithms (flow's three max-flow variants over one FlowOptions).
type base struct {
	mu      sync.Mutex
	state   State
	pool    *ir.Pool
	delta   *ir.Formula
	produce produceFunc

	ch      chan Assignment
	errCh   chan error
	cancel  context.CancelFunc
	started bool
}

func (b *base) start(pool *ir.Pool, delta *ir.Formula) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateIdle {
		return ErrAlreadyStarted
	}
	b.pool = pool
	b.delta = delta
	b.ch = make(chan Assignment)
	b.errCh = make(chan error, 1)
	b.state = StatePreparing
	return nil
}

func (b *base) ensureRunning(ctx context.Context) {
	if b.started {
		return
	}
	b.started = true
	runCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	pool, delta, produce := b.pool, b.delta, b.produce
	ch, errCh := b.ch, b.errCh
	go func() {
		defer close(ch)
		emit := func(a Assignment) bool {
			select {
			case ch <- a:
				return true
			case <-runCtx.Done():
				return false
			}
		}
		if err := produce(runCtx, pool, delta, emit); err != nil {
			errCh <- err
		}
	}()
}

func (b *base) next(ctx context.Context) (Assignment, bool, error) {
	b.mu.Lock()
	switch b.state {
	case StateIdle:
		b.mu.Unlock()
		return Assignment{}, false, ErrNotStarted
	case StateDone, StateErrored:
		st := b.state
		b.mu.Unlock()
		if st == StateErrored {
			select {
			case err := <-b.errCh:
				return Assignment{}, false, err
			default:
			}
		}
		return Assignment{}, false, nil
	}
	b.ensureRunning(ctx)
	b.state = StateStreaming
	ch, errCh := b.ch, b.errCh
	b.mu.Unlock()

	select {
	case a, ok := <-ch:
		if ok {
			return a, true, nil
		}
		// Producer goroutine finished: either exhausted the search or
		// failed. Exactly one of these is true by construction.
		select {
		case err := <-errCh:
			b.mu.Lock()
			b.state = StateErrored
			b.mu.Unlock()
			return Assignment{}, false, err
		default:
			b.mu.Lock()
			b.state = StateDone
			b.mu.Unlock()
			return Assignment{}, false, nil
		}
	case <-ctx.Done():
		b.cancel2()
		return Assignment{}, false, ctx.Err()
	}
}

func (b *base) cancel2() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelLocked()
}

func (b *base) cancelLocked() {
	if b.cancel != nil {
		b.cancel()
	}
	if b.state != StateDone && b.state != StateErrored {
		b.state = StateDone
	}
}

func (b *base) stateOf() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
