package env

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/wmi/ir"
)

// Environment is the one object a WMI computation is built from: an
// interning Pool, a structured logger and a stable per-query ID used
// to tag diagnostics (see With) across concurrent queries sharing a
// process. Construct one with New and pass it by pointer;
// Environment holds no package-level state of its own.
type Environment struct {
	pool   *ir.Pool
	logger *zap.SugaredLogger
	id     string
}

// Option configures an Environment at construction time.
type Option func(*Environment)

// WithLogger attaches a structured logger. Default is a no-op logger,
// so a query pays no logging cost unless a caller opts in.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(e *Environment) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPool attaches a pre-populated Pool instead of starting from an
// empty one, letting a caller build up a formula across several helper
// functions before constructing the Environment that will solve it.
func WithPool(p *ir.Pool) Option {
	return func(e *Environment) {
		if p != nil {
			e.pool = p
		}
	}
}

// WithID overrides the generated query ID, e.g. to correlate it with
// an externally assigned request ID.
func WithID(id string) Option {
	return func(e *Environment) {
		if id != "" {
			e.id = id
		}
	}
}

// New constructs an Environment. A fresh Pool is allocated unless
// WithPool supplies one; a fresh random ID is minted unless WithID
// supplies one.
func New(opts ...Option) *Environment {
	e := &Environment{
		pool:   ir.NewPool(),
		logger: zap.NewNop().Sugar(),
		id:     uuid.NewString(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Pool returns the Environment's interning arena.
func (e *Environment) Pool() *ir.Pool { return e.pool }

// Logger returns the Environment's structured logger.
func (e *Environment) Logger() *zap.SugaredLogger { return e.logger }

// ID returns the Environment's query identifier.
func (e *Environment) ID() string { return e.id }

// With returns a child logger with the query ID and any extra fields
// attached, for call sites that want to tag every log line for this
// query without threading e.ID() through manually.
func (e *Environment) With(fields ...interface{}) *zap.SugaredLogger {
	return e.logger.With(append([]interface{}{"query_id", e.id}, fields...)...)
}
