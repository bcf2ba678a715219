package app

import (
	"time"

	"github.com/okian/payerlens/internal/refdata"
	"github.com/okian/payerlens/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock injects the time source used for experience and timelines.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithStore sets the reference tables store.
func WithStore(s *refdata.Store) Option {
	return func(e *Engine) {
		if s != nil {
			e.store = s
		}
	}
}

// WithWorkers bounds concurrent items in batch runs.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithSeed seeds the market outlook projection.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithDefaultServiceCount sets the service count assumed for physicians
// without one.
func WithDefaultServiceCount(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.defaultServiceCount = n
		}
	}
}
