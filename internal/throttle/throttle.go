// Package throttle rate-limits calls to external providers.
package throttle

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Default configuration values, tuned for the embedding provider's
// free-tier limits.
const (
	DefaultBatchSize = 5
	DefaultInterval  = time.Second
)

// Throttle is a token-bucket limiter that admits bursts of batchSize
// calls and sustains batchSize calls per interval. It replaces ad-hoc
// sleeps between provider calls with an explicit backpressure policy.
type Throttle struct {
	limiter *rate.Limiter
}

// New creates a throttle allowing batchSize calls per interval.
// Non-positive arguments fall back to the defaults.
func New(batchSize int, interval time.Duration) *Throttle {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Throttle{
		limiter: rate.NewLimiter(rate.Every(interval/time.Duration(batchSize)), batchSize),
	}
}

// Wait blocks until the next call is permitted or the context ends.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// Allow reports whether a call is permitted right now without blocking.
func (t *Throttle) Allow() bool {
	return t.limiter.Allow()
}
