// Package ratelimit provides per-identity fixed-window request limiting for
// the search endpoint.
package ratelimit

import (
	"context"
	"time"
)

const (
	DefaultWindow          = 60 * time.Second
	DefaultMaxRequests     = 60
	DefaultCleanupInterval = 5 * time.Minute
)

type Result struct {
	Allowed    bool
	RetryAfter time.Duration // rounded up to whole seconds when denied
}

// Limiter decides whether an identity may issue another request in the
// current window. Implementations must never undercount; overcounting is not
// safety-critical.
type Limiter interface {
	Check(ctx context.Context, identity string) (Result, error)
}
