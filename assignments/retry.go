// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assignments

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrRetriesExhausted wraps the last error once every attempt has failed.
var ErrRetriesExhausted = errors.New("retries exhausted")

// Policy bounds a retry loop. Retryable decides which errors earn another
// attempt; a nil Retryable retries everything.
type Policy struct {
	Attempts  int
	Delay     time.Duration
	Retryable func(error) bool
}

// Retry runs fn until it succeeds, returns a non-retryable error, or uses
// up the attempts. It waits Delay between attempts and stops early if ctx
// is cancelled.
func Retry[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	attempts := max(p.Attempts, 1)

	for attempt := 1; ; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return zero, err
		}
		if attempt >= attempts {
			return zero, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempt, err)
		}

		timer := time.NewTimer(p.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
