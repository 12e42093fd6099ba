// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assignments

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errFlaky = errors.New("flaky")

func TestRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	got, err := Retry(context.Background(), Policy{Attempts: 3}, func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errFlaky
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if got != 42 || calls != 3 {
		t.Errorf("got %d after %d calls", got, calls)
	}
}

func TestRetryExhausted(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), Policy{Attempts: 3, Delay: time.Millisecond}, func(context.Context) (string, error) {
		calls++
		return "", errFlaky
	})
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Errorf("expected ErrRetriesExhausted, got %v", err)
	}
	if !errors.Is(err, errFlaky) {
		t.Errorf("expected last error to be wrapped, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryStopsOnNonRetryable(t *testing.T) {
	fatal := errors.New("fatal")
	calls := 0
	_, err := Retry(context.Background(), Policy{
		Attempts:  5,
		Retryable: func(err error) bool { return errors.Is(err, errFlaky) },
	}, func(context.Context) (int, error) {
		calls++
		return 0, fatal
	})
	if !errors.Is(err, fatal) || errors.Is(err, ErrRetriesExhausted) {
		t.Errorf("expected fatal unwrapped, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetryZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), Policy{}, func(context.Context) (int, error) {
		calls++
		return 0, errFlaky
	})
	if calls != 1 || !errors.Is(err, ErrRetriesExhausted) {
		t.Errorf("expected one exhausted call, got %d calls, %v", calls, err)
	}
}

func TestRetryHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Retry(ctx, Policy{Attempts: 10, Delay: time.Hour}, func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, errFlaky
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}
