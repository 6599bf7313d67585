package utils

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, Logger: NewLoggerWithLevel(io.Discard, slog.LevelInfo)}

	calls := 0
	err := r.Do("ping", func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
}

func TestRetryWrapsLastError(t *testing.T) {
	sentinel := errors.New("still down")
	r := &RetryConfig{MaxAttempts: 2}

	calls := 0
	err := r.Do("ping", func() error {
		calls++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
	if calls != 2 {
		t.Errorf("calls: got %d, want 2", calls)
	}
}

func TestRetryNonPositiveAttemptsRunsOnce(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 0}
	calls := 0
	_ = r.Do("once", func() error {
		calls++
		return errors.New("fail")
	})
	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
}
