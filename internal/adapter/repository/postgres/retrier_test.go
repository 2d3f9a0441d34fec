package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

func TestRetrierRetriesOnRetryableError(t *testing.T) {
	r := NewRetrier(zerolog.Nop())
	r.maxRetries = 2
	r.initialInterval = 1 * time.Millisecond
	r.maxInterval = 2 * time.Millisecond
	r.maxElapsedTime = 10 * time.Millisecond

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return &pgconn.PgError{Code: pgErrDeadlock}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetrierStopsOnPermanentError(t *testing.T) {
	r := NewRetrier(zerolog.Nop())
	attempts := 0
	permanentErr := errors.New("permanent")

	err := r.Retry(context.Background(), func() error {
		attempts++
		return permanentErr
	})

	if !errors.Is(err, permanentErr) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestRetrierGivesUpAfterMaxRetries(t *testing.T) {
	r := NewRetrierWithConfig(RetryConfig{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		MaxElapsedTime:  time.Second,
	}, zerolog.Nop())

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		return &pgconn.PgError{Code: pgErrSerializationFailure}
	})

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgErrSerializationFailure {
		t.Fatalf("expected serialization failure, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestNewRetrierWithConfigKeepsDefaults(t *testing.T) {
	r := NewRetrierWithConfig(RetryConfig{MaxRetries: 7}, zerolog.Nop())
	def := NewRetrier(zerolog.Nop())

	if r.maxRetries != 7 || r.initialInterval != def.initialInterval || r.maxElapsedTime != def.maxElapsedTime {
		t.Fatalf("unexpected retrier settings: %+v", r)
	}
}

func TestRetryableCode(t *testing.T) {
	for _, code := range []string{pgErrDeadlock, pgErrSerializationFailure, pgErrLockNotAvailable} {
		got, ok := retryableCode(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: code}))
		if !ok || got != code {
			t.Fatalf("expected %s to be retryable, got %q %v", code, got, ok)
		}
	}

	if _, ok := retryableCode(&pgconn.PgError{Code: pgErrCheckViolation}); ok {
		t.Fatalf("expected check violation to be non-retryable")
	}

	if _, ok := retryableCode(errors.New("other")); ok {
		t.Fatalf("expected generic error to be non-retryable")
	}
}
