package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared by the content host clients.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// RetryableError marks an error as transient.
type RetryableError struct{ Err error }

// Retryable wraps err as a [RetryableError]. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Default retry policy.
const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second
)

// RetryWithBackoff runs fn with the default policy: 3 attempts, waiting 1s
// then 2s. Only errors wrapped with [Retryable] trigger retries.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, DefaultAttempts, DefaultDelay, fn)
}

// Retry runs fn up to attempts times, doubling delay after each retryable
// failure. It returns the last error, or ctx.Err() if ctx ends while waiting.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
