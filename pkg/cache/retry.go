package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a remote cache backend that could not be reached.
var ErrNetwork = errors.New("network error")

type retryableError struct{ error }

func (e retryableError) Unwrap() error { return e.error }

// Retryable marks err as transient. Only marked errors are retried by
// [Backoff.Do]; Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryableError{err}
}

// IsRetryable reports whether err, or anything it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var re retryableError
	return errors.As(err, &re)
}

// Backoff retries an operation with exponentially growing pauses.
type Backoff struct {
	Attempts int
	Delay    time.Duration // first pause; doubles after every attempt
}

// DefaultBackoff is used by backends created without an explicit policy.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 100 * time.Millisecond}

// Do calls fn until it succeeds, returns an error not marked [Retryable], or
// the attempts run out. It gives up early when ctx is done.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
