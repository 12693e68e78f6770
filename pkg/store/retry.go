package store

import (
	"context"
	stderrors "errors"
	"time"
)

// retryDelay is the first backoff delay; it doubles on every attempt.
var retryDelay = time.Second

// retryableError marks a transient backend failure.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// retryable wraps err so that [retry] tries again.
func retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

func isRetryable(err error) bool {
	var re *retryableError
	return stderrors.As(err, &re)
}

// retry runs fn up to 3 times with exponential backoff.
// Only errors wrapped with retryable trigger another attempt. The returned
// error has the retry marker removed.
func retry(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := retryDelay
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
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
	var re *retryableError
	if stderrors.As(lastErr, &re) {
		return re.err
	}
	return lastErr
}
