package retry

import (
	"context"
	"errors"
)

var ErrMaxAttemptsExceeded = errors.New("max attempts exceeded")

type permanentError struct {
	error
}

func (err permanentError) Unwrap() error { return err.error }

// Permanent marks err so that no policy retries it.
func Permanent(err error) error {
	if err == nil || !Retryable(err) {
		return err
	}
	return permanentError{err}
}

func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var p permanentError
	return !errors.As(err, &p)
}
