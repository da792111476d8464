package resilience

import "errors"

var (
	// ErrMaxRetriesExceeded is returned when every attempt failed with a
	// retryable error. It wraps the last error.
	ErrMaxRetriesExceeded = errors.New("resilience: max retries exceeded")

	// ErrTimeout is returned when an attempt exceeds its deadline. It wraps
	// the error the attempt returned.
	ErrTimeout = errors.New("resilience: operation timed out")
)
