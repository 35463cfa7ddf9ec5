// Package errors provides utilities for categorizing and handling errors in the consensus engine.
package errors

import (
	"context"
	"errors"
)

// IsRetryableError determines if an error is transient and the operation should be retried.
// A header that failed verification with a retryable error may become valid for this node
// once the chain reader recovers; it must not be marked invalid.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Check if context was cancelled - not retryable
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var tErr *Error
	if As(err, &tErr) {
		switch tErr.Code() {
		case ERR_SERVICE_UNAVAILABLE,
			ERR_STORAGE_UNAVAILABLE,
			ERR_STORAGE_ERROR:
			return true
		}
	}

	return false
}

// IsBlockRejection determines if an error is a permanent consensus rejection, meaning
// the header will never be valid regardless of which node verifies it.
//
// Parameters:
//   - err: Error to check
//
// Returns:
//   - bool: true if the header must be rejected
func IsBlockRejection(err error) bool {
	if err == nil {
		return false
	}

	var tErr *Error
	if As(err, &tErr) {
		switch tErr.Code() {
		case ERR_BLOCK_INVALID,
			ERR_BLOCK_INVALID_ALGO,
			ERR_BLOCK_INVALID_DIFFICULTY,
			ERR_BLOCK_INVALID_SOLUTION:
			return true
		}
	}

	return false
}

// IsContextError determines if an error is related to context cancellation or deadline.
func IsContextError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var tErr *Error
	if As(err, &tErr) {
		return tErr.Code() == ERR_CONTEXT_CANCELED
	}

	return false
}
