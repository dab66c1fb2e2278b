package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// TransientError marks an error as retryable (network hiccup, timeout,
// connection reset). Wrap store or upstream failures with it when a later
// attempt can reasonably succeed.
type TransientError struct {
	Err error
}

func NewTransientError(err error) *TransientError {
	return &TransientError{Err: err}
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func (e *TransientError) Is(target error) bool {
	var t *TransientError
	ok := errors.As(target, &t)
	return ok
}

// ConflictError marks a store rejection caused by a unique-constraint race:
// another writer inserted the same key between our lookup and insert.
type ConflictError struct {
	Err error
}

func NewConflictError(err error) *ConflictError {
	return &ConflictError{Err: err}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %v", e.Err)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

func (e *ConflictError) Is(target error) bool {
	var t *ConflictError
	ok := errors.As(target, &t)
	return ok
}

// IsTransient reports whether err should be retried. Classification is by
// error type, not message text.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var marker *TransientError
	if errors.As(err, &marker) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	return false
}
