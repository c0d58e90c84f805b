package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountNotActive  = errors.New("account is not active")
	ErrAccountIncomplete = errors.New("account is missing required fields")

	// Transfer errors
	ErrInvalidAmount     = errors.New("transaction amount must be positive")
	ErrSameAccount       = errors.New("cannot transfer to same account")
	ErrCurrencyMismatch  = errors.New("cannot transfer between different currencies")
	ErrInsufficientFunds = errors.New("insufficient funds in source account")

	// Persistence errors
	ErrVersionConflict     = errors.New("account version conflict")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidStatusChange = errors.New("invalid transaction status change")

	// ErrTransferFailed marks a transfer that could not be completed after
	// exhausting the retry budget or hitting a systemic failure.
	ErrTransferFailed = errors.New("transfer failed")
)

// RateLimitError rejects an action throttled by the sliding-window limiter.
// RetryAfter is the configured hint, not a value recomputed from window state.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}
