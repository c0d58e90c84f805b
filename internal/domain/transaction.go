package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a transaction record.
type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "PENDING"
	TransactionProcessing TransactionStatus = "PROCESSING"
	TransactionRetrying   TransactionStatus = "RETRYING"
	TransactionCompleted  TransactionStatus = "COMPLETED"
	TransactionFailed     TransactionStatus = "FAILED"
)

// Terminal reports whether the status never transitions further.
func (s TransactionStatus) Terminal() bool {
	return s == TransactionCompleted || s == TransactionFailed
}

// transitions lists the allowed forward moves of the state machine.
// COMPLETED and FAILED are terminal; RETRYING must resolve to COMPLETED
// or FAILED (through PROCESSING on the next attempt).
var transitions = map[TransactionStatus][]TransactionStatus{
	TransactionPending:    {TransactionProcessing, TransactionRetrying, TransactionFailed},
	TransactionProcessing: {TransactionCompleted, TransactionRetrying, TransactionFailed},
	TransactionRetrying:   {TransactionProcessing, TransactionCompleted, TransactionFailed},
}

// CanTransitionTo reports whether next is a legal move from s.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransactionType is the kind of money movement recorded.
type TransactionType string

const (
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Transaction is the append-style audit record of one transfer attempt.
// Only Status and Description are updated in place as the lifecycle advances.
type Transaction struct {
	TransactionID            string
	SourceAccountNumber      string
	DestinationAccountNumber string
	Amount                   decimal.Decimal
	Currency                 string
	Type                     TransactionType
	Status                   TransactionStatus
	Description              string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// SetStatus advances the state machine, rejecting moves that would go
// backwards or resurrect a terminal record.
func (t *Transaction) SetStatus(next TransactionStatus, at time.Time) error {
	if !t.Status.CanTransitionTo(next) {
		return ErrInvalidStatusChange
	}
	t.Status = next
	t.UpdatedAt = at
	return nil
}
