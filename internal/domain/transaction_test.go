package domain

import (
	"testing"
	"time"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    TransactionStatus
		to      TransactionStatus
		allowed bool
	}{
		{TransactionPending, TransactionProcessing, true},
		{TransactionPending, TransactionRetrying, true},
		{TransactionPending, TransactionFailed, true},
		{TransactionPending, TransactionCompleted, false},
		{TransactionProcessing, TransactionCompleted, true},
		{TransactionProcessing, TransactionRetrying, true},
		{TransactionProcessing, TransactionFailed, true},
		{TransactionProcessing, TransactionPending, false},
		{TransactionRetrying, TransactionProcessing, true},
		{TransactionRetrying, TransactionFailed, true},
		{TransactionCompleted, TransactionFailed, false},
		{TransactionCompleted, TransactionProcessing, false},
		{TransactionFailed, TransactionRetrying, false},
		{TransactionFailed, TransactionCompleted, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []TransactionStatus{TransactionCompleted, TransactionFailed} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []TransactionStatus{TransactionPending, TransactionProcessing, TransactionRetrying} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestSetStatus(t *testing.T) {
	now := time.Now().UTC()
	txn := &Transaction{Status: TransactionPending}

	if err := txn.SetStatus(TransactionProcessing, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.Status != TransactionProcessing {
		t.Fatalf("expected PROCESSING, got %s", txn.Status)
	}
	if !txn.UpdatedAt.Equal(now) {
		t.Errorf("expected UpdatedAt to advance")
	}

	if err := txn.SetStatus(TransactionPending, now); err != ErrInvalidStatusChange {
		t.Fatalf("expected ErrInvalidStatusChange, got %v", err)
	}

	if err := txn.SetStatus(TransactionCompleted, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := txn.SetStatus(TransactionFailed, now); err != ErrInvalidStatusChange {
		t.Fatalf("terminal record must not be resurrected, got %v", err)
	}
}
