package domain

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account statuses.
const (
	AccountStatusActive = "ACTIVE"
	AccountStatusFrozen = "FROZEN"
	AccountStatusClosed = "CLOSED"
)

// Account types.
const (
	AccountTypeSavings  = "SAVINGS"
	AccountTypeChecking = "CHECKING"
)

const accountNumberPrefix = "ACC-"

// Account represents a bank account holding a balance.
// Version is the optimistic concurrency token: it increases by exactly one
// per successful update, and a write against a stale version must fail.
type Account struct {
	AccountNumber string
	HolderName    string
	AccountType   string
	Currency      string
	Balance       decimal.Decimal
	Status        string
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateForTransfer checks that the account may take part in a transfer.
// Accounts missing holder or type are rejected rather than patched with
// defaults; an incomplete row is a data-integrity problem, not an input to fix.
func (a *Account) ValidateForTransfer() error {
	if a.HolderName == "" || a.AccountType == "" {
		return ErrAccountIncomplete
	}
	if a.Status != AccountStatusActive {
		return ErrAccountNotActive
	}
	return nil
}

// ValidateDebit checks that the account holds at least amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// NewAccountNumber generates an account number in the ACC-xxxxxxxx format.
func NewAccountNumber() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return accountNumberPrefix + hex.EncodeToString(buf)
}

// NormalizeAccountNumber adds the ACC- prefix when callers pass the bare
// suffix.
func NormalizeAccountNumber(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return number
	}
	if !strings.HasPrefix(number, accountNumberPrefix) {
		return accountNumberPrefix + number
	}
	return number
}
