package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/easybank/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	// GetByNumberForUpdate fetches an account under a pessimistic row lock
	// held for the lifetime of tx.
	GetByNumberForUpdate(ctx context.Context, tx Tx, number string) (*domain.Account, error)
	// UpdateBalance persists a new balance, incrementing the version by one.
	// It returns domain.ErrVersionConflict when the row's version no longer
	// matches expectedVersion.
	UpdateBalance(ctx context.Context, tx Tx, number string, balance decimal.Decimal, expectedVersion int64, updatedAt time.Time) error
}

// TransactionRepository defines data access for transaction audit records.
// Save and SaveTx upsert by transaction ID: the same record is written again
// as its status advances.
type TransactionRepository interface {
	Save(ctx context.Context, txn *domain.Transaction) error
	SaveTx(ctx context.Context, tx Tx, txn *domain.Transaction) error
	FindTerminalByAccountNumber(ctx context.Context, number string) ([]*domain.Transaction, error)
	FindByStatus(ctx context.Context, status domain.TransactionStatus) ([]*domain.Transaction, error)
}

// RateLimiter decides whether an action identified by key is allowed under a
// sliding window. A rejection is reported as *domain.RateLimitError; limiter
// storage failures are reported the same way (fail closed).
type RateLimiter interface {
	Check(ctx context.Context, key string, limit int, window time.Duration) error
}

// Cache defines caching operations for account lookups.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Tx represents a database transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
