package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/easybank/internal/domain"
	"github.com/iho/easybank/internal/usecase"
)

// MockAccountRepository is a mock implementation of usecase.AccountRepository
// backed by an in-memory map. Set the Func fields to override behavior.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc               func(ctx context.Context, account *domain.Account) error
	GetByNumberFunc          func(ctx context.Context, number string) (*domain.Account, error)
	GetByNumberForUpdateFunc func(ctx context.Context, tx usecase.Tx, number string) (*domain.Account, error)
	UpdateBalanceFunc        func(ctx context.Context, tx usecase.Tx, number string, balance decimal.Decimal, expectedVersion int64, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed stores an account directly, bypassing any Func override.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *account
	m.accounts[account.AccountNumber] = &cp
}

// Stored returns the current state of a seeded account.
func (m *MockAccountRepository) Stored(number string) *domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[number]; ok {
		cp := *a
		return &cp
	}
	return nil
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.Seed(account)
	return nil
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	if a := m.Stored(number); a != nil {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByNumberForUpdate(ctx context.Context, tx usecase.Tx, number string) (*domain.Account, error) {
	if m.GetByNumberForUpdateFunc != nil {
		return m.GetByNumberForUpdateFunc(ctx, tx, number)
	}
	if a := m.Stored(number); a != nil {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Tx, number string, balance decimal.Decimal, expectedVersion int64, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, number, balance, expectedVersion, updatedAt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[number]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if a.Version != expectedVersion {
		return domain.ErrVersionConflict
	}
	a.Balance = balance
	a.Version++
	a.UpdatedAt = updatedAt
	return nil
}

// MockTransactionRepository is a mock implementation of
// usecase.TransactionRepository recording every save so tests can assert the
// observed status sequence.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	saved        []domain.Transaction

	SaveFunc                        func(ctx context.Context, txn *domain.Transaction) error
	SaveTxFunc                      func(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error
	FindTerminalByAccountNumberFunc func(ctx context.Context, number string) ([]*domain.Transaction, error)
	FindByStatusFunc                func(ctx context.Context, status domain.TransactionStatus) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) record(txn *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *txn
	m.transactions[txn.TransactionID] = &cp
	m.saved = append(m.saved, cp)
}

// Saved returns copies of every save call in order.
func (m *MockTransactionRepository) Saved() []domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Transaction, len(m.saved))
	copy(out, m.saved)
	return out
}

// SavedStatuses returns the status recorded at each save, in order.
func (m *MockTransactionRepository) SavedStatuses() []domain.TransactionStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.TransactionStatus, 0, len(m.saved))
	for _, txn := range m.saved {
		out = append(out, txn.Status)
	}
	return out
}

// Stored returns the latest saved state of a transaction.
func (m *MockTransactionRepository) Stored(id string) *domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		cp := *t
		return &cp
	}
	return nil
}

func (m *MockTransactionRepository) Save(ctx context.Context, txn *domain.Transaction) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, txn)
	}
	m.record(txn)
	return nil
}

func (m *MockTransactionRepository) SaveTx(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error {
	if m.SaveTxFunc != nil {
		return m.SaveTxFunc(ctx, tx, txn)
	}
	m.record(txn)
	return nil
}

func (m *MockTransactionRepository) FindTerminalByAccountNumber(ctx context.Context, number string) ([]*domain.Transaction, error) {
	if m.FindTerminalByAccountNumberFunc != nil {
		return m.FindTerminalByAccountNumberFunc(ctx, number)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Transaction
	for _, txn := range m.transactions {
		if !txn.Status.Terminal() {
			continue
		}
		if txn.SourceAccountNumber == number || txn.DestinationAccountNumber == number {
			cp := *txn
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) FindByStatus(ctx context.Context, status domain.TransactionStatus) ([]*domain.Transaction, error) {
	if m.FindByStatusFunc != nil {
		return m.FindByStatusFunc(ctx, status)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Transaction
	for _, txn := range m.transactions {
		if txn.Status == status {
			cp := *txn
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MockTx is a mock implementation of usecase.Tx.
type MockTx struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTx) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	t.RolledBack = true
	return nil
}

// MockTxManager is a mock implementation of usecase.TxManager.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Tx, error)
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTx{}, nil
}

// MockIDGenerator is a mock implementation of usecase.IDGenerator producing
// sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("txn-%06d", m.next)
}
