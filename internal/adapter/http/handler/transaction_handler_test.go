package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/easybank/internal/adapter/http/handler"
	"github.com/iho/easybank/internal/domain"
	"github.com/iho/easybank/internal/usecase"
	"github.com/iho/easybank/internal/usecase/mocks"
)

func TestTransactionListByAccount(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	accRepo.Seed(seedAccount("ACC-0a1b2c3d", "Alice", "USD", "1000.00"))
	accRepo.Seed(seedAccount("ACC-4e5f6a7b", "Bob", "USD", "500.00"))

	txnRepo := mocks.NewMockTransactionRepository()
	now := time.Now().UTC()
	require.NoError(t, txnRepo.Save(context.Background(), &domain.Transaction{
		TransactionID:            "txn-1",
		SourceAccountNumber:      "ACC-0a1b2c3d",
		DestinationAccountNumber: "ACC-4e5f6a7b",
		Amount:                   decimal.RequireFromString("250.00"),
		Currency:                 "USD",
		Type:                     domain.TransactionTypeTransfer,
		Status:                   domain.TransactionCompleted,
		CreatedAt:                now,
		UpdatedAt:                now,
	}))

	h := handler.NewTransactionHandler(usecase.NewTransactionUseCase(txnRepo, accRepo))

	rec := serveWithNumber(h.ListByAccount, http.MethodGet, "/api/v1/accounts/ACC-0a1b2c3d/transactions", "ACC-0a1b2c3d", "")

	require.Equal(t, http.StatusOK, rec.Code)
	// Outgoing money shows up negative for the queried account.
	assert.Contains(t, rec.Body.String(), `"amount":"-250.00"`)
	assert.Contains(t, rec.Body.String(), `"source_account_holder":"Alice"`)
}

func TestTransactionListEmpty(t *testing.T) {
	h := handler.NewTransactionHandler(usecase.NewTransactionUseCase(
		mocks.NewMockTransactionRepository(), mocks.NewMockAccountRepository(),
	))

	rec := serveWithNumber(h.ListByAccount, http.MethodGet, "/api/v1/accounts/ACC-0a1b2c3d/transactions", "ACC-0a1b2c3d", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
