package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/iho/easybank/internal/domain"
	"github.com/iho/easybank/internal/usecase"
	"github.com/iho/easybank/internal/usecase/mocks"
)

func TestCreateAccount(t *testing.T) {
	ctrl := gomock.NewController(t)

	accRepo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(accRepo, mocks.NewMockCache(ctrl), time.Minute)

	account, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		HolderName:     "Alice",
		AccountType:    domain.AccountTypeSavings,
		Currency:       "USD",
		InitialBalance: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(account.AccountNumber, "ACC-"))
	assert.Equal(t, domain.AccountStatusActive, account.Status)
	assert.Equal(t, int64(0), account.Version)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("100.00")))

	stored := accRepo.Stored(account.AccountNumber)
	require.NotNil(t, stored)
}

func TestCreateAccountValidation(t *testing.T) {
	ctrl := gomock.NewController(t)

	uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(), mocks.NewMockCache(ctrl), time.Minute)

	_, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		AccountType: domain.AccountTypeSavings,
		Currency:    "USD",
	})
	require.ErrorIs(t, err, domain.ErrAccountIncomplete)

	_, err = uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		HolderName:     "Alice",
		AccountType:    domain.AccountTypeSavings,
		Currency:       "USD",
		InitialBalance: decimal.RequireFromString("-1.00"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestGetAccountCacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)

	accRepo := mocks.NewMockAccountRepository()
	accRepo.Seed(activeAccount("ACC-aaaaaaaa", "Alice", "USD", "1000.00"))

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "account:ACC-aaaaaaaa").Return("", errors.New("redis: nil"))
	cache.EXPECT().Set(gomock.Any(), "account:ACC-aaaaaaaa", gomock.Any(), time.Minute).Return(nil)

	uc := usecase.NewAccountUseCase(accRepo, cache, time.Minute)

	account, err := uc.GetAccount(context.Background(), "ACC-aaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "Alice", account.HolderName)
}

func TestGetAccountCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)

	cached := activeAccount("ACC-aaaaaaaa", "Alice", "USD", "1000.00")
	encoded, err := json.Marshal(cached)
	require.NoError(t, err)

	// The repository is empty: a hit must be served without touching storage.
	accRepo := mocks.NewMockAccountRepository()

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "account:ACC-aaaaaaaa").Return(string(encoded), nil)

	uc := usecase.NewAccountUseCase(accRepo, cache, time.Minute)

	account, err := uc.GetAccount(context.Background(), "ACC-aaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "Alice", account.HolderName)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("1000.00")))
}

func TestGetAccountNormalizesNumber(t *testing.T) {
	ctrl := gomock.NewController(t)

	accRepo := mocks.NewMockAccountRepository()
	accRepo.Seed(activeAccount("ACC-aaaaaaaa", "Alice", "USD", "1000.00"))

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "account:ACC-aaaaaaaa").Return("", errors.New("redis: nil"))
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	uc := usecase.NewAccountUseCase(accRepo, cache, time.Minute)

	account, err := uc.GetAccount(context.Background(), "aaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "ACC-aaaaaaaa", account.AccountNumber)
}

func TestGetAccountNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", errors.New("redis: nil"))

	uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(), cache, time.Minute)

	_, err := uc.GetAccount(context.Background(), "ACC-deadbeef")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
