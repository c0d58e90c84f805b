package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/easybank/internal/domain"
)

// AccountUseCase handles account creation and cached lookups.
type AccountUseCase struct {
	accountRepo AccountRepository
	cache       Cache
	cacheTTL    time.Duration
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, cache Cache, cacheTTL time.Duration) *AccountUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultAccountCacheTTL
	}
	return &AccountUseCase{
		accountRepo: accountRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	HolderName     string
	AccountType    string
	Currency       string
	InitialBalance decimal.Decimal
}

// CreateAccount creates a new ACTIVE account with a generated account number.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if input.HolderName == "" || input.AccountType == "" || input.Currency == "" {
		return nil, domain.ErrAccountIncomplete
	}
	if input.InitialBalance.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	account := &domain.Account{
		AccountNumber: domain.NewAccountNumber(),
		HolderName:    input.HolderName,
		AccountType:   input.AccountType,
		Currency:      input.Currency,
		Balance:       input.InitialBalance,
		Status:        domain.AccountStatusActive,
		Version:       0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by number, serving from cache when the
// entry is fresh. The transfer engine invalidates these entries whenever a
// balance changes.
func (uc *AccountUseCase) GetAccount(ctx context.Context, number string) (*domain.Account, error) {
	number = domain.NormalizeAccountNumber(number)
	key := accountCacheKeyPrefix + number

	if cached, err := uc.cache.Get(ctx, key); err == nil {
		var account domain.Account
		if err := json.Unmarshal([]byte(cached), &account); err == nil {
			return &account, nil
		}
	}

	account, err := uc.accountRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(account); err == nil {
		if err := uc.cache.Set(ctx, key, string(encoded), uc.cacheTTL); err != nil {
			log.Debug().Err(err).Str("account_number", number).Msg("failed to cache account")
		}
	}

	return account, nil
}
