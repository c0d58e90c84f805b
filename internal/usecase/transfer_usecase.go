package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/iho/easybank/internal/domain"
)

// TransferConfig parameterizes the retry budget, backoff schedule and the
// per-account transaction rate limit of the transfer engine.
type TransferConfig struct {
	MaxAttempts       int
	BackoffInitial    time.Duration
	BackoffMultiplier float64
	TransactionLimit  int
	TransactionWindow time.Duration
}

// DefaultTransferConfig returns the production retry and throttling settings.
func DefaultTransferConfig() TransferConfig {
	return TransferConfig{
		MaxAttempts:       3,
		BackoffInitial:    500 * time.Millisecond,
		BackoffMultiplier: 2,
		TransactionLimit:  100,
		TransactionWindow: time.Minute,
	}
}

// TransferUseCase executes account-to-account transfers with pessimistic
// locking, optimistic version checks and bounded retry on version conflicts.
type TransferUseCase struct {
	txManager       TxManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	limiter         RateLimiter
	cache           Cache
	idGen           IDGenerator
	cfg             TransferConfig
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TxManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	limiter RateLimiter,
	cache Cache,
	idGen IDGenerator,
	cfg TransferConfig,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		limiter:         limiter,
		cache:           cache,
		idGen:           idGen,
		cfg:             cfg,
	}
}

// Transfer moves amount from the source account to the destination account.
//
// Validation runs cheapest-first and produces no side effects until every
// check passes: a rejected transfer never leaves a persisted transaction
// record. Version conflicts during persistence are retried with exponential
// backoff up to the configured attempt budget; exhaustion persists a FAILED
// audit record and surfaces the conflict to the caller.
func (uc *TransferUseCase) Transfer(ctx context.Context, sourceNumber, destinationNumber string, amount decimal.Decimal) (*domain.Transaction, error) {
	sourceNumber = domain.NormalizeAccountNumber(sourceNumber)
	destinationNumber = domain.NormalizeAccountNumber(destinationNumber)

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if sourceNumber == destinationNumber {
		return nil, domain.ErrSameAccount
	}

	if err := uc.limiter.Check(ctx, transactionRateLimitKeyPrefix+sourceNumber, uc.cfg.TransactionLimit, uc.cfg.TransactionWindow); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		TransactionID:            uc.idGen.Generate(),
		SourceAccountNumber:      sourceNumber,
		DestinationAccountNumber: destinationNumber,
		Amount:                   amount,
		Type:                     domain.TransactionTypeTransfer,
		Status:                   domain.TransactionPending,
		Description:              fmt.Sprintf("Transfer %s from %s to %s", amount, sourceNumber, destinationNumber),
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	schedule := backoff.NewExponentialBackOff()
	schedule.InitialInterval = uc.cfg.BackoffInitial
	schedule.Multiplier = uc.cfg.BackoffMultiplier
	schedule.RandomizationFactor = 0
	schedule.MaxElapsedTime = 0
	schedule.Reset()

	var lastErr error
	for attempt := 1; attempt <= uc.cfg.MaxAttempts; attempt++ {
		err := uc.attempt(ctx, txn)
		if err == nil {
			log.Info().
				Str("transaction_id", txn.TransactionID).
				Int("attempt", attempt).
				Msg("transfer completed")
			return txn, nil
		}

		if isValidationError(err) {
			// No record is persisted for business-rule rejections; the
			// audit log stays free of impossible transfers.
			return nil, err
		}

		if !errors.Is(err, domain.ErrVersionConflict) {
			uc.markFailed(ctx, txn, err)
			return nil, fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
		}

		lastErr = err
		log.Warn().
			Str("transaction_id", txn.TransactionID).
			Int("attempt", attempt).
			Err(err).
			Msg("version conflict, will retry")
		uc.markRetrying(ctx, txn)

		if attempt == uc.cfg.MaxAttempts {
			break
		}

		select {
		case <-time.After(schedule.NextBackOff()):
		case <-ctx.Done():
			uc.markFailed(ctx, txn, ctx.Err())
			return nil, fmt.Errorf("%w: %v", domain.ErrTransferFailed, ctx.Err())
		}
	}

	uc.markFailed(ctx, txn, lastErr)
	return nil, fmt.Errorf("%w after %d attempts: %v", domain.ErrTransferFailed, uc.cfg.MaxAttempts, lastErr)
}

// attempt runs one complete transfer attempt inside a storage transaction.
// The row locks acquired by the locked reads span until Commit or the
// deferred Rollback.
func (uc *TransferUseCase) attempt(ctx context.Context, txn *domain.Transaction) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	first, second := domain.LockOrder(txn.SourceAccountNumber, txn.DestinationAccountNumber)

	locked := make(map[string]*domain.Account, 2)
	for _, number := range []string{first, second} {
		account, err := uc.accountRepo.GetByNumberForUpdate(ctx, tx, number)
		if err != nil {
			return err
		}
		locked[number] = account
	}

	source := locked[txn.SourceAccountNumber]
	destination := locked[txn.DestinationAccountNumber]

	if err := source.ValidateForTransfer(); err != nil {
		return err
	}
	if err := destination.ValidateForTransfer(); err != nil {
		return err
	}
	if source.Currency != destination.Currency {
		return domain.ErrCurrencyMismatch
	}
	if err := source.ValidateDebit(txn.Amount); err != nil {
		return err
	}

	now := time.Now().UTC()

	// First durable write: the record enters PROCESSING only after every
	// validation has passed.
	txn.Currency = source.Currency
	if err := txn.SetStatus(domain.TransactionProcessing, now); err != nil {
		return err
	}
	if err := uc.transactionRepo.SaveTx(ctx, tx, txn); err != nil {
		return err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, source.AccountNumber, source.ApplyDebit(txn.Amount), source.Version, now); err != nil {
		return err
	}
	if err := uc.accountRepo.UpdateBalance(ctx, tx, destination.AccountNumber, destination.ApplyCredit(txn.Amount), destination.Version, now); err != nil {
		return err
	}

	// COMPLETED is written from a staged copy; the in-memory record only
	// advances once the commit holds. A failed commit rolls the row back to
	// nothing, and the record must still be able to go PROCESSING -> FAILED
	// through the pool-side audit write.
	completed := *txn
	if err := completed.SetStatus(domain.TransactionCompleted, now); err != nil {
		return err
	}
	if err := uc.transactionRepo.SaveTx(ctx, tx, &completed); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	txn.Status = completed.Status
	txn.UpdatedAt = completed.UpdatedAt

	uc.invalidateAccounts(ctx, txn.SourceAccountNumber, txn.DestinationAccountNumber)

	return nil
}

// RecoverStalled fails RETRYING records that have not moved for olderThan.
// A crash between retry attempts leaves the pool-side RETRYING write behind
// with no process to finish it; those records would otherwise sit in a
// non-terminal state forever. Returns the number of records failed.
func (uc *TransferUseCase) RecoverStalled(ctx context.Context, olderThan time.Duration) (int, error) {
	records, err := uc.transactionRepo.FindByStatus(ctx, domain.TransactionRetrying)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-olderThan)
	recovered := 0
	for _, txn := range records {
		if txn.UpdatedAt.After(cutoff) {
			continue
		}
		uc.markFailed(ctx, txn, errors.New("abandoned after restart"))
		log.Warn().
			Str("transaction_id", txn.TransactionID).
			Time("last_update", txn.UpdatedAt).
			Msg("stalled transfer marked failed")
		recovered++
	}

	return recovered, nil
}

// markRetrying persists the RETRYING status outside the rolled-back storage
// transaction so the conflict is observable in the audit trail.
func (uc *TransferUseCase) markRetrying(ctx context.Context, txn *domain.Transaction) {
	now := time.Now().UTC()
	if err := txn.SetStatus(domain.TransactionRetrying, now); err != nil {
		return
	}
	if err := uc.transactionRepo.Save(ctx, txn); err != nil {
		log.Error().Err(err).Str("transaction_id", txn.TransactionID).Msg("failed to persist RETRYING status")
	}
}

// markFailed persists a FAILED audit record best-effort; a persistence
// failure here is logged and swallowed so the original error still reaches
// the caller.
func (uc *TransferUseCase) markFailed(ctx context.Context, txn *domain.Transaction, cause error) {
	now := time.Now().UTC()
	if err := txn.SetStatus(domain.TransactionFailed, now); err != nil {
		return
	}
	if cause != nil {
		txn.Description = fmt.Sprintf("%s - Failed: %s", txn.Description, cause)
	}
	if err := uc.transactionRepo.Save(ctx, txn); err != nil {
		log.Error().Err(err).Str("transaction_id", txn.TransactionID).Msg("failed to persist FAILED audit record")
	}
}

// invalidateAccounts drops cached account lookups after balances changed.
// Serving a stale balance after a completed transfer would be a correctness
// bug, so invalidation failures are loud.
func (uc *TransferUseCase) invalidateAccounts(ctx context.Context, numbers ...string) {
	for _, number := range numbers {
		if err := uc.cache.Delete(ctx, accountCacheKeyPrefix+number); err != nil {
			log.Error().Err(err).Str("account_number", number).Msg("failed to invalidate cached account")
		}
	}
}

// isValidationError reports whether err is a business-rule rejection that
// must surface without leaving a persisted transaction record.
func isValidationError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrInvalidAmount,
		domain.ErrSameAccount,
		domain.ErrAccountNotFound,
		domain.ErrAccountNotActive,
		domain.ErrAccountIncomplete,
		domain.ErrCurrencyMismatch,
		domain.ErrInsufficientFunds,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
