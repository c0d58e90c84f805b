package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/easybank/internal/domain"
)

// TransactionUseCase reconstructs an account's transaction history for
// display.
type TransactionUseCase struct {
	transactionRepo TransactionRepository
	accountRepo     AccountRepository
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(transactionRepo TransactionRepository, accountRepo AccountRepository) *TransactionUseCase {
	return &TransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

// TransactionView is a display-ready transaction. Amount carries the sign
// convention of the queried account: negative when it was the source
// (a debit), positive when it was the destination (a credit).
type TransactionView struct {
	TransactionID            string
	Amount                   decimal.Decimal
	Currency                 string
	Description              string
	Status                   domain.TransactionStatus
	Type                     domain.TransactionType
	SourceAccountNumber      string
	SourceAccountHolder      string
	DestinationAccountNumber string
	DestinationAccountHolder string
	Timestamp                time.Time
}

// ListAccountTransactions returns the terminal (COMPLETED, FAILED)
// transactions touching the account, newest first. Linked accounts that can
// no longer be found leave their display fields unset rather than failing
// the whole query. The stored amount is never mutated; only the view is
// signed.
func (uc *TransactionUseCase) ListAccountTransactions(ctx context.Context, number string) ([]*TransactionView, error) {
	number = domain.NormalizeAccountNumber(number)

	records, err := uc.transactionRepo.FindTerminalByAccountNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	views := make([]*TransactionView, 0, len(records))
	for _, record := range records {
		view := &TransactionView{
			TransactionID: record.TransactionID,
			Amount:        record.Amount,
			Currency:      record.Currency,
			Description:   record.Description,
			Status:        record.Status,
			Type:          record.Type,
			Timestamp:     record.UpdatedAt,
		}

		if source, err := uc.accountRepo.GetByNumber(ctx, record.SourceAccountNumber); err == nil {
			view.SourceAccountNumber = source.AccountNumber
			view.SourceAccountHolder = source.HolderName
		}
		if destination, err := uc.accountRepo.GetByNumber(ctx, record.DestinationAccountNumber); err == nil {
			view.DestinationAccountNumber = destination.AccountNumber
			view.DestinationAccountHolder = destination.HolderName
		}

		if record.SourceAccountNumber == number {
			view.Amount = record.Amount.Neg()
		}

		views = append(views, view)
	}

	return views, nil
}
