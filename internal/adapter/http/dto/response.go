package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/easybank/internal/domain"
	"github.com/iho/easybank/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	AccountNumber string          `json:"account_number"`
	HolderName    string          `json:"holder_name"`
	AccountType   string          `json:"account_type"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(account *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: account.AccountNumber,
		HolderName:    account.HolderName,
		AccountType:   account.AccountType,
		Currency:      account.Currency,
		Balance:       account.Balance,
		Status:        account.Status,
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}
}

// TransactionResponse represents a history entry in API responses. Amount is
// signed from the queried account's point of view.
type TransactionResponse struct {
	TransactionID            string          `json:"transaction_id"`
	Amount                   decimal.Decimal `json:"amount"`
	Currency                 string          `json:"currency"`
	Description              string          `json:"description,omitempty"`
	Status                   string          `json:"status"`
	Type                     string          `json:"type"`
	SourceAccountNumber      string          `json:"source_account_number,omitempty"`
	SourceAccountHolder      string          `json:"source_account_holder,omitempty"`
	DestinationAccountNumber string          `json:"destination_account_number,omitempty"`
	DestinationAccountHolder string          `json:"destination_account_holder,omitempty"`
	Timestamp                time.Time       `json:"timestamp"`
}

// TransactionFromView converts a use case view to a response.
func TransactionFromView(view *usecase.TransactionView) TransactionResponse {
	return TransactionResponse{
		TransactionID:            view.TransactionID,
		Amount:                   view.Amount,
		Currency:                 view.Currency,
		Description:              view.Description,
		Status:                   string(view.Status),
		Type:                     string(view.Type),
		SourceAccountNumber:      view.SourceAccountNumber,
		SourceAccountHolder:      view.SourceAccountHolder,
		DestinationAccountNumber: view.DestinationAccountNumber,
		DestinationAccountHolder: view.DestinationAccountHolder,
		Timestamp:                view.Timestamp,
	}
}

// TransactionsFromViews converts a slice of views.
func TransactionsFromViews(views []*usecase.TransactionView) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(views))
	for _, v := range views {
		out = append(out, TransactionFromView(v))
	}
	return out
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
