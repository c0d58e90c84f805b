package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/easybank/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	HolderName     string          `json:"holder_name"`
	AccountType    string          `json:"account_type"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		HolderName:     r.HolderName,
		AccountType:    r.AccountType,
		Currency:       r.Currency,
		InitialBalance: r.InitialBalance,
	}
}

// TransferRequest represents a request to move funds out of the account in
// the URL.
type TransferRequest struct {
	DestinationAccountNumber string          `json:"destination_account_number"`
	Amount                   decimal.Decimal `json:"amount"`
}
