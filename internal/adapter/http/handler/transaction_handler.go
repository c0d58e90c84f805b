package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/easybank/internal/adapter/http/dto"
	"github.com/iho/easybank/internal/usecase"
)

// TransactionHandler serves transaction history.
type TransactionHandler struct {
	transactionUC *usecase.TransactionUseCase
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC *usecase.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// ListByAccount lists the terminal transactions of an account, newest first.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	views, err := h.transactionUC.ListAccountTransactions(r.Context(), number)
	if err != nil {
		writeDomainError(w, err, "failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromViews(views))
}
