package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/easybank/internal/adapter/http/dto"
	"github.com/iho/easybank/internal/usecase"
)

// TransferHandler handles transfer HTTP requests.
type TransferHandler struct {
	transferUC *usecase.TransferUseCase
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC *usecase.TransferUseCase) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create moves funds from the account in the URL to the destination in the
// body.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	source := chi.URLParam(r, "number")
	if source == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transferUC.Transfer(r.Context(), source, req.DestinationAccountNumber, req.Amount)
	if err != nil {
		writeDomainError(w, err, "transfer failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"transaction_id": txn.TransactionID,
		"status":         string(txn.Status),
	})
}
