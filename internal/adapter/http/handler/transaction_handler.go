package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	Deposit(ctx context.Context, walletID string, amount decimal.Decimal) (*domain.TransactionRecord, error)
	Withdraw(ctx context.Context, walletID string, amount decimal.Decimal) (*domain.TransactionRecord, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.TransactionRecord, error)
	GetTransactionHistory(ctx context.Context, walletID string) ([]*domain.TransactionRecord, error)
	GetTransaction(ctx context.Context, id string) (*domain.TransactionRecord, error)
}

// TransactionHandler handles money movement and record lookups.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

type movement func(ctx context.Context, walletID string, amount decimal.Decimal) (*domain.TransactionRecord, error)

// Deposit credits the path wallet.
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, "failed to deposit", h.transactionUC.Deposit)
}

// Withdraw debits the path wallet.
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, "failed to withdraw", h.transactionUC.Withdraw)
}

func (h *TransactionHandler) move(w http.ResponseWriter, r *http.Request, message string, fn movement) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	var req dto.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	amount, err := req.ParseAmount()
	if err != nil {
		writeDomainError(w, message, err)
		return
	}

	record, err := fn(r.Context(), id, amount)
	if err != nil {
		writeDomainError(w, message, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}

// Transfer moves funds from the path wallet to another wallet.
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(id)
	if err != nil {
		writeDomainError(w, "failed to transfer", err)
		return
	}

	record, err := h.transactionUC.Transfer(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to transfer", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}

// ListByWallet lists the records filed against a wallet.
func (h *TransactionHandler) ListByWallet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	records, err := h.transactionUC.GetTransactionHistory(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		WalletID:     id,
		Transactions: dto.TransactionsFromDomain(records),
	})
}

// Get retrieves a single record.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	record, err := h.transactionUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(record))
}
