package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/domain"
)

// HistoryService defines the behavior needed by HistoryHandler.
type HistoryService interface {
	GetHistoricalBalance(ctx context.Context, walletID string, at time.Time) (decimal.Decimal, error)
}

// HistoryHandler serves point-in-time balances.
type HistoryHandler struct {
	historyUC HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyUC HistoryService) *HistoryHandler {
	return &HistoryHandler{historyUC: historyUC}
}

// HistoricalBalance returns the wallet balance at the RFC3339 `timestamp`
// query parameter.
func (h *HistoryHandler) HistoricalBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	raw := r.URL.Query().Get("timestamp")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing timestamp", "timestamp query parameter is required")
		return
	}

	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid timestamp", err.Error())
		return
	}

	balance, err := h.historyUC.GetHistoricalBalance(r.Context(), id, at)
	if err != nil {
		writeDomainError(w, "failed to get historical balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoricalBalanceResponse{
		WalletID:  id,
		Timestamp: at.UTC(),
		Balance:   domain.FormatAmount(balance),
	})
}
