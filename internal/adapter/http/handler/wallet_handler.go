package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/domain"
)

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	CreateWallet(ctx context.Context, accountID string) (*domain.Wallet, error)
	GetWallet(ctx context.Context, id string) (*domain.Wallet, error)
	GetWalletByAccount(ctx context.Context, accountID string) (*domain.Wallet, error)
	ListWallets(ctx context.Context, limit, offset int) ([]*domain.Wallet, error)
	GetBalance(ctx context.Context, walletID string) (decimal.Decimal, error)
}

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	walletUC WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC WalletService) *WalletHandler {
	return &WalletHandler{walletUC: walletUC}
}

// Create creates a wallet for an account.
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wallet, err := h.walletUC.CreateWallet(r.Context(), req.AccountID)
	if err != nil {
		writeDomainError(w, "failed to create wallet", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.WalletFromDomain(wallet))
}

// Get retrieves a wallet by ID.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	wallet, err := h.walletUC.GetWallet(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get wallet", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// List lists wallets. With account_id it returns at most the one wallet
// owned by that account.
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := domain.ValidatePagination(
		parseIntQuery(r, "limit", 0),
		parseIntQuery(r, "offset", 0),
	)

	if accountID := r.URL.Query().Get("account_id"); accountID != "" {
		h.listByAccount(w, r, accountID, limit, offset)
		return
	}

	wallets, err := h.walletUC.ListWallets(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, "failed to list wallets", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListWalletsResponse{
		Wallets: dto.WalletsFromDomain(wallets),
		Limit:   limit,
		Offset:  offset,
	})
}

func (h *WalletHandler) listByAccount(w http.ResponseWriter, r *http.Request, accountID string, limit, offset int) {
	if err := domain.ValidateAccountID(accountID); err != nil {
		writeDomainError(w, "invalid account id", err)
		return
	}

	wallets := []*domain.Wallet{}
	wallet, err := h.walletUC.GetWalletByAccount(r.Context(), accountID)
	switch {
	case errors.Is(err, domain.ErrWalletNotFound):
	case err != nil:
		writeDomainError(w, "failed to find wallet", err)
		return
	default:
		if offset == 0 {
			wallets = append(wallets, wallet)
		}
	}

	writeJSON(w, http.StatusOK, dto.ListWalletsResponse{
		Wallets: dto.WalletsFromDomain(wallets),
		Limit:   limit,
		Offset:  offset,
	})
}

// Balance returns a wallet's current balance.
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	balance, err := h.walletUC.GetBalance(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		WalletID: id,
		Balance:  domain.FormatAmount(balance),
	})
}
