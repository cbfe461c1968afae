package memory

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	store *Store
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(store *Store) *WalletRepository {
	return &WalletRepository{store: store}
}

// Create buffers a new wallet on tx.
func (r *WalletRepository) Create(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error {
	t, err := asTx(r.store, tx)
	if err != nil {
		return err
	}
	if _, err := r.GetByAccountID(ctx, wallet.AccountID); err == nil {
		return domain.ErrWalletAlreadyExists
	}

	t.lock(wallet.ID, false)
	t.wallets[wallet.ID] = *wallet
	t.created = append(t.created, wallet.ID)
	return nil
}

// GetByID retrieves a committed wallet by ID.
func (r *WalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	w, ok := r.store.committedWallet(id)
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	return &w, nil
}

// GetByAccountID retrieves a committed wallet by its owning account.
func (r *WalletRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.Wallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.byAccount[accountID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	w := r.store.wallets[id]
	return &w, nil
}

// GetByIDForUpdate locks the wallet exclusively for the rest of tx.
func (r *WalletRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wallet, error) {
	return r.getLocked(tx, id, false)
}

// GetByIDForShare locks the wallet against writers for the rest of tx.
func (r *WalletRepository) GetByIDForShare(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wallet, error) {
	return r.getLocked(tx, id, true)
}

// GetByIDsForUpdate locks wallets in the given order. Missing ids are skipped.
func (r *WalletRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Wallet, error) {
	wallets := make([]*domain.Wallet, 0, len(ids))
	for _, id := range ids {
		w, err := r.getLocked(tx, id, false)
		if errors.Is(err, domain.ErrWalletNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, nil
}

func (r *WalletRepository) getLocked(tx usecase.Transaction, id string, shared bool) (*domain.Wallet, error) {
	t, err := asTx(r.store, tx)
	if err != nil {
		return nil, err
	}
	if _, ok := t.wallet(id); !ok {
		return nil, domain.ErrWalletNotFound
	}

	t.lock(id, shared)

	// Re-read: the wallet may have changed while we waited.
	w, _ := t.wallet(id)
	return &w, nil
}

// UpdateBalance buffers a new balance. The wallet must be locked for update on tx.
func (r *WalletRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	t, err := asTx(r.store, tx)
	if err != nil {
		return err
	}
	if !t.locked[id] {
		return errNotLocked
	}
	if balance.IsNegative() {
		return domain.ErrInsufficientBalance
	}

	w, ok := t.wallet(id)
	if !ok {
		return domain.ErrWalletNotFound
	}
	w.Balance = balance
	w.UpdatedAt = updatedAt
	t.wallets[id] = w
	return nil
}

// List returns committed wallets ordered by ID.
func (r *WalletRepository) List(ctx context.Context, limit, offset int) ([]*domain.Wallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := sortedWalletIDs(r.store.wallets)
	if offset >= len(ids) {
		return []*domain.Wallet{}, nil
	}
	ids = ids[offset:]
	if limit < len(ids) {
		ids = ids[:limit]
	}

	wallets := make([]*domain.Wallet, 0, len(ids))
	for _, id := range ids {
		w := r.store.wallets[id]
		wallets = append(wallets, &w)
	}
	return wallets, nil
}
