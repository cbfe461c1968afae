package memory

import (
	"context"
	"time"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Append buffers a record on tx.
func (r *TransactionRepository) Append(ctx context.Context, tx usecase.Transaction, record *domain.TransactionRecord) error {
	t, err := asTx(r.store, tx)
	if err != nil {
		return err
	}
	t.records = append(t.records, *record)
	return nil
}

// GetByID retrieves a committed record.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.TransactionRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.records[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return &rec, nil
}

// ListByWallet returns records filed against walletID.
func (r *TransactionRepository) ListByWallet(ctx context.Context, walletID string) ([]*domain.TransactionRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.recordsLocked(r.store.byWallet[walletID], nil), nil
}

// ListByWalletUpTo returns records filed against walletID with Timestamp <= at.
func (r *TransactionRepository) ListByWalletUpTo(ctx context.Context, tx usecase.Transaction, walletID string, at time.Time) ([]*domain.TransactionRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.recordsLocked(r.store.byWallet[walletID], func(rec *domain.TransactionRecord) bool {
		return !rec.Timestamp.After(at)
	}), nil
}

// ListByRelatedWallet returns transfers credited to walletID.
func (r *TransactionRepository) ListByRelatedWallet(ctx context.Context, tx usecase.Transaction, walletID string) ([]*domain.TransactionRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.recordsLocked(r.store.byRelated[walletID], nil), nil
}
