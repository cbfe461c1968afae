package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// Totals sums balances and net external flow in one consistent view.
func (r *LedgerRepository) Totals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	totalBalance := decimal.Zero
	for _, w := range r.store.wallets {
		totalBalance = totalBalance.Add(w.Balance)
	}

	netFlow := decimal.Zero
	for _, rec := range r.store.records {
		switch rec.Type {
		case domain.TransactionTypeDeposit:
			netFlow = netFlow.Add(rec.Amount)
		case domain.TransactionTypeWithdraw:
			netFlow = netFlow.Sub(rec.Amount)
		}
	}

	return totalBalance, netFlow, nil
}
