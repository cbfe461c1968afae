package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// Totals reads both sums in one statement so they share a snapshot.
func (r *LedgerRepository) Totals(ctx context.Context) (totalBalance, netFlow decimal.Decimal, err error) {
	result, err := r.queries.LedgerTotals(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	totalBalance, err = numericToDecimal(result.TotalBalance)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	netFlow, err = numericToDecimal(result.NetFlow)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return totalBalance, netFlow, nil
}
