package sqlite

import (
	"context"
	"database/sql"

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

// Totals sums in Go because SQLite would sum the text amounts as floats.
// Both sums are read in one transaction.
func (r *LedgerRepository) Totals(ctx context.Context) (totalBalance, netFlow decimal.Decimal, err error) {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	defer tx.Rollback()

	totalBalance, err = sumColumn(ctx, tx, `SELECT balance, 1 FROM wallets`)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	netFlow, err = sumColumn(ctx, tx, `
		SELECT amount, CASE type WHEN ? THEN 1 ELSE -1 END
		FROM transactions
		WHERE type IN (?, ?)`,
		string(domain.TransactionTypeDeposit),
		string(domain.TransactionTypeDeposit), string(domain.TransactionTypeWithdraw),
	)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return totalBalance, netFlow, nil
}

func sumColumn(ctx context.Context, tx *sql.Tx, query string, args ...any) (decimal.Decimal, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	sum := decimal.Zero
	for rows.Next() {
		var (
			value string
			sign  int64
		)
		if err := rows.Scan(&value, &sign); err != nil {
			return decimal.Zero, err
		}
		d, err := parseDecimal(value)
		if err != nil {
			return decimal.Zero, err
		}
		if sign < 0 {
			d = d.Neg()
		}
		sum = sum.Add(d)
	}
	return sum, rows.Err()
}
