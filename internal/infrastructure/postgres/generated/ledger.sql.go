package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const ledgerTotals = `-- name: LedgerTotals :one
SELECT
    (SELECT COALESCE(SUM(balance), 0) FROM wallets)::NUMERIC AS total_balance,
    (SELECT COALESCE(SUM(CASE type
                            WHEN 'DEPOSIT' THEN amount
                            WHEN 'WITHDRAW' THEN -amount
                            ELSE 0
                         END), 0)
       FROM transactions)::NUMERIC AS net_flow
`

type LedgerTotalsRow struct {
	TotalBalance pgtype.Numeric `json:"total_balance"`
	NetFlow      pgtype.Numeric `json:"net_flow"`
}

func (q *Queries) LedgerTotals(ctx context.Context) (LedgerTotalsRow, error) {
	row := q.db.QueryRow(ctx, ledgerTotals)
	var i LedgerTotalsRow
	err := row.Scan(&i.TotalBalance, &i.NetFlow)
	return i, err
}
