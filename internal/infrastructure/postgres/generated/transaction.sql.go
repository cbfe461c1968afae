package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const appendTransaction = `-- name: AppendTransaction :exec
INSERT INTO transactions (id, wallet_id, type, amount, related_wallet_id, occurred_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

type AppendTransactionParams struct {
	ID              string             `json:"id"`
	WalletID        string             `json:"wallet_id"`
	Type            string             `json:"type"`
	Amount          pgtype.Numeric     `json:"amount"`
	RelatedWalletID pgtype.Text        `json:"related_wallet_id"`
	OccurredAt      pgtype.Timestamptz `json:"occurred_at"`
}

func (q *Queries) AppendTransaction(ctx context.Context, arg AppendTransactionParams) error {
	_, err := q.db.Exec(ctx, appendTransaction,
		arg.ID,
		arg.WalletID,
		arg.Type,
		arg.Amount,
		arg.RelatedWalletID,
		arg.OccurredAt,
	)
	return err
}

const getTransactionByID = `-- name: GetTransactionByID :one
SELECT id, wallet_id, type, amount, related_wallet_id, occurred_at FROM transactions WHERE id = $1
`

func (q *Queries) GetTransactionByID(ctx context.Context, id string) (Transaction, error) {
	row := q.db.QueryRow(ctx, getTransactionByID, id)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.WalletID,
		&i.Type,
		&i.Amount,
		&i.RelatedWalletID,
		&i.OccurredAt,
	)
	return i, err
}

const listTransactionsByRelatedWallet = `-- name: ListTransactionsByRelatedWallet :many
SELECT id, wallet_id, type, amount, related_wallet_id, occurred_at FROM transactions
WHERE related_wallet_id = $1
ORDER BY occurred_at, id
`

func (q *Queries) ListTransactionsByRelatedWallet(ctx context.Context, relatedWalletID pgtype.Text) ([]Transaction, error) {
	rows, err := q.db.Query(ctx, listTransactionsByRelatedWallet, relatedWalletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.WalletID,
			&i.Type,
			&i.Amount,
			&i.RelatedWalletID,
			&i.OccurredAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listTransactionsByWallet = `-- name: ListTransactionsByWallet :many
SELECT id, wallet_id, type, amount, related_wallet_id, occurred_at FROM transactions
WHERE wallet_id = $1
ORDER BY occurred_at, id
`

func (q *Queries) ListTransactionsByWallet(ctx context.Context, walletID string) ([]Transaction, error) {
	rows, err := q.db.Query(ctx, listTransactionsByWallet, walletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.WalletID,
			&i.Type,
			&i.Amount,
			&i.RelatedWalletID,
			&i.OccurredAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listTransactionsByWalletUpTo = `-- name: ListTransactionsByWalletUpTo :many
SELECT id, wallet_id, type, amount, related_wallet_id, occurred_at FROM transactions
WHERE wallet_id = $1 AND occurred_at <= $2
ORDER BY occurred_at, id
`

type ListTransactionsByWalletUpToParams struct {
	WalletID   string             `json:"wallet_id"`
	OccurredAt pgtype.Timestamptz `json:"occurred_at"`
}

func (q *Queries) ListTransactionsByWalletUpTo(ctx context.Context, arg ListTransactionsByWalletUpToParams) ([]Transaction, error) {
	rows, err := q.db.Query(ctx, listTransactionsByWalletUpTo, arg.WalletID, arg.OccurredAt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.WalletID,
			&i.Type,
			&i.Amount,
			&i.RelatedWalletID,
			&i.OccurredAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
