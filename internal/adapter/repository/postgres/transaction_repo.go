package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/postgres/generated"
	"github.com/iho/gowallet/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository over the
// append-only transactions table.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{
		queries: generated.New(db),
	}
}

// Append inserts a record within tx.
func (r *TransactionRepository) Append(ctx context.Context, tx usecase.Transaction, record *domain.TransactionRecord) error {
	queries, err := queriesFor(tx)
	if err != nil {
		return err
	}

	err = queries.AppendTransaction(ctx, generated.AppendTransactionParams{
		ID:              record.ID,
		WalletID:        record.WalletID,
		Type:            string(record.Type),
		Amount:          decimalToNumeric(record.Amount),
		RelatedWalletID: stringToPgText(record.RelatedWalletID),
		OccurredAt:      timeToPgTimestamptz(record.Timestamp),
	})

	return mapWriteError(err)
}

// GetByID retrieves a record by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.TransactionRecord, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToRecord(row)
}

// ListByWallet returns every record filed against walletID.
func (r *TransactionRepository) ListByWallet(ctx context.Context, walletID string) ([]*domain.TransactionRecord, error) {
	rows, err := r.queries.ListTransactionsByWallet(ctx, walletID)
	if err != nil {
		return nil, err
	}

	return rowsToRecords(rows)
}

// ListByWalletUpTo returns records filed against walletID up to and including at.
func (r *TransactionRepository) ListByWalletUpTo(ctx context.Context, tx usecase.Transaction, walletID string, at time.Time) ([]*domain.TransactionRecord, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListTransactionsByWalletUpTo(ctx, generated.ListTransactionsByWalletUpToParams{
		WalletID:   walletID,
		OccurredAt: timeToPgTimestamptz(at),
	})
	if err != nil {
		return nil, err
	}

	return rowsToRecords(rows)
}

// ListByRelatedWallet returns transfers credited to walletID.
func (r *TransactionRepository) ListByRelatedWallet(ctx context.Context, tx usecase.Transaction, walletID string) ([]*domain.TransactionRecord, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	rows, err := queries.ListTransactionsByRelatedWallet(ctx, pgtype.Text{String: walletID, Valid: true})
	if err != nil {
		return nil, err
	}

	return rowsToRecords(rows)
}

func rowsToRecords(rows []generated.Transaction) ([]*domain.TransactionRecord, error) {
	records := make([]*domain.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := rowToRecord(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func rowToRecord(row generated.Transaction) (*domain.TransactionRecord, error) {
	amount, err := numericToDecimal(row.Amount)
	if err != nil {
		return nil, err
	}

	return &domain.TransactionRecord{
		ID:              row.ID,
		WalletID:        row.WalletID,
		Type:            domain.TransactionType(row.Type),
		Amount:          amount,
		Timestamp:       row.OccurredAt.Time.UTC(),
		RelatedWalletID: pgTextToString(row.RelatedWalletID),
	}, nil
}
