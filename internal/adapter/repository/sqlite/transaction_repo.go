package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

const recordColumns = `id, wallet_id, type, amount, related_wallet_id, occurred_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Append inserts a record within tx.
func (r *TransactionRepository) Append(ctx context.Context, tx usecase.Transaction, record *domain.TransactionRecord) error {
	t, err := sqlTx(tx)
	if err != nil {
		return err
	}

	_, err = t.ExecContext(ctx, `
		INSERT INTO transactions (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.WalletID, string(record.Type), formatDecimal(record.Amount),
		nullString(record.RelatedWalletID), toMicros(record.Timestamp),
	)
	return mapWriteError(err)
}

// GetByID retrieves a record by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.TransactionRecord, error) {
	row := r.store.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM transactions WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	return rec, err
}

// ListByWallet returns every record filed against walletID.
func (r *TransactionRepository) ListByWallet(ctx context.Context, walletID string) ([]*domain.TransactionRecord, error) {
	return queryRecords(ctx, r.store.db,
		`SELECT `+recordColumns+` FROM transactions WHERE wallet_id = ? ORDER BY occurred_at, id`, walletID)
}

// ListByWalletUpTo returns records filed against walletID up to and including at.
func (r *TransactionRepository) ListByWalletUpTo(ctx context.Context, tx usecase.Transaction, walletID string, at time.Time) ([]*domain.TransactionRecord, error) {
	t, err := sqlTx(tx)
	if err != nil {
		return nil, err
	}
	return queryRecords(ctx, t,
		`SELECT `+recordColumns+` FROM transactions WHERE wallet_id = ? AND occurred_at <= ? ORDER BY occurred_at, id`,
		walletID, toMicros(at))
}

// ListByRelatedWallet returns transfers credited to walletID.
func (r *TransactionRepository) ListByRelatedWallet(ctx context.Context, tx usecase.Transaction, walletID string) ([]*domain.TransactionRecord, error) {
	t, err := sqlTx(tx)
	if err != nil {
		return nil, err
	}
	return queryRecords(ctx, t,
		`SELECT `+recordColumns+` FROM transactions WHERE related_wallet_id = ? ORDER BY occurred_at, id`, walletID)
}

func queryRecords(ctx context.Context, db dbtx, query string, args ...any) ([]*domain.TransactionRecord, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.TransactionRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(s rowScanner) (*domain.TransactionRecord, error) {
	var (
		rec        domain.TransactionRecord
		typ        string
		amount     string
		related    sql.NullString
		occurredAt int64
	)
	if err := s.Scan(&rec.ID, &rec.WalletID, &typ, &amount, &related, &occurredAt); err != nil {
		return nil, err
	}

	a, err := parseDecimal(amount)
	if err != nil {
		return nil, err
	}
	rec.Type = domain.TransactionType(typ)
	rec.Amount = a
	rec.RelatedWalletID = stringPtr(related)
	rec.Timestamp = fromMicros(occurredAt)
	return &rec, nil
}
