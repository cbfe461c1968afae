package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

const walletColumns = `id, account_id, balance, created_at, updated_at`

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	store *Store
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(store *Store) *WalletRepository {
	return &WalletRepository{store: store}
}

// Create inserts a new wallet within tx.
func (r *WalletRepository) Create(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error {
	t, err := sqlTx(tx)
	if err != nil {
		return err
	}

	_, err = t.ExecContext(ctx, `
		INSERT INTO wallets (`+walletColumns+`)
		VALUES (?, ?, ?, ?, ?)`,
		wallet.ID, wallet.AccountID, formatDecimal(wallet.Balance),
		toMicros(wallet.CreatedAt), toMicros(wallet.UpdatedAt),
	)
	return mapWriteError(err)
}

// GetByID retrieves a wallet by ID.
func (r *WalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	return getWallet(ctx, r.store.db, `WHERE id = ?`, id)
}

// GetByAccountID retrieves the wallet owned by accountID.
func (r *WalletRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.Wallet, error) {
	return getWallet(ctx, r.store.db, `WHERE account_id = ?`, accountID)
}

// GetByIDForUpdate reads the wallet inside tx. The immediate transaction
// already holds the write lock.
func (r *WalletRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wallet, error) {
	t, err := sqlTx(tx)
	if err != nil {
		return nil, err
	}
	return getWallet(ctx, t, `WHERE id = ?`, id)
}

// GetByIDsForUpdate reads the wallets inside tx ordered by id. Missing ids
// are absent from the result.
func (r *WalletRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Wallet, error) {
	t, err := sqlTx(tx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Wallet{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := t.QueryContext(ctx,
		`SELECT `+walletColumns+` FROM wallets WHERE id IN (`+placeholders+`) ORDER BY id`, args...)
	if err != nil {
		return nil, err
	}
	return scanWallets(rows)
}

// GetByIDForShare reads the wallet inside tx.
func (r *WalletRepository) GetByIDForShare(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wallet, error) {
	return r.GetByIDForUpdate(ctx, tx, id)
}

// UpdateBalance sets the stored balance of a wallet within tx.
func (r *WalletRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	t, err := sqlTx(tx)
	if err != nil {
		return err
	}

	res, err := t.ExecContext(ctx,
		`UPDATE wallets SET balance = ?, updated_at = ? WHERE id = ?`,
		formatDecimal(balance), toMicros(updatedAt), id,
	)
	if err != nil {
		return mapWriteError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrWalletNotFound
	}
	return nil
}

// List retrieves wallets ordered by id.
func (r *WalletRepository) List(ctx context.Context, limit, offset int) ([]*domain.Wallet, error) {
	rows, err := r.store.db.QueryContext(ctx,
		`SELECT `+walletColumns+` FROM wallets ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanWallets(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func getWallet(ctx context.Context, db dbtx, where string, arg any) (*domain.Wallet, error) {
	row := db.QueryRowContext(ctx, `SELECT `+walletColumns+` FROM wallets `+where, arg)
	w, err := scanWallet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrWalletNotFound
	}
	return w, err
}

func scanWallets(rows *sql.Rows) ([]*domain.Wallet, error) {
	defer rows.Close()

	wallets := make([]*domain.Wallet, 0)
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

func scanWallet(s rowScanner) (*domain.Wallet, error) {
	var (
		w                    domain.Wallet
		balance              string
		createdAt, updatedAt int64
	)
	if err := s.Scan(&w.ID, &w.AccountID, &balance, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	b, err := parseDecimal(balance)
	if err != nil {
		return nil, err
	}
	w.Balance = b
	w.CreatedAt = fromMicros(createdAt)
	w.UpdatedAt = fromMicros(updatedAt)
	return &w, nil
}
