package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/postgres/generated"
	"github.com/iho/gowallet/internal/usecase"
)

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	queries *generated.Queries
}

// NewWalletRepository creates a new WalletRepository. db is usually the
// *pgxpool.Pool; reads outside a transaction go straight to it.
func NewWalletRepository(db generated.DBTX) *WalletRepository {
	return &WalletRepository{
		queries: generated.New(db),
	}
}

// Create inserts a new wallet. A second wallet for the same account violates
// wallets_account_id_key and is reported as ErrWalletAlreadyExists.
func (r *WalletRepository) Create(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error {
	queries, err := queriesFor(tx)
	if err != nil {
		return err
	}

	err = queries.CreateWallet(ctx, generated.CreateWalletParams{
		ID:        wallet.ID,
		AccountID: wallet.AccountID,
		Balance:   decimalToNumeric(wallet.Balance),
		CreatedAt: timeToPgTimestamptz(wallet.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(wallet.UpdatedAt),
	})

	return mapWriteError(err)
}

// GetByID retrieves a wallet by ID.
func (r *WalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	return walletOrNotFound(r.queries.GetWalletByID(ctx, id))
}

// GetByAccountID retrieves the wallet owned by accountID.
func (r *WalletRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.Wallet, error) {
	return walletOrNotFound(r.queries.GetWalletByAccountID(ctx, accountID))
}

// GetByIDForUpdate retrieves a wallet by ID with a FOR UPDATE lock.
func (r *WalletRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wallet, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	return walletOrNotFound(queries.GetWalletByIDForUpdate(ctx, id))
}

// GetByIDsForUpdate retrieves multiple wallets with FOR UPDATE locks. The
// query orders by id so row locks are always taken in the same order.
// Missing ids are absent from the result.
func (r *WalletRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Wallet, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	rows, err := queries.GetWalletsByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	return rowsToWallets(rows)
}

// GetByIDForShare retrieves a wallet by ID with a FOR SHARE lock.
func (r *WalletRepository) GetByIDForShare(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wallet, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	return walletOrNotFound(queries.GetWalletByIDForShare(ctx, id))
}

// UpdateBalance sets the stored balance of a locked wallet.
func (r *WalletRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	queries, err := queriesFor(tx)
	if err != nil {
		return err
	}

	n, err := queries.UpdateWalletBalance(ctx, generated.UpdateWalletBalanceParams{
		ID:        id,
		Balance:   decimalToNumeric(balance),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		return mapWriteError(err)
	}
	if n == 0 {
		return domain.ErrWalletNotFound
	}

	return nil
}

// List retrieves wallets ordered by id.
func (r *WalletRepository) List(ctx context.Context, limit, offset int) ([]*domain.Wallet, error) {
	rows, err := r.queries.ListWallets(ctx, generated.ListWalletsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToWallets(rows)
}

func walletOrNotFound(row generated.Wallet, err error) (*domain.Wallet, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, err
	}

	return rowToWallet(row)
}

func rowsToWallets(rows []generated.Wallet) ([]*domain.Wallet, error) {
	wallets := make([]*domain.Wallet, 0, len(rows))
	for _, row := range rows {
		w, err := rowToWallet(row)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}

	return wallets, nil
}

func rowToWallet(row generated.Wallet) (*domain.Wallet, error) {
	balance, err := numericToDecimal(row.Balance)
	if err != nil {
		return nil, err
	}

	return &domain.Wallet{
		ID:        row.ID,
		AccountID: row.AccountID,
		Balance:   balance,
		CreatedAt: row.CreatedAt.Time.UTC(),
		UpdatedAt: row.UpdatedAt.Time.UTC(),
	}, nil
}
