package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// WalletRepository defines data access for wallets.
//
// Create and UpdateBalance under a row lock together form the store's upsert.
type WalletRepository interface {
	Create(ctx context.Context, tx Transaction, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id string) (*domain.Wallet, error)
	GetByAccountID(ctx context.Context, accountID string) (*domain.Wallet, error)
	// GetByIDForUpdate locks the wallet exclusively until tx ends.
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Wallet, error)
	// GetByIDsForUpdate locks the wallets in the order given; callers pass sorted ids.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Wallet, error)
	// GetByIDForShare blocks writers but not other readers until tx ends.
	GetByIDForShare(ctx context.Context, tx Transaction, id string) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Wallet, error)
}

// TransactionRepository defines data access for transaction records.
type TransactionRepository interface {
	Append(ctx context.Context, tx Transaction, record *domain.TransactionRecord) error
	GetByID(ctx context.Context, id string) (*domain.TransactionRecord, error)
	ListByWallet(ctx context.Context, walletID string) ([]*domain.TransactionRecord, error)
	// ListByWalletUpTo returns records filed against walletID with Timestamp <= at.
	ListByWalletUpTo(ctx context.Context, tx Transaction, walletID string, at time.Time) ([]*domain.TransactionRecord, error)
	// ListByRelatedWallet returns transfers whose counterparty is walletID.
	ListByRelatedWallet(ctx context.Context, tx Transaction, walletID string) ([]*domain.TransactionRecord, error)
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	// Totals returns the sum of all wallet balances and the net external flow
	// (deposits minus withdrawals) recorded in the ledger.
	Totals(ctx context.Context) (totalBalance, netFlow decimal.Decimal, err error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a store transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique, lexically increasing IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs fn while it fails with a transient conflict.
type Retrier interface {
	Retry(ctx context.Context, fn func() error) error
}

// LedgerService is the full operation set offered to transports.
type LedgerService interface {
	CreateWallet(ctx context.Context, accountID string) (*domain.Wallet, error)
	GetWallet(ctx context.Context, id string) (*domain.Wallet, error)
	GetWalletByAccount(ctx context.Context, accountID string) (*domain.Wallet, error)
	ListWallets(ctx context.Context, limit, offset int) ([]*domain.Wallet, error)
	GetBalance(ctx context.Context, walletID string) (decimal.Decimal, error)

	Deposit(ctx context.Context, walletID string, amount decimal.Decimal) (*domain.TransactionRecord, error)
	Withdraw(ctx context.Context, walletID string, amount decimal.Decimal) (*domain.TransactionRecord, error)
	Transfer(ctx context.Context, input TransferInput) (*domain.TransactionRecord, error)

	GetTransactionHistory(ctx context.Context, walletID string) ([]*domain.TransactionRecord, error)
	GetTransaction(ctx context.Context, id string) (*domain.TransactionRecord, error)
	GetHistoricalBalance(ctx context.Context, walletID string, at time.Time) (decimal.Decimal, error)

	ReconcileWallet(ctx context.Context, walletID string) (*WalletReconciliation, error)
	ReconcileAll(ctx context.Context) (*ReconciliationReport, error)
	CheckConsistency(ctx context.Context) (*ConsistencyReport, error)
}
