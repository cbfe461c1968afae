package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// HistoryUseCase answers questions about past wallet activity.
type HistoryUseCase struct {
	txManager       TransactionManager
	walletRepo      WalletRepository
	transactionRepo TransactionRepository
}

// NewHistoryUseCase creates a new HistoryUseCase.
func NewHistoryUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	transactionRepo TransactionRepository,
) *HistoryUseCase {
	return &HistoryUseCase{
		txManager:       txManager,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
	}
}

// GetTransactionHistory returns every record filed against walletID in
// (timestamp, id) order. Transfers into the wallet are filed against their
// source and do not appear here.
func (uc *HistoryUseCase) GetTransactionHistory(ctx context.Context, walletID string) ([]*domain.TransactionRecord, error) {
	if _, err := uc.walletRepo.GetByID(ctx, walletID); err != nil {
		return nil, storeError(err)
	}

	records, err := uc.transactionRepo.ListByWallet(ctx, walletID)
	if err != nil {
		return nil, storeError(err)
	}

	domain.SortRecords(records)
	return records, nil
}

// GetTransaction retrieves a single record.
func (uc *HistoryUseCase) GetTransaction(ctx context.Context, id string) (*domain.TransactionRecord, error) {
	record, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return record, nil
}

// GetHistoricalBalance starts from the wallet's current balance and undoes,
// in (timestamp, id) order, every record filed against it with a timestamp
// at or before at.
func (uc *HistoryUseCase) GetHistoricalBalance(ctx context.Context, walletID string, at time.Time) (decimal.Decimal, error) {
	var balance decimal.Decimal

	err := read(ctx, uc.txManager, func(ctx context.Context, tx Transaction) error {
		wallet, err := uc.walletRepo.GetByIDForShare(ctx, tx, walletID)
		if err != nil {
			return err
		}

		records, err := uc.transactionRepo.ListByWalletUpTo(ctx, tx, walletID, at)
		if err != nil {
			return err
		}

		balance = ReplayInverse(walletID, wallet.Balance, records)
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	return balance, nil
}

// ReplayInverse sorts records by (timestamp, id) and undoes each of them,
// from the point of view of walletID, starting at current.
func ReplayInverse(walletID string, current decimal.Decimal, records []*domain.TransactionRecord) decimal.Decimal {
	domain.SortRecords(records)

	balance := current
	for _, r := range records {
		balance = r.Undo(walletID, balance)
	}
	return balance
}
