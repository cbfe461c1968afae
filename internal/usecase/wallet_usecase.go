package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// WalletUseCase handles wallet lifecycle.
type WalletUseCase struct {
	txManager  TransactionManager
	walletRepo WalletRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
	retrier    Retrier
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
) *WalletUseCase {
	if retrier == nil {
		retrier = NoRetry
	}
	return &WalletUseCase{
		txManager:  txManager,
		walletRepo: walletRepo,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		retrier:    retrier,
	}
}

// CreateWallet opens an empty wallet for accountID.
func (uc *WalletUseCase) CreateWallet(ctx context.Context, accountID string) (*domain.Wallet, error) {
	if err := domain.ValidateAccountID(accountID); err != nil {
		return nil, err
	}

	// Fast path; the store's unique constraint settles concurrent creates.
	_, err := uc.walletRepo.GetByAccountID(ctx, accountID)
	switch {
	case err == nil:
		return nil, domain.ErrWalletAlreadyExists
	case !errors.Is(err, domain.ErrWalletNotFound):
		return nil, storeError(err)
	}

	wallet := domain.NewWallet(uc.idGen.Generate(), accountID, domain.RecordTime(time.Now()))

	err = mutate(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		if err := uc.walletRepo.Create(ctx, tx, wallet); err != nil {
			return err
		}
		return uc.outboxRepo.Create(ctx, tx, domain.NewWalletCreatedEvent(uc.idGen.Generate(), wallet))
	})
	if err != nil {
		return nil, err
	}

	return wallet, nil
}

// GetWallet retrieves a wallet by ID.
func (uc *WalletUseCase) GetWallet(ctx context.Context, id string) (*domain.Wallet, error) {
	wallet, err := uc.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return wallet, nil
}

// GetWalletByAccount retrieves the wallet owned by accountID.
func (uc *WalletUseCase) GetWalletByAccount(ctx context.Context, accountID string) (*domain.Wallet, error) {
	wallet, err := uc.walletRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, storeError(err)
	}
	return wallet, nil
}

// GetBalance returns the current balance of a wallet.
func (uc *WalletUseCase) GetBalance(ctx context.Context, walletID string) (decimal.Decimal, error) {
	wallet, err := uc.GetWallet(ctx, walletID)
	if err != nil {
		return decimal.Zero, err
	}
	return wallet.Balance, nil
}

// ListWallets lists wallets with pagination.
func (uc *WalletUseCase) ListWallets(ctx context.Context, limit, offset int) ([]*domain.Wallet, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	wallets, err := uc.walletRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, storeError(err)
	}
	return wallets, nil
}
