package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// TransactionUseCase moves money: deposits, withdrawals and transfers.
type TransactionUseCase struct {
	txManager       TransactionManager
	walletRepo      WalletRepository
	transactionRepo TransactionRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
	retrier         Retrier
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	transactionRepo TransactionRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
) *TransactionUseCase {
	if retrier == nil {
		retrier = NoRetry
	}
	return &TransactionUseCase{
		txManager:       txManager,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
		retrier:         retrier,
	}
}

// TransferInput represents input for a transfer between two wallets.
type TransferInput struct {
	FromWalletID string
	ToWalletID   string
	Amount       decimal.Decimal
}

// Deposit credits amount to a wallet.
func (uc *TransactionUseCase) Deposit(ctx context.Context, walletID string, amount decimal.Decimal) (*domain.TransactionRecord, error) {
	return uc.applySingle(ctx, walletID, domain.TransactionTypeDeposit, amount)
}

// Withdraw debits amount from a wallet.
func (uc *TransactionUseCase) Withdraw(ctx context.Context, walletID string, amount decimal.Decimal) (*domain.TransactionRecord, error) {
	return uc.applySingle(ctx, walletID, domain.TransactionTypeWithdraw, amount)
}

func (uc *TransactionUseCase) applySingle(
	ctx context.Context,
	walletID string,
	txType domain.TransactionType,
	amount decimal.Decimal,
) (*domain.TransactionRecord, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	var record *domain.TransactionRecord

	err := mutate(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		wallet, err := uc.walletRepo.GetByIDForUpdate(ctx, tx, walletID)
		if err != nil {
			return err
		}

		var newBalance decimal.Decimal
		if txType == domain.TransactionTypeWithdraw {
			if err := wallet.ValidateDebit(amount); err != nil {
				return err
			}
			newBalance = wallet.ApplyDebit(amount)
		} else {
			newBalance = wallet.ApplyCredit(amount)
		}

		now := domain.RecordTime(time.Now())
		r := &domain.TransactionRecord{
			ID:        uc.idGen.Generate(),
			WalletID:  wallet.ID,
			Type:      txType,
			Amount:    amount,
			Timestamp: now,
		}

		if err := uc.walletRepo.UpdateBalance(ctx, tx, wallet.ID, newBalance, now); err != nil {
			return err
		}

		if err := uc.record(ctx, tx, r, newBalance); err != nil {
			return err
		}

		record = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Transfer moves amount between two wallets and files one TRANSFER record
// against the source wallet.
func (uc *TransactionUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.TransactionRecord, error) {
	// 0. Validate inputs before starting transaction
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.FromWalletID == input.ToWalletID {
		return nil, domain.ErrSelfTransfer
	}

	// 1. Sort wallet IDs (DEADLOCK PREVENTION)
	walletIDs := []string{input.FromWalletID, input.ToWalletID}
	sort.Strings(walletIDs)

	var record *domain.TransactionRecord

	err := mutate(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		// 2. Lock wallets in sorted order
		wallets, err := uc.walletRepo.GetByIDsForUpdate(ctx, tx, walletIDs)
		if err != nil {
			return err
		}

		walletMap := make(map[string]*domain.Wallet, len(wallets))
		for _, w := range wallets {
			walletMap[w.ID] = w
		}

		from, to := walletMap[input.FromWalletID], walletMap[input.ToWalletID]
		if from == nil || to == nil {
			return domain.ErrWalletNotFound
		}

		// 3. Check and apply
		if err := from.ValidateDebit(input.Amount); err != nil {
			return err
		}

		newFromBalance := from.ApplyDebit(input.Amount)
		newToBalance := to.ApplyCredit(input.Amount)
		now := domain.RecordTime(time.Now())

		if err := uc.walletRepo.UpdateBalance(ctx, tx, from.ID, newFromBalance, now); err != nil {
			return err
		}
		if err := uc.walletRepo.UpdateBalance(ctx, tx, to.ID, newToBalance, now); err != nil {
			return err
		}

		related := to.ID
		r := &domain.TransactionRecord{
			ID:              uc.idGen.Generate(),
			WalletID:        from.ID,
			Type:            domain.TransactionTypeTransfer,
			Amount:          input.Amount,
			Timestamp:       now,
			RelatedWalletID: &related,
		}

		if err := uc.record(ctx, tx, r, newFromBalance); err != nil {
			return err
		}

		record = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// record appends r and its outbox event within tx.
func (uc *TransactionUseCase) record(ctx context.Context, tx Transaction, r *domain.TransactionRecord, balance decimal.Decimal) error {
	if err := r.Validate(); err != nil {
		return err
	}

	if err := uc.transactionRepo.Append(ctx, tx, r); err != nil {
		return err
	}

	event := domain.NewTransactionRecordedEvent(uc.idGen.Generate(), r, domain.FormatAmount(balance))
	return uc.outboxRepo.Create(ctx, tx, event)
}
