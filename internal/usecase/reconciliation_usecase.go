package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationUseCase checks stored balances against the ledger.
type ReconciliationUseCase struct {
	txManager       TransactionManager
	walletRepo      WalletRepository
	transactionRepo TransactionRepository
	ledgerRepo      LedgerRepository
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	transactionRepo TransactionRepository,
	ledgerRepo LedgerRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		txManager:       txManager,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		ledgerRepo:      ledgerRepo,
	}
}

// WalletReconciliation is the outcome of replaying one wallet from zero.
type WalletReconciliation struct {
	WalletID          string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	RecordCount       int
	Reconciled        bool
	CheckedAt         time.Time
}

// ConsistencyReport compares the sum of all balances with the net external flow.
type ConsistencyReport struct {
	TotalBalance decimal.Decimal
	NetFlow      decimal.Decimal
	Consistent   bool
	CheckedAt    time.Time
}

// ReconciliationReport summarises a reconciliation pass over every wallet.
type ReconciliationReport struct {
	TotalWallets      int
	ReconciledWallets int
	Discrepancies     []*WalletReconciliation
	Consistency       *ConsistencyReport
	CheckedAt         time.Time
}

// ReconcileWallet replays the wallet's own records plus transfers credited to
// it and compares the result with its stored balance.
func (uc *ReconciliationUseCase) ReconcileWallet(ctx context.Context, walletID string) (*WalletReconciliation, error) {
	var result *WalletReconciliation

	err := read(ctx, uc.txManager, func(ctx context.Context, tx Transaction) error {
		wallet, err := uc.walletRepo.GetByIDForShare(ctx, tx, walletID)
		if err != nil {
			return err
		}

		checkedAt := time.Now().UTC()

		own, err := uc.transactionRepo.ListByWalletUpTo(ctx, tx, walletID, checkedAt)
		if err != nil {
			return err
		}

		incoming, err := uc.transactionRepo.ListByRelatedWallet(ctx, tx, walletID)
		if err != nil {
			return err
		}

		calculated := decimal.Zero
		for _, r := range own {
			calculated = calculated.Add(r.Effect(walletID))
		}
		for _, r := range incoming {
			calculated = calculated.Add(r.Effect(walletID))
		}

		diff := wallet.Balance.Sub(calculated)
		result = &WalletReconciliation{
			WalletID:          walletID,
			RecordedBalance:   wallet.Balance,
			CalculatedBalance: calculated,
			Difference:        diff,
			RecordCount:       len(own) + len(incoming),
			Reconciled:        diff.IsZero(),
			CheckedAt:         checkedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CheckConsistency verifies that money only enters and leaves through
// deposits and withdrawals.
func (uc *ReconciliationUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	totalBalance, netFlow, err := uc.ledgerRepo.Totals(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	return &ConsistencyReport{
		TotalBalance: totalBalance,
		NetFlow:      netFlow,
		Consistent:   totalBalance.Equal(netFlow),
		CheckedAt:    time.Now().UTC(),
	}, nil
}

// ReconcileAll reconciles every wallet, one page at a time, and checks
// ledger consistency.
func (uc *ReconciliationUseCase) ReconcileAll(ctx context.Context) (*ReconciliationReport, error) {
	report := &ReconciliationReport{
		Discrepancies: make([]*WalletReconciliation, 0),
		CheckedAt:     time.Now().UTC(),
	}

	for offset := 0; ; offset += ReconcilePageSize {
		wallets, err := uc.walletRepo.List(ctx, ReconcilePageSize, offset)
		if err != nil {
			return nil, storeError(err)
		}

		for _, w := range wallets {
			result, err := uc.ReconcileWallet(ctx, w.ID)
			if err != nil {
				return nil, err
			}
			report.TotalWallets++
			if result.Reconciled {
				report.ReconciledWallets++
			} else {
				report.Discrepancies = append(report.Discrepancies, result)
			}
		}

		if len(wallets) < ReconcilePageSize {
			break
		}
	}

	var err error
	report.Consistency, err = uc.CheckConsistency(ctx)
	if err != nil {
		return nil, err
	}

	return report, nil
}
