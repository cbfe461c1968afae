package usecase

// Ledger composes the use cases into a LedgerService.
type Ledger struct {
	*WalletUseCase
	*TransactionUseCase
	*HistoryUseCase
	*ReconciliationUseCase
}

var _ LedgerService = (*Ledger)(nil)

// NewLedger creates a new Ledger.
func NewLedger(
	wallets *WalletUseCase,
	transactions *TransactionUseCase,
	history *HistoryUseCase,
	reconciliation *ReconciliationUseCase,
) *Ledger {
	return &Ledger{
		WalletUseCase:         wallets,
		TransactionUseCase:    transactions,
		HistoryUseCase:        history,
		ReconciliationUseCase: reconciliation,
	}
}

// Stores bundles the repositories a backend provides.
type Stores struct {
	TxManager    TransactionManager
	Wallets      WalletRepository
	Transactions TransactionRepository
	Ledger       LedgerRepository
	Outbox       OutboxRepository
	IDGen        IDGenerator
	Retrier      Retrier
}

// NewLedgerFromStores wires every use case on top of one backend.
func NewLedgerFromStores(s Stores) *Ledger {
	return NewLedger(
		NewWalletUseCase(s.TxManager, s.Wallets, s.Outbox, s.IDGen, s.Retrier),
		NewTransactionUseCase(s.TxManager, s.Wallets, s.Transactions, s.Outbox, s.IDGen, s.Retrier),
		NewHistoryUseCase(s.TxManager, s.Wallets, s.Transactions),
		NewReconciliationUseCase(s.TxManager, s.Wallets, s.Transactions, s.Ledger),
	)
}
