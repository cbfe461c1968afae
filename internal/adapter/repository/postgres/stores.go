package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gowallet/internal/usecase"
)

// NewStores wires every Postgres repository around pool.
func NewStores(pool *pgxpool.Pool, retrier *Retrier, withOutbox bool) usecase.Stores {
	var outbox usecase.OutboxRepository = NewNullOutboxRepository()
	if withOutbox {
		outbox = NewOutboxRepository(pool)
	}

	return usecase.Stores{
		TxManager:    NewTxManager(pool),
		Wallets:      NewWalletRepository(pool),
		Transactions: NewTransactionRepository(pool),
		Ledger:       NewLedgerRepository(pool),
		Outbox:       outbox,
		IDGen:        NewULIDGenerator(),
		Retrier:      retrier,
	}
}
