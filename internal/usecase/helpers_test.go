package usecase_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/gowallet/internal/adapter/repository/memory"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// seqIDs yields lexically increasing ids.
type seqIDs struct{ n atomic.Int64 }

func (g *seqIDs) Generate() string {
	return fmt.Sprintf("id-%012d", g.n.Add(1))
}

func newLedger(t *testing.T) (*usecase.Ledger, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return usecase.NewLedgerFromStores(store.Repositories(&seqIDs{})), store
}

func accountID(n int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustWallet(t *testing.T, l *usecase.Ledger, n int, balance string) *domain.Wallet {
	t.Helper()
	ctx := context.Background()

	w, err := l.CreateWallet(ctx, accountID(n))
	require.NoError(t, err)

	if amount := dec(balance); amount.IsPositive() {
		_, err = l.Deposit(ctx, w.ID, amount)
		require.NoError(t, err)
	}
	return w
}

func balanceOf(t *testing.T, l *usecase.Ledger, walletID string) decimal.Decimal {
	t.Helper()
	b, err := l.GetBalance(context.Background(), walletID)
	require.NoError(t, err)
	return b
}

// insertRecords writes records and sets the wallet's balance directly,
// bypassing the engine, to build exact historical scenarios.
func insertRecords(t *testing.T, store *memory.Store, walletID string, balance decimal.Decimal, records ...*domain.TransactionRecord) {
	t.Helper()
	ctx := context.Background()
	wallets := memory.NewWalletRepository(store)
	txs := memory.NewTransactionRepository(store)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	_, err = wallets.GetByIDForUpdate(ctx, tx, walletID)
	require.NoError(t, err)
	require.NoError(t, wallets.UpdateBalance(ctx, tx, walletID, balance, time.Now()))
	for _, r := range records {
		require.NoError(t, txs.Append(ctx, tx, r))
	}
	require.NoError(t, tx.Commit(ctx))
}

type decimalMatcher struct{ want decimal.Decimal }

func (m decimalMatcher) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string { return "is decimal " + m.want.String() }

func decEq(s string) decimalMatcher { return decimalMatcher{want: dec(s)} }
