package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gowallet/internal/domain"
)

func strp(s string) *string { return &s }

func TestHistoryUseCase_HistoricalBalanceScenario(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t)
	w := mustWallet(t, l, 1, "0")
	other := mustWallet(t, l, 2, "0")

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	at := base.Add(time.Hour)

	insertRecords(t, store, w.ID, dec("100"),
		&domain.TransactionRecord{ID: "r1", WalletID: w.ID, Type: domain.TransactionTypeDeposit, Amount: dec("50"), Timestamp: base},
		&domain.TransactionRecord{ID: "r2", WalletID: w.ID, Type: domain.TransactionTypeWithdraw, Amount: dec("30"), Timestamp: base.Add(time.Minute)},
		&domain.TransactionRecord{ID: "r3", WalletID: w.ID, Type: domain.TransactionTypeTransfer, Amount: dec("20"), Timestamp: base.Add(2 * time.Minute), RelatedWalletID: strp(other.ID)},
		&domain.TransactionRecord{ID: "r4", WalletID: w.ID, Type: domain.TransactionTypeTransfer, Amount: dec("10"), Timestamp: at, RelatedWalletID: strp(other.ID)},
		// After the query instant: ignored.
		&domain.TransactionRecord{ID: "r5", WalletID: w.ID, Type: domain.TransactionTypeDeposit, Amount: dec("999"), Timestamp: at.Add(time.Microsecond)},
	)

	got, err := l.GetHistoricalBalance(ctx, w.ID, at)
	require.NoError(t, err)
	assert.Equal(t, "110.00", domain.FormatAmount(got))

	// Repeated queries with no intervening mutation agree.
	for i := 0; i < 3; i++ {
		again, err := l.GetHistoricalBalance(ctx, w.ID, at)
		require.NoError(t, err)
		assert.True(t, again.Equal(got))
	}
}

func TestHistoryUseCase_HistoricalBalanceBeforeAnyRecord(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	w := mustWallet(t, l, 1, "25")

	got, err := l.GetHistoricalBalance(ctx, w.ID, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("25")), "no records selected: current balance is returned")
}

func TestHistoryUseCase_HistoricalBalanceUnknownWallet(t *testing.T) {
	l, _ := newLedger(t)

	_, err := l.GetHistoricalBalance(context.Background(), "missing", time.Now())
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestHistoryUseCase_TieBreakByID(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t)
	w := mustWallet(t, l, 1, "0")
	ts := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	insertRecords(t, store, w.ID, dec("10"),
		&domain.TransactionRecord{ID: "b", WalletID: w.ID, Type: domain.TransactionTypeWithdraw, Amount: dec("3"), Timestamp: ts},
		&domain.TransactionRecord{ID: "a", WalletID: w.ID, Type: domain.TransactionTypeDeposit, Amount: dec("5"), Timestamp: ts},
	)

	history, err := l.GetTransactionHistory(ctx, w.ID)
	require.NoError(t, err)

	require.Len(t, history, 2)
	assert.Equal(t, "a", history[0].ID)
	assert.Equal(t, "b", history[1].ID)

	got, err := l.GetHistoricalBalance(ctx, w.ID, ts)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("8")))
}

func TestHistoryUseCase_TransactionHistory(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	a := mustWallet(t, l, 1, "0")

	_, err := l.GetTransactionHistory(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)

	history, err := l.GetTransactionHistory(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	rec, err := l.Deposit(ctx, a.ID, dec("3"))
	require.NoError(t, err)

	got, err := l.GetTransaction(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.True(t, got.Amount.Equal(dec("3")))

	_, err = l.GetTransaction(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}
