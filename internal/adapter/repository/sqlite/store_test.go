package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

type seqIDs struct{ n atomic.Int64 }

func (g *seqIDs) Generate() string {
	return fmt.Sprintf("id-%012d", g.n.Add(1))
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "wallet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newLedger(t *testing.T) (*usecase.Ledger, *Store) {
	s := openStore(t)
	return usecase.NewLedgerFromStores(s.Repositories(&seqIDs{})), s
}

func accountID(n int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wallet.db")

	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())
}

func TestLedgerOnSQLite(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)

	a, err := l.CreateWallet(ctx, accountID(1))
	require.NoError(t, err)
	b, err := l.CreateWallet(ctx, accountID(2))
	require.NoError(t, err)

	_, err = l.CreateWallet(ctx, accountID(1))
	assert.ErrorIs(t, err, domain.ErrWalletAlreadyExists)

	_, err = l.Deposit(ctx, a.ID, decimal.RequireFromString("100.25"))
	require.NoError(t, err)
	_, err = l.Withdraw(ctx, a.ID, decimal.RequireFromString("0.25"))
	require.NoError(t, err)
	rec, err := l.Transfer(ctx, usecase.TransferInput{FromWalletID: a.ID, ToWalletID: b.ID, Amount: decimal.NewFromInt(30)})
	require.NoError(t, err)

	got, err := l.GetTransaction(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RelatedWalletID)
	assert.Equal(t, b.ID, *got.RelatedWalletID)
	assert.Equal(t, rec.Timestamp, got.Timestamp)

	_, err = l.Withdraw(ctx, b.ID, decimal.NewFromInt(31))
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	balA, err := l.GetBalance(ctx, a.ID)
	require.NoError(t, err)
	balB, err := l.GetBalance(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, balA.Equal(decimal.NewFromInt(70)), balA.String())
	assert.True(t, balB.Equal(decimal.NewFromInt(30)), balB.String())

	history, err := l.GetTransactionHistory(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, history, 3)

	hist, err := l.GetHistoricalBalance(ctx, a.ID, rec.Timestamp)
	require.NoError(t, err)
	assert.True(t, hist.IsZero(), hist.String())

	report, err := l.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalWallets)
	assert.Empty(t, report.Discrepancies)
	assert.True(t, report.Consistency.Consistent)
	assert.True(t, report.Consistency.TotalBalance.Equal(decimal.NewFromInt(100)))
}

func TestConcurrentDepositsSerialise(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)

	w, err := l.CreateWallet(ctx, accountID(1))
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = l.Deposit(ctx, w.ID, decimal.RequireFromString("1.50"))
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	bal, err := l.GetBalance(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.NewFromInt(30)), bal.String())

	history, err := l.GetTransactionHistory(ctx, w.ID)
	require.NoError(t, err)
	assert.Len(t, history, n)
}

func TestWalletRepository_NegativeBalanceRejected(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	repo := NewWalletRepository(s)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	now := domain.RecordTime(time.Now())
	require.NoError(t, repo.Create(ctx, tx, domain.NewWallet("w1", accountID(1), now)))

	err = repo.UpdateBalance(ctx, tx, "w1", decimal.NewFromInt(-1), now)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	err = repo.UpdateBalance(ctx, tx, "missing", decimal.NewFromInt(1), now)
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestTransactionRepository_UnknownWallet(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	err = NewTransactionRepository(s).Append(ctx, tx, &domain.TransactionRecord{
		ID:        "r1",
		WalletID:  "ghost",
		Type:      domain.TransactionTypeDeposit,
		Amount:    decimal.NewFromInt(1),
		Timestamp: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestRollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	repo := NewWalletRepository(s)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, tx, domain.NewWallet("w1", accountID(1), time.Now())))
	require.NoError(t, tx.Rollback(ctx))

	_, err = repo.GetByID(ctx, "w1")
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestOutboxRepository(t *testing.T) {
	ctx := context.Background()
	l, s := newLedger(t)
	outbox := NewOutboxRepository(s)

	w, err := l.CreateWallet(ctx, accountID(1))
	require.NoError(t, err)
	_, err = l.Deposit(ctx, w.ID, decimal.NewFromInt(5))
	require.NoError(t, err)

	events, err := outbox.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventTypeWalletCreated, events[0].EventType)
	assert.Equal(t, domain.EventTypeTransactionRecorded, events[1].EventType)
	assert.Equal(t, "5.00", events[1].Payload["amount"])

	now := time.Now()
	require.NoError(t, outbox.MarkPublished(ctx, events[0].ID, now))

	events, err = outbox.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	require.NoError(t, outbox.DeletePublished(ctx, now.Add(time.Second)))
}

func TestForeignTransactionRejected(t *testing.T) {
	s := openStore(t)

	_, err := NewWalletRepository(s).GetByIDForUpdate(context.Background(), foreignTx{}, "w1")
	assert.ErrorIs(t, err, errForeignTx)
}

type foreignTx struct{}

func (foreignTx) Commit(context.Context) error   { return nil }
func (foreignTx) Rollback(context.Context) error { return nil }
