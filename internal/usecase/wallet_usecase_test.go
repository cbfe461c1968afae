package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/internal/usecase/mocks"
)

func TestWalletUseCase_CreateWallet(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)

	w, err := l.CreateWallet(ctx, accountID(1))
	require.NoError(t, err)
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, accountID(1), w.AccountID)
	assert.True(t, w.Balance.IsZero())

	byAccount, err := l.GetWalletByAccount(ctx, accountID(1))
	require.NoError(t, err)
	assert.Equal(t, w.ID, byAccount.ID)

	t.Run("duplicate account", func(t *testing.T) {
		_, err := l.CreateWallet(ctx, accountID(1))
		assert.ErrorIs(t, err, domain.ErrWalletAlreadyExists)
	})

	t.Run("invalid account id", func(t *testing.T) {
		_, err := l.CreateWallet(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrInvalidAccountID)
	})
}

func TestWalletUseCase_ConcurrentCreatesForOneAccount(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)

	const n = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.CreateWallet(ctx, accountID(7))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			assert.ErrorIs(t, err, domain.ErrWalletAlreadyExists)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestWalletUseCase_GetBalance(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	w := mustWallet(t, l, 1, "12.34")

	b, err := l.GetBalance(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.34", domain.FormatAmount(b))

	_, err = l.GetBalance(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestWalletUseCase_ListWallets(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	for i := 1; i <= 3; i++ {
		mustWallet(t, l, i, "0")
	}

	all, err := l.ListWallets(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := l.ListWallets(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestWalletUseCase_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	walletRepo := mocks.NewMockWalletRepository(ctrl)
	outboxRepo := mocks.NewMockOutboxRepository(ctrl)
	txManager := mocks.NewMockTransactionManager(ctrl)
	tx := mocks.NewMockTransaction(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	boom := errors.New("connection reset")

	walletRepo.EXPECT().GetByAccountID(gomock.Any(), accountID(1)).Return(nil, domain.ErrWalletNotFound)
	idGen.EXPECT().Generate().Return("w1").AnyTimes()
	txManager.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	walletRepo.EXPECT().Create(gomock.Any(), tx, gomock.Any()).Return(boom)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	uc := usecase.NewWalletUseCase(txManager, walletRepo, outboxRepo, idGen, nil)
	_, err := uc.CreateWallet(ctx, accountID(1))

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, err, boom)
}

func TestWalletUseCase_LookupFailureIsStoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)

	walletRepo := mocks.NewMockWalletRepository(ctrl)
	walletRepo.EXPECT().GetByAccountID(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	uc := usecase.NewWalletUseCase(nil, walletRepo, nil, nil, nil)
	_, err := uc.CreateWallet(context.Background(), accountID(1))

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
