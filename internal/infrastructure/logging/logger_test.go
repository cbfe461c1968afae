package logging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
	"github.com/iho/gowallet/internal/usecase"
	"github.com/iho/gowallet/internal/usecase/mocks"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFrom(ctx))
	assert.Empty(t, RequestIDFrom(context.Background()))
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{domain.ErrWalletNotFound, "wallet_not_found"},
		{fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, errors.New("conn reset")), "store_unavailable"},
		{domain.ErrInsufficientBalance, "insufficient_balance"},
		{context.Canceled, "cancelled"},
		{errors.New("boom"), "internal"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorKind(tt.err), "%v", tt.err)
	}
}

func TestLedgerLoggerLogsAndCounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockLedgerService(ctrl)

	var buf bytes.Buffer
	m := metrics.New(prometheus.NewRegistry())
	l := NewLedgerLogger(next, zerolog.New(&buf).Level(zerolog.DebugLevel), m)

	rec := &domain.TransactionRecord{ID: "t1", WalletID: "w1", Type: domain.TransactionTypeDeposit, Amount: decimal.NewFromInt(5)}
	next.EXPECT().Deposit(gomock.Any(), "w1", gomock.Any()).Return(rec, nil)

	ctx := WithRequestID(context.Background(), "req-42")
	got, err := l.Deposit(ctx, "w1", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Same(t, rec, got)

	out := buf.String()
	assert.Contains(t, out, "executing deposit")
	assert.Contains(t, out, `"request_id":"req-42"`)
	assert.Contains(t, out, `"wallet_id":"w1"`)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("deposit", "ok")))
}

func TestLedgerLoggerRecordsErrorKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockLedgerService(ctrl)

	var buf bytes.Buffer
	m := metrics.New(prometheus.NewRegistry())
	l := NewLedgerLogger(next, zerolog.New(&buf), m)

	next.EXPECT().
		Transfer(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrSelfTransfer)

	_, err := l.Transfer(context.Background(), usecase.TransferInput{FromWalletID: "a", ToWalletID: "a", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrSelfTransfer)

	out := buf.String()
	assert.True(t, strings.Contains(out, `"kind":"self_transfer"`), out)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationErrors.WithLabelValues("transfer", "self_transfer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("transfer", "error")))
}

func TestLedgerLoggerReconcileAllSetsGauges(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockLedgerService(ctrl)
	m := metrics.New(prometheus.NewRegistry())
	l := NewLedgerLogger(next, zerolog.Nop(), m)

	next.EXPECT().ReconcileAll(gomock.Any()).Return(&usecase.ReconciliationReport{
		TotalWallets:  3,
		Discrepancies: []*usecase.WalletReconciliation{{WalletID: "w1"}},
		Consistency:   &usecase.ConsistencyReport{Consistent: true},
	}, nil)

	_, err := l.ReconcileAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReconciliationDiscrepancies))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LedgerConsistent))
}

func TestLedgerLoggerWithoutMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockLedgerService(ctrl)
	l := NewLedgerLogger(next, zerolog.Nop(), nil)

	next.EXPECT().CreateWallet(gomock.Any(), "acc").Return(&domain.Wallet{ID: "w1"}, nil)

	w, err := l.CreateWallet(context.Background(), "acc")
	require.NoError(t, err)
	assert.Equal(t, "w1", w.ID)
}
