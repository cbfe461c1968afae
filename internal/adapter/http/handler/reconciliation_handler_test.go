package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

type reconciliationServiceStub struct {
	walletFn      func(ctx context.Context, walletID string) (*usecase.WalletReconciliation, error)
	allFn         func(ctx context.Context) (*usecase.ReconciliationReport, error)
	consistencyFn func(ctx context.Context) (*usecase.ConsistencyReport, error)
}

func (s *reconciliationServiceStub) ReconcileWallet(ctx context.Context, walletID string) (*usecase.WalletReconciliation, error) {
	return s.walletFn(ctx, walletID)
}

func (s *reconciliationServiceStub) ReconcileAll(ctx context.Context) (*usecase.ReconciliationReport, error) {
	return s.allFn(ctx)
}

func (s *reconciliationServiceStub) CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error) {
	return s.consistencyFn(ctx)
}

func TestReconciliationHandler_ReconcileWallet(t *testing.T) {
	handler := NewReconciliationHandler(&reconciliationServiceStub{
		walletFn: func(ctx context.Context, walletID string) (*usecase.WalletReconciliation, error) {
			return &usecase.WalletReconciliation{
				WalletID:          walletID,
				RecordedBalance:   decimal.NewFromInt(12),
				CalculatedBalance: decimal.NewFromInt(10),
				Difference:        decimal.NewFromInt(2),
				RecordCount:       3,
			}, nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "w-1")
	rec := httptest.NewRecorder()
	handler.ReconcileWallet(rec, req)

	var resp dto.ReconciliationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.Reconciled || resp.Difference != "2.00" || resp.RecordCount != 3 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestReconciliationHandler_ConsistencyStoreDown(t *testing.T) {
	handler := NewReconciliationHandler(&reconciliationServiceStub{
		consistencyFn: func(ctx context.Context) (*usecase.ConsistencyReport, error) {
			return nil, fmt.Errorf("%w: timeout", domain.ErrStoreUnavailable)
		},
	})

	rec := httptest.NewRecorder()
	handler.Consistency(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestReconciliationHandler_ReconcileAll(t *testing.T) {
	handler := NewReconciliationHandler(&reconciliationServiceStub{
		allFn: func(ctx context.Context) (*usecase.ReconciliationReport, error) {
			return &usecase.ReconciliationReport{
				TotalWallets:      2,
				ReconciledWallets: 2,
				Consistency: &usecase.ConsistencyReport{
					TotalBalance: decimal.NewFromInt(5),
					NetFlow:      decimal.NewFromInt(5),
					Consistent:   true,
				},
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.ReconcileAll(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var resp dto.ReconciliationReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.TotalWallets != 2 || resp.Consistency == nil || !resp.Consistency.Consistent {
		t.Fatalf("unexpected response %+v", resp)
	}
}
