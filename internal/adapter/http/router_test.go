package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gowallet/internal/adapter/http/dto"
	apimiddleware "github.com/iho/gowallet/internal/adapter/http/middleware"
	"github.com/iho/gowallet/internal/adapter/repository/memory"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
	"github.com/iho/gowallet/internal/usecase"
)

type seqIDs struct{ n atomic.Int64 }

func (g *seqIDs) Generate() string {
	return fmt.Sprintf("id-%012d", g.n.Add(1))
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	store := memory.NewStore()
	cfg := HandlersFor(usecase.NewLedgerFromStores(store.Repositories(&seqIDs{})))
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1, nil)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.Metrics = metrics.New(reg)
		cfg.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}))

	do(t, router, http.MethodGet, "/health", nil)

	rec := do(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `gowallet_http_requests_total{method="GET",path="/health",status="200"} 1`)
}

func TestNewRouter_WalletLifecycle(t *testing.T) {
	router := NewRouter(newRouterConfig())

	create := func(account string) dto.WalletResponse {
		rec := do(t, router, http.MethodPost, "/api/v1/wallets", dto.CreateWalletRequest{AccountID: account})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		return decode[dto.WalletResponse](t, rec)
	}

	a := create("00000000-0000-4000-8000-000000000001")
	b := create("00000000-0000-4000-8000-000000000002")
	assert.Equal(t, "0.00", a.Balance)

	rec := do(t, router, http.MethodPost, "/api/v1/wallets", dto.CreateWalletRequest{AccountID: "00000000-0000-4000-8000-000000000001"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/wallets/"+a.ID+"/deposit", dto.AmountRequest{Amount: "100"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	deposit := decode[dto.TransactionResponse](t, rec)

	rec = do(t, router, http.MethodPost, "/api/v1/wallets/"+a.ID+"/transfer", dto.TransferRequest{ToWalletID: b.ID, Amount: "30.25"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	transfer := decode[dto.TransactionResponse](t, rec)
	assert.Equal(t, a.ID, transfer.WalletID)
	require.NotNil(t, transfer.RelatedWalletID)
	assert.Equal(t, b.ID, *transfer.RelatedWalletID)

	rec = do(t, router, http.MethodPost, "/api/v1/wallets/"+b.ID+"/withdraw", dto.AmountRequest{Amount: "100"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/wallets/"+a.ID+"/balance", nil)
	assert.Equal(t, "69.75", decode[dto.BalanceResponse](t, rec).Balance)

	rec = do(t, router, http.MethodGet, "/api/v1/wallets/"+b.ID+"/balance", nil)
	assert.Equal(t, "30.25", decode[dto.BalanceResponse](t, rec).Balance)

	rec = do(t, router, http.MethodGet, "/api/v1/wallets/"+a.ID+"/transactions", nil)
	assert.Len(t, decode[dto.ListTransactionsResponse](t, rec).Transactions, 2)

	rec = do(t, router, http.MethodGet, "/api/v1/transactions/"+deposit.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	at := url.QueryEscape(transfer.Timestamp.Format(time.RFC3339Nano))
	rec = do(t, router, http.MethodGet, "/api/v1/wallets/"+a.ID+"/historical-balance?timestamp="+at, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "0.00", decode[dto.HistoricalBalanceResponse](t, rec).Balance)

	rec = do(t, router, http.MethodGet, "/api/v1/wallets/"+b.ID+"/reconciliation", nil)
	assert.True(t, decode[dto.ReconciliationResponse](t, rec).Reconciled)

	rec = do(t, router, http.MethodGet, "/api/v1/ledger/consistency", nil)
	consistency := decode[dto.ConsistencyResponse](t, rec)
	assert.True(t, consistency.Consistent)
	assert.Equal(t, "100.00", consistency.TotalBalance)

	rec = do(t, router, http.MethodGet, "/api/v1/ledger/reconciliation", nil)
	assert.Equal(t, 2, decode[dto.ReconciliationReportResponse](t, rec).TotalWallets)

	rec = do(t, router, http.MethodGet, "/api/v1/wallets?limit=1", nil)
	assert.Len(t, decode[dto.ListWalletsResponse](t, rec).Wallets, 1)
}

func TestNewRouter_UnknownWallet(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := do(t, router, http.MethodGet, "/api/v1/wallets/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/wallets/nope/deposit", dto.AmountRequest{Amount: "1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
