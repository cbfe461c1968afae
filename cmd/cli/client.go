package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iho/gowallet/internal/adapter/http/dto"
)

// apiClient is a thin JSON client for the gowallet HTTP API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string, timeout time.Duration) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// apiError is a non-2xx response.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var e dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
			return &apiError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		msg := e.Error
		if e.Message != "" {
			msg += ": " + e.Message
		}
		return &apiError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *apiClient) CreateWallet(ctx context.Context, accountID string) (*dto.WalletResponse, error) {
	var w dto.WalletResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/wallets", dto.CreateWalletRequest{AccountID: accountID}, &w)
	return &w, err
}

func (c *apiClient) GetWallet(ctx context.Context, id string) (*dto.WalletResponse, error) {
	var w dto.WalletResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/wallets/"+url.PathEscape(id), nil, &w)
	return &w, err
}

func (c *apiClient) ListWallets(ctx context.Context, limit, offset int, accountID string) (*dto.ListWalletsResponse, error) {
	var l dto.ListWalletsResponse
	path := fmt.Sprintf("/api/v1/wallets?limit=%d&offset=%d", limit, offset)
	if accountID != "" {
		path += "&account_id=" + url.QueryEscape(accountID)
	}
	err := c.do(ctx, http.MethodGet, path, nil, &l)
	return &l, err
}

func (c *apiClient) Balance(ctx context.Context, id string) (*dto.BalanceResponse, error) {
	var b dto.BalanceResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/wallets/"+url.PathEscape(id)+"/balance", nil, &b)
	return &b, err
}

func (c *apiClient) HistoricalBalance(ctx context.Context, id string, at time.Time) (*dto.HistoricalBalanceResponse, error) {
	var b dto.HistoricalBalanceResponse
	path := "/api/v1/wallets/" + url.PathEscape(id) + "/historical-balance?timestamp=" + url.QueryEscape(at.Format(time.RFC3339Nano))
	err := c.do(ctx, http.MethodGet, path, nil, &b)
	return &b, err
}

func (c *apiClient) Move(ctx context.Context, kind, id, amount string) (*dto.TransactionResponse, error) {
	var r dto.TransactionResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/wallets/"+url.PathEscape(id)+"/"+kind, dto.AmountRequest{Amount: amount}, &r)
	return &r, err
}

func (c *apiClient) Transfer(ctx context.Context, from, to, amount string) (*dto.TransactionResponse, error) {
	var r dto.TransactionResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/wallets/"+url.PathEscape(from)+"/transfer", dto.TransferRequest{ToWalletID: to, Amount: amount}, &r)
	return &r, err
}

func (c *apiClient) History(ctx context.Context, id string) (*dto.ListTransactionsResponse, error) {
	var l dto.ListTransactionsResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/wallets/"+url.PathEscape(id)+"/transactions", nil, &l)
	return &l, err
}

func (c *apiClient) ReconcileWallet(ctx context.Context, id string) (*dto.ReconciliationResponse, error) {
	var r dto.ReconciliationResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/wallets/"+url.PathEscape(id)+"/reconciliation", nil, &r)
	return &r, err
}

func (c *apiClient) ReconcileAll(ctx context.Context) (*dto.ReconciliationReportResponse, error) {
	var r dto.ReconciliationReportResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/ledger/reconciliation", nil, &r)
	return &r, err
}

func (c *apiClient) Consistency(ctx context.Context) (*dto.ConsistencyResponse, error) {
	var r dto.ConsistencyResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/ledger/consistency", nil, &r)
	return &r, err
}

func (c *apiClient) Ready(ctx context.Context) (map[string]string, error) {
	var r map[string]string
	err := c.do(ctx, http.MethodGet, "/ready", nil, &r)
	return r, err
}
