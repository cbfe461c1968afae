package dto

import (
	"time"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// WalletResponse represents a wallet in API responses.
type WalletResponse struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WalletFromDomain converts domain wallet to response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:        w.ID,
		AccountID: w.AccountID,
		Balance:   domain.FormatAmount(w.Balance),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// WalletsFromDomain converts domain wallets to responses.
func WalletsFromDomain(wallets []*domain.Wallet) []*WalletResponse {
	result := make([]*WalletResponse, len(wallets))
	for i, w := range wallets {
		result[i] = WalletFromDomain(w)
	}
	return result
}

// ListWalletsResponse is one page of wallets.
type ListWalletsResponse struct {
	Wallets []*WalletResponse `json:"wallets"`
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
}

// TransactionResponse represents a transaction record in API responses.
type TransactionResponse struct {
	ID              string    `json:"id"`
	WalletID        string    `json:"wallet_id"`
	Type            string    `json:"type"`
	Amount          string    `json:"amount"`
	Timestamp       time.Time `json:"timestamp"`
	RelatedWalletID *string   `json:"related_wallet_id,omitempty"`
}

// TransactionFromDomain converts a domain record to response.
func TransactionFromDomain(r *domain.TransactionRecord) *TransactionResponse {
	return &TransactionResponse{
		ID:              r.ID,
		WalletID:        r.WalletID,
		Type:            string(r.Type),
		Amount:          domain.FormatAmount(r.Amount),
		Timestamp:       r.Timestamp,
		RelatedWalletID: r.RelatedWalletID,
	}
}

// TransactionsFromDomain converts domain records to responses.
func TransactionsFromDomain(records []*domain.TransactionRecord) []*TransactionResponse {
	result := make([]*TransactionResponse, len(records))
	for i, r := range records {
		result[i] = TransactionFromDomain(r)
	}
	return result
}

// ListTransactionsResponse is a wallet's transaction history.
type ListTransactionsResponse struct {
	WalletID     string                 `json:"wallet_id"`
	Transactions []*TransactionResponse `json:"transactions"`
}

// BalanceResponse carries a wallet's current balance.
type BalanceResponse struct {
	WalletID string `json:"wallet_id"`
	Balance  string `json:"balance"`
}

// HistoricalBalanceResponse carries a wallet's balance at a point in time.
type HistoricalBalanceResponse struct {
	WalletID  string    `json:"wallet_id"`
	Timestamp time.Time `json:"timestamp"`
	Balance   string    `json:"balance"`
}

// ReconciliationResponse is the outcome of reconciling one wallet.
type ReconciliationResponse struct {
	WalletID          string    `json:"wallet_id"`
	RecordedBalance   string    `json:"recorded_balance"`
	CalculatedBalance string    `json:"calculated_balance"`
	Difference        string    `json:"difference"`
	RecordCount       int       `json:"record_count"`
	Reconciled        bool      `json:"reconciled"`
	CheckedAt         time.Time `json:"checked_at"`
}

// ReconciliationFromUseCase converts a reconciliation result to response.
func ReconciliationFromUseCase(r *usecase.WalletReconciliation) *ReconciliationResponse {
	return &ReconciliationResponse{
		WalletID:          r.WalletID,
		RecordedBalance:   domain.FormatAmount(r.RecordedBalance),
		CalculatedBalance: domain.FormatAmount(r.CalculatedBalance),
		Difference:        domain.FormatAmount(r.Difference),
		RecordCount:       r.RecordCount,
		Reconciled:        r.Reconciled,
		CheckedAt:         r.CheckedAt,
	}
}

// ConsistencyResponse compares total balance with net external flow.
type ConsistencyResponse struct {
	TotalBalance string    `json:"total_balance"`
	NetFlow      string    `json:"net_flow"`
	Consistent   bool      `json:"consistent"`
	CheckedAt    time.Time `json:"checked_at"`
}

// ConsistencyFromUseCase converts a consistency report to response.
func ConsistencyFromUseCase(r *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		TotalBalance: domain.FormatAmount(r.TotalBalance),
		NetFlow:      domain.FormatAmount(r.NetFlow),
		Consistent:   r.Consistent,
		CheckedAt:    r.CheckedAt,
	}
}

// ReconciliationReportResponse summarises a full reconciliation pass.
type ReconciliationReportResponse struct {
	TotalWallets      int                       `json:"total_wallets"`
	ReconciledWallets int                       `json:"reconciled_wallets"`
	Discrepancies     []*ReconciliationResponse `json:"discrepancies"`
	Consistency       *ConsistencyResponse      `json:"consistency"`
	CheckedAt         time.Time                 `json:"checked_at"`
}

// ReportFromUseCase converts a reconciliation report to response.
func ReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationFromUseCase(d)
	}

	resp := &ReconciliationReportResponse{
		TotalWallets:      r.TotalWallets,
		ReconciledWallets: r.ReconciledWallets,
		Discrepancies:     discrepancies,
		CheckedAt:         r.CheckedAt,
	}
	if r.Consistency != nil {
		resp.Consistency = ConsistencyFromUseCase(r.Consistency)
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message,omitempty"`
}
