package walletv1

import "time"

type Wallet struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Transaction struct {
	ID              string    `json:"id"`
	WalletID        string    `json:"wallet_id"`
	Type            string    `json:"type"`
	Amount          string    `json:"amount"`
	Timestamp       time.Time `json:"timestamp"`
	RelatedWalletID string    `json:"related_wallet_id,omitempty"`
}

type CreateWalletRequest struct {
	AccountID string `json:"account_id"`
}

type CreateWalletResponse struct {
	Wallet *Wallet `json:"wallet"`
}

type GetWalletRequest struct {
	ID string `json:"id"`
}

type GetWalletResponse struct {
	Wallet *Wallet `json:"wallet"`
}

type GetBalanceRequest struct {
	WalletID string `json:"wallet_id"`
}

type GetBalanceResponse struct {
	WalletID string `json:"wallet_id"`
	Balance  string `json:"balance"`
}

type GetHistoricalBalanceRequest struct {
	WalletID  string    `json:"wallet_id"`
	Timestamp time.Time `json:"timestamp"`
}

type GetHistoricalBalanceResponse struct {
	WalletID  string    `json:"wallet_id"`
	Timestamp time.Time `json:"timestamp"`
	Balance   string    `json:"balance"`
}

type DepositRequest struct {
	WalletID string `json:"wallet_id"`
	Amount   string `json:"amount"`
}

type WithdrawRequest struct {
	WalletID string `json:"wallet_id"`
	Amount   string `json:"amount"`
}

type TransferRequest struct {
	FromWalletID string `json:"from_wallet_id"`
	ToWalletID   string `json:"to_wallet_id"`
	Amount       string `json:"amount"`
}

type TransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type ListTransactionsRequest struct {
	WalletID string `json:"wallet_id"`
}

type ListTransactionsResponse struct {
	WalletID     string         `json:"wallet_id"`
	Transactions []*Transaction `json:"transactions"`
}
