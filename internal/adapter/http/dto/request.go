package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// CreateWalletRequest represents a request to create a wallet.
type CreateWalletRequest struct {
	AccountID string `json:"account_id"`
}

// AmountRequest is the body of deposit and withdraw requests. Amounts travel
// as decimal strings.
type AmountRequest struct {
	Amount string `json:"amount"`
}

// ParseAmount validates the requested amount.
func (r *AmountRequest) ParseAmount() (decimal.Decimal, error) {
	return domain.ParseAmount(r.Amount)
}

// TransferRequest represents a request to move funds out of the path wallet.
type TransferRequest struct {
	ToWalletID string `json:"to_wallet_id"`
	Amount     string `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput(fromWalletID string) (usecase.TransferInput, error) {
	amount, err := domain.ParseAmount(r.Amount)
	if err != nil {
		return usecase.TransferInput{}, err
	}

	return usecase.TransferInput{
		FromWalletID: fromWalletID,
		ToWalletID:   r.ToWalletID,
		Amount:       amount,
	}, nil
}
