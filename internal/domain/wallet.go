package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is the balance-bearing proxy of an account. One wallet per account.
type Wallet struct {
	ID        string
	AccountID string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWallet returns an empty wallet for accountID.
func NewWallet(id, accountID string, now time.Time) *Wallet {
	return &Wallet{
		ID:        id,
		AccountID: accountID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidateDebit checks the wallet can be debited by amount without going negative.
func (w *Wallet) ValidateDebit(amount decimal.Decimal) error {
	if w.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyDebit returns new balance after debit.
func (w *Wallet) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return w.Balance.Sub(amount)
}

// ApplyCredit returns new balance after credit.
func (w *Wallet) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return w.Balance.Add(amount)
}
