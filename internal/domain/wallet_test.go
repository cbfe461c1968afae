package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewWallet(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	w := NewWallet("w1", "acc", now)

	if !w.Balance.IsZero() {
		t.Errorf("expected zero balance, got %s", w.Balance)
	}
	if !w.CreatedAt.Equal(now) || !w.UpdatedAt.Equal(now) {
		t.Errorf("expected timestamps %v, got %v / %v", now, w.CreatedAt, w.UpdatedAt)
	}
}

func TestWallet_ValidateDebit(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		debitAmount decimal.Decimal
		expectError bool
	}{
		{
			name:        "debit more than balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(150),
			expectError: true,
		},
		{
			name:        "debit exact balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(100),
			expectError: false,
		},
		{
			name:        "debit less than balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(50),
			expectError: false,
		},
		{
			name:        "debit from empty wallet",
			balance:     decimal.Zero,
			debitAmount: decimal.RequireFromString("0.01"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Wallet{Balance: tt.balance}

			err := w.ValidateDebit(tt.debitAmount)

			if tt.expectError && !errors.Is(err, ErrInsufficientBalance) {
				t.Errorf("expected ErrInsufficientBalance, got %v", err)
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestWallet_ApplyDebitCredit(t *testing.T) {
	w := &Wallet{Balance: decimal.RequireFromString("10.50")}

	if got := w.ApplyDebit(decimal.RequireFromString("0.50")); !got.Equal(decimal.NewFromInt(10)) {
		t.Errorf("ApplyDebit = %s, want 10", got)
	}
	if got := w.ApplyCredit(decimal.RequireFromString("0.25")); !got.Equal(decimal.RequireFromString("10.75")) {
		t.Errorf("ApplyCredit = %s, want 10.75", got)
	}
	if !w.Balance.Equal(decimal.RequireFromString("10.50")) {
		t.Errorf("Apply* must not mutate the wallet, balance is %s", w.Balance)
	}
}
