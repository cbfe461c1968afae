package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Validation constants
const (
	AmountScale     = 2
	MaxAmount       = "1000000000000" // 1 trillion
	MaxPageSize     = 1000
	DefaultPageSize = 50
)

var maxAmount = decimal.RequireFromString(MaxAmount)

// ValidateAmount checks amount is positive, fits the fixed scale and the maximum.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if !amount.Equal(amount.Round(AmountScale)) {
		return fmt.Errorf("%w: at most %d fractional digits", ErrInvalidAmount, AmountScale)
	}

	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxAmount)
	}

	return nil
}

// ParseAmount parses a decimal string and validates it.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a decimal", ErrInvalidAmount, s)
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// ValidateAccountID requires a UUID account identifier.
func ValidateAccountID(accountID string) error {
	if strings.TrimSpace(accountID) == "" {
		return fmt.Errorf("%w: account id cannot be empty", ErrInvalidAccountID)
	}
	if _, err := uuid.Parse(accountID); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAccountID, err)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

// FormatAmount renders an amount with the fixed ledger scale.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(AmountScale)
}
