package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the balance effect of a record.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdraw, TransactionTypeTransfer:
		return true
	}
	return false
}

// TransactionRecord is an immutable fact about one balance-affecting event.
//
// A transfer is filed once, against the debited wallet, with RelatedWalletID
// pointing at the credited wallet. The credited side is found by matching
// RelatedWalletID at read time.
type TransactionRecord struct {
	ID              string
	WalletID        string
	Type            TransactionType
	Amount          decimal.Decimal
	Timestamp       time.Time
	RelatedWalletID *string
}

// Validate checks the record's structural invariants.
func (r *TransactionRecord) Validate() error {
	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !r.Type.Valid() {
		return ErrInvalidTransactionType
	}
	if r.Type == TransactionTypeTransfer {
		if r.RelatedWalletID == nil {
			return ErrMissingRelatedWallet
		}
		if *r.RelatedWalletID == r.WalletID {
			return ErrSelfTransfer
		}
	} else if r.RelatedWalletID != nil {
		return ErrUnexpectedRelatedWallet
	}
	return nil
}

// Undo returns balance with this record's effect on walletID reversed.
// A transfer filed against walletID is treated as a debit being undone;
// any other transfer as a credit being undone.
func (r *TransactionRecord) Undo(walletID string, balance decimal.Decimal) decimal.Decimal {
	switch r.Type {
	case TransactionTypeDeposit:
		return balance.Sub(r.Amount)
	case TransactionTypeWithdraw:
		return balance.Add(r.Amount)
	case TransactionTypeTransfer:
		if r.WalletID == walletID {
			return balance.Add(r.Amount)
		}
		return balance.Sub(r.Amount)
	}
	return balance
}

// Effect returns the signed change this record made to walletID's balance.
func (r *TransactionRecord) Effect(walletID string) decimal.Decimal {
	switch r.Type {
	case TransactionTypeDeposit:
		if r.WalletID == walletID {
			return r.Amount
		}
	case TransactionTypeWithdraw:
		if r.WalletID == walletID {
			return r.Amount.Neg()
		}
	case TransactionTypeTransfer:
		if r.WalletID == walletID {
			return r.Amount.Neg()
		}
		if r.RelatedWalletID != nil && *r.RelatedWalletID == walletID {
			return r.Amount
		}
	}
	return decimal.Zero
}

// SortRecords orders records by (Timestamp, ID) ascending, in place.
func SortRecords(records []*TransactionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.ID < b.ID
	})
}

// RecordTime normalizes t to the precision every store persists.
func RecordTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
