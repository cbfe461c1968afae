package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func ptr(s string) *string { return &s }

func TestTransactionRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  TransactionRecord
		wantErr error
	}{
		{
			name:   "deposit",
			record: TransactionRecord{WalletID: "a", Type: TransactionTypeDeposit, Amount: decimal.NewFromInt(1)},
		},
		{
			name:   "transfer",
			record: TransactionRecord{WalletID: "a", Type: TransactionTypeTransfer, Amount: decimal.NewFromInt(1), RelatedWalletID: ptr("b")},
		},
		{
			name:    "zero amount",
			record:  TransactionRecord{WalletID: "a", Type: TransactionTypeWithdraw, Amount: decimal.Zero},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unknown type",
			record:  TransactionRecord{WalletID: "a", Type: "REFUND", Amount: decimal.NewFromInt(1)},
			wantErr: ErrInvalidTransactionType,
		},
		{
			name:    "transfer without counterparty",
			record:  TransactionRecord{WalletID: "a", Type: TransactionTypeTransfer, Amount: decimal.NewFromInt(1)},
			wantErr: ErrMissingRelatedWallet,
		},
		{
			name:    "transfer to itself",
			record:  TransactionRecord{WalletID: "a", Type: TransactionTypeTransfer, Amount: decimal.NewFromInt(1), RelatedWalletID: ptr("a")},
			wantErr: ErrSelfTransfer,
		},
		{
			name:    "deposit with counterparty",
			record:  TransactionRecord{WalletID: "a", Type: TransactionTypeDeposit, Amount: decimal.NewFromInt(1), RelatedWalletID: ptr("b")},
			wantErr: ErrUnexpectedRelatedWallet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTransactionRecord_Undo(t *testing.T) {
	balance := decimal.NewFromInt(100)
	amount := decimal.NewFromInt(10)

	tests := []struct {
		name   string
		record TransactionRecord
		want   decimal.Decimal
	}{
		{"deposit is subtracted", TransactionRecord{WalletID: "a", Type: TransactionTypeDeposit, Amount: amount}, decimal.NewFromInt(90)},
		{"withdraw is added", TransactionRecord{WalletID: "a", Type: TransactionTypeWithdraw, Amount: amount}, decimal.NewFromInt(110)},
		{"own transfer is added", TransactionRecord{WalletID: "a", Type: TransactionTypeTransfer, Amount: amount, RelatedWalletID: ptr("b")}, decimal.NewFromInt(110)},
		{"foreign transfer is subtracted", TransactionRecord{WalletID: "b", Type: TransactionTypeTransfer, Amount: amount, RelatedWalletID: ptr("a")}, decimal.NewFromInt(90)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Undo("a", balance); !got.Equal(tt.want) {
				t.Errorf("Undo = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTransactionRecord_Effect(t *testing.T) {
	amount := decimal.NewFromInt(7)
	out := TransactionRecord{WalletID: "a", Type: TransactionTypeTransfer, Amount: amount, RelatedWalletID: ptr("b")}

	if got := out.Effect("a"); !got.Equal(amount.Neg()) {
		t.Errorf("debited side effect = %s, want -7", got)
	}
	if got := out.Effect("b"); !got.Equal(amount) {
		t.Errorf("credited side effect = %s, want 7", got)
	}
	if got := out.Effect("c"); !got.IsZero() {
		t.Errorf("unrelated wallet effect = %s, want 0", got)
	}

	dep := TransactionRecord{WalletID: "a", Type: TransactionTypeDeposit, Amount: amount}
	if got := dep.Effect("a"); !got.Equal(amount) {
		t.Errorf("deposit effect = %s, want 7", got)
	}
}

func TestSortRecords(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	records := []*TransactionRecord{
		{ID: "03", Timestamp: t0.Add(time.Second)},
		{ID: "02", Timestamp: t0},
		{ID: "01", Timestamp: t0},
		{ID: "00", Timestamp: t0.Add(2 * time.Second)},
	}

	SortRecords(records)

	want := []string{"01", "02", "03", "00"}
	for i, id := range want {
		if records[i].ID != id {
			t.Fatalf("position %d: got %s, want %s", i, records[i].ID, id)
		}
	}
}

func TestRecordTime(t *testing.T) {
	in := time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.FixedZone("X", 3600))
	got := RecordTime(in)

	if got.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", got.Location())
	}
	if got.Nanosecond() != 123456000 {
		t.Errorf("expected microsecond precision, got %d ns", got.Nanosecond())
	}
}
