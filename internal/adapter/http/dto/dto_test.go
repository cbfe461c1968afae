package dto

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

func TestTransferRequestToUseCaseInput(t *testing.T) {
	req := TransferRequest{ToWalletID: "w2", Amount: "12.50"}

	in, err := req.ToUseCaseInput("w1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.FromWalletID != "w1" || in.ToWalletID != "w2" || !in.Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestAmountRequestRejectsBadAmounts(t *testing.T) {
	for _, amount := range []string{"", "abc", "0", "-1", "1.001"} {
		req := AmountRequest{Amount: amount}
		if _, err := req.ParseAmount(); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("amount %q: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestTransactionResponseFormatsAmount(t *testing.T) {
	related := "w2"
	resp := TransactionFromDomain(&domain.TransactionRecord{
		ID:              "t1",
		WalletID:        "w1",
		Type:            domain.TransactionTypeTransfer,
		Amount:          decimal.NewFromInt(7),
		Timestamp:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		RelatedWalletID: &related,
	})

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["amount"] != "7.00" || got["related_wallet_id"] != "w2" || got["type"] != "TRANSFER" {
		t.Fatalf("unexpected body %s", raw)
	}
}

func TestDepositResponseOmitsRelatedWallet(t *testing.T) {
	raw, _ := json.Marshal(TransactionFromDomain(&domain.TransactionRecord{
		ID: "t1", WalletID: "w1", Type: domain.TransactionTypeDeposit, Amount: decimal.NewFromInt(1),
	}))

	var got map[string]any
	_ = json.Unmarshal(raw, &got)
	if _, ok := got["related_wallet_id"]; ok {
		t.Fatalf("deposit must not carry related_wallet_id: %s", raw)
	}
}
