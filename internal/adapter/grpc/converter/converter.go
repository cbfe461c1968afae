package converter

import (
	"github.com/iho/gowallet/internal/adapter/grpc/walletv1"
	"github.com/iho/gowallet/internal/domain"
)

// WalletToPb converts domain.Wallet to its wire message
func WalletToPb(w *domain.Wallet) *walletv1.Wallet {
	if w == nil {
		return nil
	}
	return &walletv1.Wallet{
		ID:        w.ID,
		AccountID: w.AccountID,
		Balance:   domain.FormatAmount(w.Balance),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// TransactionToPb converts domain.TransactionRecord to its wire message
func TransactionToPb(r *domain.TransactionRecord) *walletv1.Transaction {
	if r == nil {
		return nil
	}

	msg := &walletv1.Transaction{
		ID:        r.ID,
		WalletID:  r.WalletID,
		Type:      string(r.Type),
		Amount:    domain.FormatAmount(r.Amount),
		Timestamp: r.Timestamp,
	}
	if r.RelatedWalletID != nil {
		msg.RelatedWalletID = *r.RelatedWalletID
	}

	return msg
}

// TransactionsToPb converts a slice of records
func TransactionsToPb(records []*domain.TransactionRecord) []*walletv1.Transaction {
	out := make([]*walletv1.Transaction, len(records))
	for i, r := range records {
		out[i] = TransactionToPb(r)
	}
	return out
}
