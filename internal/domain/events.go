package domain

import "time"

// Event types
const (
	EventTypeWalletCreated       = "wallet.created"
	EventTypeTransactionRecorded = "transaction.recorded"
)

// Aggregate types
const (
	AggregateTypeWallet      = "wallet"
	AggregateTypeTransaction = "transaction"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// NewWalletCreatedEvent builds the outbox event for a new wallet.
func NewWalletCreatedEvent(id string, w *Wallet) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		AggregateID:   w.ID,
		AggregateType: AggregateTypeWallet,
		EventType:     EventTypeWalletCreated,
		Payload: map[string]any{
			"wallet_id":  w.ID,
			"account_id": w.AccountID,
		},
		CreatedAt: w.CreatedAt,
	}
}

// NewTransactionRecordedEvent builds the outbox event for a new record.
// balance is the filing wallet's balance after the record was applied.
func NewTransactionRecordedEvent(id string, r *TransactionRecord, balance string) *OutboxEvent {
	payload := map[string]any{
		"transaction_id": r.ID,
		"wallet_id":      r.WalletID,
		"type":           string(r.Type),
		"amount":         FormatAmount(r.Amount),
		"balance":        balance,
		"timestamp":      r.Timestamp.Format(time.RFC3339Nano),
	}
	if r.RelatedWalletID != nil {
		payload["related_wallet_id"] = *r.RelatedWalletID
	}
	return &OutboxEvent{
		ID:            id,
		AggregateID:   r.ID,
		AggregateType: AggregateTypeTransaction,
		EventType:     EventTypeTransactionRecorded,
		Payload:       payload,
		CreatedAt:     r.Timestamp,
	}
}
