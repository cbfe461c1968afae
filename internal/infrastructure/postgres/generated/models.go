package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type OutboxEvent struct {
	ID            string             `json:"id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	Payload       []byte             `json:"payload"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	Published     bool               `json:"published"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
}

type Transaction struct {
	ID              string             `json:"id"`
	WalletID        string             `json:"wallet_id"`
	Type            string             `json:"type"`
	Amount          pgtype.Numeric     `json:"amount"`
	RelatedWalletID pgtype.Text        `json:"related_wallet_id"`
	OccurredAt      pgtype.Timestamptz `json:"occurred_at"`
}

type Wallet struct {
	ID        string             `json:"id"`
	AccountID string             `json:"account_id"`
	Balance   pgtype.Numeric     `json:"balance"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}
