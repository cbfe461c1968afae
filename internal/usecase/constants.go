package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a store transaction.
	// Mutations run detached from the caller's context and are bounded by this instead.
	DefaultTransactionTimeout = 10 * time.Second

	// ReconcilePageSize is how many wallets a full reconciliation pass reads at a time.
	ReconcilePageSize = 500
)
