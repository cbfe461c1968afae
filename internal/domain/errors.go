package domain

import "errors"

var (
	// Wallet errors
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrWalletAlreadyExists = errors.New("wallet already exists for account")
	ErrInvalidAccountID    = errors.New("invalid account id")

	// Money movement errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSelfTransfer        = errors.New("cannot transfer to the same wallet")

	// Record errors
	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrInvalidTransactionType  = errors.New("invalid transaction type")
	ErrMissingRelatedWallet    = errors.New("transfer requires a related wallet")
	ErrUnexpectedRelatedWallet = errors.New("only transfers carry a related wallet")

	// ErrStoreUnavailable wraps any failure of the underlying store.
	// The operation it interrupted was not applied.
	ErrStoreUnavailable = errors.New("store unavailable")
)
