package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/iho/gowallet/internal/domain"
)

// NoRetry runs an operation exactly once.
var NoRetry Retrier = noRetry{}

type noRetry struct{}

func (noRetry) Retry(_ context.Context, fn func() error) error { return fn() }

var domainErrors = []error{
	domain.ErrWalletNotFound,
	domain.ErrWalletAlreadyExists,
	domain.ErrInvalidAccountID,
	domain.ErrInvalidAmount,
	domain.ErrInsufficientBalance,
	domain.ErrSelfTransfer,
	domain.ErrTransactionNotFound,
	domain.ErrInvalidTransactionType,
	domain.ErrMissingRelatedWallet,
	domain.ErrUnexpectedRelatedWallet,
	domain.ErrStoreUnavailable,
}

// storeError passes domain errors through and classifies everything else
// as ErrStoreUnavailable, keeping the cause in the chain.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

// mutate runs fn inside one store transaction. Once started the work is
// detached from caller cancellation and bounded by DefaultTransactionTimeout,
// so it either commits completely or rolls back completely.
func mutate(ctx context.Context, txManager TransactionManager, retrier Retrier, fn func(context.Context, Transaction) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultTransactionTimeout)
	defer cancel()

	return storeError(retrier.Retry(ctx, func() error {
		return inTx(ctx, txManager, fn)
	}))
}

// read runs fn inside one store transaction bound to the caller's context.
func read(ctx context.Context, txManager TransactionManager, fn func(context.Context, Transaction) error) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	return storeError(inTx(ctx, txManager, fn))
}

func inTx(ctx context.Context, txManager TransactionManager, fn func(context.Context, Transaction) error) error {
	tx, err := txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
