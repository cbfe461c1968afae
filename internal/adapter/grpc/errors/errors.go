package errors

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/iho/gowallet/internal/domain"
)

// MapDomainError converts domain errors to appropriate gRPC status codes
// This prevents internal error details from being exposed to clients
func MapDomainError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	// Not Found errors
	case errors.Is(err, domain.ErrWalletNotFound):
		return status.Error(codes.NotFound, "wallet not found")
	case errors.Is(err, domain.ErrTransactionNotFound):
		return status.Error(codes.NotFound, "transaction not found")

	case errors.Is(err, domain.ErrWalletAlreadyExists):
		return status.Error(codes.AlreadyExists, "wallet already exists for account")

	// Invalid Argument errors
	case errors.Is(err, domain.ErrInvalidAmount):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrInvalidAccountID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrSelfTransfer):
		return status.Error(codes.InvalidArgument, "cannot transfer to the same wallet")

	case errors.Is(err, domain.ErrInsufficientBalance):
		return status.Error(codes.FailedPrecondition, "insufficient balance")

	case errors.Is(err, domain.ErrStoreUnavailable):
		return status.Error(codes.Unavailable, "store unavailable, operation not applied")

	// Context errors (timeouts, cancellations)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "operation timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "operation was canceled")

	// Default: Internal error (don't expose details)
	default:
		return status.Error(codes.Internal, "an internal error occurred")
	}
}
