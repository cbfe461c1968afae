package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/gowallet/internal/domain"
)

// PostgreSQL error codes.
const (
	pgErrUniqueViolation      = "23505"
	pgErrCheckViolation       = "23514"
	pgErrForeignKeyViolation  = "23503"
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
)

// Constraint names from migrations/postgres.
const (
	constraintWalletAccountUnique = "wallets_account_id_key"
	constraintWalletBalance       = "wallets_balance_non_negative"
)

// mapWriteError translates constraint violations into domain errors. Anything
// else is returned unchanged for the engine to classify.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgErrUniqueViolation:
		if pgErr.ConstraintName == constraintWalletAccountUnique {
			return domain.ErrWalletAlreadyExists
		}
	case pgErrCheckViolation:
		if pgErr.ConstraintName == constraintWalletBalance {
			return domain.ErrInsufficientBalance
		}
	case pgErrForeignKeyViolation:
		return domain.ErrWalletNotFound
	}
	return err
}
