package sqlite

import (
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/iho/gowallet/internal/domain"
)

func mapWriteError(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique:
		return domain.ErrWalletAlreadyExists
	case sqlite3.ErrConstraintCheck:
		return domain.ErrInsufficientBalance
	case sqlite3.ErrConstraintForeignKey:
		return domain.ErrWalletNotFound
	}
	return err
}
