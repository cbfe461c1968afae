// Package logging decorates the ledger service with structured logs and
// per-operation metrics.
package logging

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
	"github.com/iho/gowallet/internal/usecase"
)

// ContextKey is the type for context keys
type ContextKey string

// RequestIDKey is the context key for request IDs
const RequestIDKey ContextKey = "request_id"

// WithRequestID returns ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestIDFrom returns the request id carried by ctx, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// ErrorKind names the failure class of err for logs and metric labels.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrWalletNotFound):
		return "wallet_not_found"
	case errors.Is(err, domain.ErrTransactionNotFound):
		return "transaction_not_found"
	case errors.Is(err, domain.ErrWalletAlreadyExists):
		return "wallet_already_exists"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInvalidAccountID):
		return "invalid_account_id"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrSelfTransfer):
		return "self_transfer"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}

// LedgerLogger wraps a usecase.LedgerService.
type LedgerLogger struct {
	next    usecase.LedgerService
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

var _ usecase.LedgerService = (*LedgerLogger)(nil)

// NewLedgerLogger wraps next. m may be nil.
func NewLedgerLogger(next usecase.LedgerService, logger zerolog.Logger, m *metrics.Metrics) *LedgerLogger {
	return &LedgerLogger{
		next:    next,
		logger:  logger.With().Str("component", "ledger").Logger(),
		metrics: m,
	}
}

// call logs the start of op, runs fn and records its outcome.
func (l *LedgerLogger) call(ctx context.Context, op string, fields func(*zerolog.Event) *zerolog.Event, fn func() error) {
	log := l.logger
	if id := RequestIDFrom(ctx); id != "" {
		log = log.With().Str("request_id", id).Logger()
	}

	log.Debug().Func(func(e *zerolog.Event) { fields(e) }).Msgf("executing %s", op)

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	result := "ok"
	if err != nil {
		result = "error"
		kind := ErrorKind(err)
		ev := log.Warn()
		if kind == "store_unavailable" || kind == "internal" {
			ev = log.Error()
		}
		fields(ev).
			Err(err).
			Str("kind", kind).
			Dur("elapsed", elapsed).
			Msgf("%s failed", op)
		if l.metrics != nil {
			l.metrics.OperationErrors.WithLabelValues(op, kind).Inc()
		}
	}

	if l.metrics != nil {
		l.metrics.Operations.WithLabelValues(op, result).Inc()
		l.metrics.OperationDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	}
}

func noFields(e *zerolog.Event) *zerolog.Event { return e }

func walletField(id string) func(*zerolog.Event) *zerolog.Event {
	return func(e *zerolog.Event) *zerolog.Event { return e.Str("wallet_id", id) }
}

func (l *LedgerLogger) recordAmount(r *domain.TransactionRecord) {
	if l.metrics == nil || r == nil {
		return
	}
	l.metrics.TransactionAmount.WithLabelValues(string(r.Type)).Observe(r.Amount.InexactFloat64())
}

func (l *LedgerLogger) CreateWallet(ctx context.Context, accountID string) (w *domain.Wallet, err error) {
	l.call(ctx, "create_wallet", func(e *zerolog.Event) *zerolog.Event {
		return e.Str("account_id", accountID)
	}, func() error {
		w, err = l.next.CreateWallet(ctx, accountID)
		return err
	})
	if err == nil && l.metrics != nil {
		l.metrics.WalletsCreated.Inc()
	}
	return w, err
}

func (l *LedgerLogger) GetWallet(ctx context.Context, id string) (w *domain.Wallet, err error) {
	l.call(ctx, "get_wallet", walletField(id), func() error {
		w, err = l.next.GetWallet(ctx, id)
		return err
	})
	return w, err
}

func (l *LedgerLogger) GetWalletByAccount(ctx context.Context, accountID string) (w *domain.Wallet, err error) {
	l.call(ctx, "get_wallet_by_account", func(e *zerolog.Event) *zerolog.Event {
		return e.Str("account_id", accountID)
	}, func() error {
		w, err = l.next.GetWalletByAccount(ctx, accountID)
		return err
	})
	return w, err
}

func (l *LedgerLogger) ListWallets(ctx context.Context, limit, offset int) (ws []*domain.Wallet, err error) {
	l.call(ctx, "list_wallets", func(e *zerolog.Event) *zerolog.Event {
		return e.Int("limit", limit).Int("offset", offset)
	}, func() error {
		ws, err = l.next.ListWallets(ctx, limit, offset)
		return err
	})
	return ws, err
}

func (l *LedgerLogger) GetBalance(ctx context.Context, walletID string) (b decimal.Decimal, err error) {
	l.call(ctx, "get_balance", walletField(walletID), func() error {
		b, err = l.next.GetBalance(ctx, walletID)
		return err
	})
	return b, err
}

func (l *LedgerLogger) Deposit(ctx context.Context, walletID string, amount decimal.Decimal) (r *domain.TransactionRecord, err error) {
	l.call(ctx, "deposit", func(e *zerolog.Event) *zerolog.Event {
		return e.Str("wallet_id", walletID).Str("amount", amount.String())
	}, func() error {
		r, err = l.next.Deposit(ctx, walletID, amount)
		return err
	})
	l.recordAmount(r)
	return r, err
}

func (l *LedgerLogger) Withdraw(ctx context.Context, walletID string, amount decimal.Decimal) (r *domain.TransactionRecord, err error) {
	l.call(ctx, "withdraw", func(e *zerolog.Event) *zerolog.Event {
		return e.Str("wallet_id", walletID).Str("amount", amount.String())
	}, func() error {
		r, err = l.next.Withdraw(ctx, walletID, amount)
		return err
	})
	l.recordAmount(r)
	return r, err
}

func (l *LedgerLogger) Transfer(ctx context.Context, input usecase.TransferInput) (r *domain.TransactionRecord, err error) {
	l.call(ctx, "transfer", func(e *zerolog.Event) *zerolog.Event {
		return e.Str("from_wallet_id", input.FromWalletID).
			Str("to_wallet_id", input.ToWalletID).
			Str("amount", input.Amount.String())
	}, func() error {
		r, err = l.next.Transfer(ctx, input)
		return err
	})
	l.recordAmount(r)
	return r, err
}

func (l *LedgerLogger) GetTransactionHistory(ctx context.Context, walletID string) (rs []*domain.TransactionRecord, err error) {
	l.call(ctx, "get_transaction_history", walletField(walletID), func() error {
		rs, err = l.next.GetTransactionHistory(ctx, walletID)
		return err
	})
	return rs, err
}

func (l *LedgerLogger) GetTransaction(ctx context.Context, id string) (r *domain.TransactionRecord, err error) {
	l.call(ctx, "get_transaction", func(e *zerolog.Event) *zerolog.Event {
		return e.Str("transaction_id", id)
	}, func() error {
		r, err = l.next.GetTransaction(ctx, id)
		return err
	})
	return r, err
}

func (l *LedgerLogger) GetHistoricalBalance(ctx context.Context, walletID string, at time.Time) (b decimal.Decimal, err error) {
	l.call(ctx, "get_historical_balance", func(e *zerolog.Event) *zerolog.Event {
		return e.Str("wallet_id", walletID).Time("at", at)
	}, func() error {
		b, err = l.next.GetHistoricalBalance(ctx, walletID, at)
		return err
	})
	return b, err
}

func (l *LedgerLogger) ReconcileWallet(ctx context.Context, walletID string) (res *usecase.WalletReconciliation, err error) {
	l.call(ctx, "reconcile_wallet", walletField(walletID), func() error {
		res, err = l.next.ReconcileWallet(ctx, walletID)
		return err
	})
	if err == nil && !res.Reconciled {
		l.logger.Error().
			Str("wallet_id", walletID).
			Str("recorded", res.RecordedBalance.String()).
			Str("calculated", res.CalculatedBalance.String()).
			Msg("wallet balance does not match its records")
	}
	return res, err
}

func (l *LedgerLogger) ReconcileAll(ctx context.Context) (rep *usecase.ReconciliationReport, err error) {
	l.call(ctx, "reconcile_all", noFields, func() error {
		rep, err = l.next.ReconcileAll(ctx)
		return err
	})
	if err == nil {
		if l.metrics != nil {
			l.metrics.ReconciliationDiscrepancies.Set(float64(len(rep.Discrepancies)))
			l.setConsistent(rep.Consistency)
		}
		if len(rep.Discrepancies) > 0 {
			l.logger.Error().
				Int("discrepancies", len(rep.Discrepancies)).
				Int("wallets", rep.TotalWallets).
				Msg("reconciliation found discrepancies")
		}
	}
	return rep, err
}

func (l *LedgerLogger) CheckConsistency(ctx context.Context) (rep *usecase.ConsistencyReport, err error) {
	l.call(ctx, "check_consistency", noFields, func() error {
		rep, err = l.next.CheckConsistency(ctx)
		return err
	})
	if err == nil && l.metrics != nil {
		l.setConsistent(rep)
	}
	return rep, err
}

func (l *LedgerLogger) setConsistent(rep *usecase.ConsistencyReport) {
	if rep == nil {
		return
	}
	v := 0.0
	if rep.Consistent {
		v = 1
	}
	l.metrics.LedgerConsistent.Set(v)
}
