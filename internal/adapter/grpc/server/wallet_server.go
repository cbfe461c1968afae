package server

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/adapter/grpc/converter"
	grpcerrors "github.com/iho/gowallet/internal/adapter/grpc/errors"
	"github.com/iho/gowallet/internal/adapter/grpc/walletv1"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// WalletService is the subset of the ledger exposed over gRPC.
type WalletService interface {
	CreateWallet(ctx context.Context, accountID string) (*domain.Wallet, error)
	GetWallet(ctx context.Context, id string) (*domain.Wallet, error)
	GetBalance(ctx context.Context, walletID string) (decimal.Decimal, error)
	GetHistoricalBalance(ctx context.Context, walletID string, at time.Time) (decimal.Decimal, error)
	Deposit(ctx context.Context, walletID string, amount decimal.Decimal) (*domain.TransactionRecord, error)
	Withdraw(ctx context.Context, walletID string, amount decimal.Decimal) (*domain.TransactionRecord, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.TransactionRecord, error)
	GetTransactionHistory(ctx context.Context, walletID string) ([]*domain.TransactionRecord, error)
}

// WalletServer implements the gRPC WalletService
type WalletServer struct {
	walletv1.UnimplementedWalletServiceServer
	svc WalletService
}

// NewWalletServer creates a new WalletServer
func NewWalletServer(svc WalletService) *WalletServer {
	return &WalletServer{svc: svc}
}

// CreateWallet opens a wallet for an account
func (s *WalletServer) CreateWallet(ctx context.Context, req *walletv1.CreateWalletRequest) (*walletv1.CreateWalletResponse, error) {
	wallet, err := s.svc.CreateWallet(ctx, req.AccountID)
	if err != nil {
		return nil, grpcerrors.MapDomainError(err)
	}

	return &walletv1.CreateWalletResponse{Wallet: converter.WalletToPb(wallet)}, nil
}

// GetWallet retrieves a wallet by ID
func (s *WalletServer) GetWallet(ctx context.Context, req *walletv1.GetWalletRequest) (*walletv1.GetWalletResponse, error) {
	wallet, err := s.svc.GetWallet(ctx, req.ID)
	if err != nil {
		return nil, grpcerrors.MapDomainError(err)
	}

	return &walletv1.GetWalletResponse{Wallet: converter.WalletToPb(wallet)}, nil
}

// GetBalance returns a wallet's current balance
func (s *WalletServer) GetBalance(ctx context.Context, req *walletv1.GetBalanceRequest) (*walletv1.GetBalanceResponse, error) {
	balance, err := s.svc.GetBalance(ctx, req.WalletID)
	if err != nil {
		return nil, grpcerrors.MapDomainError(err)
	}

	return &walletv1.GetBalanceResponse{
		WalletID: req.WalletID,
		Balance:  domain.FormatAmount(balance),
	}, nil
}

// GetHistoricalBalance returns a wallet's balance at a point in time
func (s *WalletServer) GetHistoricalBalance(ctx context.Context, req *walletv1.GetHistoricalBalanceRequest) (*walletv1.GetHistoricalBalanceResponse, error) {
	balance, err := s.svc.GetHistoricalBalance(ctx, req.WalletID, req.Timestamp)
	if err != nil {
		return nil, grpcerrors.MapDomainError(err)
	}

	return &walletv1.GetHistoricalBalanceResponse{
		WalletID:  req.WalletID,
		Timestamp: req.Timestamp.UTC(),
		Balance:   domain.FormatAmount(balance),
	}, nil
}

// Deposit credits a wallet
func (s *WalletServer) Deposit(ctx context.Context, req *walletv1.DepositRequest) (*walletv1.TransactionResponse, error) {
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, grpcerrors.MapDomainError(err)
	}

	record, err := s.svc.Deposit(ctx, req.WalletID, amount)
	if err != nil {
		return nil, grpcerrors.MapDomainError(err)
	}

	return &walletv1.TransactionResponse{Transaction: converter.TransactionToPb(record)}, nil
}

// Withdraw debits a wallet
func (s *WalletServer) Withdraw(ctx context.Context, req *walletv1.WithdrawRequest) (*walletv1.TransactionResponse, error) {
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, grpcerrors.MapDomainError(err)
	}

	record, err := s.svc.Withdraw(ctx, req.WalletID, amount)
	if err != nil {
		return nil, grpcerrors.MapDomainError(err)
	}

	return &walletv1.TransactionResponse{Transaction: converter.TransactionToPb(record)}, nil
}

// Transfer moves funds between two wallets
func (s *WalletServer) Transfer(ctx context.Context, req *walletv1.TransferRequest) (*walletv1.TransactionResponse, error) {
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, grpcerrors.MapDomainError(err)
	}

	record, err := s.svc.Transfer(ctx, usecase.TransferInput{
		FromWalletID: req.FromWalletID,
		ToWalletID:   req.ToWalletID,
		Amount:       amount,
	})
	if err != nil {
		return nil, grpcerrors.MapDomainError(err)
	}

	return &walletv1.TransactionResponse{Transaction: converter.TransactionToPb(record)}, nil
}

// ListTransactions lists the records filed against a wallet
func (s *WalletServer) ListTransactions(ctx context.Context, req *walletv1.ListTransactionsRequest) (*walletv1.ListTransactionsResponse, error) {
	records, err := s.svc.GetTransactionHistory(ctx, req.WalletID)
	if err != nil {
		return nil, grpcerrors.MapDomainError(err)
	}

	return &walletv1.ListTransactionsResponse{
		WalletID:     req.WalletID,
		Transactions: converter.TransactionsToPb(records),
	}, nil
}
