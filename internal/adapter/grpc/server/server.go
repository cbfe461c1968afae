package server

import (
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"

	"github.com/iho/gowallet/internal/adapter/grpc/middleware"
	"github.com/iho/gowallet/internal/adapter/grpc/walletv1"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
)

// Options configures New.
type Options struct {
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// New builds a gRPC server with WalletService registered.
func New(svc WalletService, opts Options) *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{
		middleware.RecoveryInterceptor(opts.Logger),
		middleware.LoggingInterceptor(opts.Logger),
	}
	if opts.Metrics != nil {
		interceptors = append(interceptors, middleware.MetricsInterceptor(opts.Metrics))
	}

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(interceptors...),
		grpc.MaxConcurrentStreams(1000),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle: 15 * time.Minute,
			Time:              5 * time.Minute,
			Timeout:           1 * time.Minute,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             30 * time.Second,
			PermitWithoutStream: true,
		}),
	)
	walletv1.RegisterWalletServiceServer(s, NewWalletServer(svc))

	return s
}
