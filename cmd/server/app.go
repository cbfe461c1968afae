package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	grpcserver "github.com/iho/gowallet/internal/adapter/grpc/server"
	httpAdapter "github.com/iho/gowallet/internal/adapter/http"
	"github.com/iho/gowallet/internal/adapter/http/handler"
	apimiddleware "github.com/iho/gowallet/internal/adapter/http/middleware"
	"github.com/iho/gowallet/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/gowallet/internal/adapter/repository/postgres"
	"github.com/iho/gowallet/internal/adapter/repository/sqlite"
	"github.com/iho/gowallet/internal/infrastructure/config"
	"github.com/iho/gowallet/internal/infrastructure/eventpublisher"
	"github.com/iho/gowallet/internal/infrastructure/logging"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
	"github.com/iho/gowallet/internal/infrastructure/postgres"
	"github.com/iho/gowallet/internal/infrastructure/redis"
	"github.com/iho/gowallet/internal/usecase"
)

// backend is an opened storage backend.
type backend struct {
	stores   usecase.Stores
	checkers []handler.Checker
	close    func()
}

// openBackend opens the configured store and runs its migrations.
func openBackend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*backend, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		if cfg.AutoMigrate {
			if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
				return nil, err
			}
		}

		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL:    cfg.DatabaseURL,
			MaxConns:       cfg.DatabaseMaxConns,
			MinConns:       cfg.DatabaseMinConns,
			ConnectTimeout: cfg.DatabaseTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		logger.Info().Msg("connected to postgres")

		retrier := postgresRepo.NewRetrier(
			postgresRepo.WithMaxRetries(cfg.MaxTxRetries),
			postgresRepo.WithRetryLogger(logger),
		)

		return &backend{
			stores:   postgresRepo.NewStores(pool, retrier, cfg.EventPublisher != config.PublisherNone),
			checkers: []handler.Checker{handler.CheckFunc{Label: "postgres", Fn: pool.Ping}},
			close:    pool.Close,
		}, nil

	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}

		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		logger.Info().Str("path", cfg.SQLitePath).Msg("opened sqlite store")

		return &backend{
			stores:   withoutOutbox(store.Repositories(postgresRepo.NewULIDGenerator()), cfg),
			checkers: []handler.Checker{handler.CheckFunc{Label: "sqlite", Fn: store.Ping}},
			close:    func() { _ = store.Close() },
		}, nil

	case config.BackendMemory:
		logger.Warn().Msg("using in-memory store, data is lost on restart")
		store := memory.NewStore()

		return &backend{
			stores: withoutOutbox(store.Repositories(postgresRepo.NewULIDGenerator()), cfg),
			close:  func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// withoutOutbox drops outbox writes when nothing drains them.
func withoutOutbox(stores usecase.Stores, cfg *config.Config) usecase.Stores {
	if cfg.EventPublisher == config.PublisherNone {
		stores.Outbox = postgresRepo.NewNullOutboxRepository()
	}
	return stores
}

// newPublisher builds the configured outbox publisher. A nil publisher means
// the outbox worker is disabled.
func newPublisher(cfg *config.Config, redisClient goredis.UniversalClient, logger zerolog.Logger) (eventpublisher.Publisher, func(), error) {
	switch cfg.EventPublisher {
	case config.PublisherNone:
		return nil, func() {}, nil
	case config.PublisherLog:
		return eventpublisher.NewLogPublisher(logger), func() {}, nil
	case config.PublisherRedis:
		if redisClient == nil {
			return nil, nil, errors.New("redis publisher requires REDIS_URL")
		}
		return eventpublisher.NewRedisStreamPublisher(redisClient, cfg.RedisStream, 0), func() {}, nil
	case config.PublisherKafka:
		p := eventpublisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		return p, func() { _ = p.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown event publisher %q", cfg.EventPublisher)
	}
}

// run starts every server and blocks until ctx is cancelled or one of them
// fails.
func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	be, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer be.close()

	checkers := be.checkers

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		checkers = append(checkers, redis.NewChecker(redisClient))
		logger.Info().Msg("connected to redis")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	svc := logging.NewLedgerLogger(usecase.NewLedgerFromStores(be.stores), logger, m)

	var redisForPublisher goredis.UniversalClient
	if redisClient != nil {
		redisForPublisher = redisClient
	}
	publisher, closePublisher, err := newPublisher(cfg, redisForPublisher, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, 3)

	if publisher != nil {
		worker := eventpublisher.NewWorker(eventpublisher.Config{
			OutboxRepo: be.stores.Outbox,
			Publisher:  publisher,
			Logger:     logger,
			Metrics:    m,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxPollInterval,
			Retention:  24 * time.Hour,
		})
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = worker.Start(ctx)
		}()
	}

	routerCfg := httpAdapter.HandlersFor(svc, checkers...)
	routerCfg.Logger = logger
	routerCfg.Metrics = m
	routerCfg.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	if cfg.RateLimitRPS > 0 {
		rl := apimiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)
		routerCfg.RateLimiter = rl
		wg.Add(1)
		go func() {
			defer wg.Done()
			rl.RunCleanup(time.Minute, 10*time.Minute, ctx.Done())
		}()
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      httpAdapter.NewRouter(routerCfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Msg("starting http server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if cfg.GRPCPort != "" {
		grpcServer := grpcserver.New(svc, grpcserver.Options{Logger: logger, Metrics: m})
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			return fmt.Errorf("listen on grpc port %s: %w", cfg.GRPCPort, err)
		}

		go func() {
			logger.Info().Str("port", cfg.GRPCPort).Msg("starting grpc server")
			if err := grpcServer.Serve(lis); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
		defer grpcServer.GracefulStop()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down...")
	case runErr = <-errCh:
		logger.Error().Err(runErr).Msg("server failed, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server forced to shutdown")
	}

	cancel()
	wg.Wait()

	return runErr
}
