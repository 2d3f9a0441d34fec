package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/ledgerengine/internal/adapter/http"
	"github.com/iho/ledgerengine/internal/adapter/http/handler"
	"github.com/iho/ledgerengine/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/ledgerengine/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/ledgerengine/internal/adapter/repository/redis"
	"github.com/iho/ledgerengine/internal/infrastructure/config"
	"github.com/iho/ledgerengine/internal/infrastructure/eventpublisher"
	"github.com/iho/ledgerengine/internal/infrastructure/logger"
	"github.com/iho/ledgerengine/internal/infrastructure/metrics"
	"github.com/iho/ledgerengine/internal/infrastructure/postgres"
	"github.com/iho/ledgerengine/internal/infrastructure/redis"
	"github.com/iho/ledgerengine/internal/infrastructure/tracing"
	"github.com/iho/ledgerengine/internal/usecase"
)

const rateLimiterCleanupInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: cfg.ServiceName})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("failed to flush traces")
		}
	}()

	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info().Str("path", cfg.MigrationsPath).Msg("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info().Msg("connected to postgres")

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		logger.Info().Msg("connected to redis")
	}

	m := metrics.New()

	txManager, err := postgresRepo.NewTxManager(pool, cfg.DatabaseIsolation)
	if err != nil {
		return err
	}
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)
	pendingRepo := postgresRepo.NewPendingRepository(pool)
	ledgerMasterRepo := postgresRepo.NewLedgerMasterRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()

	transferOpts := []usecase.TransferOption{
		usecase.WithTransferMetrics(m),
		usecase.WithRetrier(postgresRepo.NewRetrierWithConfig(postgresRepo.RetryConfig{MaxRetries: cfg.TransactionRetries}, logger)),
	}
	if redisClient != nil && cfg.TransferCacheEnable {
		transferOpts = append(transferOpts, usecase.WithTransferCache(redisRepo.NewCache(redisClient)))
	}

	transferUC := usecase.NewTransferUseCase(
		txManager, accountRepo, transferRepo, pendingRepo, outboxRepo, idGen,
		transferConfig(cfg),
		transferOpts...,
	)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, ledgerMasterRepo, outboxRepo, idGen, m)
	ledgerUC := usecase.NewLedgerUseCase(txManager, ledgerMasterRepo, ledgerRepo, outboxRepo, idGen, m)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, ledgerRepo, ledgerUC)

	publisher, closePublisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	outbox := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  publisher,
		Logger:     logger,
		Metrics:    m,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})

	routerCfg := httpAdapter.RouterConfig{
		AccountHandler:  handler.NewAccountHandler(accountUC, reconciliationUC),
		TransferHandler: handler.NewTransferHandler(transferUC),
		LedgerHandler:   handler.NewLedgerHandler(ledgerUC, reconciliationUC),
		HealthHandler:   handler.NewHealthHandler(pool, redisPinger(redisClient)),
		IdempotencyTTL:  cfg.IdempotencyTTL,
		Logger:          logger,
	}
	if redisClient != nil {
		routerCfg.IdempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}
	if cfg.RateLimitRPS > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	server := newHTTPServer(cfg, httpAdapter.NewRouter(routerCfg))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := outbox.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if routerCfg.RateLimiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(rateLimiterCleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					routerCfg.RateLimiter.CleanupLimiters(time.Hour)
				}
			}
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func transferConfig(cfg *config.Config) usecase.TransferConfig {
	return usecase.TransferConfig{
		MaxLinkedTransfers: cfg.MaxLinkedTransfers,
		MaxBatchTransfers:  cfg.MaxBatchTransfers,
		BatchConcurrency:   cfg.BatchConcurrency,
		TxTimeout:          cfg.TransactionTimeout,
		CacheTTL:           cfg.TransferCacheTTL,
	}
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

// newPublisher returns the AMQP publisher when a broker is configured and
// the log publisher otherwise.
func newPublisher(cfg *config.Config, logger zerolog.Logger) (eventpublisher.Publisher, func(), error) {
	if cfg.AMQPURL == "" {
		return eventpublisher.NewLogPublisher(logger), func() {}, nil
	}

	pub, err := eventpublisher.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, 0)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Str("exchange", cfg.AMQPExchange).Msg("publishing outbox events to amqp")

	return pub, func() {
		if err := pub.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close amqp publisher")
		}
	}, nil
}

func redisPinger(client *goredis.Client) handler.Pinger {
	if client == nil {
		return nil
	}
	return handler.PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}
