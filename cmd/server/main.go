package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/easybank/internal/adapter/http"
	"github.com/iho/easybank/internal/adapter/http/handler"
	"github.com/iho/easybank/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/easybank/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/easybank/internal/adapter/repository/redis"
	"github.com/iho/easybank/internal/infrastructure/config"
	"github.com/iho/easybank/internal/infrastructure/postgres"
	"github.com/iho/easybank/internal/infrastructure/redis"
	"github.com/iho/easybank/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_FORMAT") != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	limiter := redisRepo.NewSlidingWindowLimiter(redisClient, cfg.RateLimitRetryAfter)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	transferCfg := usecase.TransferConfig{
		MaxAttempts:       cfg.TransferMaxAttempts,
		BackoffInitial:    cfg.TransferBackoffInitial,
		BackoffMultiplier: cfg.TransferBackoffMultiplier,
		TransactionLimit:  cfg.RateLimitTransactionsPerWindow,
		TransactionWindow: cfg.RateLimitWindow,
	}
	accountUC := usecase.NewAccountUseCase(accountRepo, cache, cfg.AccountCacheTTL)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, transactionRepo, limiter, cache, idGen, transferCfg)
	transactionUC := usecase.NewTransactionUseCase(transactionRepo, accountRepo)

	// Fail transfers a previous process abandoned mid-retry.
	if recovered, err := transferUC.RecoverStalled(ctx, 10*time.Minute); err != nil {
		log.Error().Err(err).Msg("failed to recover stalled transfers")
	} else if recovered > 0 {
		log.Info().Int("count", recovered).Msg("recovered stalled transfers")
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransferHandler:    handler.NewTransferHandler(transferUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		RateLimit:          middleware.NewRateLimitMiddleware(limiter, cfg.RateLimitRequestsPerWindow, cfg.RateLimitWindow),
		Logger:             log.Logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
