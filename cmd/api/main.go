package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payment-orchestrator/config"
	gatewayAdapter "payment-orchestrator/internal/adapter/gateway"
	httpHandler "payment-orchestrator/internal/adapter/http/handler"
	pgStorage "payment-orchestrator/internal/adapter/storage/postgres"
	redisStorage "payment-orchestrator/internal/adapter/storage/redis"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/internal/service"
	"payment-orchestrator/pkg/logger"
)

// webhookDedupTTL bounds how long a provider notification is remembered.
// Providers retry for at most a day, so a replay after that is a new event.
const webhookDedupTTL = 24 * time.Hour

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Payment Orchestrator")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	gatewayRepo := pgStorage.NewGatewayConfigRepo(pool)
	policyRepo := pgStorage.NewFallbackPolicyRepo(pool)
	feeRepo := pgStorage.NewFeeScheduleRepo(pool)
	saleRepo := pgStorage.NewSaleRepo(pool)
	attemptRepo := pgStorage.NewAttemptRepo(pool)
	adminRepo := pgStorage.NewAdminActionRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	saleLocker := redisStorage.NewSaleLocker(rdb, cfg.Orchestrator.LockTTL)
	webhookDeduper := redisStorage.NewWebhookDeduper(rdb, webhookDedupTTL)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize supporting services
	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	sigSvc := service.NewHMACSignatureService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)

	// Initialize core services
	registry := service.NewRegistryService(gatewayRepo, log)
	resolver := service.NewPolicyService(policyRepo, registry, cfg.Orchestrator.DefaultMaxAttempts, log)
	feeSvc := service.NewFeeService(feeRepo, cfg.Fees, log)
	ledger := service.NewLedgerService(attemptRepo, log)

	clientFactory := gatewayAdapter.NewClientFactory(encSvc, &http.Client{Timeout: cfg.Orchestrator.AttemptTimeout})

	orchestrator := service.NewOrchestratorService(
		saleRepo,
		ledger,
		resolver,
		feeSvc,
		clientFactory,
		saleLocker,
		transactor,
		cfg.Orchestrator.AttemptTimeout,
		log,
	)
	webhookSvc := service.NewWebhookService(
		attemptRepo,
		saleRepo,
		ledger,
		orchestrator,
		webhookDeduper,
		saleLocker,
		transactor,
		log,
	)
	recoverySvc := service.NewRecoveryService(
		saleRepo,
		adminRepo,
		ledger,
		orchestrator,
		saleLocker,
		transactor,
		log,
	)
	configSvc := service.NewConfigAdminService(gatewayRepo, policyRepo, feeRepo, encSvc, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Orchestrator:   orchestrator,
		FeeCalc:        feeSvc,
		Ledger:         ledger,
		SaleRepo:       saleRepo,
		WebhookSvc:     webhookSvc,
		RecoverySvc:    recoverySvc,
		ConfigSvc:      configSvc,
		Registry:       registry,
		EncSvc:         encSvc,
		SigSvc:         sigSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
