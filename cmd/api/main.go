package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"token-wallet-service/config"
	chainGateway "token-wallet-service/internal/adapter/chain"
	httpHandler "token-wallet-service/internal/adapter/http/handler"
	pgStorage "token-wallet-service/internal/adapter/storage/postgres"
	redisStorage "token-wallet-service/internal/adapter/storage/redis"
	"token-wallet-service/internal/core/ports"
	"token-wallet-service/internal/service"
	"token-wallet-service/pkg/logger"
)

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
		Msg("Starting Token Wallet Service")

	ctx := context.Background()

	// Cipher first: a malformed passphrase must stop the process before any
	// wallet can be written with a key nobody can decrypt.
	cipherSvc, err := service.NewAESCipherService(cfg.Cipher.Secret)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid encryption secret")
	}

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

	// Chain gateway: dials the RPC endpoint and validates the signing key
	// and token address.
	gateway, err := chainGateway.New(ctx, cfg.Chain, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize chain gateway")
	}
	log.Info().Str("sender", gateway.Sender().Hex()).Msg("Chain gateway ready")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	userRepo := pgStorage.NewUserRepo(pool)
	auditRepo := pgStorage.NewAuditRepository(pool)

	// Initialize Redis stores
	provisionLock := redisStorage.NewProvisionLock(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	keygen := service.NewECDSAKeypairGenerator()
	hashSvc := service.NewArgon2HashService()
	tokenAuthSvc := service.NewJWTAuthService(cfg.Admin.JWTSecret, cfg.Admin.JWTExpiry, cfg.Admin.JWTIssuer)

	// Initialize business services
	auditSvc := service.NewAuditService(auditRepo, log)
	walletSvc := service.NewWalletService(walletRepo, userRepo, keygen, cipherSvc, gateway, provisionLock, log)
	tokenSvc := service.NewTokenService(gateway, auditSvc, cfg.Chain.ConfirmTimeout, log)
	authSvc := service.NewAdminAuthService(cfg.Admin.Username, cfg.Admin.PasswordHash, hashSvc, tokenAuthSvc, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)
	chainHealth := chainGateway.NewHealthCheck(gateway.Node())

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		WalletSvc:      walletSvc,
		TokenSvc:       tokenSvc,
		AuthSvc:        authSvc,
		TokenAuthSvc:   tokenAuthSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth, chainHealth},
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
