package handler

import (
	"token-wallet-service/internal/adapter/http/middleware"
	redisStore "token-wallet-service/internal/adapter/storage/redis"
	"token-wallet-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WalletSvc      ports.WalletService
	TokenSvc       ports.TokenService
	AuthSvc        ports.AuthService
	TokenAuthSvc   ports.TokenAuthService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep: verifies PostgreSQL, Redis, and the RPC endpoint)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// --- Public routes ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	r.POST("/auth/login", rl("auth_login"), authHandler.Login)

	walletHandler := NewWalletHandler(deps.WalletSvc)
	r.POST("/provision-wallet", rl("provision"), walletHandler.Provision)
	r.GET("/wallet-info", rl("wallet_info"), walletHandler.WalletInfo)

	// --- Admin-gated routes (mint and burn move real value) ---
	jwtAuth := middleware.JWTAuth(deps.TokenAuthSvc, deps.Logger)
	tokenHandler := NewTokenHandler(deps.TokenSvc)
	r.POST("/mint", jwtAuth, rl("token_ops"), tokenHandler.Mint)
	r.POST("/burn", jwtAuth, rl("token_ops"), tokenHandler.Burn)

	return r
}
