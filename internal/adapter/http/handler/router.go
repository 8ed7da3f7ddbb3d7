package handler

import (
	"payment-orchestrator/internal/adapter/http/middleware"
	redisStore "payment-orchestrator/internal/adapter/storage/redis"
	"payment-orchestrator/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Orchestrator   ports.PaymentOrchestrator
	FeeCalc        ports.FeeCalculator
	Ledger         ports.AttemptLedger
	SaleRepo       ports.SaleRepository
	WebhookSvc     ports.WebhookService
	RecoverySvc    ports.RecoveryService
	ConfigSvc      ports.ConfigService
	Registry       ports.GatewayRegistry
	EncSvc         ports.EncryptionService
	SigSvc         ports.SignatureService
	TokenSvc       ports.TokenService
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
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
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

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Checkout-facing routes ---
	orchHandler := NewOrchestrationHandler(deps.Orchestrator, deps.FeeCalc, deps.Ledger, deps.SaleRepo)
	v1.POST("/sales", rl("charges"), orchHandler.CreateSale)
	v1.POST("/charges", rl("charges"), orchHandler.Charge)
	v1.POST("/fees/quote", rl("queries"), orchHandler.ComputeFee)

	// --- Provider webhooks (HMAC-verified per gateway) ---
	webhookAuth := middleware.WebhookAuth(deps.Registry, deps.EncSvc, deps.SigSvc, deps.Logger)
	webhookHandler := NewWebhookHandler(deps.WebhookSvc)
	v1.POST("/webhooks/:gateway", rl("webhooks"), webhookAuth, webhookHandler.HandleWebhook)

	// --- Operator routes (bearer token) ---
	operatorAuth := middleware.OperatorAuth(deps.TokenSvc, deps.Logger)
	recoveryHandler := NewRecoveryHandler(deps.RecoverySvc)

	sales := v1.Group("/sales", operatorAuth)
	{
		sales.GET("/:id", rl("queries"), orchHandler.GetSale)
		sales.GET("/:id/attempts", rl("queries"), orchHandler.ListAttempts)
		sales.POST("/:id/actions", rl("recovery"), recoveryHandler.PerformAction)
		sales.GET("/:id/actions", rl("queries"), recoveryHandler.ListActions)
	}

	configHandler := NewConfigHandler(deps.ConfigSvc, deps.EncSvc)
	config := v1.Group("/config", operatorAuth)
	{
		config.GET("/gateways", rl("queries"), configHandler.ListGateways)
		config.PUT("/gateways", rl("config"), configHandler.UpsertGateway)
		config.GET("/policies/:method", rl("queries"), configHandler.GetPolicy)
		config.PUT("/policies/:method", rl("config"), configHandler.UpsertPolicy)
		config.GET("/fees/:tenant_id/:method", rl("queries"), configHandler.GetFeeSchedule)
		config.PUT("/fees/:tenant_id/:method", rl("config"), configHandler.UpsertFeeSchedule)
	}

	return r
}
