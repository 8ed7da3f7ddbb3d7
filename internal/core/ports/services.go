package ports

import (
	"context"

	"payment-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// --- Routing & Fees ---

// GatewayRegistry exposes the configured provider set to the routing engine.
type GatewayRegistry interface {
	// ListActiveGateways returns active gateways ordered by priority.
	ListActiveGateways(ctx context.Context) ([]domain.GatewayConfig, error)
	Get(ctx context.Context, provider domain.ProviderType) (*domain.GatewayConfig, error)
}

// ResolvedRoute is an immutable routing snapshot taken at chain start.
type ResolvedRoute struct {
	// Candidates is the ordered, active, truncated gateway list.
	Candidates []domain.GatewayConfig
	// MaxAttempts caps the whole chain, primary included.
	MaxAttempts int
}

// PolicyResolver maps a payment method to its ordered gateway chain.
type PolicyResolver interface {
	Resolve(ctx context.Context, method domain.PaymentMethod) (*ResolvedRoute, error)
}

// FeeCalculator computes the cost of a charge for a tenant/method/installments.
// It is a pure function of the stored schedule and its inputs.
type FeeCalculator interface {
	ComputeFee(ctx context.Context, tenantID uuid.UUID, method domain.PaymentMethod, amountCents int64, installments int) (*domain.FeeQuote, error)
}

// --- Orchestration ---

// ChargeRequest holds validated input for a new orchestration chain.
type ChargeRequest struct {
	SaleID       uuid.UUID
	Method       domain.PaymentMethod
	AmountCents  int64
	Installments int
}

// OrchestrationStatus is the outcome of one orchestration run.
type OrchestrationStatus string

const (
	OrchestrationPaid      OrchestrationStatus = "paid"
	OrchestrationPending   OrchestrationStatus = "pending"   // awaiting provider webhook
	OrchestrationAnalyzing OrchestrationStatus = "analyzing" // held by provider antifraud
	OrchestrationFailed    OrchestrationStatus = "failed"
	OrchestrationAborted   OrchestrationStatus = "aborted" // sale externally closed mid-chain
)

// OrchestrationResult is the outcome of a chain run. On exhaustion the
// orchestrator returns both a result and the last attempt's error.
type OrchestrationResult struct {
	SaleID       uuid.UUID              `json:"sale_id"`
	Status       OrchestrationStatus    `json:"status"`
	AttemptsMade int                    `json:"attempts_made"`
	LastAttempt  *domain.PaymentAttempt `json:"last_attempt,omitempty"`
}

// PaymentOrchestrator routes a charge across the gateway chain.
type PaymentOrchestrator interface {
	// Charge starts a new chain for the sale with a fresh policy snapshot.
	Charge(ctx context.Context, req ChargeRequest) (*OrchestrationResult, error)
	// ResumeChain continues the current chain after an asynchronous terminal
	// failure, skipping gateways the chain already attempted.
	ResumeChain(ctx context.Context, saleID uuid.UUID) (*OrchestrationResult, error)
}

// --- Ledger ---

// AttemptLedger is the append-only record of gateway attempts. Append
// enforces the single-success invariant and assigns attempt numbers.
type AttemptLedger interface {
	Append(ctx context.Context, tx pgx.Tx, attempt *domain.PaymentAttempt) (int, error)
	ListBySale(ctx context.Context, saleID uuid.UUID) ([]domain.PaymentAttempt, error)
	MaxAttemptNumber(ctx context.Context, saleID uuid.UUID) (int, error)
}

// --- Recovery ---

// ActionRequest holds validated input for a recovery action.
type ActionRequest struct {
	SaleID      uuid.UUID
	ActionType  domain.AdminActionType
	PerformedBy string
	Notes       string
}

// ActionResult is the outcome of a recovery action. AlreadyTerminal marks an
// idempotent no-op on a sale that has already reached a terminal state.
type ActionResult struct {
	Action          *domain.AdminAction  `json:"action"`
	AlreadyTerminal bool                 `json:"already_terminal"`
	Orchestration   *OrchestrationResult `json:"orchestration,omitempty"`
}

// RecoveryService is the only entry point for human intervention.
type RecoveryService interface {
	PerformAction(ctx context.Context, req ActionRequest) (*ActionResult, error)
	ListActions(ctx context.Context, saleID uuid.UUID) ([]domain.AdminAction, error)
}

// --- Webhooks ---

// Provider webhook statuses accepted by RecordWebhook.
const (
	WebhookStatusSuccess   = "success"
	WebhookStatusFailed    = "failed"
	WebhookStatusAnalyzing = "in_analysis"
)

// WebhookNotice is a provider's asynchronous status update for an attempt.
type WebhookNotice struct {
	Gateway       domain.ProviderType
	ProviderTxRef string
	Status        string
	ErrorCode     string
	ErrorMessage  string
}

// WebhookOutcome reports how a webhook was applied.
type WebhookOutcome struct {
	Duplicate     bool                 `json:"duplicate"`
	AttemptNumber int                  `json:"attempt_number,omitempty"`
	SaleStatus    domain.SaleStatus    `json:"sale_status,omitempty"`
	Resumed       *OrchestrationResult `json:"resumed,omitempty"`
}

// WebhookService applies provider callbacks to the ledger, advancing the
// chain when a terminal failure leaves fallback capacity.
type WebhookService interface {
	RecordWebhook(ctx context.Context, notice WebhookNotice) (*WebhookOutcome, error)
}

// --- Gateway clients ---

// GatewayOutcome is the synchronous result of a provider charge call.
type GatewayOutcome string

const (
	GatewayOutcomeApproved   GatewayOutcome = "approved"
	GatewayOutcomePending    GatewayOutcome = "pending"
	GatewayOutcomeInAnalysis GatewayOutcome = "in_analysis"
	GatewayOutcomeDeclined   GatewayOutcome = "declined"
	// GatewayOutcomeRejected means the provider judged the request malformed;
	// switching gateways will not help.
	GatewayOutcomeRejected GatewayOutcome = "rejected"
)

// GatewayChargeRequest is the payload sent to a provider client.
type GatewayChargeRequest struct {
	SaleID       uuid.UUID
	TenantID     uuid.UUID
	Method       domain.PaymentMethod
	AmountCents  int64
	Installments int
}

// GatewayChargeResponse is a provider's synchronous answer. Transport-level
// failures (timeouts, 5xx) surface as errors from Charge instead.
type GatewayChargeResponse struct {
	Outcome       GatewayOutcome
	ProviderTxRef string
	ErrorCode     string
	DeclineReason string
}

// GatewayClient talks to one external payment provider.
type GatewayClient interface {
	Charge(ctx context.Context, req GatewayChargeRequest) (*GatewayChargeResponse, error)
}

// GatewayClientFactory builds a client for a gateway config, resolving its
// credential reference. Sandbox configs get the deterministic sandbox client.
type GatewayClientFactory interface {
	ClientFor(cfg domain.GatewayConfig) (GatewayClient, error)
}

// --- Concurrency ---

// SaleLocker is the per-sale mutual exclusion guard: at most one
// orchestration run (or ledger-mutating recovery action) per sale.
type SaleLocker interface {
	// Acquire returns a release token and true when the lock was taken,
	// false when another run holds it.
	Acquire(ctx context.Context, saleID uuid.UUID) (string, bool, error)
	Release(ctx context.Context, saleID uuid.UUID, token string) error
}

// WebhookDeduper suppresses replayed provider webhooks, keyed by
// (gateway, provider_tx_ref, status).
type WebhookDeduper interface {
	// CheckAndSet returns true if the notification is new.
	CheckAndSet(ctx context.Context, gateway domain.ProviderType, providerTxRef string, status string) (bool, error)
	// Forget clears the seen mark so the provider's retry of a delivery
	// that failed to apply is processed instead of suppressed.
	Forget(ctx context.Context, gateway domain.ProviderType, providerTxRef string, status string) error
}

// --- Configuration surface ---

// ConfigService is the validated admin CRUD over routing configuration.
type ConfigService interface {
	ListGateways(ctx context.Context) ([]domain.GatewayConfig, error)
	UpsertGateway(ctx context.Context, cfg *domain.GatewayConfig, webhookSecret string) error
	GetPolicy(ctx context.Context, method domain.PaymentMethod) (*domain.FallbackPolicy, error)
	UpsertPolicy(ctx context.Context, policy *domain.FallbackPolicy) error
	GetFeeSchedule(ctx context.Context, tenantID uuid.UUID, method domain.PaymentMethod) (*domain.TenantFeeSchedule, error)
	UpsertFeeSchedule(ctx context.Context, schedule *domain.TenantFeeSchedule) error
}

// --- Supporting services ---

// EncryptionService protects gateway credentials and webhook secrets at rest.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SignatureService verifies provider webhook signatures (HMAC-SHA256).
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// OperatorClaims identifies the operator behind an admin request.
type OperatorClaims struct {
	OperatorID string
}

// TokenService validates operator bearer tokens on admin routes. Token
// issuance belongs to the identity system, not this core.
type TokenService interface {
	Validate(tokenString string) (*OperatorClaims, error)
}
