package ports

import (
	"context"

	"payment-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GatewayConfigRepository defines persistence for configured payment providers.
type GatewayConfigRepository interface {
	List(ctx context.Context) ([]domain.GatewayConfig, error)
	// ListActive returns active gateways ordered by priority (lower first).
	ListActive(ctx context.Context) ([]domain.GatewayConfig, error)
	GetByProvider(ctx context.Context, provider domain.ProviderType) (*domain.GatewayConfig, error)
	Upsert(ctx context.Context, cfg *domain.GatewayConfig) error
}

// FallbackPolicyRepository defines persistence for per-method routing policies.
type FallbackPolicyRepository interface {
	GetByMethod(ctx context.Context, method domain.PaymentMethod) (*domain.FallbackPolicy, error)
	Upsert(ctx context.Context, policy *domain.FallbackPolicy) error
}

// FeeScheduleRepository defines persistence for tenant fee overrides.
type FeeScheduleRepository interface {
	GetByTenantAndMethod(ctx context.Context, tenantID uuid.UUID, method domain.PaymentMethod) (*domain.TenantFeeSchedule, error)
	Upsert(ctx context.Context, schedule *domain.TenantFeeSchedule) error
}

// SaleRepository defines persistence for the orchestration view of sales.
// UpdateStatus runs inside a database transaction so that ledger rows and
// sale state advance atomically.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.SaleStatus) error
}

// AttemptRepository defines persistence for the append-only attempt ledger.
// Insert assigns the next contiguous attempt_number for the sale and returns it.
type AttemptRepository interface {
	Insert(ctx context.Context, tx pgx.Tx, attempt *domain.PaymentAttempt) (int, error)
	ListBySale(ctx context.Context, saleID uuid.UUID) ([]domain.PaymentAttempt, error)
	MaxAttemptNumber(ctx context.Context, saleID uuid.UUID) (int, error)
	HasSuccess(ctx context.Context, saleID uuid.UUID) (bool, error)
	// GetPendingByProviderRef finds the unresolved initiation attempt a
	// provider webhook refers to.
	GetPendingByProviderRef(ctx context.Context, gateway domain.ProviderType, providerTxRef string) (*domain.PaymentAttempt, error)
}

// AdminActionRepository defines persistence for the recovery audit trail.
// Rows are written outside orchestration transactions so the audit survives
// a failed action.
type AdminActionRepository interface {
	Create(ctx context.Context, action *domain.AdminAction) error
	ListBySale(ctx context.Context, saleID uuid.UUID) ([]domain.AdminAction, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
