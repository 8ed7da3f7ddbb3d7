package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-orchestrator/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// FallbackPolicyRepo implements ports.FallbackPolicyRepository.
type FallbackPolicyRepo struct {
	pool Pool
}

// NewFallbackPolicyRepo creates a new FallbackPolicyRepo.
func NewFallbackPolicyRepo(pool Pool) *FallbackPolicyRepo {
	return &FallbackPolicyRepo{pool: pool}
}

// GetByMethod fetches the routing policy for a payment method.
func (r *FallbackPolicyRepo) GetByMethod(ctx context.Context, method domain.PaymentMethod) (*domain.FallbackPolicy, error) {
	query := `SELECT id, method, primary_gateway, fallback_gateways, fallback_enabled, max_fallback_attempts, updated_at
		FROM fallback_policies WHERE method = $1`

	p := &domain.FallbackPolicy{}
	var fallbacks []string
	err := r.pool.QueryRow(ctx, query, method).Scan(
		&p.ID, &p.Method, &p.PrimaryGateway, &fallbacks,
		&p.FallbackEnabled, &p.MaxFallbackAttempts, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fallback policy by method: %w", err)
	}

	p.FallbackGateways = make([]domain.ProviderType, len(fallbacks))
	for i, g := range fallbacks {
		p.FallbackGateways[i] = domain.ProviderType(g)
	}
	return p, nil
}

// Upsert inserts or replaces the policy for a method. Method is the natural
// key; each payment method has at most one policy.
func (r *FallbackPolicyRepo) Upsert(ctx context.Context, policy *domain.FallbackPolicy) error {
	query := `INSERT INTO fallback_policies (id, method, primary_gateway, fallback_gateways, fallback_enabled, max_fallback_attempts, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (method) DO UPDATE SET
			primary_gateway = EXCLUDED.primary_gateway,
			fallback_gateways = EXCLUDED.fallback_gateways,
			fallback_enabled = EXCLUDED.fallback_enabled,
			max_fallback_attempts = EXCLUDED.max_fallback_attempts,
			updated_at = EXCLUDED.updated_at`

	fallbacks := make([]string, len(policy.FallbackGateways))
	for i, g := range policy.FallbackGateways {
		fallbacks[i] = string(g)
	}

	_, err := r.pool.Exec(ctx, query,
		policy.ID, policy.Method, policy.PrimaryGateway, fallbacks,
		policy.FallbackEnabled, policy.MaxFallbackAttempts, policy.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert fallback policy: %w", err)
	}
	return nil
}
