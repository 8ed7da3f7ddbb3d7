package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-orchestrator/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// GatewayConfigRepo implements ports.GatewayConfigRepository.
type GatewayConfigRepo struct {
	pool Pool
}

// NewGatewayConfigRepo creates a new GatewayConfigRepo.
func NewGatewayConfigRepo(pool Pool) *GatewayConfigRepo {
	return &GatewayConfigRepo{pool: pool}
}

const gatewayColumns = `id, provider, display_name, credential_ref, webhook_secret_enc,
	is_primary, priority, is_active, is_sandbox, created_at, updated_at`

// List fetches all configured gateways ordered by priority.
func (r *GatewayConfigRepo) List(ctx context.Context) ([]domain.GatewayConfig, error) {
	query := fmt.Sprintf(`SELECT %s FROM gateway_configs ORDER BY priority, provider`, gatewayColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list gateway configs: %w", err)
	}
	defer rows.Close()

	return collectGateways(rows)
}

// ListActive fetches active gateways ordered by priority, lower first.
func (r *GatewayConfigRepo) ListActive(ctx context.Context) ([]domain.GatewayConfig, error) {
	query := fmt.Sprintf(`SELECT %s FROM gateway_configs WHERE is_active = TRUE ORDER BY priority, provider`, gatewayColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active gateway configs: %w", err)
	}
	defer rows.Close()

	return collectGateways(rows)
}

// GetByProvider fetches one gateway config by provider type.
func (r *GatewayConfigRepo) GetByProvider(ctx context.Context, provider domain.ProviderType) (*domain.GatewayConfig, error) {
	query := fmt.Sprintf(`SELECT %s FROM gateway_configs WHERE provider = $1`, gatewayColumns)

	g := &domain.GatewayConfig{}
	err := scanGateway(r.pool.QueryRow(ctx, query, provider), g)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get gateway by provider: %w", err)
	}
	return g, nil
}

// Upsert inserts or replaces the config for a provider. Provider is the
// natural key; there is at most one config per provider.
func (r *GatewayConfigRepo) Upsert(ctx context.Context, cfg *domain.GatewayConfig) error {
	query := `INSERT INTO gateway_configs (id, provider, display_name, credential_ref, webhook_secret_enc,
		is_primary, priority, is_active, is_sandbox, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (provider) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			credential_ref = EXCLUDED.credential_ref,
			webhook_secret_enc = EXCLUDED.webhook_secret_enc,
			is_primary = EXCLUDED.is_primary,
			priority = EXCLUDED.priority,
			is_active = EXCLUDED.is_active,
			is_sandbox = EXCLUDED.is_sandbox,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		cfg.ID, cfg.Provider, cfg.DisplayName, cfg.CredentialRef, cfg.WebhookSecretEnc,
		cfg.IsPrimary, cfg.Priority, cfg.IsActive, cfg.IsSandbox,
		cfg.CreatedAt, cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert gateway config: %w", err)
	}
	return nil
}

func scanGateway(row pgx.Row, g *domain.GatewayConfig) error {
	return row.Scan(
		&g.ID, &g.Provider, &g.DisplayName, &g.CredentialRef, &g.WebhookSecretEnc,
		&g.IsPrimary, &g.Priority, &g.IsActive, &g.IsSandbox,
		&g.CreatedAt, &g.UpdatedAt,
	)
}

func collectGateways(rows pgx.Rows) ([]domain.GatewayConfig, error) {
	var configs []domain.GatewayConfig
	for rows.Next() {
		g := domain.GatewayConfig{}
		if err := scanGateway(rows, &g); err != nil {
			return nil, fmt.Errorf("scan gateway config row: %w", err)
		}
		configs = append(configs, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gateway config rows: %w", err)
	}
	return configs, nil
}
