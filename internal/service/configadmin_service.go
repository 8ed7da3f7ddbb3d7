package service

import (
	"context"
	"fmt"
	"time"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ConfigAdminServiceImpl implements ports.ConfigService, the validated CRUD
// surface over gateways, fallback policies, and tenant fee schedules.
// Webhook secrets are encrypted before they reach storage.
type ConfigAdminServiceImpl struct {
	gatewayRepo ports.GatewayConfigRepository
	policyRepo  ports.FallbackPolicyRepository
	feeRepo     ports.FeeScheduleRepository
	encSvc      ports.EncryptionService
	log         zerolog.Logger
}

// NewConfigAdminService creates a new ConfigAdminServiceImpl.
func NewConfigAdminService(
	gatewayRepo ports.GatewayConfigRepository,
	policyRepo ports.FallbackPolicyRepository,
	feeRepo ports.FeeScheduleRepository,
	encSvc ports.EncryptionService,
	log zerolog.Logger,
) *ConfigAdminServiceImpl {
	return &ConfigAdminServiceImpl{
		gatewayRepo: gatewayRepo,
		policyRepo:  policyRepo,
		feeRepo:     feeRepo,
		encSvc:      encSvc,
		log:         log,
	}
}

// ListGateways returns every configured gateway, active or not.
func (s *ConfigAdminServiceImpl) ListGateways(ctx context.Context) ([]domain.GatewayConfig, error) {
	gws, err := s.gatewayRepo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list gateways: %w", err))
	}
	return gws, nil
}

// UpsertGateway validates and stores a gateway config. A non-empty
// webhookSecret replaces the stored one, encrypted at rest.
func (s *ConfigAdminServiceImpl) UpsertGateway(ctx context.Context, cfg *domain.GatewayConfig, webhookSecret string) error {
	if err := cfg.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}

	if webhookSecret != "" {
		enc, err := s.encSvc.Encrypt(webhookSecret)
		if err != nil {
			return apperror.ErrEncryptionFailure(fmt.Errorf("encrypt webhook secret: %w", err))
		}
		cfg.WebhookSecretEnc = enc
	}
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	cfg.UpdatedAt = time.Now().UTC()

	if err := s.gatewayRepo.Upsert(ctx, cfg); err != nil {
		return apperror.InternalError(fmt.Errorf("upsert gateway: %w", err))
	}

	s.log.Info().
		Str("gateway", string(cfg.Provider)).
		Bool("active", cfg.IsActive).
		Int("priority", cfg.Priority).
		Msg("gateway config updated")
	return nil
}

// GetPolicy returns the fallback policy for a method.
func (s *ConfigAdminServiceImpl) GetPolicy(ctx context.Context, method domain.PaymentMethod) (*domain.FallbackPolicy, error) {
	if !method.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown payment method %q", method))
	}
	policy, err := s.policyRepo.GetByMethod(ctx, method)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get policy: %w", err))
	}
	if policy == nil {
		return nil, apperror.ErrNotFound("fallback policy")
	}
	return policy, nil
}

// UpsertPolicy validates and stores a per-method fallback policy. Changes
// affect only chains started after the write; running chains keep their
// snapshot.
func (s *ConfigAdminServiceImpl) UpsertPolicy(ctx context.Context, policy *domain.FallbackPolicy) error {
	if err := policy.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}
	if policy.ID == uuid.Nil {
		policy.ID = uuid.New()
	}
	policy.UpdatedAt = time.Now().UTC()

	if err := s.policyRepo.Upsert(ctx, policy); err != nil {
		return apperror.InternalError(fmt.Errorf("upsert policy: %w", err))
	}

	s.log.Info().
		Str("method", string(policy.Method)).
		Str("primary", string(policy.PrimaryGateway)).
		Int("max_attempts", policy.MaxFallbackAttempts).
		Msg("fallback policy updated")
	return nil
}

// GetFeeSchedule returns a tenant's fee override for a method.
func (s *ConfigAdminServiceImpl) GetFeeSchedule(ctx context.Context, tenantID uuid.UUID, method domain.PaymentMethod) (*domain.TenantFeeSchedule, error) {
	if !method.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown payment method %q", method))
	}
	sched, err := s.feeRepo.GetByTenantAndMethod(ctx, tenantID, method)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get fee schedule: %w", err))
	}
	if sched == nil {
		return nil, apperror.ErrNotFound("fee schedule")
	}
	return sched, nil
}

// UpsertFeeSchedule validates and stores a tenant fee override.
func (s *ConfigAdminServiceImpl) UpsertFeeSchedule(ctx context.Context, sched *domain.TenantFeeSchedule) error {
	if sched.TenantID == uuid.Nil {
		return apperror.Validation("tenant id is required")
	}
	if err := sched.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}
	if sched.ID == uuid.Nil {
		sched.ID = uuid.New()
	}
	sched.UpdatedAt = time.Now().UTC()

	if err := s.feeRepo.Upsert(ctx, sched); err != nil {
		return apperror.InternalError(fmt.Errorf("upsert fee schedule: %w", err))
	}

	s.log.Info().
		Str("tenant_id", sched.TenantID.String()).
		Str("method", string(sched.Method)).
		Str("percentage", sched.FeePercentage.String()).
		Msg("fee schedule updated")
	return nil
}
