package service

import (
	"context"
	"fmt"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/pkg/apperror"

	"github.com/rs/zerolog"
)

// RegistryServiceImpl implements ports.GatewayRegistry on top of the
// gateway config repository.
type RegistryServiceImpl struct {
	gatewayRepo ports.GatewayConfigRepository
	log         zerolog.Logger
}

// NewRegistryService creates a new RegistryServiceImpl.
func NewRegistryService(gatewayRepo ports.GatewayConfigRepository, log zerolog.Logger) *RegistryServiceImpl {
	return &RegistryServiceImpl{gatewayRepo: gatewayRepo, log: log}
}

// ListActiveGateways returns active gateways ordered by priority.
func (s *RegistryServiceImpl) ListActiveGateways(ctx context.Context) ([]domain.GatewayConfig, error) {
	gws, err := s.gatewayRepo.ListActive(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list active gateways: %w", err))
	}
	return gws, nil
}

// Get returns one gateway by provider, active or not.
func (s *RegistryServiceImpl) Get(ctx context.Context, provider domain.ProviderType) (*domain.GatewayConfig, error) {
	gw, err := s.gatewayRepo.GetByProvider(ctx, provider)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get gateway %s: %w", provider, err))
	}
	if gw == nil {
		return nil, apperror.ErrNotFound("gateway")
	}
	return gw, nil
}
