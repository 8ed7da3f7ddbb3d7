package service

import (
	"context"
	"fmt"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/pkg/apperror"

	"github.com/rs/zerolog"
)

// PolicyServiceImpl implements ports.PolicyResolver. It turns a per-method
// fallback policy plus the live gateway registry into an ordered, bounded
// candidate list. The snapshot is taken once per chain; config changes during
// a run do not affect it.
type PolicyServiceImpl struct {
	policyRepo         ports.FallbackPolicyRepository
	registry           ports.GatewayRegistry
	defaultMaxAttempts int
	log                zerolog.Logger
}

// NewPolicyService creates a new PolicyServiceImpl.
func NewPolicyService(
	policyRepo ports.FallbackPolicyRepository,
	registry ports.GatewayRegistry,
	defaultMaxAttempts int,
	log zerolog.Logger,
) *PolicyServiceImpl {
	return &PolicyServiceImpl{
		policyRepo:         policyRepo,
		registry:           registry,
		defaultMaxAttempts: defaultMaxAttempts,
		log:                log,
	}
}

// Resolve builds the routing snapshot for a payment method.
//
// With a stored policy the chain is primary followed by the configured
// fallbacks (skipping inactive or unconfigured gateways). Without one, all
// active gateways in priority order form the chain. The candidate list is
// truncated to the attempt cap; an empty list is a routing error.
func (s *PolicyServiceImpl) Resolve(ctx context.Context, method domain.PaymentMethod) (*ports.ResolvedRoute, error) {
	if !method.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown payment method %q", method))
	}

	active, err := s.registry.ListActiveGateways(ctx)
	if err != nil {
		return nil, err
	}
	byProvider := make(map[domain.ProviderType]domain.GatewayConfig, len(active))
	for _, gw := range active {
		byProvider[gw.Provider] = gw
	}

	policy, err := s.policyRepo.GetByMethod(ctx, method)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load fallback policy: %w", err))
	}

	maxAttempts := s.defaultMaxAttempts
	var candidates []domain.GatewayConfig
	if policy != nil {
		maxAttempts = policy.MaxFallbackAttempts
		for _, provider := range policy.Chain() {
			gw, ok := byProvider[provider]
			if !ok {
				s.log.Debug().
					Str("method", string(method)).
					Str("gateway", string(provider)).
					Msg("policy gateway inactive or unconfigured, skipping")
				continue
			}
			candidates = append(candidates, gw)
		}
	} else {
		// No policy for this method: route across all active gateways
		// in priority order.
		candidates = active
	}

	if len(candidates) > maxAttempts {
		candidates = candidates[:maxAttempts]
	}
	if len(candidates) == 0 {
		return nil, apperror.ErrNoActiveGateway(string(method))
	}

	return &ports.ResolvedRoute{Candidates: candidates, MaxAttempts: maxAttempts}, nil
}
