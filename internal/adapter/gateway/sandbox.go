package gateway

import (
	"context"
	"fmt"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"

	"github.com/google/uuid"
)

// SandboxClient implements ports.GatewayClient with deterministic outcomes
// for test environments. The last two digits of the amount select the
// outcome, so test suites can trigger any path without a real provider.
//
//	amount % 100 == 91  declined
//	amount % 100 == 92  transport error (transient)
//	amount % 100 == 93  rejected
//	amount % 100 == 94  pending
//	amount % 100 == 95  in_analysis
//	anything else       approved
type SandboxClient struct {
	provider domain.ProviderType
}

// NewSandboxClient creates a sandbox client for one provider.
func NewSandboxClient(provider domain.ProviderType) *SandboxClient {
	return &SandboxClient{provider: provider}
}

// Charge resolves the deterministic outcome for the request amount.
func (c *SandboxClient) Charge(ctx context.Context, req ports.GatewayChargeRequest) (*ports.GatewayChargeResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	txRef := fmt.Sprintf("sbx-%s-%s", c.provider, uuid.NewString()[:8])
	switch req.AmountCents % 100 {
	case 91:
		return &ports.GatewayChargeResponse{
			Outcome:       ports.GatewayOutcomeDeclined,
			ProviderTxRef: txRef,
			ErrorCode:     "card_declined",
			DeclineReason: "sandbox decline",
		}, nil
	case 92:
		return nil, fmt.Errorf("sandbox %s: simulated provider outage", c.provider)
	case 93:
		return &ports.GatewayChargeResponse{
			Outcome:       ports.GatewayOutcomeRejected,
			ProviderTxRef: txRef,
			ErrorCode:     "invalid_request",
			DeclineReason: "sandbox rejection",
		}, nil
	case 94:
		return &ports.GatewayChargeResponse{
			Outcome:       ports.GatewayOutcomePending,
			ProviderTxRef: txRef,
		}, nil
	case 95:
		return &ports.GatewayChargeResponse{
			Outcome:       ports.GatewayOutcomeInAnalysis,
			ProviderTxRef: txRef,
		}, nil
	default:
		return &ports.GatewayChargeResponse{
			Outcome:       ports.GatewayOutcomeApproved,
			ProviderTxRef: txRef,
		}, nil
	}
}
