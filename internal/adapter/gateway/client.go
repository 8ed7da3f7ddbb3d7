package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
)

// Credentials is the decrypted payload stored behind a gateway's credential
// reference.
type Credentials struct {
	APIKey   string `json:"api_key"`
	Endpoint string `json:"endpoint"`
}

// HTTPGatewayClient implements ports.GatewayClient against a provider's
// charge API. Transport failures and 5xx responses surface as errors; the
// caller treats those as transient. Provider business outcomes come back in
// the response body.
type HTTPGatewayClient struct {
	provider   domain.ProviderType
	creds      Credentials
	httpClient *http.Client
}

// NewHTTPGatewayClient creates a client for one provider.
func NewHTTPGatewayClient(provider domain.ProviderType, creds Credentials, httpClient *http.Client) *HTTPGatewayClient {
	return &HTTPGatewayClient{provider: provider, creds: creds, httpClient: httpClient}
}

type chargePayload struct {
	ReferenceID  string `json:"reference_id"`
	TenantID     string `json:"tenant_id"`
	Method       string `json:"method"`
	AmountCents  int64  `json:"amount_cents"`
	Installments int    `json:"installments,omitempty"`
}

type chargeReply struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	ErrorCode     string `json:"error_code"`
	Message       string `json:"message"`
}

// Charge posts one charge to the provider. The caller's context carries the
// per-attempt deadline.
func (c *HTTPGatewayClient) Charge(ctx context.Context, req ports.GatewayChargeRequest) (*ports.GatewayChargeResponse, error) {
	payload := chargePayload{
		ReferenceID:  req.SaleID.String(),
		TenantID:     req.TenantID.String(),
		Method:       string(req.Method),
		AmountCents:  req.AmountCents,
		Installments: req.Installments,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal charge payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.creds.Endpoint+"/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.creds.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway %s request failed: %w", c.provider, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway %s response: %w", c.provider, err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("gateway %s returned %d", c.provider, resp.StatusCode)
	}

	var reply chargeReply
	if err := json.Unmarshal(respBody, &reply); err != nil {
		return nil, fmt.Errorf("decode gateway %s response: %w", c.provider, err)
	}

	outcome, err := mapProviderStatus(reply.Status)
	if err != nil {
		return nil, fmt.Errorf("gateway %s: %w", c.provider, err)
	}

	return &ports.GatewayChargeResponse{
		Outcome:       outcome,
		ProviderTxRef: reply.TransactionID,
		ErrorCode:     reply.ErrorCode,
		DeclineReason: reply.Message,
	}, nil
}

// mapProviderStatus normalizes provider status strings to outcomes.
func mapProviderStatus(status string) (ports.GatewayOutcome, error) {
	switch status {
	case "approved", "authorized", "captured":
		return ports.GatewayOutcomeApproved, nil
	case "pending", "waiting_payment":
		return ports.GatewayOutcomePending, nil
	case "in_analysis", "under_review":
		return ports.GatewayOutcomeInAnalysis, nil
	case "declined", "refused":
		return ports.GatewayOutcomeDeclined, nil
	case "rejected", "invalid_request":
		return ports.GatewayOutcomeRejected, nil
	default:
		return "", fmt.Errorf("unrecognized provider status %q", status)
	}
}
