package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/pkg/apperror"
)

// ClientFactory implements ports.GatewayClientFactory. Production configs get
// an HTTP client built from the gateway's decrypted credentials; sandbox
// configs get the deterministic sandbox client.
type ClientFactory struct {
	encSvc     ports.EncryptionService
	httpClient *http.Client
}

// NewClientFactory creates a new ClientFactory. The http.Client is shared
// across providers; per-attempt deadlines come from the caller's context.
func NewClientFactory(encSvc ports.EncryptionService, httpClient *http.Client) *ClientFactory {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &ClientFactory{encSvc: encSvc, httpClient: httpClient}
}

// ClientFor builds the client for a gateway config.
func (f *ClientFactory) ClientFor(cfg domain.GatewayConfig) (ports.GatewayClient, error) {
	if !cfg.Provider.IsRoutable() {
		return nil, apperror.Validation(fmt.Sprintf("provider %s is not routable", cfg.Provider))
	}
	if cfg.IsSandbox {
		return NewSandboxClient(cfg.Provider), nil
	}

	plaintext, err := f.encSvc.Decrypt(cfg.CredentialRef)
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(fmt.Errorf("decrypt credentials for %s: %w", cfg.Provider, err))
	}
	var creds Credentials
	if err := json.Unmarshal([]byte(plaintext), &creds); err != nil {
		return nil, apperror.ErrEncryptionFailure(fmt.Errorf("parse credentials for %s: %w", cfg.Provider, err))
	}
	if creds.Endpoint == "" || creds.APIKey == "" {
		return nil, apperror.Validation(fmt.Sprintf("gateway %s has incomplete credentials", cfg.Provider))
	}

	return NewHTTPGatewayClient(cfg.Provider, creds, f.httpClient), nil
}
