package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProviderType identifies a configured payment acquirer.
type ProviderType string

const (
	ProviderAcquirerA ProviderType = "acquirer_a"
	ProviderAcquirerB ProviderType = "acquirer_b"
	ProviderAcquirerC ProviderType = "acquirer_c"
	ProviderAcquirerD ProviderType = "acquirer_d"

	// ProviderManual marks synthetic ledger rows created by manual capture.
	// It is never a routable gateway.
	ProviderManual ProviderType = "manual"
)

// KnownProviders lists the routable acquirer types.
var KnownProviders = []ProviderType{
	ProviderAcquirerA,
	ProviderAcquirerB,
	ProviderAcquirerC,
	ProviderAcquirerD,
}

// IsRoutable reports whether the provider type can receive charges.
func (p ProviderType) IsRoutable() bool {
	for _, known := range KnownProviders {
		if p == known {
			return true
		}
	}
	return false
}

// GatewayConfig holds a configured payment provider. Read-mostly at runtime;
// mutated only through the admin configuration API.
type GatewayConfig struct {
	ID               uuid.UUID    `json:"id"`
	Provider         ProviderType `json:"provider"`
	DisplayName      string       `json:"display_name"`
	CredentialRef    string       `json:"-"` // opaque handle, resolved at client build time
	WebhookSecretEnc string       `json:"-"` // encrypted HMAC secret for inbound webhooks
	IsPrimary        bool         `json:"is_primary"`
	Priority         int          `json:"priority"` // lower = earlier
	IsActive         bool         `json:"is_active"`
	IsSandbox        bool         `json:"is_sandbox"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// Validate checks the config at the configuration boundary.
func (g *GatewayConfig) Validate() error {
	if !g.Provider.IsRoutable() {
		return fmt.Errorf("unknown provider type %q", g.Provider)
	}
	if g.DisplayName == "" {
		return fmt.Errorf("display name is required")
	}
	if g.Priority < 0 {
		return fmt.Errorf("priority must be non-negative, got %d", g.Priority)
	}
	if g.CredentialRef == "" {
		return fmt.Errorf("credential reference is required")
	}
	return nil
}
