package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is the checkout payment rail.
type PaymentMethod string

const (
	MethodPix        PaymentMethod = "pix"
	MethodCreditCard PaymentMethod = "credit_card"
	MethodBoleto     PaymentMethod = "boleto"
)

// IsValid reports whether the method is supported.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodPix, MethodCreditCard, MethodBoleto:
		return true
	}
	return false
}

// SupportsInstallments reports whether the method accepts installment counts > 1.
func (m PaymentMethod) SupportsInstallments() bool {
	return m == MethodCreditCard
}

// FallbackPolicy maps a payment method to its gateway routing chain.
type FallbackPolicy struct {
	ID                  uuid.UUID      `json:"id"`
	Method              PaymentMethod  `json:"method"`
	PrimaryGateway      ProviderType   `json:"primary_gateway"`
	FallbackGateways    []ProviderType `json:"fallback_gateways"`
	FallbackEnabled     bool           `json:"fallback_enabled"`
	MaxFallbackAttempts int            `json:"max_fallback_attempts"` // counts the primary
	UpdatedAt           time.Time      `json:"updated_at"`
}

// Validate checks policy shape at the configuration boundary: no duplicate
// fallbacks, none equal to the primary, cap at least 1.
func (p *FallbackPolicy) Validate() error {
	if !p.Method.IsValid() {
		return fmt.Errorf("unknown payment method %q", p.Method)
	}
	if !p.PrimaryGateway.IsRoutable() {
		return fmt.Errorf("primary gateway %q is not a routable provider", p.PrimaryGateway)
	}
	if p.MaxFallbackAttempts < 1 {
		return fmt.Errorf("max_fallback_attempts must be >= 1, got %d", p.MaxFallbackAttempts)
	}
	seen := map[ProviderType]bool{p.PrimaryGateway: true}
	for _, g := range p.FallbackGateways {
		if !g.IsRoutable() {
			return fmt.Errorf("fallback gateway %q is not a routable provider", g)
		}
		if g == p.PrimaryGateway {
			return fmt.Errorf("fallback gateway %q duplicates the primary", g)
		}
		if seen[g] {
			return fmt.Errorf("duplicate fallback gateway %q", g)
		}
		seen[g] = true
	}
	return nil
}

// Chain returns the ordered candidate list before registry filtering:
// primary plus fallbacks when enabled, primary alone otherwise.
func (p *FallbackPolicy) Chain() []ProviderType {
	if !p.FallbackEnabled {
		return []ProviderType{p.PrimaryGateway}
	}
	chain := make([]ProviderType, 0, 1+len(p.FallbackGateways))
	chain = append(chain, p.PrimaryGateway)
	chain = append(chain, p.FallbackGateways...)
	return chain
}
