package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InstallmentFeeTable maps installment-count (as string key) to a fee
// percentage applied on top of the base fee for card charges.
type InstallmentFeeTable map[string]decimal.Decimal

// PercentageFor returns the fee percentage for the given installment count.
// A missing key means no installment surcharge.
func (t InstallmentFeeTable) PercentageFor(installments int) decimal.Decimal {
	if t == nil {
		return decimal.Zero
	}
	if pct, ok := t[strconv.Itoa(installments)]; ok {
		return pct
	}
	return decimal.Zero
}

// TenantFeeSchedule is a tenant's fee override for one payment method.
// Absence of a row means platform defaults apply.
type TenantFeeSchedule struct {
	ID            uuid.UUID           `json:"id"`
	TenantID      uuid.UUID           `json:"tenant_id"`
	Method        PaymentMethod       `json:"method"`
	FeePercentage decimal.Decimal     `json:"fee_percentage"`
	FeeFixedCents int64               `json:"fee_fixed_cents"`
	ReleaseDays   int                 `json:"release_days"`
	Enabled       bool                `json:"enabled"`
	// Card-only fields.
	MaxInstallments             int                 `json:"max_installments,omitempty"`
	InstallmentFees             InstallmentFeeTable `json:"installment_fees,omitempty"`
	InstallmentFeePassedToBuyer bool                `json:"installment_fee_passed_to_buyer,omitempty"`
	AllowSaveCard               bool                `json:"allow_save_card,omitempty"`
	UpdatedAt                   time.Time           `json:"updated_at"`
}

// Validate checks the schedule at the configuration boundary.
func (s *TenantFeeSchedule) Validate() error {
	if !s.Method.IsValid() {
		return fmt.Errorf("unknown payment method %q", s.Method)
	}
	if s.FeePercentage.IsNegative() {
		return fmt.Errorf("fee percentage must be non-negative, got %s", s.FeePercentage)
	}
	if s.FeeFixedCents < 0 {
		return fmt.Errorf("fixed fee must be non-negative, got %d", s.FeeFixedCents)
	}
	if s.ReleaseDays < 0 {
		return fmt.Errorf("release days must be non-negative, got %d", s.ReleaseDays)
	}
	if s.Method == MethodCreditCard {
		if s.MaxInstallments < 1 {
			return fmt.Errorf("max installments must be >= 1, got %d", s.MaxInstallments)
		}
		for key, pct := range s.InstallmentFees {
			n, err := strconv.Atoi(key)
			if err != nil {
				return fmt.Errorf("installment fee key %q is not an integer", key)
			}
			if n < 2 || n > s.MaxInstallments {
				return fmt.Errorf("installment fee key %d outside [2, %d]", n, s.MaxInstallments)
			}
			if pct.IsNegative() {
				return fmt.Errorf("installment fee for %d installments must be non-negative", n)
			}
		}
	} else if len(s.InstallmentFees) > 0 {
		return fmt.Errorf("installment fees are only valid for credit_card")
	}
	return nil
}

// FeeQuote is the computed cost of a single charge.
type FeeQuote struct {
	FeeCents           int64 `json:"fee_cents"`            // merchant-side cost
	ChargedAmountCents int64 `json:"charged_amount_cents"` // what the buyer is billed
	ReleaseDays        int   `json:"release_days"`
}
