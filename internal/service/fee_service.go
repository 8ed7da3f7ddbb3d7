package service

import (
	"context"
	"fmt"

	"payment-orchestrator/config"
	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// FeeServiceImpl implements ports.FeeCalculator. Fees are computed from the
// tenant's stored schedule, falling back to platform defaults when the tenant
// has no override for the method.
type FeeServiceImpl struct {
	feeRepo  ports.FeeScheduleRepository
	defaults config.FeeDefaultsConfig
	log      zerolog.Logger
}

// NewFeeService creates a new FeeServiceImpl.
func NewFeeService(feeRepo ports.FeeScheduleRepository, defaults config.FeeDefaultsConfig, log zerolog.Logger) *FeeServiceImpl {
	return &FeeServiceImpl{feeRepo: feeRepo, defaults: defaults, log: log}
}

// ComputeFee computes the merchant fee and buyer charge for one sale.
//
// The base fee is round-half-up(amount * percentage / 100) + fixed, in cents.
// Card charges with installments >= 2 add an installment surcharge from the
// schedule's per-count table; a missing count means no surcharge. When the
// schedule passes the installment fee to the buyer, the surcharge raises the
// charged amount instead of the merchant fee.
func (s *FeeServiceImpl) ComputeFee(ctx context.Context, tenantID uuid.UUID, method domain.PaymentMethod, amountCents int64, installments int) (*domain.FeeQuote, error) {
	if amountCents <= 0 {
		return nil, apperror.Validation(fmt.Sprintf("amount must be positive, got %d", amountCents))
	}
	if installments < 1 {
		return nil, apperror.Validation(fmt.Sprintf("installments must be >= 1, got %d", installments))
	}
	if installments > 1 && !method.SupportsInstallments() {
		return nil, apperror.Validation(fmt.Sprintf("method %s does not support installments", method))
	}

	sched, err := s.scheduleFor(ctx, tenantID, method)
	if err != nil {
		return nil, err
	}
	if !sched.Enabled {
		return nil, apperror.Validation(fmt.Sprintf("method %s is disabled for this tenant", method))
	}
	if method == domain.MethodCreditCard && installments > sched.MaxInstallments {
		return nil, apperror.Validation(fmt.Sprintf("installments %d exceed maximum %d", installments, sched.MaxInstallments))
	}

	amount := decimal.NewFromInt(amountCents)
	feeCents := roundHalfUpCents(amount.Mul(sched.FeePercentage).Div(oneHundred)) + sched.FeeFixedCents

	chargedCents := amountCents
	if method == domain.MethodCreditCard && installments >= 2 {
		surcharge := roundHalfUpCents(amount.Mul(sched.InstallmentFees.PercentageFor(installments)).Div(oneHundred))
		if sched.InstallmentFeePassedToBuyer {
			chargedCents += surcharge
		} else {
			feeCents += surcharge
		}
	}

	return &domain.FeeQuote{
		FeeCents:           feeCents,
		ChargedAmountCents: chargedCents,
		ReleaseDays:        sched.ReleaseDays,
	}, nil
}

// scheduleFor returns the tenant override or a synthetic schedule built from
// platform defaults.
func (s *FeeServiceImpl) scheduleFor(ctx context.Context, tenantID uuid.UUID, method domain.PaymentMethod) (*domain.TenantFeeSchedule, error) {
	sched, err := s.feeRepo.GetByTenantAndMethod(ctx, tenantID, method)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load fee schedule: %w", err))
	}
	if sched != nil {
		return sched, nil
	}

	var d config.MethodFeeDefaults
	switch method {
	case domain.MethodPix:
		d = s.defaults.Pix
	case domain.MethodCreditCard:
		d = s.defaults.CreditCard
	case domain.MethodBoleto:
		d = s.defaults.Boleto
	default:
		return nil, apperror.Validation(fmt.Sprintf("unknown payment method %q", method))
	}

	return &domain.TenantFeeSchedule{
		TenantID:        tenantID,
		Method:          method,
		FeePercentage:   decimal.NewFromFloat(d.Percentage),
		FeeFixedCents:   d.FixedCents,
		ReleaseDays:     d.ReleaseDays,
		Enabled:         true,
		MaxInstallments: d.MaxInstallments,
	}, nil
}

// roundHalfUpCents rounds a decimal cent value to the nearest integer cent,
// ties away from zero.
func roundHalfUpCents(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
