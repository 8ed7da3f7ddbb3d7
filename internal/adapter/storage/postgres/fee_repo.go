package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"payment-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// FeeScheduleRepo implements ports.FeeScheduleRepository. Percentages are
// stored as numeric and moved through text to keep exact decimal semantics;
// the installment table is a jsonb column.
type FeeScheduleRepo struct {
	pool Pool
}

// NewFeeScheduleRepo creates a new FeeScheduleRepo.
func NewFeeScheduleRepo(pool Pool) *FeeScheduleRepo {
	return &FeeScheduleRepo{pool: pool}
}

// GetByTenantAndMethod fetches a tenant's fee override for one method.
func (r *FeeScheduleRepo) GetByTenantAndMethod(ctx context.Context, tenantID uuid.UUID, method domain.PaymentMethod) (*domain.TenantFeeSchedule, error) {
	query := `SELECT id, tenant_id, method, fee_percentage::text, fee_fixed_cents, release_days, enabled,
		max_installments, installment_fees, installment_fee_passed_to_buyer, allow_save_card, updated_at
		FROM tenant_fee_schedules WHERE tenant_id = $1 AND method = $2`

	s := &domain.TenantFeeSchedule{}
	var pctText string
	var feesJSON []byte
	err := r.pool.QueryRow(ctx, query, tenantID, method).Scan(
		&s.ID, &s.TenantID, &s.Method, &pctText, &s.FeeFixedCents, &s.ReleaseDays, &s.Enabled,
		&s.MaxInstallments, &feesJSON, &s.InstallmentFeePassedToBuyer, &s.AllowSaveCard, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fee schedule: %w", err)
	}

	s.FeePercentage, err = decimal.NewFromString(pctText)
	if err != nil {
		return nil, fmt.Errorf("parse fee percentage %q: %w", pctText, err)
	}
	if len(feesJSON) > 0 {
		if err := json.Unmarshal(feesJSON, &s.InstallmentFees); err != nil {
			return nil, fmt.Errorf("parse installment fees: %w", err)
		}
	}
	return s, nil
}

// Upsert inserts or replaces a tenant's fee override for one method.
func (r *FeeScheduleRepo) Upsert(ctx context.Context, schedule *domain.TenantFeeSchedule) error {
	query := `INSERT INTO tenant_fee_schedules (id, tenant_id, method, fee_percentage, fee_fixed_cents, release_days, enabled,
		max_installments, installment_fees, installment_fee_passed_to_buyer, allow_save_card, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (tenant_id, method) DO UPDATE SET
			fee_percentage = EXCLUDED.fee_percentage,
			fee_fixed_cents = EXCLUDED.fee_fixed_cents,
			release_days = EXCLUDED.release_days,
			enabled = EXCLUDED.enabled,
			max_installments = EXCLUDED.max_installments,
			installment_fees = EXCLUDED.installment_fees,
			installment_fee_passed_to_buyer = EXCLUDED.installment_fee_passed_to_buyer,
			allow_save_card = EXCLUDED.allow_save_card,
			updated_at = EXCLUDED.updated_at`

	var feesJSON []byte
	if len(schedule.InstallmentFees) > 0 {
		var err error
		feesJSON, err = json.Marshal(schedule.InstallmentFees)
		if err != nil {
			return fmt.Errorf("marshal installment fees: %w", err)
		}
	}

	_, err := r.pool.Exec(ctx, query,
		schedule.ID, schedule.TenantID, schedule.Method, schedule.FeePercentage.String(),
		schedule.FeeFixedCents, schedule.ReleaseDays, schedule.Enabled,
		schedule.MaxInstallments, feesJSON, schedule.InstallmentFeePassedToBuyer,
		schedule.AllowSaveCard, schedule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert fee schedule: %w", err)
	}
	return nil
}
