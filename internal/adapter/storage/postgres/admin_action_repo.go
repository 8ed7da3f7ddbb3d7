package postgres

import (
	"context"
	"fmt"
	"time"

	"payment-orchestrator/internal/core/domain"

	"github.com/google/uuid"
)

// AdminActionRepo implements ports.AdminActionRepository.
type AdminActionRepo struct {
	pool Pool
}

// NewAdminActionRepo creates a new AdminActionRepo.
func NewAdminActionRepo(pool Pool) *AdminActionRepo {
	return &AdminActionRepo{pool: pool}
}

// Create inserts a new admin action audit row.
func (r *AdminActionRepo) Create(ctx context.Context, action *domain.AdminAction) error {
	if action.ID == uuid.Nil {
		action.ID = uuid.New()
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now()
	}

	query := `INSERT INTO admin_actions (id, sale_id, action_type, performed_by, notes, result_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		action.ID, action.SaleID, action.ActionType, action.PerformedBy,
		action.Notes, action.ResultStatus, action.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert admin action: %w", err)
	}
	return nil
}

// ListBySale fetches the audit trail for a sale, newest first.
func (r *AdminActionRepo) ListBySale(ctx context.Context, saleID uuid.UUID) ([]domain.AdminAction, error) {
	query := `SELECT id, sale_id, action_type, performed_by, notes, result_status, created_at
		FROM admin_actions WHERE sale_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list admin actions: %w", err)
	}
	defer rows.Close()

	var actions []domain.AdminAction
	for rows.Next() {
		a := domain.AdminAction{}
		err := rows.Scan(&a.ID, &a.SaleID, &a.ActionType, &a.PerformedBy, &a.Notes, &a.ResultStatus, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan admin action row: %w", err)
		}
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admin action rows: %w", err)
	}
	return actions, nil
}
