package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payment-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaleRepo implements ports.SaleRepository.
type SaleRepo struct {
	pool Pool
}

// NewSaleRepo creates a new SaleRepo.
func NewSaleRepo(pool Pool) *SaleRepo {
	return &SaleRepo{pool: pool}
}

// Create inserts a new sale.
func (r *SaleRepo) Create(ctx context.Context, sale *domain.Sale) error {
	query := `INSERT INTO sales (id, tenant_id, payment_method, amount_cents, installments, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		sale.ID, sale.TenantID, sale.Method, sale.AmountCents,
		sale.Installments, sale.Status, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID fetches a sale by its UUID.
func (r *SaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	query := `SELECT id, tenant_id, payment_method, amount_cents, installments, status, created_at, updated_at
		FROM sales WHERE id = $1`

	s := &domain.Sale{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.TenantID, &s.Method, &s.AmountCents,
		&s.Installments, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale by id: %w", err)
	}
	return s, nil
}

// UpdateStatus updates a sale's status within a database transaction.
func (r *SaleRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.SaleStatus) error {
	query := `UPDATE sales SET status = $1, updated_at = $2 WHERE id = $3`

	tag, err := tx.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sale not found: %s", id)
	}
	return nil
}
