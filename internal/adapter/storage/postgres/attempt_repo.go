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

// AttemptRepo implements ports.AttemptRepository. The ledger is append-only:
// rows are inserted and never updated or deleted.
type AttemptRepo struct {
	pool Pool
}

// NewAttemptRepo creates a new AttemptRepo.
func NewAttemptRepo(pool Pool) *AttemptRepo {
	return &AttemptRepo{pool: pool}
}

const attemptColumns = `id, sale_id, gateway, payment_method, amount_cents, status,
	error_code, error_message, is_fallback, attempt_number, provider_tx_ref, resolves_attempt, created_at`

// Insert writes one attempt row inside the caller's transaction. The
// attempt_number is assigned by the database as MAX+1 for the sale, which
// keeps numbers contiguous under the row lock the transaction holds.
func (r *AttemptRepo) Insert(ctx context.Context, tx pgx.Tx, attempt *domain.PaymentAttempt) (int, error) {
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now()
	}

	query := `INSERT INTO payment_attempts (id, sale_id, gateway, payment_method, amount_cents, status,
		error_code, error_message, is_fallback, attempt_number, provider_tx_ref, resolves_attempt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
			(SELECT COALESCE(MAX(attempt_number), 0) + 1 FROM payment_attempts WHERE sale_id = $2),
			$10, $11, $12)
		RETURNING attempt_number`

	var n int
	err := tx.QueryRow(ctx, query,
		attempt.ID, attempt.SaleID, attempt.Gateway, attempt.Method,
		attempt.AmountCents, attempt.Status, attempt.ErrorCode, attempt.ErrorMessage,
		attempt.IsFallback, attempt.ProviderTxRef, attempt.ResolvesAttempt, attempt.CreatedAt,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("insert attempt: %w", err)
	}
	return n, nil
}

// ListBySale fetches all attempts for a sale ordered by attempt number.
func (r *AttemptRepo) ListBySale(ctx context.Context, saleID uuid.UUID) ([]domain.PaymentAttempt, error) {
	query := fmt.Sprintf(`SELECT %s FROM payment_attempts WHERE sale_id = $1 ORDER BY attempt_number`, attemptColumns)

	rows, err := r.pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []domain.PaymentAttempt
	for rows.Next() {
		a := domain.PaymentAttempt{}
		if err := scanAttempt(rows, &a); err != nil {
			return nil, fmt.Errorf("scan attempt row: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempt rows: %w", err)
	}
	return attempts, nil
}

// MaxAttemptNumber returns the highest attempt number for a sale, 0 when the
// sale has no attempts.
func (r *AttemptRepo) MaxAttemptNumber(ctx context.Context, saleID uuid.UUID) (int, error) {
	query := `SELECT COALESCE(MAX(attempt_number), 0) FROM payment_attempts WHERE sale_id = $1`

	var n int
	if err := r.pool.QueryRow(ctx, query, saleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("max attempt number: %w", err)
	}
	return n, nil
}

// HasSuccess reports whether the sale already has a successful attempt.
func (r *AttemptRepo) HasSuccess(ctx context.Context, saleID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM payment_attempts WHERE sale_id = $1 AND status = 'success')`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, saleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check attempt success: %w", err)
	}
	return exists, nil
}

// GetPendingByProviderRef finds the pending initiation attempt a provider
// webhook refers to, excluding attempts a later resolution row has settled.
func (r *AttemptRepo) GetPendingByProviderRef(ctx context.Context, gateway domain.ProviderType, providerTxRef string) (*domain.PaymentAttempt, error) {
	query := fmt.Sprintf(`SELECT %s FROM payment_attempts a
		WHERE a.gateway = $1 AND a.provider_tx_ref = $2
			AND a.status = 'pending' AND a.resolves_attempt IS NULL
			AND NOT EXISTS (
				SELECT 1 FROM payment_attempts r
				WHERE r.sale_id = a.sale_id AND r.resolves_attempt = a.attempt_number
			)
		ORDER BY a.created_at DESC LIMIT 1`, prefixedAttemptColumns("a"))

	a := &domain.PaymentAttempt{}
	err := scanAttempt(r.pool.QueryRow(ctx, query, gateway, providerTxRef), a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pending attempt by provider ref: %w", err)
	}
	return a, nil
}

func scanAttempt(row pgx.Row, a *domain.PaymentAttempt) error {
	return row.Scan(
		&a.ID, &a.SaleID, &a.Gateway, &a.Method, &a.AmountCents, &a.Status,
		&a.ErrorCode, &a.ErrorMessage, &a.IsFallback, &a.AttemptNumber,
		&a.ProviderTxRef, &a.ResolvesAttempt, &a.CreatedAt,
	)
}

func prefixedAttemptColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.sale_id, %[1]s.gateway, %[1]s.payment_method, %[1]s.amount_cents, %[1]s.status,
		%[1]s.error_code, %[1]s.error_message, %[1]s.is_fallback, %[1]s.attempt_number, %[1]s.provider_tx_ref, %[1]s.resolves_attempt, %[1]s.created_at`, alias)
}
