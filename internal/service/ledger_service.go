package service

import (
	"context"
	"fmt"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// LedgerServiceImpl implements ports.AttemptLedger. The ledger is strictly
// append-only; attempt numbers are assigned by the repository inside the
// caller's transaction so they stay contiguous under concurrency.
type LedgerServiceImpl struct {
	attemptRepo ports.AttemptRepository
	log         zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(attemptRepo ports.AttemptRepository, log zerolog.Logger) *LedgerServiceImpl {
	return &LedgerServiceImpl{attemptRepo: attemptRepo, log: log}
}

// Append writes one attempt row inside the given transaction and returns its
// assigned attempt number. A second success row for the same sale is refused.
func (s *LedgerServiceImpl) Append(ctx context.Context, tx pgx.Tx, attempt *domain.PaymentAttempt) (int, error) {
	if attempt.SaleID == uuid.Nil {
		return 0, apperror.Validation("attempt requires a sale id")
	}

	if attempt.Status == domain.AttemptStatusSuccess {
		hasSuccess, err := s.attemptRepo.HasSuccess(ctx, attempt.SaleID)
		if err != nil {
			return 0, apperror.InternalError(fmt.Errorf("check existing success: %w", err))
		}
		if hasSuccess {
			return 0, apperror.ErrConsistency(fmt.Sprintf("sale %s already has a successful attempt", attempt.SaleID))
		}
	}

	n, err := s.attemptRepo.Insert(ctx, tx, attempt)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("insert attempt: %w", err))
	}
	attempt.AttemptNumber = n

	s.log.Info().
		Str("sale_id", attempt.SaleID.String()).
		Str("gateway", string(attempt.Gateway)).
		Str("status", string(attempt.Status)).
		Int("attempt_number", n).
		Bool("is_fallback", attempt.IsFallback).
		Msg("attempt recorded")

	return n, nil
}

// ListBySale returns all attempts for a sale ordered by attempt number.
func (s *LedgerServiceImpl) ListBySale(ctx context.Context, saleID uuid.UUID) ([]domain.PaymentAttempt, error) {
	attempts, err := s.attemptRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list attempts: %w", err))
	}
	return attempts, nil
}

// MaxAttemptNumber returns the highest attempt number for a sale, 0 when the
// sale has no attempts.
func (s *LedgerServiceImpl) MaxAttemptNumber(ctx context.Context, saleID uuid.UUID) (int, error) {
	n, err := s.attemptRepo.MaxAttemptNumber(ctx, saleID)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("max attempt number: %w", err))
	}
	return n, nil
}
