package service

import (
	"context"
	"fmt"
	"time"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WebhookServiceImpl implements ports.WebhookService. Provider callbacks
// settle pending attempts: the matching initiation row is never mutated, a
// resolution row referencing it is appended instead. Replayed notifications
// are suppressed by a dedup key on (gateway, provider_tx_ref, status).
type WebhookServiceImpl struct {
	attemptRepo  ports.AttemptRepository
	saleRepo     ports.SaleRepository
	ledger       ports.AttemptLedger
	orchestrator ports.PaymentOrchestrator
	deduper      ports.WebhookDeduper
	locker       ports.SaleLocker
	transactor   ports.DBTransactor
	log          zerolog.Logger
}

// NewWebhookService creates a new WebhookServiceImpl.
func NewWebhookService(
	attemptRepo ports.AttemptRepository,
	saleRepo ports.SaleRepository,
	ledger ports.AttemptLedger,
	orchestrator ports.PaymentOrchestrator,
	deduper ports.WebhookDeduper,
	locker ports.SaleLocker,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *WebhookServiceImpl {
	return &WebhookServiceImpl{
		attemptRepo:  attemptRepo,
		saleRepo:     saleRepo,
		ledger:       ledger,
		orchestrator: orchestrator,
		deduper:      deduper,
		locker:       locker,
		transactor:   transactor,
		log:          log,
	}
}

// RecordWebhook applies one provider notification. A success settles the sale
// as paid; a failure settles the attempt and, when the chain still has
// capacity, resumes it on the remaining gateways.
func (s *WebhookServiceImpl) RecordWebhook(ctx context.Context, notice ports.WebhookNotice) (*ports.WebhookOutcome, error) {
	if notice.ProviderTxRef == "" {
		return nil, apperror.Validation("provider transaction reference is required")
	}
	if !validWebhookStatus(notice.Status) {
		return nil, apperror.Validation(fmt.Sprintf("unknown webhook status %q", notice.Status))
	}

	fresh, err := s.deduper.CheckAndSet(ctx, notice.Gateway, notice.ProviderTxRef, notice.Status)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("webhook dedup check: %w", err))
	}
	if !fresh {
		s.log.Info().
			Str("gateway", string(notice.Gateway)).
			Str("provider_tx_ref", notice.ProviderTxRef).
			Str("status", notice.Status).
			Msg("duplicate webhook suppressed")
		return &ports.WebhookOutcome{Duplicate: true}, nil
	}

	pending, err := s.attemptRepo.GetPendingByProviderRef(ctx, notice.Gateway, notice.ProviderTxRef)
	if err != nil {
		s.forget(notice)
		return nil, apperror.InternalError(fmt.Errorf("find pending attempt: %w", err))
	}
	if pending == nil {
		s.forget(notice)
		return nil, apperror.ErrNotFound("pending attempt")
	}

	token, acquired, err := s.locker.Acquire(ctx, pending.SaleID)
	if err != nil {
		s.forget(notice)
		return nil, apperror.InternalError(fmt.Errorf("acquire sale lock: %w", err))
	}
	if !acquired {
		s.forget(notice)
		return nil, apperror.ErrConcurrentRun(pending.SaleID.String())
	}

	resolution, saleStatus := s.buildResolution(pending, notice)
	if err := s.commitResolution(ctx, resolution, saleStatus); err != nil {
		s.releaseLock(pending.SaleID, token)
		s.forget(notice)
		return nil, err
	}

	outcome := &ports.WebhookOutcome{
		AttemptNumber: resolution.AttemptNumber,
		SaleStatus:    saleStatus,
	}

	s.log.Info().
		Str("sale_id", pending.SaleID.String()).
		Str("gateway", string(notice.Gateway)).
		Str("status", notice.Status).
		Int("resolves_attempt", pending.AttemptNumber).
		Msg("webhook applied")

	// A terminal failure may leave untried gateways in the chain. Resuming
	// needs the lock this handler holds, so release first.
	s.releaseLock(pending.SaleID, token)
	if notice.Status == ports.WebhookStatusFailed {
		resumed, err := s.orchestrator.ResumeChain(ctx, pending.SaleID)
		if err != nil && !apperror.IsRetryable(err) {
			s.log.Warn().Err(err).Str("sale_id", pending.SaleID.String()).Msg("chain resume failed")
		}
		if resumed != nil {
			outcome.Resumed = resumed
			outcome.SaleStatus = domain.SaleStatus(resumed.Status)
		}
	}

	return outcome, nil
}

// buildResolution derives the resolution ledger row and sale transition for
// a notification.
func (s *WebhookServiceImpl) buildResolution(pending *domain.PaymentAttempt, notice ports.WebhookNotice) (*domain.PaymentAttempt, domain.SaleStatus) {
	resolves := pending.AttemptNumber
	row := &domain.PaymentAttempt{
		ID:              uuid.New(),
		SaleID:          pending.SaleID,
		Gateway:         pending.Gateway,
		Method:          pending.Method,
		AmountCents:     pending.AmountCents,
		IsFallback:      pending.IsFallback,
		ProviderTxRef:   pending.ProviderTxRef,
		ResolvesAttempt: &resolves,
		CreatedAt:       time.Now().UTC(),
	}

	switch notice.Status {
	case ports.WebhookStatusSuccess:
		row.Status = domain.AttemptStatusSuccess
		return row, domain.SaleStatusPaid
	case ports.WebhookStatusAnalyzing:
		row.Status = domain.AttemptStatusPending
		return row, domain.SaleStatusAnalyzing
	default: // failed
		row.Status = domain.AttemptStatusFailed
		row.ErrorCode = notice.ErrorCode
		row.ErrorMessage = notice.ErrorMessage
		return row, domain.SaleStatusFailed
	}
}

// commitResolution writes the resolution row and sale transition atomically.
func (s *WebhookServiceImpl) commitResolution(ctx context.Context, row *domain.PaymentAttempt, saleStatus domain.SaleStatus) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	n, err := s.ledger.Append(ctx, dbTx, row)
	if err != nil {
		return err
	}
	row.AttemptNumber = n
	if err := s.saleRepo.UpdateStatus(ctx, dbTx, row.SaleID, saleStatus); err != nil {
		return apperror.InternalError(fmt.Errorf("update sale status: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// forget drops the dedup mark when a delivery failed to apply, so the
// provider's retry is processed instead of suppressed as a duplicate.
func (s *WebhookServiceImpl) forget(notice ports.WebhookNotice) {
	if err := s.deduper.Forget(context.Background(), notice.Gateway, notice.ProviderTxRef, notice.Status); err != nil {
		s.log.Warn().Err(err).
			Str("gateway", string(notice.Gateway)).
			Str("provider_tx_ref", notice.ProviderTxRef).
			Str("status", notice.Status).
			Msg("failed to clear webhook dedup mark")
	}
}

func (s *WebhookServiceImpl) releaseLock(saleID uuid.UUID, token string) {
	if err := s.locker.Release(context.Background(), saleID, token); err != nil {
		s.log.Warn().Err(err).Str("sale_id", saleID.String()).Msg("failed to release sale lock")
	}
}

func validWebhookStatus(status string) bool {
	switch status {
	case ports.WebhookStatusSuccess, ports.WebhookStatusFailed, ports.WebhookStatusAnalyzing:
		return true
	}
	return false
}
