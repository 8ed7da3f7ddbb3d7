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

// RecoveryServiceImpl implements ports.RecoveryService, the single entry
// point for human intervention on stuck sales. Every call writes exactly one
// audit row, whatever the outcome. Actions on sales that already reached a
// terminal state are idempotent no-ops.
type RecoveryServiceImpl struct {
	saleRepo     ports.SaleRepository
	adminRepo    ports.AdminActionRepository
	ledger       ports.AttemptLedger
	orchestrator ports.PaymentOrchestrator
	locker       ports.SaleLocker
	transactor   ports.DBTransactor
	log          zerolog.Logger
}

// NewRecoveryService creates a new RecoveryServiceImpl.
func NewRecoveryService(
	saleRepo ports.SaleRepository,
	adminRepo ports.AdminActionRepository,
	ledger ports.AttemptLedger,
	orchestrator ports.PaymentOrchestrator,
	locker ports.SaleLocker,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *RecoveryServiceImpl {
	return &RecoveryServiceImpl{
		saleRepo:     saleRepo,
		adminRepo:    adminRepo,
		ledger:       ledger,
		orchestrator: orchestrator,
		locker:       locker,
		transactor:   transactor,
		log:          log,
	}
}

// PerformAction executes one recovery action against a sale.
func (s *RecoveryServiceImpl) PerformAction(ctx context.Context, req ports.ActionRequest) (*ports.ActionResult, error) {
	if !req.ActionType.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown action type %q", req.ActionType))
	}
	if req.PerformedBy == "" {
		return nil, apperror.Validation("performed_by is required")
	}

	sale, err := s.saleRepo.GetByID(ctx, req.SaleID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load sale: %w", err))
	}
	if sale == nil {
		return nil, apperror.ErrNotFound("sale")
	}

	if sale.Status.IsTerminal() {
		action := s.recordAction(ctx, req, domain.ActionResultNoop)
		return &ports.ActionResult{Action: action, AlreadyTerminal: true}, nil
	}

	switch req.ActionType {
	case domain.ActionReprocess:
		return s.reprocess(ctx, sale, req)
	case domain.ActionReleaseAntifraud:
		return s.releaseAntifraud(ctx, sale, req)
	default:
		return s.manualCapture(ctx, sale, req)
	}
}

// ListActions returns the audit trail for a sale, newest first.
func (s *RecoveryServiceImpl) ListActions(ctx context.Context, saleID uuid.UUID) ([]domain.AdminAction, error) {
	actions, err := s.adminRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list admin actions: %w", err))
	}
	return actions, nil
}

// reprocess starts a fresh fallback chain for a failed sale.
func (s *RecoveryServiceImpl) reprocess(ctx context.Context, sale *domain.Sale, req ports.ActionRequest) (*ports.ActionResult, error) {
	if sale.Status != domain.SaleStatusFailed {
		s.recordAction(ctx, req, domain.ActionResultFailed)
		return nil, apperror.ErrInvalidActionState(string(req.ActionType), string(sale.Status))
	}

	result, err := s.orchestrator.Charge(ctx, ports.ChargeRequest{
		SaleID:       sale.ID,
		Method:       sale.Method,
		AmountCents:  sale.AmountCents,
		Installments: sale.Installments,
	})
	if err != nil {
		// An exhausted or refused chain is a failed action, and the
		// orchestrator's error is the caller's to see.
		action := s.recordAction(ctx, req, domain.ActionResultFailed)
		if result == nil {
			return nil, err
		}
		return &ports.ActionResult{Action: action, Orchestration: result}, err
	}

	action := s.recordAction(ctx, req, domain.ActionResultSuccess)
	return &ports.ActionResult{Action: action, Orchestration: result}, nil
}

// releaseAntifraud confirms a sale held in provider analysis, settling the
// pending attempt as a success.
func (s *RecoveryServiceImpl) releaseAntifraud(ctx context.Context, sale *domain.Sale, req ports.ActionRequest) (*ports.ActionResult, error) {
	if sale.Status != domain.SaleStatusAnalyzing {
		s.recordAction(ctx, req, domain.ActionResultFailed)
		return nil, apperror.ErrInvalidActionState(string(req.ActionType), string(sale.Status))
	}

	token, acquired, err := s.locker.Acquire(ctx, sale.ID)
	if err != nil {
		s.recordAction(ctx, req, domain.ActionResultFailed)
		return nil, apperror.InternalError(fmt.Errorf("acquire sale lock: %w", err))
	}
	if !acquired {
		s.recordAction(ctx, req, domain.ActionResultFailed)
		return nil, apperror.ErrConcurrentRun(sale.ID.String())
	}
	defer s.releaseLock(sale.ID, token)

	attempts, err := s.ledger.ListBySale(ctx, sale.ID)
	if err != nil {
		s.recordAction(ctx, req, domain.ActionResultFailed)
		return nil, err
	}
	pending := lastUnresolvedPending(attempts)
	if pending == nil {
		s.recordAction(ctx, req, domain.ActionResultFailed)
		return nil, apperror.ErrConsistency(fmt.Sprintf("sale %s is analyzing with no pending attempt", sale.ID))
	}

	resolves := pending.AttemptNumber
	row := &domain.PaymentAttempt{
		ID:              uuid.New(),
		SaleID:          sale.ID,
		Gateway:         pending.Gateway,
		Method:          pending.Method,
		AmountCents:     pending.AmountCents,
		Status:          domain.AttemptStatusSuccess,
		IsFallback:      pending.IsFallback,
		ProviderTxRef:   pending.ProviderTxRef,
		ResolvesAttempt: &resolves,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.commitAttemptAndStatus(ctx, row, domain.SaleStatusPaid); err != nil {
		s.recordAction(ctx, req, domain.ActionResultFailed)
		return nil, err
	}

	action := s.recordAction(ctx, req, domain.ActionResultSuccess)
	return &ports.ActionResult{Action: action}, nil
}

// manualCapture records an out-of-band settlement (e.g. a boleto paid at a
// bank counter) as a manual success attempt and marks the sale paid.
func (s *RecoveryServiceImpl) manualCapture(ctx context.Context, sale *domain.Sale, req ports.ActionRequest) (*ports.ActionResult, error) {
	if sale.Status != domain.SaleStatusPending && sale.Status != domain.SaleStatusFailed {
		s.recordAction(ctx, req, domain.ActionResultFailed)
		return nil, apperror.ErrInvalidActionState(string(req.ActionType), string(sale.Status))
	}

	token, acquired, err := s.locker.Acquire(ctx, sale.ID)
	if err != nil {
		s.recordAction(ctx, req, domain.ActionResultFailed)
		return nil, apperror.InternalError(fmt.Errorf("acquire sale lock: %w", err))
	}
	if !acquired {
		s.recordAction(ctx, req, domain.ActionResultFailed)
		return nil, apperror.ErrConcurrentRun(sale.ID.String())
	}
	defer s.releaseLock(sale.ID, token)

	row := &domain.PaymentAttempt{
		ID:          uuid.New(),
		SaleID:      sale.ID,
		Gateway:     domain.ProviderManual,
		Method:      sale.Method,
		AmountCents: sale.AmountCents,
		Status:      domain.AttemptStatusSuccess,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.commitAttemptAndStatus(ctx, row, domain.SaleStatusPaid); err != nil {
		s.recordAction(ctx, req, domain.ActionResultFailed)
		return nil, err
	}

	action := s.recordAction(ctx, req, domain.ActionResultSuccess)
	return &ports.ActionResult{Action: action}, nil
}

// commitAttemptAndStatus writes a ledger row and sale transition atomically.
func (s *RecoveryServiceImpl) commitAttemptAndStatus(ctx context.Context, row *domain.PaymentAttempt, status domain.SaleStatus) error {
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
	if err := s.saleRepo.UpdateStatus(ctx, dbTx, row.SaleID, status); err != nil {
		return apperror.InternalError(fmt.Errorf("update sale status: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// recordAction writes the audit row for a call. Audit must not mask the
// action's own outcome, so a write failure is logged and swallowed.
func (s *RecoveryServiceImpl) recordAction(ctx context.Context, req ports.ActionRequest, status domain.ActionResultStatus) *domain.AdminAction {
	action := &domain.AdminAction{
		ID:           uuid.New(),
		SaleID:       req.SaleID,
		ActionType:   req.ActionType,
		PerformedBy:  req.PerformedBy,
		Notes:        req.Notes,
		ResultStatus: status,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.adminRepo.Create(ctx, action); err != nil {
		s.log.Error().Err(err).
			Str("sale_id", req.SaleID.String()).
			Str("action", string(req.ActionType)).
			Msg("failed to record admin action")
	}

	s.log.Info().
		Str("sale_id", req.SaleID.String()).
		Str("action", string(req.ActionType)).
		Str("performed_by", req.PerformedBy).
		Str("result", string(status)).
		Msg("recovery action recorded")

	return action
}

func (s *RecoveryServiceImpl) releaseLock(saleID uuid.UUID, token string) {
	if err := s.locker.Release(context.Background(), saleID, token); err != nil {
		s.log.Warn().Err(err).Str("sale_id", saleID.String()).Msg("failed to release sale lock")
	}
}

// lastUnresolvedPending returns the most recent pending initiation attempt
// that no later row resolves.
func lastUnresolvedPending(attempts []domain.PaymentAttempt) *domain.PaymentAttempt {
	resolved := make(map[int]bool)
	for _, a := range attempts {
		if a.ResolvesAttempt != nil {
			resolved[*a.ResolvesAttempt] = true
		}
	}
	for i := len(attempts) - 1; i >= 0; i-- {
		a := attempts[i]
		if a.IsInitiation() && a.Status == domain.AttemptStatusPending && !resolved[a.AttemptNumber] {
			return &a
		}
	}
	return nil
}
