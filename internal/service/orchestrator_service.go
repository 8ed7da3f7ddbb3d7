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

// OrchestratorServiceImpl implements ports.PaymentOrchestrator. One run holds
// the per-sale lock for its whole duration, works from a routing snapshot
// taken at chain start, and records every gateway interaction as an
// append-only ledger row committed atomically with the sale status change.
type OrchestratorServiceImpl struct {
	saleRepo       ports.SaleRepository
	ledger         ports.AttemptLedger
	resolver       ports.PolicyResolver
	feeCalc        ports.FeeCalculator
	clients        ports.GatewayClientFactory
	locker         ports.SaleLocker
	transactor     ports.DBTransactor
	attemptTimeout time.Duration
	log            zerolog.Logger
}

// NewOrchestratorService creates a new OrchestratorServiceImpl.
func NewOrchestratorService(
	saleRepo ports.SaleRepository,
	ledger ports.AttemptLedger,
	resolver ports.PolicyResolver,
	feeCalc ports.FeeCalculator,
	clients ports.GatewayClientFactory,
	locker ports.SaleLocker,
	transactor ports.DBTransactor,
	attemptTimeout time.Duration,
	log zerolog.Logger,
) *OrchestratorServiceImpl {
	return &OrchestratorServiceImpl{
		saleRepo:       saleRepo,
		ledger:         ledger,
		resolver:       resolver,
		feeCalc:        feeCalc,
		clients:        clients,
		locker:         locker,
		transactor:     transactor,
		attemptTimeout: attemptTimeout,
		log:            log,
	}
}

// Charge starts a new fallback chain for the sale. The first attempt goes to
// the primary gateway; each subsequent attempt is a fallback. The chain stops
// on success, on an asynchronous outcome, on a malformed-request rejection,
// or when the snapshot's attempt cap is exhausted.
func (s *OrchestratorServiceImpl) Charge(ctx context.Context, req ports.ChargeRequest) (*ports.OrchestrationResult, error) {
	if err := validateChargeRequest(req); err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.GetByID(ctx, req.SaleID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load sale: %w", err))
	}
	if sale == nil {
		return nil, apperror.ErrNotFound("sale")
	}
	if !sale.Chargeable() {
		return nil, apperror.Validation(fmt.Sprintf("sale %s is %s and cannot be charged", sale.ID, sale.Status))
	}

	token, acquired, err := s.locker.Acquire(ctx, sale.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("acquire sale lock: %w", err))
	}
	if !acquired {
		return nil, apperror.ErrConcurrentRun(sale.ID.String())
	}
	defer s.release(sale.ID, token)

	route, err := s.resolver.Resolve(ctx, req.Method)
	if err != nil {
		return nil, err
	}

	if err := s.updateSaleStatus(ctx, sale.ID, domain.SaleStatusProcessing); err != nil {
		return nil, err
	}

	return s.runChain(ctx, sale, req, route.Candidates, false)
}

// ResumeChain continues the current chain after a webhook turned a pending
// attempt into a terminal failure. Gateways the chain already tried are
// skipped and remaining capacity is honored; every resumed attempt is a
// fallback. With no capacity or no untried gateway left the sale stays failed.
func (s *OrchestratorServiceImpl) ResumeChain(ctx context.Context, saleID uuid.UUID) (*ports.OrchestrationResult, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load sale: %w", err))
	}
	if sale == nil {
		return nil, apperror.ErrNotFound("sale")
	}
	if sale.Status != domain.SaleStatusFailed {
		return nil, apperror.Validation(fmt.Sprintf("sale %s is %s, only failed sales resume", sale.ID, sale.Status))
	}

	attempts, err := s.ledger.ListBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	chain := domain.CurrentChain(attempts)
	if len(chain) == 0 {
		return nil, apperror.Validation(fmt.Sprintf("sale %s has no chain to resume", saleID))
	}

	token, acquired, err := s.locker.Acquire(ctx, saleID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("acquire sale lock: %w", err))
	}
	if !acquired {
		return nil, apperror.ErrConcurrentRun(saleID.String())
	}
	defer s.release(saleID, token)

	route, err := s.resolver.Resolve(ctx, sale.Method)
	if err != nil {
		return nil, err
	}

	capacity := route.MaxAttempts - len(chain)
	tried := make(map[domain.ProviderType]bool, len(chain))
	for _, a := range chain {
		tried[a.Gateway] = true
	}
	var remaining []domain.GatewayConfig
	for _, gw := range route.Candidates {
		if !tried[gw.Provider] {
			remaining = append(remaining, gw)
		}
	}
	if capacity <= 0 || len(remaining) == 0 {
		s.log.Info().
			Str("sale_id", saleID.String()).
			Int("capacity", capacity).
			Int("untried", len(remaining)).
			Msg("chain exhausted, nothing to resume")
		return &ports.OrchestrationResult{SaleID: saleID, Status: ports.OrchestrationFailed}, nil
	}
	if len(remaining) > capacity {
		remaining = remaining[:capacity]
	}

	req := ports.ChargeRequest{
		SaleID:       sale.ID,
		Method:       sale.Method,
		AmountCents:  sale.AmountCents,
		Installments: sale.Installments,
	}

	if err := s.updateSaleStatus(ctx, saleID, domain.SaleStatusProcessing); err != nil {
		return nil, err
	}

	return s.runChain(ctx, sale, req, remaining, true)
}

// runChain walks the candidate list until a stopping outcome.
func (s *OrchestratorServiceImpl) runChain(
	ctx context.Context,
	sale *domain.Sale,
	req ports.ChargeRequest,
	candidates []domain.GatewayConfig,
	resumed bool,
) (*ports.OrchestrationResult, error) {
	result := &ports.OrchestrationResult{SaleID: sale.ID}
	var lastErr error

	for i, gw := range candidates {
		if i > 0 {
			// The sale may have been closed externally (e.g. refunded)
			// between attempts.
			current, err := s.saleRepo.GetByID(ctx, sale.ID)
			if err != nil {
				return nil, apperror.InternalError(fmt.Errorf("recheck sale: %w", err))
			}
			if current != nil && current.Status.IsTerminal() {
				s.log.Warn().
					Str("sale_id", sale.ID.String()).
					Str("status", string(current.Status)).
					Msg("sale closed externally, aborting chain")
				result.Status = ports.OrchestrationAborted
				return result, nil
			}
		}

		// The buyer is billed the quoted amount, not the raw sale amount:
		// an installment surcharge passed to the buyer raises it.
		quote, err := s.feeCalc.ComputeFee(ctx, sale.TenantID, req.Method, req.AmountCents, req.Installments)
		if err != nil {
			return nil, err
		}

		attempt := &domain.PaymentAttempt{
			ID:          uuid.New(),
			SaleID:      sale.ID,
			Gateway:     gw.Provider,
			Method:      req.Method,
			AmountCents: quote.ChargedAmountCents,
			IsFallback:  resumed || i > 0,
			CreatedAt:   time.Now().UTC(),
		}

		resp, callErr := s.callGateway(ctx, gw, sale, req, quote.ChargedAmountCents)
		outcome := classify(string(gw.Provider), resp, callErr)

		attempt.Status = outcome.attemptStatus
		attempt.ErrorCode = outcome.errorCode
		attempt.ErrorMessage = outcome.errorMessage
		if resp != nil {
			attempt.ProviderTxRef = resp.ProviderTxRef
		}

		if err := s.commitAttempt(ctx, attempt, outcome.saleStatus); err != nil {
			return nil, err
		}
		result.AttemptsMade++
		result.LastAttempt = attempt

		s.log.Info().
			Str("sale_id", sale.ID.String()).
			Str("gateway", string(gw.Provider)).
			Str("outcome", string(outcome.attemptStatus)).
			Str("error_code", outcome.errorCode).
			Int("attempt_number", attempt.AttemptNumber).
			Msg("gateway attempt finished")

		switch {
		case outcome.stop:
			result.Status = outcome.runStatus
			return result, outcome.stopErr
		default:
			lastErr = outcome.stopErr
		}
	}

	// Chain exhausted without success.
	if err := s.updateSaleStatus(ctx, sale.ID, domain.SaleStatusFailed); err != nil {
		return nil, err
	}
	result.Status = ports.OrchestrationFailed
	if lastErr == nil {
		lastErr = apperror.InternalError(fmt.Errorf("chain for sale %s ended with no recorded outcome", sale.ID))
	}
	return result, lastErr
}

// callGateway invokes one provider under the per-attempt time budget.
func (s *OrchestratorServiceImpl) callGateway(ctx context.Context, gw domain.GatewayConfig, sale *domain.Sale, req ports.ChargeRequest, chargedCents int64) (*ports.GatewayChargeResponse, error) {
	client, err := s.clients.ClientFor(gw)
	if err != nil {
		return nil, fmt.Errorf("build client for %s: %w", gw.Provider, err)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
	defer cancel()
	return client.Charge(attemptCtx, ports.GatewayChargeRequest{
		SaleID:       req.SaleID,
		TenantID:     sale.TenantID,
		Method:       req.Method,
		AmountCents:  chargedCents,
		Installments: req.Installments,
	})
}

// chainOutcome is the classified result of one gateway call.
type chainOutcome struct {
	attemptStatus domain.AttemptStatus
	errorCode     string
	errorMessage  string
	saleStatus    domain.SaleStatus   // "" means leave the sale untouched
	stop          bool                // terminal for the chain
	runStatus     ports.OrchestrationStatus
	stopErr       error
}

// classify maps a provider response (or transport error) to its ledger row,
// sale transition, and chain control decision. Transport failures and
// timeouts are transient: record and advance. Declines advance too. A
// rejection means the request itself is bad; trying another gateway cannot
// help, so the chain stops.
func classify(gateway string, resp *ports.GatewayChargeResponse, callErr error) chainOutcome {
	if callErr != nil {
		return chainOutcome{
			attemptStatus: domain.AttemptStatusFailed,
			errorCode:     apperror.CodeTransientGateway,
			errorMessage:  callErr.Error(),
			stopErr:       apperror.ErrTransientGateway(gateway, callErr),
		}
	}

	switch resp.Outcome {
	case ports.GatewayOutcomeApproved:
		return chainOutcome{
			attemptStatus: domain.AttemptStatusSuccess,
			saleStatus:    domain.SaleStatusPaid,
			stop:          true,
			runStatus:     ports.OrchestrationPaid,
		}
	case ports.GatewayOutcomePending:
		return chainOutcome{
			attemptStatus: domain.AttemptStatusPending,
			stop:          true,
			runStatus:     ports.OrchestrationPending,
		}
	case ports.GatewayOutcomeInAnalysis:
		return chainOutcome{
			attemptStatus: domain.AttemptStatusPending,
			saleStatus:    domain.SaleStatusAnalyzing,
			stop:          true,
			runStatus:     ports.OrchestrationAnalyzing,
		}
	case ports.GatewayOutcomeDeclined:
		return chainOutcome{
			attemptStatus: domain.AttemptStatusFailed,
			errorCode:     resp.ErrorCode,
			errorMessage:  resp.DeclineReason,
			stopErr:       apperror.ErrPermanentDecline(gateway, resp.DeclineReason),
		}
	case ports.GatewayOutcomeRejected:
		return chainOutcome{
			attemptStatus: domain.AttemptStatusFailed,
			errorCode:     resp.ErrorCode,
			errorMessage:  resp.DeclineReason,
			saleStatus:    domain.SaleStatusFailed,
			stop:          true,
			runStatus:     ports.OrchestrationFailed,
			stopErr:       apperror.Validation(fmt.Sprintf("gateway rejected request: %s", resp.DeclineReason)),
		}
	default:
		return chainOutcome{
			attemptStatus: domain.AttemptStatusFailed,
			errorCode:     apperror.CodeTransientGateway,
			errorMessage:  fmt.Sprintf("unrecognized gateway outcome %q", resp.Outcome),
			stopErr:       apperror.ErrTransientGateway(gateway, fmt.Errorf("unrecognized outcome %q", resp.Outcome)),
		}
	}
}

// commitAttempt writes the ledger row and optional sale transition in one
// database transaction.
func (s *OrchestratorServiceImpl) commitAttempt(ctx context.Context, attempt *domain.PaymentAttempt, saleStatus domain.SaleStatus) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	n, err := s.ledger.Append(ctx, dbTx, attempt)
	if err != nil {
		return err
	}
	attempt.AttemptNumber = n
	if saleStatus != "" {
		if err := s.saleRepo.UpdateStatus(ctx, dbTx, attempt.SaleID, saleStatus); err != nil {
			return apperror.InternalError(fmt.Errorf("update sale status: %w", err))
		}
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// updateSaleStatus applies a standalone sale transition.
func (s *OrchestratorServiceImpl) updateSaleStatus(ctx context.Context, saleID uuid.UUID, status domain.SaleStatus) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.saleRepo.UpdateStatus(ctx, dbTx, saleID, status); err != nil {
		return apperror.InternalError(fmt.Errorf("update sale status: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// release drops the per-sale lock at the end of a run. Expiry via TTL covers
// the failure path, so a release error is only logged.
func (s *OrchestratorServiceImpl) release(saleID uuid.UUID, token string) {
	if err := s.locker.Release(context.Background(), saleID, token); err != nil {
		s.log.Warn().Err(err).Str("sale_id", saleID.String()).Msg("failed to release sale lock")
	}
}

func validateChargeRequest(req ports.ChargeRequest) error {
	if req.SaleID == uuid.Nil {
		return apperror.Validation("sale id is required")
	}
	if !req.Method.IsValid() {
		return apperror.Validation(fmt.Sprintf("unknown payment method %q", req.Method))
	}
	if req.AmountCents <= 0 {
		return apperror.Validation(fmt.Sprintf("amount must be positive, got %d", req.AmountCents))
	}
	if req.Installments < 1 {
		return apperror.Validation(fmt.Sprintf("installments must be >= 1, got %d", req.Installments))
	}
	if req.Installments > 1 && !req.Method.SupportsInstallments() {
		return apperror.Validation(fmt.Sprintf("method %s does not support installments", req.Method))
	}
	return nil
}
