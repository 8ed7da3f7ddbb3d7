package handler

import (
	"time"

	"payment-orchestrator/internal/adapter/http/dto"
	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/pkg/apperror"
	"payment-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrchestrationHandler handles sale registration, fee quotes, charges, and
// ledger queries.
type OrchestrationHandler struct {
	orchestrator ports.PaymentOrchestrator
	feeCalc      ports.FeeCalculator
	ledger       ports.AttemptLedger
	saleRepo     ports.SaleRepository
}

// NewOrchestrationHandler creates a new OrchestrationHandler.
func NewOrchestrationHandler(
	orchestrator ports.PaymentOrchestrator,
	feeCalc ports.FeeCalculator,
	ledger ports.AttemptLedger,
	saleRepo ports.SaleRepository,
) *OrchestrationHandler {
	return &OrchestrationHandler{
		orchestrator: orchestrator,
		feeCalc:      feeCalc,
		ledger:       ledger,
		saleRepo:     saleRepo,
	}
}

// CreateSale handles POST /api/v1/sales. The checkout subsystem registers the
// orchestration view of a sale here before charging it.
func (h *OrchestrationHandler) CreateSale(c *gin.Context) {
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	installments := req.Installments
	if installments == 0 {
		installments = 1
	}
	now := time.Now().UTC()
	sale := &domain.Sale{
		ID:           uuid.MustParse(req.SaleID),
		TenantID:     uuid.MustParse(req.TenantID),
		Method:       domain.PaymentMethod(req.Method),
		AmountCents:  req.AmountCents,
		Installments: installments,
		Status:       domain.SaleStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.saleRepo.Create(c.Request.Context(), sale); err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	response.Created(c, toSaleResponse(sale))
}

// GetSale handles GET /api/v1/sales/:id.
func (h *OrchestrationHandler) GetSale(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid sale id"))
		return
	}

	sale, err := h.saleRepo.GetByID(c.Request.Context(), saleID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if sale == nil {
		response.Error(c, apperror.ErrNotFound("sale"))
		return
	}

	response.OK(c, toSaleResponse(sale))
}

// Charge handles POST /api/v1/charges. It starts an orchestration chain for
// the sale. An exhausted chain still answers 200: the sale reached a final
// failed state and the body carries the last attempt's error code.
func (h *OrchestrationHandler) Charge(c *gin.Context) {
	var req dto.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	installments := req.Installments
	if installments == 0 {
		installments = 1
	}
	result, err := h.orchestrator.Charge(c.Request.Context(), ports.ChargeRequest{
		SaleID:       uuid.MustParse(req.SaleID),
		Method:       domain.PaymentMethod(req.Method),
		AmountCents:  req.AmountCents,
		Installments: installments,
	})
	if err != nil && result == nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toOrchestrationResponse(result, err))
}

// ComputeFee handles POST /api/v1/fees/quote.
func (h *OrchestrationHandler) ComputeFee(c *gin.Context) {
	var req dto.FeeQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	installments := req.Installments
	if installments == 0 {
		installments = 1
	}
	quote, err := h.feeCalc.ComputeFee(c.Request.Context(),
		uuid.MustParse(req.TenantID), domain.PaymentMethod(req.Method), req.AmountCents, installments)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FeeQuoteResponse{
		FeeCents:           quote.FeeCents,
		ChargedAmountCents: quote.ChargedAmountCents,
		ReleaseDays:        quote.ReleaseDays,
	})
}

// ListAttempts handles GET /api/v1/sales/:id/attempts.
func (h *OrchestrationHandler) ListAttempts(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid sale id"))
		return
	}

	attempts, err := h.ledger.ListBySale(c.Request.Context(), saleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.AttemptResponse, 0, len(attempts))
	for i := range attempts {
		items = append(items, *toAttemptResponse(&attempts[i]))
	}
	response.OK(c, items)
}

func toSaleResponse(s *domain.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:           s.ID.String(),
		TenantID:     s.TenantID.String(),
		Method:       string(s.Method),
		AmountCents:  s.AmountCents,
		Installments: s.Installments,
		Status:       string(s.Status),
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    s.UpdatedAt.Format(time.RFC3339),
	}
}

func toAttemptResponse(a *domain.PaymentAttempt) *dto.AttemptResponse {
	if a == nil {
		return nil
	}
	return &dto.AttemptResponse{
		SaleID:          a.SaleID.String(),
		Gateway:         string(a.Gateway),
		Method:          string(a.Method),
		AmountCents:     a.AmountCents,
		Status:          string(a.Status),
		ErrorCode:       a.ErrorCode,
		ErrorMessage:    a.ErrorMessage,
		IsFallback:      a.IsFallback,
		AttemptNumber:   a.AttemptNumber,
		ProviderTxRef:   a.ProviderTxRef,
		ResolvesAttempt: a.ResolvesAttempt,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
	}
}

func toOrchestrationResponse(r *ports.OrchestrationResult, err error) *dto.OrchestrationResponse {
	if r == nil {
		return nil
	}
	resp := &dto.OrchestrationResponse{
		SaleID:       r.SaleID.String(),
		Status:       string(r.Status),
		AttemptsMade: r.AttemptsMade,
		LastAttempt:  toAttemptResponse(r.LastAttempt),
	}
	if err != nil {
		resp.ErrorCode = apperror.CodeOf(err)
	}
	return resp
}
