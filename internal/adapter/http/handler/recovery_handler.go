package handler

import (
	"time"

	"payment-orchestrator/internal/adapter/http/dto"
	"payment-orchestrator/internal/adapter/http/middleware"
	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/pkg/apperror"
	"payment-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RecoveryHandler handles manual recovery actions on stuck sales.
type RecoveryHandler struct {
	recoverySvc ports.RecoveryService
}

// NewRecoveryHandler creates a new RecoveryHandler.
func NewRecoveryHandler(recoverySvc ports.RecoveryService) *RecoveryHandler {
	return &RecoveryHandler{recoverySvc: recoverySvc}
}

// PerformAction handles POST /api/v1/sales/:id/actions.
func (h *RecoveryHandler) PerformAction(c *gin.Context) {
	operatorID, ok := c.Get(middleware.CtxOperatorID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid sale id"))
		return
	}

	var req dto.RecoveryActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.recoverySvc.PerformAction(c.Request.Context(), ports.ActionRequest{
		SaleID:      saleID,
		ActionType:  domain.AdminActionType(req.ActionType),
		PerformedBy: operatorID.(string),
		Notes:       req.Notes,
	})
	// A reprocess whose chain exhausted reports both the audit row and the
	// orchestrator's error code, like a direct charge does.
	if err != nil && result == nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toActionResultResponse(result, err))
}

// ListActions handles GET /api/v1/sales/:id/actions.
func (h *RecoveryHandler) ListActions(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid sale id"))
		return
	}

	actions, err := h.recoverySvc.ListActions(c.Request.Context(), saleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.ActionResponse, 0, len(actions))
	for i := range actions {
		items = append(items, *toActionResponse(&actions[i]))
	}
	response.OK(c, items)
}

func toActionResponse(a *domain.AdminAction) *dto.ActionResponse {
	if a == nil {
		return nil
	}
	return &dto.ActionResponse{
		ID:           a.ID.String(),
		SaleID:       a.SaleID.String(),
		ActionType:   string(a.ActionType),
		PerformedBy:  a.PerformedBy,
		Notes:        a.Notes,
		ResultStatus: string(a.ResultStatus),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}

func toActionResultResponse(r *ports.ActionResult, err error) dto.ActionResultResponse {
	return dto.ActionResultResponse{
		Action:          toActionResponse(r.Action),
		AlreadyTerminal: r.AlreadyTerminal,
		Orchestration:   toOrchestrationResponse(r.Orchestration, err),
	}
}
