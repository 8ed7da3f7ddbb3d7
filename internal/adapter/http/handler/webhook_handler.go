package handler

import (
	"payment-orchestrator/internal/adapter/http/dto"
	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/pkg/apperror"
	"payment-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
)

// WebhookHandler handles asynchronous provider notifications.
type WebhookHandler struct {
	webhookSvc ports.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(webhookSvc ports.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookSvc: webhookSvc}
}

// HandleWebhook handles POST /api/v1/webhooks/:gateway. Signature
// verification happens in middleware before this runs.
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	outcome, err := h.webhookSvc.RecordWebhook(c.Request.Context(), ports.WebhookNotice{
		Gateway:       domain.ProviderType(c.Param("gateway")),
		ProviderTxRef: req.TransactionID,
		Status:        req.Status,
		ErrorCode:     req.ErrorCode,
		ErrorMessage:  req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.WebhookResponse{
		Duplicate:     outcome.Duplicate,
		AttemptNumber: outcome.AttemptNumber,
		SaleStatus:    string(outcome.SaleStatus),
		Resumed:       toOrchestrationResponse(outcome.Resumed, nil),
	}
	response.OK(c, resp)
}
