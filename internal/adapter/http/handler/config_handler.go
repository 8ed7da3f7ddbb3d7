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
	"github.com/shopspring/decimal"
)

// ConfigHandler handles the admin configuration surface: gateways, fallback
// policies, and tenant fee schedules.
type ConfigHandler struct {
	cfgSvc ports.ConfigService
	encSvc ports.EncryptionService
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(cfgSvc ports.ConfigService, encSvc ports.EncryptionService) *ConfigHandler {
	return &ConfigHandler{cfgSvc: cfgSvc, encSvc: encSvc}
}

// ListGateways handles GET /api/v1/config/gateways.
func (h *ConfigHandler) ListGateways(c *gin.Context) {
	gws, err := h.cfgSvc.ListGateways(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.GatewayResponse, 0, len(gws))
	for i := range gws {
		items = append(items, toGatewayResponse(&gws[i]))
	}
	response.OK(c, items)
}

// UpsertGateway handles PUT /api/v1/config/gateways. The plaintext credential
// payload is encrypted here; storage only ever sees ciphertext.
func (h *ConfigHandler) UpsertGateway(c *gin.Context) {
	var req dto.GatewayUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	credRef, err := h.encSvc.Encrypt(req.Credentials)
	if err != nil {
		response.Error(c, apperror.ErrEncryptionFailure(err))
		return
	}

	cfg := &domain.GatewayConfig{
		Provider:      domain.ProviderType(req.Provider),
		DisplayName:   req.DisplayName,
		CredentialRef: credRef,
		IsPrimary:     req.IsPrimary,
		Priority:      req.Priority,
		IsActive:      req.IsActive,
		IsSandbox:     req.IsSandbox,
	}
	if err := h.cfgSvc.UpsertGateway(c.Request.Context(), cfg, req.WebhookSecret); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toGatewayResponse(cfg))
}

// GetPolicy handles GET /api/v1/config/policies/:method.
func (h *ConfigHandler) GetPolicy(c *gin.Context) {
	policy, err := h.cfgSvc.GetPolicy(c.Request.Context(), domain.PaymentMethod(c.Param("method")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toPolicyResponse(policy))
}

// UpsertPolicy handles PUT /api/v1/config/policies/:method.
func (h *ConfigHandler) UpsertPolicy(c *gin.Context) {
	var req dto.PolicyUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	fallbacks := make([]domain.ProviderType, len(req.FallbackGateways))
	for i, g := range req.FallbackGateways {
		fallbacks[i] = domain.ProviderType(g)
	}
	policy := &domain.FallbackPolicy{
		Method:              domain.PaymentMethod(c.Param("method")),
		PrimaryGateway:      domain.ProviderType(req.PrimaryGateway),
		FallbackGateways:    fallbacks,
		FallbackEnabled:     req.FallbackEnabled,
		MaxFallbackAttempts: req.MaxFallbackAttempts,
	}
	if err := h.cfgSvc.UpsertPolicy(c.Request.Context(), policy); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toPolicyResponse(policy))
}

// GetFeeSchedule handles GET /api/v1/config/fees/:tenant_id/:method.
func (h *ConfigHandler) GetFeeSchedule(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenant_id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid tenant id"))
		return
	}

	sched, err := h.cfgSvc.GetFeeSchedule(c.Request.Context(), tenantID, domain.PaymentMethod(c.Param("method")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toFeeScheduleResponse(sched))
}

// UpsertFeeSchedule handles PUT /api/v1/config/fees/:tenant_id/:method.
func (h *ConfigHandler) UpsertFeeSchedule(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenant_id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid tenant id"))
		return
	}

	var req dto.FeeScheduleUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	pct, err := decimal.NewFromString(req.FeePercentage)
	if err != nil {
		response.Error(c, apperror.Validation("fee_percentage is not a valid decimal"))
		return
	}
	var fees domain.InstallmentFeeTable
	if len(req.InstallmentFees) > 0 {
		fees = make(domain.InstallmentFeeTable, len(req.InstallmentFees))
		for k, v := range req.InstallmentFees {
			d, err := decimal.NewFromString(v)
			if err != nil {
				response.Error(c, apperror.Validation("installment fee for "+k+" is not a valid decimal"))
				return
			}
			fees[k] = d
		}
	}

	sched := &domain.TenantFeeSchedule{
		TenantID:                    tenantID,
		Method:                      domain.PaymentMethod(c.Param("method")),
		FeePercentage:               pct,
		FeeFixedCents:               req.FeeFixedCents,
		ReleaseDays:                 req.ReleaseDays,
		Enabled:                     req.Enabled,
		MaxInstallments:             req.MaxInstallments,
		InstallmentFees:             fees,
		InstallmentFeePassedToBuyer: req.InstallmentFeePassedToBuyer,
		AllowSaveCard:               req.AllowSaveCard,
	}
	if err := h.cfgSvc.UpsertFeeSchedule(c.Request.Context(), sched); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toFeeScheduleResponse(sched))
}

func toGatewayResponse(g *domain.GatewayConfig) dto.GatewayResponse {
	return dto.GatewayResponse{
		ID:          g.ID.String(),
		Provider:    string(g.Provider),
		DisplayName: g.DisplayName,
		IsPrimary:   g.IsPrimary,
		Priority:    g.Priority,
		IsActive:    g.IsActive,
		IsSandbox:   g.IsSandbox,
		UpdatedAt:   g.UpdatedAt.Format(time.RFC3339),
	}
}

func toPolicyResponse(p *domain.FallbackPolicy) dto.PolicyResponse {
	fallbacks := make([]string, len(p.FallbackGateways))
	for i, g := range p.FallbackGateways {
		fallbacks[i] = string(g)
	}
	return dto.PolicyResponse{
		Method:              string(p.Method),
		PrimaryGateway:      string(p.PrimaryGateway),
		FallbackGateways:    fallbacks,
		FallbackEnabled:     p.FallbackEnabled,
		MaxFallbackAttempts: p.MaxFallbackAttempts,
		UpdatedAt:           p.UpdatedAt.Format(time.RFC3339),
	}
}

func toFeeScheduleResponse(s *domain.TenantFeeSchedule) dto.FeeScheduleResponse {
	var fees map[string]string
	if len(s.InstallmentFees) > 0 {
		fees = make(map[string]string, len(s.InstallmentFees))
		for k, v := range s.InstallmentFees {
			fees[k] = v.String()
		}
	}
	return dto.FeeScheduleResponse{
		TenantID:                    s.TenantID.String(),
		Method:                      string(s.Method),
		FeePercentage:               s.FeePercentage.String(),
		FeeFixedCents:               s.FeeFixedCents,
		ReleaseDays:                 s.ReleaseDays,
		Enabled:                     s.Enabled,
		MaxInstallments:             s.MaxInstallments,
		InstallmentFees:             fees,
		InstallmentFeePassedToBuyer: s.InstallmentFeePassedToBuyer,
		AllowSaveCard:               s.AllowSaveCard,
		UpdatedAt:                   s.UpdatedAt.Format(time.RFC3339),
	}
}
