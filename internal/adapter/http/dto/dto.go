package dto

// CreateSaleRequest registers the orchestration view of a sale created by the
// checkout subsystem.
type CreateSaleRequest struct {
	SaleID       string `json:"sale_id" binding:"required,uuid"`
	TenantID     string `json:"tenant_id" binding:"required,uuid"`
	Method       string `json:"payment_method" binding:"required,oneof=pix credit_card boleto"`
	AmountCents  int64  `json:"amount_cents" binding:"required,gt=0"`
	Installments int    `json:"installments" binding:"omitempty,gte=1,lte=24"`
}

// ChargeRequest is the request body for starting an orchestration chain.
type ChargeRequest struct {
	SaleID       string `json:"sale_id" binding:"required,uuid"`
	Method       string `json:"payment_method" binding:"required,oneof=pix credit_card boleto"`
	AmountCents  int64  `json:"amount_cents" binding:"required,gt=0"`
	Installments int    `json:"installments" binding:"omitempty,gte=1,lte=24"`
}

// FeeQuoteRequest is the request body for a fee computation.
type FeeQuoteRequest struct {
	TenantID     string `json:"tenant_id" binding:"required,uuid"`
	Method       string `json:"payment_method" binding:"required,oneof=pix credit_card boleto"`
	AmountCents  int64  `json:"amount_cents" binding:"required,gt=0"`
	Installments int    `json:"installments" binding:"omitempty,gte=1,lte=24"`
}

// FeeQuoteResponse is the response body for a fee computation.
type FeeQuoteResponse struct {
	FeeCents           int64 `json:"fee_cents"`
	ChargedAmountCents int64 `json:"charged_amount_cents"`
	ReleaseDays        int   `json:"release_days"`
}

// WebhookRequest is a provider's asynchronous status notification.
type WebhookRequest struct {
	TransactionID string `json:"transaction_id" binding:"required,max=128"`
	Status        string `json:"status" binding:"required,oneof=success failed in_analysis"`
	ErrorCode     string `json:"error_code,omitempty"`
	Message       string `json:"message,omitempty"`
}

// RecoveryActionRequest is the request body for a manual recovery action.
type RecoveryActionRequest struct {
	ActionType string `json:"action_type" binding:"required,oneof=reprocess release_antifraud manual_capture"`
	Notes      string `json:"notes,omitempty" binding:"max=500"`
}

// GatewayUpsertRequest configures a payment provider. Credentials is the
// plaintext credential payload; it is encrypted before storage and never
// echoed back.
type GatewayUpsertRequest struct {
	Provider      string `json:"provider" binding:"required,oneof=acquirer_a acquirer_b acquirer_c acquirer_d"`
	DisplayName   string `json:"display_name" binding:"required,min=1,max=100"`
	Credentials   string `json:"credentials" binding:"required"`
	WebhookSecret string `json:"webhook_secret,omitempty"`
	IsPrimary     bool   `json:"is_primary"`
	Priority      int    `json:"priority" binding:"gte=0"`
	IsActive      bool   `json:"is_active"`
	IsSandbox     bool   `json:"is_sandbox"`
}

// PolicyUpsertRequest configures the fallback chain for a payment method.
type PolicyUpsertRequest struct {
	PrimaryGateway      string   `json:"primary_gateway" binding:"required,oneof=acquirer_a acquirer_b acquirer_c acquirer_d"`
	FallbackGateways    []string `json:"fallback_gateways" binding:"dive,oneof=acquirer_a acquirer_b acquirer_c acquirer_d"`
	FallbackEnabled     bool     `json:"fallback_enabled"`
	MaxFallbackAttempts int      `json:"max_fallback_attempts" binding:"required,gte=1,lte=10"`
}

// FeeScheduleUpsertRequest configures a tenant's fee override for one method.
type FeeScheduleUpsertRequest struct {
	FeePercentage               string            `json:"fee_percentage" binding:"required,decimal"`
	FeeFixedCents               int64             `json:"fee_fixed_cents" binding:"gte=0"`
	ReleaseDays                 int               `json:"release_days" binding:"gte=0"`
	Enabled                     bool              `json:"enabled"`
	MaxInstallments             int               `json:"max_installments" binding:"omitempty,gte=1,lte=24"`
	InstallmentFees             map[string]string `json:"installment_fees,omitempty"`
	InstallmentFeePassedToBuyer bool              `json:"installment_fee_passed_to_buyer"`
	AllowSaveCard               bool              `json:"allow_save_card"`
}

// SaleResponse is the orchestration view of a sale.
type SaleResponse struct {
	ID           string `json:"id"`
	TenantID     string `json:"tenant_id"`
	Method       string `json:"payment_method"`
	AmountCents  int64  `json:"amount_cents"`
	Installments int    `json:"installments"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// AttemptResponse is one ledger row.
type AttemptResponse struct {
	SaleID          string `json:"sale_id"`
	Gateway         string `json:"gateway"`
	Method          string `json:"payment_method"`
	AmountCents     int64  `json:"amount_cents"`
	Status          string `json:"status"`
	ErrorCode       string `json:"error_code,omitempty"`
	ErrorMessage    string `json:"error_message,omitempty"`
	IsFallback      bool   `json:"is_fallback"`
	AttemptNumber   int    `json:"attempt_number"`
	ProviderTxRef   string `json:"provider_tx_ref,omitempty"`
	ResolvesAttempt *int   `json:"resolves_attempt,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// OrchestrationResponse is the outcome of a chain run.
type OrchestrationResponse struct {
	SaleID       string           `json:"sale_id"`
	Status       string           `json:"status"`
	AttemptsMade int              `json:"attempts_made"`
	LastAttempt  *AttemptResponse `json:"last_attempt,omitempty"`
	ErrorCode    string           `json:"error_code,omitempty"`
}

// WebhookResponse reports how a provider notification was applied.
type WebhookResponse struct {
	Duplicate     bool                   `json:"duplicate"`
	AttemptNumber int                    `json:"attempt_number,omitempty"`
	SaleStatus    string                 `json:"sale_status,omitempty"`
	Resumed       *OrchestrationResponse `json:"resumed,omitempty"`
}

// ActionResponse is one recovery audit row.
type ActionResponse struct {
	ID           string `json:"id"`
	SaleID       string `json:"sale_id"`
	ActionType   string `json:"action_type"`
	PerformedBy  string `json:"performed_by"`
	Notes        string `json:"notes,omitempty"`
	ResultStatus string `json:"result_status"`
	CreatedAt    string `json:"created_at"`
}

// ActionResultResponse is the outcome of a recovery action.
type ActionResultResponse struct {
	Action          *ActionResponse        `json:"action"`
	AlreadyTerminal bool                   `json:"already_terminal"`
	Orchestration   *OrchestrationResponse `json:"orchestration,omitempty"`
}

// GatewayResponse is a configured gateway without its secrets.
type GatewayResponse struct {
	ID          string `json:"id"`
	Provider    string `json:"provider"`
	DisplayName string `json:"display_name"`
	IsPrimary   bool   `json:"is_primary"`
	Priority    int    `json:"priority"`
	IsActive    bool   `json:"is_active"`
	IsSandbox   bool   `json:"is_sandbox"`
	UpdatedAt   string `json:"updated_at"`
}

// PolicyResponse is the fallback policy for a method.
type PolicyResponse struct {
	Method              string   `json:"method"`
	PrimaryGateway      string   `json:"primary_gateway"`
	FallbackGateways    []string `json:"fallback_gateways"`
	FallbackEnabled     bool     `json:"fallback_enabled"`
	MaxFallbackAttempts int      `json:"max_fallback_attempts"`
	UpdatedAt           string   `json:"updated_at"`
}

// FeeScheduleResponse is a tenant's fee override for one method.
type FeeScheduleResponse struct {
	TenantID                    string            `json:"tenant_id"`
	Method                      string            `json:"method"`
	FeePercentage               string            `json:"fee_percentage"`
	FeeFixedCents               int64             `json:"fee_fixed_cents"`
	ReleaseDays                 int               `json:"release_days"`
	Enabled                     bool              `json:"enabled"`
	MaxInstallments             int               `json:"max_installments,omitempty"`
	InstallmentFees             map[string]string `json:"installment_fees,omitempty"`
	InstallmentFeePassedToBuyer bool              `json:"installment_fee_passed_to_buyer"`
	AllowSaveCard               bool              `json:"allow_save_card"`
	UpdatedAt                   string            `json:"updated_at"`
}
