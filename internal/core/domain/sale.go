package domain

import (
	"time"

	"github.com/google/uuid"
)

// SaleStatus is the payment lifecycle state of a sale.
type SaleStatus string

const (
	SaleStatusPending    SaleStatus = "pending"
	SaleStatusProcessing SaleStatus = "processing"
	SaleStatusPaid       SaleStatus = "paid"
	SaleStatusFailed     SaleStatus = "failed"
	SaleStatusRefunded   SaleStatus = "refunded"
	SaleStatusAnalyzing  SaleStatus = "analyzing"
)

// saleTransitions encodes the allowed state machine:
// pending -> processing -> {paid, failed, refunded, analyzing}, plus the
// recovery edges (failed -> processing on reprocess, analyzing -> paid on
// antifraud release, pending/failed -> paid on manual capture).
var saleTransitions = map[SaleStatus][]SaleStatus{
	SaleStatusPending:    {SaleStatusProcessing, SaleStatusPaid, SaleStatusFailed},
	SaleStatusProcessing: {SaleStatusPaid, SaleStatusFailed, SaleStatusAnalyzing, SaleStatusRefunded},
	SaleStatusFailed:     {SaleStatusProcessing, SaleStatusPaid},
	SaleStatusAnalyzing:  {SaleStatusPaid, SaleStatusFailed},
	SaleStatusPaid:       {SaleStatusRefunded},
	SaleStatusRefunded:   {},
}

// IsTerminal reports whether no further charges may be routed for this status.
func (s SaleStatus) IsTerminal() bool {
	return s == SaleStatusPaid || s == SaleStatusRefunded
}

// CanTransition reports whether moving from s to target is allowed.
func (s SaleStatus) CanTransition(target SaleStatus) bool {
	for _, allowed := range saleTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Sale is the orchestration view of a sale: the context a chain runs with.
// The full sales record (customer, items, shipping) lives in the checkout
// subsystem and is out of scope here.
type Sale struct {
	ID           uuid.UUID     `json:"id"`
	TenantID     uuid.UUID     `json:"tenant_id"`
	Method       PaymentMethod `json:"payment_method"`
	AmountCents  int64         `json:"amount_cents"`
	Installments int           `json:"installments"`
	Status       SaleStatus    `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Chargeable reports whether a new orchestration chain may start for the sale.
func (s *Sale) Chargeable() bool {
	return s.Status == SaleStatusPending || s.Status == SaleStatusFailed
}
