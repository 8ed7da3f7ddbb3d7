package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminActionType is a human-triggered recovery operation.
type AdminActionType string

const (
	ActionReprocess        AdminActionType = "reprocess"
	ActionReleaseAntifraud AdminActionType = "release_antifraud"
	ActionManualCapture    AdminActionType = "manual_capture"
)

// IsValid reports whether the action type is known.
func (a AdminActionType) IsValid() bool {
	switch a {
	case ActionReprocess, ActionReleaseAntifraud, ActionManualCapture:
		return true
	}
	return false
}

// ActionResultStatus records how a recovery action ended.
type ActionResultStatus string

const (
	ActionResultSuccess ActionResultStatus = "success"
	ActionResultFailed  ActionResultStatus = "failed"
	// ActionResultNoop marks an idempotent no-op on an already-terminal sale.
	ActionResultNoop ActionResultStatus = "noop"
)

// AdminAction is an append-only audit row; exactly one is written per
// RecoveryService call regardless of outcome.
type AdminAction struct {
	ID           uuid.UUID          `json:"id"`
	SaleID       uuid.UUID          `json:"sale_id"`
	ActionType   AdminActionType    `json:"action_type"`
	PerformedBy  string             `json:"performed_by"`
	Notes        string             `json:"notes,omitempty"`
	ResultStatus ActionResultStatus `json:"result_status"`
	CreatedAt    time.Time          `json:"created_at"`
}
