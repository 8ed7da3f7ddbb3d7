package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttemptStatus is the outcome of a single gateway attempt.
type AttemptStatus string

const (
	AttemptStatusPending AttemptStatus = "pending"
	AttemptStatusSuccess AttemptStatus = "success"
	AttemptStatusFailed  AttemptStatus = "failed"
)

// PaymentAttempt is an append-only ledger row for one gateway attempt.
// Rows are created once and never mutated; a pending attempt resolved by a
// provider webhook gets a new resolution row referencing it.
type PaymentAttempt struct {
	ID            uuid.UUID     `json:"id"`
	SaleID        uuid.UUID     `json:"sale_id"`
	Gateway       ProviderType  `json:"gateway"`
	Method        PaymentMethod `json:"payment_method"`
	AmountCents   int64         `json:"amount_cents"`
	Status        AttemptStatus `json:"status"`
	ErrorCode     string        `json:"error_code,omitempty"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	IsFallback    bool          `json:"is_fallback"`
	AttemptNumber int           `json:"attempt_number"` // 1-based, contiguous per sale
	ProviderTxRef string        `json:"provider_tx_ref,omitempty"`
	// ResolvesAttempt is set on webhook resolution rows: the attempt_number of
	// the pending initiation row this row settles. Nil on initiation rows.
	ResolvesAttempt *int      `json:"resolves_attempt,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// IsInitiation reports whether this row initiated a gateway charge, as
// opposed to resolving an earlier pending one. Only initiation rows count
// against a chain's attempt cap.
func (a *PaymentAttempt) IsInitiation() bool {
	return a.ResolvesAttempt == nil
}

// ChainStart returns the index of the first attempt of the most recent chain
// in an ordered attempt sequence: the last initiation row with
// is_fallback=false. Returns -1 when no chain has started.
func ChainStart(attempts []PaymentAttempt) int {
	start := -1
	for i, a := range attempts {
		if a.IsInitiation() && !a.IsFallback {
			start = i
		}
	}
	return start
}

// CurrentChain returns the initiation attempts of the most recent chain.
func CurrentChain(attempts []PaymentAttempt) []PaymentAttempt {
	start := ChainStart(attempts)
	if start < 0 {
		return nil
	}
	var chain []PaymentAttempt
	for _, a := range attempts[start:] {
		if a.IsInitiation() {
			chain = append(chain, a)
		}
	}
	return chain
}
