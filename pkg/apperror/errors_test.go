package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("GW_002", "Declined", http.StatusPaymentRequired),
			expected: "[GW_002] Declined",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("VAL_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestOrchestrationErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"NoActiveGateway", ErrNoActiveGateway("pix"), CodeConfiguration, 503},
		{"Validation", Validation("bad amount"), CodeValidation, 400},
		{"NotFound", ErrNotFound("sale"), CodeNotFound, 404},
		{"TransientGateway", ErrTransientGateway("acquirer_a", fmt.Errorf("timeout")), CodeTransientGateway, 502},
		{"PermanentDecline", ErrPermanentDecline("acquirer_b", "insufficient funds"), CodePermanentDecline, 402},
		{"Consistency", ErrConsistency("duplicate success"), CodeConsistency, 500},
		{"ConcurrentRun", ErrConcurrentRun("sale-1"), CodeConcurrentRun, 409},
		{"InvalidActionState", ErrInvalidActionState("reprocess", "paid"), CodeInvalidAction, 409},
		{"InvalidToken", ErrInvalidToken(), CodeInvalidToken, 401},
		{"InvalidSignature", ErrInvalidSignature(), CodeInvalidSignature, 401},
		{"RateLimited", ErrRateLimitExceeded(), CodeRateLimited, 429},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrTransientGateway("g1", nil)))
	assert.True(t, IsRetryable(ErrPermanentDecline("g1", "fraud score")))
	assert.False(t, IsRetryable(Validation("unsupported method")))
	assert.False(t, IsRetryable(ErrNoActiveGateway("boleto")))
	assert.False(t, IsRetryable(fmt.Errorf("plain error")))
}

func TestIsCode(t *testing.T) {
	err := ErrConcurrentRun("sale-9")
	assert.True(t, IsCode(err, CodeConcurrentRun))
	assert.False(t, IsCode(err, CodeValidation))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsCode(wrapped, CodeConcurrentRun))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodePermanentDecline, CodeOf(ErrPermanentDecline("g", "")))
	assert.Equal(t, CodeInternal, CodeOf(fmt.Errorf("unknown")))
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	sysErr := InternalError(inner)
	assert.Equal(t, CodeInternal, sysErr.Code)
	assert.Equal(t, 500, sysErr.HTTPStatus)
	assert.True(t, errors.Is(sysErr, inner))

	encErr := ErrEncryptionFailure(inner)
	assert.Equal(t, CodeInternal, encErr.Code)
	assert.Equal(t, 500, encErr.HTTPStatus)
}
