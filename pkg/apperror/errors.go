package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Error codes. GW_* errors advance the fallback chain; everything else stops it.
const (
	CodeConfiguration    = "CFG_001"
	CodeValidation       = "VAL_001"
	CodeTransientGateway = "GW_001"
	CodePermanentDecline = "GW_002"
	CodeConsistency      = "LED_001"
	CodeConcurrentRun    = "LOCK_001"
	CodeInvalidAction    = "REC_001"
	CodeNotFound         = "ORC_404"
	CodeInvalidToken     = "AUTH_001"
	CodeInvalidSignature = "SEC_001"
	CodeRateLimited      = "RATE_001"
	CodeInternal         = "SYS_001"
)

// ---- Configuration & Validation ----

func ErrNoActiveGateway(method string) *AppError {
	return New(CodeConfiguration, fmt.Sprintf("no active gateway configured for method %s", method), http.StatusServiceUnavailable)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Gateway attempt outcomes ----

func ErrTransientGateway(gateway string, err error) *AppError {
	return Wrap(CodeTransientGateway, fmt.Sprintf("gateway %s temporarily unavailable", gateway), http.StatusBadGateway, err)
}

func ErrPermanentDecline(gateway string, reason string) *AppError {
	msg := fmt.Sprintf("gateway %s declined the charge", gateway)
	if reason != "" {
		msg += ": " + reason
	}
	return New(CodePermanentDecline, msg, http.StatusPaymentRequired)
}

// ---- Ledger & Concurrency ----

func ErrConsistency(detail string) *AppError {
	return New(CodeConsistency, "ledger consistency violation: "+detail, http.StatusInternalServerError)
}

func ErrConcurrentRun(saleID string) *AppError {
	return New(CodeConcurrentRun, fmt.Sprintf("an orchestration run is already active for sale %s", saleID), http.StatusConflict)
}

// ---- Recovery ----

func ErrInvalidActionState(action string, status string) *AppError {
	return New(CodeInvalidAction, fmt.Sprintf("action %s is not valid while sale is %s", action, status), http.StatusConflict)
}

// ---- Security ----

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired operator token", http.StatusUnauthorized)
}

func ErrInvalidSignature() *AppError {
	return New(CodeInvalidSignature, "Invalid webhook signature", http.StatusUnauthorized)
}

// ---- Rate Limiting ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure ----

func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap(CodeInternal, "Credential decryption failure", http.StatusInternalServerError, err)
}

// IsRetryable reports whether an attempt error allows advancing to the next
// gateway in the chain. Both transient failures and provider declines are
// retryable across acquirers; validation failures are not.
func IsRetryable(err error) bool {
	return IsCode(err, CodeTransientGateway) || IsCode(err, CodePermanentDecline)
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the AppError code for err, or CodeInternal for unknown errors.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}
