package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTTokenService_Validate(t *testing.T) {
	svc := NewJWTTokenService("test-secret", "payment-orchestrator")

	tokenString := signTestToken(t, "test-secret", jwt.MapClaims{
		"sub": "operator-42",
		"iss": "payment-orchestrator",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := svc.Validate(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "operator-42", claims.OperatorID)
}

func TestJWTTokenService_Validate_Errors(t *testing.T) {
	svc := NewJWTTokenService("test-secret", "payment-orchestrator")

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"wrong secret", signTestToken(t, "other-secret", jwt.MapClaims{
			"sub": "operator-42",
			"iss": "payment-orchestrator",
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
		{"expired", signTestToken(t, "test-secret", jwt.MapClaims{
			"sub": "operator-42",
			"iss": "payment-orchestrator",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})},
		{"wrong issuer", signTestToken(t, "test-secret", jwt.MapClaims{
			"sub": "operator-42",
			"iss": "someone-else",
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
		{"missing subject", signTestToken(t, "test-secret", jwt.MapClaims{
			"iss": "payment-orchestrator",
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			assert.Error(t, err)
		})
	}
}
