package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHMACSignatureService_SignAndVerify(t *testing.T) {
	svc := NewHMACSignatureService()

	payload := `{"provider_tx_ref":"acq-a-1","status":"success"}`
	sig := svc.Sign("webhook-secret", payload)
	assert.Len(t, sig, 64) // hex-encoded SHA-256

	assert.True(t, svc.Verify("webhook-secret", payload, sig))
	assert.False(t, svc.Verify("wrong-secret", payload, sig))
	assert.False(t, svc.Verify("webhook-secret", payload+"x", sig))
	assert.False(t, svc.Verify("webhook-secret", payload, "deadbeef"))
}

func TestHMACSignatureService_Deterministic(t *testing.T) {
	svc := NewHMACSignatureService()
	assert.Equal(t, svc.Sign("k", "p"), svc.Sign("k", "p"))
	assert.NotEqual(t, svc.Sign("k", "p"), svc.Sign("k2", "p"))
}
