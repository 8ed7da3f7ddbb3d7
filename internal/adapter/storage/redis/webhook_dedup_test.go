package redis

import (
	"context"
	"testing"
	"time"

	"payment-orchestrator/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookDeduper_CheckAndSet_NewDelivery(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	deduper := NewWebhookDeduper(client, 24*time.Hour)
	ctx := context.Background()

	ok, err := deduper.CheckAndSet(ctx, domain.ProviderAcquirerA, "tx-123", "success")
	require.NoError(t, err)
	assert.True(t, ok, "first delivery should be new")
}

func TestWebhookDeduper_CheckAndSet_Redelivery(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	deduper := NewWebhookDeduper(client, 24*time.Hour)
	ctx := context.Background()

	ok, err := deduper.CheckAndSet(ctx, domain.ProviderAcquirerA, "tx-123", "success")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = deduper.CheckAndSet(ctx, domain.ProviderAcquirerA, "tx-123", "success")
	require.NoError(t, err)
	assert.False(t, ok, "redelivery should be a duplicate")
}

func TestWebhookDeduper_Forget_AllowsRetry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	deduper := NewWebhookDeduper(client, 24*time.Hour)
	ctx := context.Background()

	ok, err := deduper.CheckAndSet(ctx, domain.ProviderAcquirerA, "tx-123", "success")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, deduper.Forget(ctx, domain.ProviderAcquirerA, "tx-123", "success"))

	// After the mark is cleared the retry is treated as new.
	ok, err = deduper.CheckAndSet(ctx, domain.ProviderAcquirerA, "tx-123", "success")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWebhookDeduper_Forget_MissingKeyIsNoop(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	deduper := NewWebhookDeduper(client, 24*time.Hour)

	assert.NoError(t, deduper.Forget(context.Background(), domain.ProviderAcquirerA, "never-seen", "failed"))
}

func TestWebhookDeduper_CheckAndSet_DifferentStatus(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	deduper := NewWebhookDeduper(client, 24*time.Hour)
	ctx := context.Background()

	ok, err := deduper.CheckAndSet(ctx, domain.ProviderAcquirerA, "tx-123", "in_analysis")
	require.NoError(t, err)
	assert.True(t, ok)

	// A status change for the same transaction is not a duplicate.
	ok, err = deduper.CheckAndSet(ctx, domain.ProviderAcquirerA, "tx-123", "success")
	require.NoError(t, err)
	assert.True(t, ok)

	// Nor is the same ref from a different gateway.
	ok, err = deduper.CheckAndSet(ctx, domain.ProviderAcquirerB, "tx-123", "success")
	require.NoError(t, err)
	assert.True(t, ok)
}
