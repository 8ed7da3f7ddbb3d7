package redis

import (
	"context"
	"fmt"
	"time"

	"payment-orchestrator/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// WebhookDeduper implements ports.WebhookDeduper using Redis SET NX. Provider
// webhooks are retried aggressively; the dedup key (gateway, provider ref,
// status) makes redelivery a no-op while still letting a later status change
// for the same transaction through.
type WebhookDeduper struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewWebhookDeduper creates a new Redis-backed webhook deduper.
func NewWebhookDeduper(client *goredis.Client, ttl time.Duration) *WebhookDeduper {
	return &WebhookDeduper{
		client: client,
		prefix: "webhook:",
		ttl:    ttl,
	}
}

// CheckAndSet atomically marks a webhook delivery as seen. Returns true if
// this delivery is new, false if it was already processed.
func (s *WebhookDeduper) CheckAndSet(ctx context.Context, gateway domain.ProviderType, providerTxRef string, status string) (bool, error) {
	result, err := s.client.SetArgs(ctx, s.key(gateway, providerTxRef, status), 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  s.ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists, delivery was already seen
			return false, nil
		}
		return false, fmt.Errorf("redis webhook dedup: %w", err)
	}
	return result == "OK", nil
}

// Forget clears the seen mark after a delivery failed to apply, so the
// provider's retry is not swallowed as a duplicate.
func (s *WebhookDeduper) Forget(ctx context.Context, gateway domain.ProviderType, providerTxRef string, status string) error {
	if err := s.client.Del(ctx, s.key(gateway, providerTxRef, status)).Err(); err != nil {
		return fmt.Errorf("redis webhook dedup forget: %w", err)
	}
	return nil
}

func (s *WebhookDeduper) key(gateway domain.ProviderType, providerTxRef string, status string) string {
	return s.prefix + string(gateway) + ":" + providerTxRef + ":" + status
}
